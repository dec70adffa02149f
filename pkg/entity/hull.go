// pkg/entity/hull.go
package entity

// Timer lengths for the hit flash and the destruction fade, in milliseconds
const (
	DamageFlashDuration   = 200
	DestroyedFadeDuration = 500
)

// Allegiance decides which projectiles may hit an entity
type Allegiance int

const (
	Friendly Allegiance = iota
	Enemy
	Neutral
)

// String returns the allegiance name
func (a Allegiance) String() string {
	switch a {
	case Friendly:
		return "friendly"
	case Enemy:
		return "enemy"
	case Neutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Hull tracks armor and shield and the flash/fade timer driven by damage.
// Once destroyed a hull stays destroyed; it becomes removable when the fade ends.
type Hull struct {
	MaxArmor  int
	Armor     int
	MaxShield int
	Shield    int

	flashAndFade int
	destroyed    bool
	removable    bool
}

// NewHull creates a hull at full strength
func NewHull(armor, shield int) Hull {
	return Hull{MaxArmor: armor, Armor: armor, MaxShield: shield, Shield: shield}
}

// ApplyDamage drains the shield first and spills the remainder onto armor.
// Any call, including zero damage, restarts the flash.
func (h *Hull) ApplyDamage(amount int) {
	if amount < 0 {
		amount = 0
	}

	switch {
	case h.Shield >= amount:
		h.Shield -= amount
	case h.Shield > 0:
		h.Armor -= amount - h.Shield
		h.Shield = 0
	default:
		h.Armor -= amount
	}

	h.flashAndFade = DamageFlashDuration
	if h.Armor <= 0 {
		h.Armor = 0
		h.destroyed = true
		h.flashAndFade = DestroyedFadeDuration
	}
}

// Tick counts the flash/fade timer down
func (h *Hull) Tick(deltaMs int) {
	h.flashAndFade = max(0, h.flashAndFade-deltaMs)
	if h.destroyed && h.flashAndFade == 0 {
		h.removable = true
	}
}

// Recharge restores shield up to the maximum
func (h *Hull) Recharge(amount int) {
	if h.destroyed || amount <= 0 {
		return
	}
	h.Shield = min(h.MaxShield, h.Shield+amount)
}

// Destroyed reports whether armor has reached zero
func (h *Hull) Destroyed() bool {
	return h.destroyed
}

// Removable reports whether the destruction fade has finished
func (h *Hull) Removable() bool {
	return h.removable
}

// ShieldActive reports whether any shield remains
func (h *Hull) ShieldActive() bool {
	return h.Shield > 0
}

// Timer returns the remaining flash or fade time in milliseconds
func (h *Hull) Timer() int {
	return h.flashAndFade
}

// FadeAlpha is the body opacity: 1 while alive, falling to 0 over the destruction fade
func (h *Hull) FadeAlpha() float64 {
	if !h.destroyed {
		return 1
	}
	return float64(h.flashAndFade) / DestroyedFadeDuration
}

// FlashAlpha is the opacity of the damage overlay on a live hull
func (h *Hull) FlashAlpha() float64 {
	if h.destroyed {
		return 0
	}
	return float64(h.flashAndFade) / DamageFlashDuration
}
