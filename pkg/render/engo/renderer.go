// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/render"
)

// layer separates sprite identities and sets the draw order
type layer int

const (
	layerStar layer = iota
	layerProjectile
	layerEnemy
	layerLaser
	layerCraft
	layerMount
	layerShield
)

const laserWidth = 2

var (
	colorFriendlyShot = color.NRGBA{R: 255, G: 230, B: 120, A: 255}
	colorHostileShot  = color.NRGBA{R: 255, G: 90, B: 60, A: 255}
	colorLaser        = color.NRGBA{R: 255, G: 60, B: 255, A: 220}
	colorShield       = color.NRGBA{R: 80, G: 200, B: 255, A: 160}
	colorReloading    = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// spriteKey identifies one drawn thing across frames
type spriteKey struct {
	layer layer
	id    uint64
}

// sprite is one entity owned by the renderer. The render system keeps
// pointers to its components, so updates take effect on the next draw.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	frame uint64
}

// spriteSystem is the part of common.RenderSystem the renderer uses
type spriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// EngoRenderer implements render.Renderer on top of an Engo render system.
// Sprites are created the first time an entity is drawn and removed after
// the first frame it is missing from.
type EngoRenderer struct {
	system  spriteSystem
	assets  *AssetManager
	camera  *render.Camera
	stars   *render.Starfield
	sprites map[spriteKey]*sprite
	frame   uint64
	mounts  uint64
}

// NewEngoRenderer creates a renderer drawing through system
func NewEngoRenderer(system spriteSystem, assets *AssetManager, camera *render.Camera) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		assets:  assets,
		camera:  camera,
		sprites: make(map[spriteKey]*sprite),
	}
}

// SetStarfield sets the background drawn on every Clear; nil disables it
func (r *EngoRenderer) SetStarfield(s *render.Starfield) {
	r.stars = s
}

// Len returns the number of live sprites
func (r *EngoRenderer) Len() int {
	return len(r.sprites)
}

// Clear implements render.Renderer
func (r *EngoRenderer) Clear() {
	r.frame++
	r.mounts = 0
	if r.stars == nil {
		return
	}
	for i, st := range r.stars.Stars() {
		size := float32(starSize) * float32(st.Depth)
		s := r.get(spriteKey{layerStar, uint64(i)}, r.assets.GetStar(), size, size)
		s.Scale = engo.Point{X: float32(st.Depth), Y: float32(st.Depth)}
		s.Color = st.Color
		x, y := r.camera.ToScreenParallax(st.Position, st.Depth)
		s.Position = topLeft(engo.Point{X: float32(x), Y: float32(y)}, s.Width, s.Height, 0)
	}
}

// Present implements render.Renderer, dropping sprites not drawn this frame
func (r *EngoRenderer) Present() {
	for key, s := range r.sprites {
		if s.frame != r.frame {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, key)
		}
	}
}

// RenderCraft implements render.Renderer
func (r *EngoRenderer) RenderCraft(craft engine.CraftState) {
	if craft.Destroyed && craft.Fade <= 0 {
		return
	}
	s := r.getScaled(spriteKey{layerCraft, uint64(craft.ID)}, asset.Craft)
	s.Color = hullColor(craft.Flash, craft.Fade, craft.Destroyed)
	r.place(s, craft.Position, craft.Heading)

	if craft.ShieldActive && !craft.Destroyed {
		d := float32(2 * craft.ShieldRadius / r.camera.Scale)
		ring := r.get(spriteKey{layerShield, uint64(craft.ID)}, common.Circle{BorderWidth: 2, BorderColor: colorShield}, d, d)
		ring.Color = color.Transparent
		ring.Width, ring.Height = d, d
		x, y := r.camera.ToScreen(craft.Position)
		ring.Position = topLeft(engo.Point{X: float32(x), Y: float32(y)}, d, d, 0)
	}
}

// RenderMount implements render.Renderer
func (r *EngoRenderer) RenderMount(mount engine.MountState) {
	r.mounts++
	s := r.getScaled(spriteKey{layerMount, r.mounts}, asset.Turret)
	s.Color = color.White
	if !mount.Ready {
		s.Color = colorReloading
	}
	r.place(s, mount.Position, mount.Heading)
}

// RenderEnemy implements render.Renderer
func (r *EngoRenderer) RenderEnemy(e engine.EnemyState) {
	if e.Destroyed && e.Fade <= 0 {
		return
	}
	kind := asset.Swarmer
	if e.Kind == enemy.KindFighter {
		kind = asset.Fighter
	}
	s := r.getScaled(spriteKey{layerEnemy, uint64(e.ID)}, kind)
	s.Color = hullColor(e.Flash, e.Fade, e.Destroyed)
	r.place(s, e.Position, e.Heading)

	if e.LaserActive && !e.Destroyed {
		r.laser(uint64(e.ID), e.Position, e.Impact)
	}
}

// RenderProjectile implements render.Renderer
func (r *EngoRenderer) RenderProjectile(p engine.ProjectileState) {
	kind := asset.Bullet
	if p.Category == entity.Plasma {
		kind = asset.Plasma
	}
	s := r.getScaled(spriteKey{layerProjectile, uint64(p.ID)}, kind)
	s.Color = shotColor(p.Side, p.Alpha)
	r.place(s, p.Position, p.Velocity.Angle())
}

// laser stretches a thin rectangle from the emitter to its impact point
func (r *EngoRenderer) laser(id uint64, from, to physics.Vector2D) {
	x0, y0 := r.camera.ToScreen(from)
	x1, y1 := r.camera.ToScreen(to)
	length := float32(math.Hypot(x1-x0, y1-y0))
	s := r.get(spriteKey{layerLaser, id}, common.Rectangle{}, length, laserWidth)
	s.Color = colorLaser
	s.Width = length
	s.Rotation = float32(math.Atan2(y1-y0, x1-x0) * 180 / math.Pi)
	s.Position = anchorAt(engo.Point{X: float32(x0), Y: float32(y0)}, 0, laserWidth/2, s.Rotation)
}

// getScaled returns the sprite for key drawn with kind's texture at camera scale
func (r *EngoRenderer) getScaled(key spriteKey, kind asset.Kind) *sprite {
	w, h := r.assets.Size(kind)
	zoom := float32(1 / r.camera.Scale)
	s := r.get(key, r.assets.GetSprite(kind), w*zoom, h*zoom)
	s.Scale = engo.Point{X: zoom, Y: zoom}
	s.Width, s.Height = w*zoom, h*zoom
	return s
}

// get returns the sprite for key, registering a new one on first use
func (r *EngoRenderer) get(key spriteKey, drawable common.Drawable, w, h float32) *sprite {
	s, ok := r.sprites[key]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: drawable, Color: color.White}
		s.SetZIndex(float32(key.layer))
		s.SpaceComponent = common.SpaceComponent{Width: w, Height: h}
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		r.sprites[key] = s
	}
	s.frame = r.frame
	return s
}

// place centres a sprite on a world position with a world heading
func (r *EngoRenderer) place(s *sprite, pos physics.Vector2D, heading float64) {
	x, y := r.camera.ToScreen(pos)
	s.Rotation = screenRotation(heading)
	s.Position = topLeft(engo.Point{X: float32(x), Y: float32(y)}, s.Width, s.Height, s.Rotation)
}

// screenRotation converts a counter-clockwise world heading in radians to
// Engo's clockwise screen rotation in degrees.
func screenRotation(heading float64) float32 {
	return float32(-heading * 180 / math.Pi)
}

// topLeft returns the position that puts the centre of a w x h rectangle,
// rotated about its top-left corner, on centre.
func topLeft(centre engo.Point, w, h, rotation float32) engo.Point {
	return anchorAt(centre, w/2, h/2, rotation)
}

// anchorAt returns the top-left position that puts the local point
// (lx, ly) of a rectangle rotated by rotation degrees on target.
func anchorAt(target engo.Point, lx, ly, rotation float32) engo.Point {
	sin, cos := math.Sincos(float64(rotation) * math.Pi / 180)
	dx := float64(lx)*cos - float64(ly)*sin
	dy := float64(lx)*sin + float64(ly)*cos
	return engo.Point{X: target.X - float32(dx), Y: target.Y - float32(dy)}
}

// hullColor tints a hull red while it flashes and fades it out once destroyed
func hullColor(flash, fade float64, destroyed bool) color.NRGBA {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if flash > 0 {
		rest := uint8(255 * (1 - math.Min(flash, 1)))
		c.G, c.B = rest, rest
	}
	if destroyed {
		c.A = uint8(255 * math.Max(math.Min(fade, 1), 0))
	}
	return c
}

// shotColor picks a projectile tint by side, faded by alpha
func shotColor(side entity.Allegiance, alpha float64) color.NRGBA {
	c := colorHostileShot
	if side == entity.Friendly {
		c = colorFriendlyShot
	}
	c.A = uint8(255 * math.Max(math.Min(alpha, 1), 0))
	return c
}
