// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/logging"
)

// Renderer draws one frame of a simulation snapshot
type Renderer interface {
	Clear()
	Present()
	RenderCraft(craft engine.CraftState)
	RenderMount(mount engine.MountState)
	RenderEnemy(e engine.EnemyState)
	RenderProjectile(p engine.ProjectileState)
}

// StatusRenderer is implemented by renderers that can draw a status line
type StatusRenderer interface {
	RenderStatus(state *engine.GameState)
}

// Draw renders a complete snapshot in back-to-front order.
// Mounts are drawn before the hull they sit on.
func Draw(r Renderer, state *engine.GameState) {
	if state == nil {
		return
	}
	r.Clear()
	for _, p := range state.Projectiles {
		r.RenderProjectile(p)
	}
	for _, s := range state.Swarmers {
		r.RenderEnemy(s)
	}
	for _, f := range state.Fighters {
		r.RenderEnemy(f)
	}
	for _, m := range state.Mounts {
		r.RenderMount(m)
	}
	r.RenderCraft(state.Player)
	if sr, ok := r.(StatusRenderer); ok {
		sr.RenderStatus(state)
	}
	r.Present()
}

// NullRenderer logs draw calls at debug level and draws nothing.
// Headless runs use it in place of a display.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(ctx context.Context, logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &NullRenderer{logger: logger, ctx: ctx}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(d.ctx, "Clear called")
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(d.ctx, "Present called")
}

// RenderCraft implements Renderer.
func (d *NullRenderer) RenderCraft(craft engine.CraftState) {
	d.logger.Debug(d.ctx, "RenderCraft called",
		"craft_id", craft.ID,
		"armor", craft.Armor,
		"shield", craft.Shield,
		"destroyed", craft.Destroyed,
	)
}

// RenderMount implements Renderer.
func (d *NullRenderer) RenderMount(mount engine.MountState) {
	d.logger.Debug(d.ctx, "RenderMount called", "ready", mount.Ready)
}

// RenderEnemy implements Renderer.
func (d *NullRenderer) RenderEnemy(e engine.EnemyState) {
	d.logger.Debug(d.ctx, "RenderEnemy called",
		"enemy_id", e.ID,
		"kind", e.Kind,
		"destroyed", e.Destroyed,
	)
}

// RenderProjectile implements Renderer.
func (d *NullRenderer) RenderProjectile(p engine.ProjectileState) {
	d.logger.Debug(d.ctx, "RenderProjectile called",
		"projectile_id", p.ID,
		"category", p.Category,
	)
}
