// pkg/render/engo/scene.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/enemy"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/render"
)

// Starfield defaults
const (
	StarCount    = 1000
	StarVelocity = 0.2
)

// ticker reports milliseconds elapsed since its previous call
type ticker interface {
	Tick() int
}

// GameScene runs the simulation inside Engo and draws it every frame
type GameScene struct {
	game     *engine.Game
	registry *asset.Registry
	clock    ticker
	camera   *render.Camera
	stars    *render.Starfield

	// Rendering components
	renderer  *EngoRenderer
	cameraSys *CameraSystem
	input     *InputSystem
	hud       *HUDSystem

	subs       []*event.Subscription
	fullscreen bool
}

// NewGameScene creates a scene for game, drawn in a width x height window
// at one world unit per pixel.
func NewGameScene(game *engine.Game, registry *asset.Registry, width, height int) *GameScene {
	camera := render.NewCamera(float64(width), float64(height), 1)
	return &GameScene{
		game:     game,
		registry: registry,
		camera:   camera,
		stars:    render.NewStarfield(StarCount, StarVelocity, camera, game.Config.World, engine.NewRand(game.Config.Seed)),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload registers the HUD font (required by Engo)
func (scene *GameScene) Preload() {
	if err := LoadHUDFont(); err != nil {
		scene.game.Logger.Error(scene.game.Context(), "failed to load HUD font", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	assets := NewAssetManager(scene.registry)
	if err := assets.LoadAssets(); err != nil {
		scene.game.Logger.Error(scene.game.Context(), "failed to load textures", err)
		panic("Failed to initialize renderer: " + err.Error())
	}
	scene.renderer = NewEngoRenderer(renderSystem, assets, scene.camera)
	scene.renderer.SetStarfield(scene.stars)

	SetupInputBindings()
	SetupCameraControls()
	scene.cameraSys = NewCameraSystem(scene.camera, scene.game.Config.World)
	scene.input = NewInputSystem(scene.cameraSys.ScreenToWorld)

	hud, err := NewHUDSystem(renderSystem, scene.game.Config.World)
	if err != nil {
		scene.game.Logger.Error(scene.game.Context(), "HUD disabled", err)
		hud, _ = NewHUDSystem(nil, scene.game.Config.World)
	}
	scene.hud = hud
	scene.subs = scene.hud.Subscribe(scene.game.EventBus)

	world.AddSystem(&frameSystem{scene: scene})
	world.AddSystem(scene.hud)

	scene.clock = engine.NewClock()
	scene.game.Logger.Info(scene.game.Context(), "scene started",
		"width", scene.camera.Width,
		"height", scene.camera.Height,
	)
}

// step advances the simulation one frame and redraws it
func (scene *GameScene) step(dt float32) {
	scene.input.Update(dt)
	if scene.input.QuitRequested() {
		engo.Exit()
		return
	}
	if scene.input.FullscreenToggled() {
		scene.fullscreen = !scene.fullscreen
		engo.SetFullscreen(scene.fullscreen)
	}

	delta := scene.clock.Tick()
	scene.game.Update(scene.input.Input(), delta)
	scene.stars.Update(delta)

	state := scene.game.GetGameState()
	scene.cameraSys.SetTarget(state.Player.Position)
	scene.cameraSys.Update(dt)
	scene.hud.UpdateGameState(state)
	render.Draw(scene.renderer, state)
}

// Camera returns the scene's camera
func (scene *GameScene) Camera() *render.Camera {
	return scene.camera
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	for _, sub := range scene.subs {
		sub.Cancel()
	}
	state := scene.game.GetGameState()
	scene.game.Logger.Info(scene.game.Context(), "session ended",
		"elapsed_ms", state.ElapsedMs,
		"swarmer_kills", state.Kills[enemy.KindSwarmer],
		"fighter_kills", state.Kills[enemy.KindFighter],
	)
}

// frameSystem drives GameScene.step from the ECS world
type frameSystem struct {
	scene *GameScene
}

// Update satisfies the ecs.System interface
func (f *frameSystem) Update(dt float32) {
	f.scene.step(dt)
}

// Remove satisfies the ecs.System interface
func (f *frameSystem) Remove(basic ecs.BasicEntity) {}
