// pkg/render/engo/scene_test.go
package engo

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// fixedTicker reports the same frame length every call
type fixedTicker int

func (f fixedTicker) Tick() int { return int(f) }

func newTestScene(t *testing.T) (*GameScene, *fakeSystem, *fakeButtons) {
	t.Helper()
	registry := asset.NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	game, err := engine.NewGame(cfg, engine.SpritesFrom(registry), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	game.Logger = logging.NewNopLogger()

	scene := NewGameScene(game, registry, 1280, 800)
	sys := newFakeSystem()
	assets := NewAssetManager(registry)
	assets.toTexture = newTestAssets(t).toTexture
	require.NoError(t, assets.LoadAssets())

	scene.renderer = NewEngoRenderer(sys, assets, scene.camera)
	scene.renderer.SetStarfield(scene.stars)
	scene.cameraSys, _, _ = newTestCameraSystem()
	scene.cameraSys.camera = scene.camera
	scene.input, _, _ = newTestInput()
	b := &fakeButtons{down: map[string]bool{}, pressed: map[string]bool{}}
	scene.input.buttons = b
	scene.hud, err = NewHUDSystem(nil, cfg.World)
	require.NoError(t, err)
	scene.subs = scene.hud.Subscribe(game.EventBus)
	scene.clock = fixedTicker(16)
	return scene, sys, b
}

func TestGameScene_Type(t *testing.T) {
	scene, _, _ := newTestScene(t)
	assert.Equal(t, "GameScene", scene.Type())
	assert.Len(t, scene.stars.Stars(), StarCount)
	assert.Equal(t, 1280.0, scene.Camera().Width)
}

func TestGameScene_Step(t *testing.T) {
	scene, sys, b := newTestScene(t)
	mounts := len(scene.game.GetGameState().Mounts)

	scene.step(0.016)
	assert.Equal(t, uint64(1), scene.game.GetGameState().Tick)
	assert.GreaterOrEqual(t, len(sys.entities), StarCount+1+mounts, "stars, craft and mounts")

	b.pressed[ButtonSwarm] = true
	scene.step(0.016)
	state := scene.game.GetGameState()
	assert.Len(t, state.Swarmers, scene.game.Config.Waves.SwarmSize)
	require.NotEmpty(t, scene.hud.Messages())
	assert.Contains(t, scene.hud.Messages()[0].Text, "swarmers inbound")

	b.pressed = map[string]bool{}
	b.down[ButtonUp] = true
	for i := 0; i < 30; i++ {
		scene.step(0.016)
	}
	assert.Greater(t, scene.game.GetGameState().Player.Position.Y, 0.0)
	assert.NotEqual(t, physics.Vector2D{}, scene.camera.Position, "camera follows the craft")

	assert.NotPanics(t, scene.Exit)
}
