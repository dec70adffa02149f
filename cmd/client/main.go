// cmd/client/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-starfighter/pkg/asset"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/render"
	engorender "github.com/opd-ai/go-starfighter/pkg/render/engo"
)

// terminalStars is the starfield density of the terminal client
const terminalStars = 300

func main() {
	logger := logging.NewLogger()
	ctx := context.Background()

	configPath := flag.String("config", "", "Path to configuration file (defaults plus GSF_* environment when empty)")
	writeConfig := flag.Bool("default", false, "Write the default configuration to -config and exit")
	renderer := flag.String("renderer", "terminal", "Renderer type: 'terminal' or 'engo'")
	spriteDir := flag.String("sprites", "", "Directory of <kind>.png files replacing the built-in sprites")
	seed := flag.Uint64("seed", 0, "Random seed (overrides config when non-zero)")
	logPath := flag.String("log", "", "Log file for the terminal renderer (logs are discarded when empty)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (Engo only)")
	width := flag.Int("width", 1280, "Window width (Engo only)")
	height := flag.Int("height", 800, "Window height (Engo only)")
	flag.Parse()

	if *writeConfig {
		if *configPath == "" {
			logger.Error(ctx, "-default needs -config", nil)
			os.Exit(2)
		}
		if err := config.Save(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	registry := asset.NewRegistry()
	if err := loadSprites(registry, *spriteDir); err != nil {
		logger.Error(ctx, "Failed to load sprites", err, "sprites", *spriteDir)
		os.Exit(1)
	}

	game, err := engine.NewGame(cfg, engine.SpritesFrom(registry), engine.NewRand(cfg.Seed))
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}

	switch *renderer {
	case "engo":
		startEngoRenderer(game, registry, *width, *height, *fullscreen)
	case "terminal":
		if err := startTerminalRenderer(game, *logPath); err != nil {
			logger.Error(ctx, "Terminal client failed", err)
			os.Exit(1)
		}
	default:
		logger.Error(ctx, "Unknown renderer", nil, "renderer", *renderer)
		os.Exit(2)
	}
}

// loadSprites replaces registry sprites with <kind>.png files found in dir
func loadSprites(registry *asset.Registry, dir string) error {
	if dir == "" {
		return nil
	}
	for _, kind := range asset.Kinds {
		path := filepath.Join(dir, string(kind)+".png")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := registry.LoadFile(kind, path); err != nil {
			return err
		}
	}
	return nil
}

// startEngoRenderer starts the Engo GUI client
func startEngoRenderer(game *engine.Game, registry *asset.Registry, width, height int, fullscreen bool) {
	scene := engorender.NewGameScene(game, registry, width, height)

	opts := engo.RunOptions{
		Title:      "Galactic Star Fighter",
		Width:      width,
		Height:     height,
		Fullscreen: fullscreen,
		VSync:      true,
	}
	engo.Run(opts, scene)
}

// startTerminalRenderer runs the game in the terminal until the player quits
func startTerminalRenderer(game *engine.Game, logPath string) error {
	var w io.Writer = io.Discard
	level := logging.LevelFromEnv()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return logging.WrapError(err, "failed to open log file")
		}
		defer f.Close()
		w = f
	} else {
		level = slog.LevelError + 1
	}
	game.Logger = logging.NewLoggerWithWriter(w, level)

	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialise screen")
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	world := game.Config.World
	r := render.NewTerminalRenderer(screen, world)
	stars := render.NewStarfield(terminalStars, engorender.StarVelocity, r.Camera(), world, engine.NewRand(game.Config.Seed))
	r.SetStarfield(stars)
	input := render.NewTerminalInput(r.Camera())

	ctx, stop := signal.NotifyContext(game.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()
	clock := engine.NewClock()
	game.Logger.Info(ctx, "terminal session started")

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			input.Handle(ev, time.Now())
			if input.Quit() {
				game.Logger.Info(ctx, "terminal session ended", "elapsed_ms", game.GetGameState().ElapsedMs)
				return nil
			}
			if input.Resized() {
				screen.Sync()
				r.Resize()
			}

		case <-ticker.C:
			delta := clock.Tick()
			game.Update(input.Input(time.Now()), delta)
			stars.Update(delta)
			state := game.GetGameState()
			r.Camera().Follow(state.Player.Position, world)
			render.Draw(r, state)
		}
	}
}
