// Command cliffside opens a window and scrolls around a tile world.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/cliffside"
	"github.com/phanxgames/cliffside/internal/config"
	"github.com/phanxgames/cliffside/internal/logger"
	"github.com/phanxgames/cliffside/internal/session"
	"go.uber.org/zap"
)

const sessionDialTimeout = 5 * time.Second

type game struct {
	world   *cliffside.World
	session *session.Client
	width   int
	height  int
}

func (g *game) Update() error {
	g.world.Update(cliffside.PollInput(), 1/float64(ebiten.TPS()))
	if g.session != nil {
		for {
			ev, ok := g.session.Poll()
			if !ok {
				break
			}
			g.session.LogEvent(ev)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) { g.world.Draw(screen) }

func (g *game) Layout(_, _ int) (int, int) { return g.width, g.height }

func main() {
	overrides := config.BindGameFlags(flag.CommandLine)
	flag.Parse()
	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cliffside: %v\n", err)
		os.Exit(1)
	}
	if overrides.WriteConfig != "" {
		if err := writeConfig(cfg, overrides.WriteConfig); err != nil {
			fmt.Fprintf(os.Stderr, "cliffside: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err := run(cfg, log); err != nil {
		log.Error("cliffside stopped", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
	logger.Sync(log)
}

// writeConfig saves the effective config. "user" targets the config
// directory that Load searches.
func writeConfig(cfg *config.Config, path string) error {
	if path == "user" {
		return cfg.Save()
	}
	return cfg.SaveTo(path)
}

func run(cfg *config.Config, log *zap.Logger) error {
	grid, err := cliffside.LoadGrid(cfg.World.Path)
	if err != nil {
		return err
	}
	sheets, err := cliffside.LoadSheets(cfg.AtlasPaths())
	if err != nil {
		return err
	}

	seed := cfg.Actors.Seed
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	actors := cliffside.PlaceActors(grid, cfg.World.TileSize, cfg.ActorConfig(), rng)
	log.Info("world loaded",
		zap.String("path", cfg.World.Path),
		zap.Int("rows", grid.Rows()),
		zap.Int("cols", grid.Cols()),
		zap.Int("actors", len(actors)),
		zap.Int("actorsRequested", cfg.Actors.Count))

	g := &game{
		world:  cliffside.NewWorld(grid, actors, sheets, cfg.WorldOptions(log)),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	if cfg.Session.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), sessionDialTimeout)
		client, err := session.Dial(ctx, cfg.Session.URL, log.Named("session"))
		cancel()
		if err != nil {
			log.Warn("session unavailable, continuing offline", zap.Error(err))
		} else {
			g.session = client
			defer client.Close()
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	if cfg.Window.TPS > 0 {
		ebiten.SetTPS(cfg.Window.TPS)
	}
	return ebiten.RunGame(g)
}
