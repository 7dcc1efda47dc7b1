// Package main is the entry point for DungeonKey.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/dungeonkey/internal/game"
	"github.com/samdwyer/dungeonkey/internal/gamedata"
	"github.com/samdwyer/dungeonkey/internal/save"
	"github.com/samdwyer/dungeonkey/internal/telemetry"
	"github.com/samdwyer/dungeonkey/internal/ui"
	"github.com/samdwyer/dungeonkey/internal/world"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Not fatal - env vars might be set directly
	_ = godotenv.Load()

	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(ui.NarrationFormatter{})

	cfg, err := game.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.WithError(err).Error("Invalid configuration.")
		return 2
	}
	log.SetLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		var opts telemetry.Options
		if cfg.HoneycombKey != "" {
			opts = telemetry.HoneycombOptions(cfg.HoneycombKey, cfg.HoneycombDataset)
		}
		shutdown, err := telemetry.Setup(ctx, opts)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed, continuing without traces.")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.WithError(err).Warn("Telemetry shutdown failed.")
				}
			}()
		}
	}

	var store save.Store
	switch cfg.Store {
	case "sqlite":
		db, err := save.OpenSQLite(ctx, cfg.DBPath, cfg.Slot)
		if err != nil {
			log.WithError(err).Error("Could not open the save database.")
			return 1
		}
		defer db.Close()
		store = db
	default:
		file := save.NewFileStore(cfg.SavePath)
		log.WithField("path", file.Path()).Debug("Saving to file.")
		store = file
	}

	rng, seed, err := cfg.NewRand()
	if err != nil {
		log.WithError(err).Error("Could not seed the hazard shuffle.")
		return 1
	}
	log.WithField("seed", seed).Debug("Hazard shuffle seeded.")

	maze, err := world.NewMaze(gamedata.MustLoadMaze())
	if err != nil {
		log.WithError(err).Error("Maze layout is invalid.")
		return 1
	}

	var (
		input game.ActionSource
		pause = func() {}
	)
	switch cfg.UI {
	case "console":
		theme, err := gamedata.LoadTheme()
		if err != nil {
			log.WithError(err).Error("Could not load the console theme.")
			return 1
		}
		console, err := ui.NewConsole(theme)
		if err != nil {
			log.WithError(err).Error("Could not open the console.")
			return 1
		}
		defer console.Close()
		log.SetOutput(io.Discard)
		log.AddHook(console)
		input = console
		pause = func() {
			log.Info("Press Enter to quit.")
			_, _ = console.NextAction(ctx)
		}
	default:
		input = ui.NewLineInput(os.Stdin)
	}

	g := game.New(maze, gamedata.MustLoadHero(), input,
		game.WithStore(store),
		game.WithRand(rng),
		game.WithLogger(log),
		game.WithTracer(telemetry.Tracer("game")),
	)

	if err := g.Prepare(ctx); err != nil {
		switch {
		case errors.Is(err, game.ErrInvalidHeroCount):
			log.WithError(err).Error("Invalid number of heroes.")
		case errors.Is(err, io.EOF):
			return 0
		default:
			log.WithError(err).Error("Could not set up the game.")
		}
		return 1
	}

	result, err := g.Run(ctx)
	if result.State != game.StateExit {
		pause()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		log.WithError(err).Error("Game stopped unexpectedly.")
		return 1
	}
	log.WithFields(logrus.Fields{
		"state":  result.State.String(),
		"winner": result.Winner,
		"rounds": result.Rounds,
		"run_id": g.RunID(),
	}).Debug("Run finished.")
	return 0
}
