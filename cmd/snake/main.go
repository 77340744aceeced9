package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/input"
	"github.com/wsh32/AISnake/pkg/logger"
	"github.com/wsh32/AISnake/pkg/renderer"
	"github.com/wsh32/AISnake/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	mode := flag.String("mode", string(cfg.Mode), "single, two or cpu")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "board width in cells (0 = mode default)")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "board height in cells (0 = mode default)")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "updates per second (0 = mode default)")
	flag.StringVar(&cfg.RecordDir, "record", cfg.RecordDir, "directory for .jsonl recordings (empty = off)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite match history (empty = off)")
	ascii := flag.Bool("ascii", false, "use the ASCII palette")
	flag.Parse()

	m, ok := game.ParseMode(*mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
	cfg.Mode = m
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *ascii {
		cfg.Palette = config.ASCIIPalette()
	}

	// stdout belongs to the board
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if err := run(cfg); err != nil {
		logger.Fatal("snake exited", "err", err)
	}
}

func run(cfg *config.Config) error {
	var st *store.Store
	if cfg.DBPath != "" {
		var err error
		if st, err = store.Open(cfg.DBPath); err != nil {
			return err
		}
		defer st.Close()
	}

	humans := cfg.Mode.Players()
	if cfg.Mode == game.ModeCPU {
		humans = 1
	}
	manual := make([]*game.ManualController, humans)
	controllers := make([]game.Controller, humans)
	for i := range manual {
		manual[i] = &game.ManualController{}
		controllers[i] = manual[i]
	}

	match, err := game.NewMatch(cfg.Mode, cfg.Width, cfg.Height, controllers)
	if err != nil {
		return err
	}

	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer inputHandler.Stop()

	render := renderer.NewTerminalRenderer(os.Stdout, cfg.Width, cfg.Height, cfg.Palette)
	render.HideCursor()
	defer render.ShowCursor()

	rec := openRecorder(cfg, match.ID)
	defer func() { closeRecorder(rec) }()

	inputChan := inputHandler.GetInputChan()
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	paused := false
	render.Render(match.State(), renderer.Frame{})

	for {
		select {
		case inputEvent := <-inputChan:
			if input.IsQuit(inputEvent) {
				fmt.Println("\n  Thanks for playing!")
				return nil
			}

			if input.IsRestart(inputEvent) && match.Over() {
				closeRecorder(rec)
				if err := match.Restart(); err != nil {
					return err
				}
				for _, mc := range manual {
					mc.Reset()
				}
				paused = false
				rec = openRecorder(cfg, match.ID)
				render.Render(match.State(), renderer.Frame{})
			}

			if input.IsPause(inputEvent) && !match.Over() {
				paused = !paused
				render.Render(match.State(), renderer.Frame{Paused: paused})
			}

			if player, dir, ok := input.ParseDirection(inputEvent); ok {
				// with one human both key sets steer player 1
				if len(manual) == 1 {
					player = 1
				}
				if player <= len(manual) {
					manual[player-1].SetDirection(dir)
				}
			}

		case <-ticker.C:
			if paused || match.Over() {
				continue
			}
			state := match.Tick()
			if rec != nil {
				rec.RecordStep(game.StepRecord{
					Session: match.ID,
					Tick:    state.Tick,
					Time:    time.Now(),
					Inputs:  match.Inputs(),
					State:   state,
				})
			}
			if state.GameOver {
				closeRecorder(rec)
				rec = nil
				saveResult(st, match.ID, state)
			}
			if err := render.Render(state, renderer.Frame{}); err != nil {
				return err
			}
		}
	}
}

func openRecorder(cfg *config.Config, id string) *game.GameRecorder {
	if cfg.RecordDir == "" {
		return nil
	}
	rec, err := game.NewRecorder(cfg.RecordDir, id)
	if err != nil {
		logger.Warn("recording disabled", "err", err)
		return nil
	}
	return rec
}

func closeRecorder(rec *game.GameRecorder) {
	if rec == nil {
		return
	}
	if err := rec.Close(); err != nil {
		logger.Error("recorder close failed", "path", rec.Path(), "err", err)
	}
}

func saveResult(st *store.Store, id string, state game.GameState) {
	logger.Info("match over", "session", id, "mode", state.Mode, "winner", state.Winner, "ticks", state.Tick)
	if st == nil {
		return
	}
	res := store.ResultFromState(id, state)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.Save(ctx, &res); err != nil {
		logger.Error("saving match failed", "err", err)
	}
}
