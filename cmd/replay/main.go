package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/logger"
	"github.com/wsh32/AISnake/pkg/renderer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	dir := cfg.RecordDir
	if dir == "" {
		dir = config.DefaultRecordDir
	}

	flag.StringVar(&dir, "dir", dir, "recording directory")
	fps := flag.Int("fps", 10, "playback speed")
	ascii := flag.Bool("ascii", false, "use the ASCII palette")
	flag.Parse()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if *ascii {
		cfg.Palette = config.ASCIIPalette()
	}

	// No argument: list what is available
	if flag.NArg() == 0 {
		records, err := listRecords(dir)
		if err != nil {
			logger.Fatal("listing recordings", "dir", dir, "err", err)
		}
		if len(records) == 0 {
			fmt.Printf("No recordings found in %s\n", dir)
			return
		}
		for _, r := range records {
			fmt.Printf("%s  session=%s  %d bytes  %s\n",
				r.Name, r.SessionID, r.Size, r.Time.Format("2006-01-02 15:04:05"))
		}
		return
	}

	path := flag.Arg(0)
	if filepath.Dir(path) == "." {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(dir, path)
		}
	}
	if *fps < 1 || *fps > config.MaxFPS {
		logger.Fatal("fps out of range", "fps", *fps)
	}
	if err := play(path, *fps, cfg.Palette); err != nil {
		logger.Fatal("replay failed", "file", path, "err", err)
	}
}

func play(path string, fps int, palette config.Palette) error {
	recs, err := game.ReadRecords(path)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("%s has no steps", path)
	}

	first := recs[0].State
	render := renderer.NewTerminalRenderer(os.Stdout, first.Width, first.Height, palette)
	render.HideCursor()
	defer render.ShowCursor()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for i, rec := range recs {
		title := fmt.Sprintf("REPLAY %s  %d/%d", rec.State.Mode, i+1, len(recs))
		if err := render.Render(rec.State, renderer.Frame{Title: title}); err != nil {
			return err
		}
		<-ticker.C
	}
	return nil
}
