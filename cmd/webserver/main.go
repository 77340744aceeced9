package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/logger"
	"github.com/wsh32/AISnake/pkg/server"
	"github.com/wsh32/AISnake/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", "err", err)
	}

	mode := flag.String("mode", string(cfg.Mode), "default mode for /ws without ?mode=")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "board width for the default mode (0 = mode default)")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "board height for the default mode (0 = mode default)")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "updates per second for the default mode (0 = mode default)")
	flag.StringVar(&cfg.RecordDir, "record", cfg.RecordDir, "directory for .jsonl recordings (empty = off)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite match history (empty = off)")
	flag.Parse()

	logger.Init(cfg.LogLevel, cfg.LogJSON)

	m, ok := game.ParseMode(*mode)
	if !ok {
		logger.Fatal("unknown mode", "mode", *mode)
	}
	cfg.Mode = m
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config", "err", err)
	}

	var st *store.Store
	if cfg.DBPath != "" {
		if st, err = store.Open(cfg.DBPath); err != nil {
			logger.Fatal("store", "err", err)
		}
		defer st.Close()
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	gs := server.New(cfg, st)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: gs.Router(),
	}

	go func() {
		logger.Info("snake web server started", "addr", cfg.Addr, "mode", cfg.Mode,
			"width", cfg.Width, "height", cfg.Height, "fps", cfg.FPS)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	gs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}

	logger.Info("server exited")
}
