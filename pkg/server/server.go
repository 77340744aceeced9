package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/logger"
	"github.com/wsh32/AISnake/pkg/store"
)

const maxScoreRows = 100

// Server serves websocket matches and the match history API.
type Server struct {
	cfg      *config.Config
	store    *store.Store // nil when history is disabled
	upgrader websocket.Upgrader
	opts     []game.Option

	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a server. st may be nil; opts are passed to every match.
func New(cfg *config.Config, st *store.Store, opts ...game.Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		store:  st,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		opts: opts,
	}
}

// Close ends every running session. Hijacked websocket connections are not
// tracked by http.Server.Shutdown, so call this alongside it.
func (s *Server) Close() {
	s.cancel()
}

// Router registers every route on a new gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/scores", s.scores)
	r.GET("/ws", s.ws)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) scores(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "match history disabled"})
		return
	}

	var mode game.Mode
	if v := c.Query("mode"); v != "" {
		m, ok := game.ParseMode(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode"})
			return
		}
		mode = m
	}
	limit := config.DefaultScoreRows
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxScoreRows)
	}

	rows, err := s.store.Top(c.Request.Context(), mode, limit)
	if err != nil {
		logger.Error("scores query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if rows == nil {
		rows = []store.MatchResult{}
	}
	c.JSON(http.StatusOK, gin.H{"scores": rows})
}

// boardFor returns the configured board for the server's own mode and the
// mode defaults for any other mode requested by a client.
func (s *Server) boardFor(mode game.Mode) config.Config {
	b := *s.cfg
	if mode != s.cfg.Mode {
		b.Mode = mode
		b.Width, b.Height, b.FPS = 0, 0, 0
	}
	b.FillDefaults()
	return b
}

func (s *Server) ws(c *gin.Context) {
	mode := s.cfg.Mode
	if v := c.Query("mode"); v != "" {
		m, ok := game.ParseMode(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode"})
			return
		}
		mode = m
	}
	board := s.boardFor(mode)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade error", "err", err)
		return
	}

	sess, err := newSession(conn, &board, s.store, s.opts)
	if err != nil {
		logger.Error("session setup failed", "err", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "setup failed"))
		conn.Close()
		return
	}
	sess.run(s.ctx)
}
