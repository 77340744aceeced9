package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/logger"
	"github.com/wsh32/AISnake/pkg/metrics"
	"github.com/wsh32/AISnake/pkg/store"
)

// ServerMessage is sent to the client: one "config" on connect and after a
// restart, then one "state" per tick.
type ServerMessage struct {
	Type   string           `json:"type"`
	Config *game.GameConfig `json:"config,omitempty"`
	State  *game.GameState  `json:"state,omitempty"`
}

// ClientMessage is a key press or command from the browser.
type ClientMessage struct {
	Action string `json:"action"`
	Player int    `json:"player,omitempty"`
}

// session runs one match per websocket connection. Only the run goroutine
// touches the match and writes to the connection.
type session struct {
	conn     *websocket.Conn
	board    *config.Config
	store    *store.Store
	log      *slog.Logger // rebound per match
	connLog  *slog.Logger // used by readPump
	match    *game.Match
	manual   []*game.ManualController
	recorder *game.GameRecorder
	paused   bool
	actions  chan ClientMessage
	done     chan struct{} // closed by readPump
	quit     chan struct{} // closed by run
}

func newSession(conn *websocket.Conn, board *config.Config, st *store.Store, opts []game.Option) (*session, error) {
	s := &session{
		conn:    conn,
		board:   board,
		store:   st,
		actions: make(chan ClientMessage, 16),
		done:    make(chan struct{}),
		quit:    make(chan struct{}),
	}

	humans := board.Mode.Players()
	if board.Mode == game.ModeCPU {
		humans = 1
	}
	controllers := make([]game.Controller, 0, humans)
	for i := 0; i < humans; i++ {
		mc := &game.ManualController{}
		s.manual = append(s.manual, mc)
		controllers = append(controllers, mc)
	}

	m, err := game.NewMatch(board.Mode, board.Width, board.Height, controllers, opts...)
	if err != nil {
		return nil, err
	}
	s.match = m
	s.connLog = logger.With("remote", conn.RemoteAddr().String(), "mode", board.Mode)
	s.startMatch()
	return s, nil
}

// startMatch rebinds the logger and recorder to the current match ID.
func (s *session) startMatch() {
	s.log = logger.With("session", s.match.ID, "mode", s.board.Mode)
	if s.board.RecordDir == "" {
		return
	}
	rec, err := game.NewRecorder(s.board.RecordDir, s.match.ID)
	if err != nil {
		s.log.Warn("recording disabled", "err", err)
		return
	}
	s.recorder = rec
}

func (s *session) closeRecorder() {
	if s.recorder == nil {
		return
	}
	if n := s.recorder.Dropped(); n > 0 {
		s.log.Warn("recorder dropped frames", "count", n)
	}
	if err := s.recorder.Close(); err != nil {
		s.log.Error("recorder close failed", "err", err)
	}
	s.recorder = nil
}

func (s *session) run(ctx context.Context) {
	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()
	defer s.conn.Close()
	defer close(s.quit)
	defer s.closeRecorder()

	s.log.Info("session opened", "remote", s.conn.RemoteAddr().String())
	go s.readPump()

	if err := s.sendConfig(); err != nil {
		return
	}
	if err := s.sendState(s.match.State()); err != nil {
		return
	}

	ticker := time.NewTicker(s.board.TickInterval())
	defer ticker.Stop()
	ping := time.NewTicker(config.WSPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(config.WSWriteTimeout))
			return
		case <-s.done:
			s.log.Info("session closed")
			return
		case msg := <-s.actions:
			if err := s.handleAction(msg); err != nil {
				return
			}
		case <-ping.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(config.WSWriteTimeout)); err != nil {
				return
			}
		case <-ticker.C:
			if s.paused || s.match.Over() {
				continue
			}
			if err := s.sendState(s.step()); err != nil {
				return
			}
		}
	}
}

// step advances the match and handles the bookkeeping of a finished one.
func (s *session) step() game.GameState {
	state := s.match.Tick()
	metrics.ObserveTick(state)
	if s.recorder != nil {
		s.recorder.RecordStep(game.StepRecord{
			Session: s.match.ID,
			Tick:    state.Tick,
			Time:    time.Now(),
			Inputs:  s.match.Inputs(),
			State:   state,
		})
	}
	if state.GameOver {
		s.finish(state)
	}
	return state
}

func (s *session) finish(state game.GameState) {
	scores := make([]int, len(state.Players))
	for i, p := range state.Players {
		scores[i] = p.Score
	}
	s.log.Info("match over", "winner", state.Winner, "scores", scores, "ticks", state.Tick)
	s.closeRecorder()

	if s.store == nil {
		return
	}
	res := store.ResultFromState(s.match.ID, state)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, &res); err != nil {
		s.log.Error("saving match failed", "err", err)
	}
}

func (s *session) handleAction(msg ClientMessage) error {
	if d, ok := game.ParseDirection(msg.Action); ok {
		idx := msg.Player - 1
		if idx < 0 || len(s.manual) == 1 {
			idx = 0
		}
		if idx < len(s.manual) {
			s.manual[idx].SetDirection(d)
		}
		return nil
	}

	switch msg.Action {
	case "pause":
		if !s.match.Over() {
			s.paused = !s.paused
		}
	case "restart":
		if !s.match.Over() {
			return nil
		}
		s.closeRecorder()
		if err := s.match.Restart(); err != nil {
			s.log.Error("restart failed", "err", err)
			return err
		}
		for _, mc := range s.manual {
			mc.Reset()
		}
		s.paused = false
		s.startMatch()
		if err := s.sendConfig(); err != nil {
			return err
		}
		return s.sendState(s.match.State())
	default:
		s.log.Debug("unknown action", "action", msg.Action)
	}
	return nil
}

func (s *session) readPump() {
	defer close(s.done)

	s.conn.SetReadLimit(config.WSReadLimit)
	s.conn.SetReadDeadline(time.Now().Add(config.WSPongTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(config.WSPongTimeout))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.connLog.Warn("read error", "err", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.connLog.Debug("bad client message", "err", err)
			continue
		}
		select {
		case s.actions <- msg:
		case <-s.quit:
			return
		}
	}
}

func (s *session) sendConfig() error {
	cfg := s.match.Config(s.board.TickMs())
	return s.write(ServerMessage{Type: "config", Config: &cfg})
}

func (s *session) sendState(state game.GameState) error {
	return s.write(ServerMessage{Type: "state", State: &state})
}

func (s *session) write(msg ServerMessage) error {
	s.conn.SetWriteDeadline(time.Now().Add(config.WSWriteTimeout))
	err := s.conn.WriteJSON(msg)
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		s.log.Warn("write error", "err", err)
	}
	return err
}
