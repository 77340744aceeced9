package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
	"github.com/wsh32/AISnake/pkg/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg *config.Config, withStore bool) (*Server, *httptest.Server) {
	t.Helper()
	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(filepath.Join(t.TempDir(), "snake.db"))
		if err != nil {
			t.Fatalf("store.Open: %v", err)
		}
		t.Cleanup(func() { st.Close() })
	}
	srv := New(cfg, st, game.WithRand(rand.New(rand.NewSource(5))))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, &config.Config{Mode: game.ModeSingle, FPS: 50}, false)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestScoresWithoutStore(t *testing.T) {
	_, ts := newTestServer(t, &config.Config{Mode: game.ModeSingle}, false)
	resp, err := http.Get(ts.URL + "/api/scores")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want 503", resp.StatusCode)
	}
}

func TestScoresRejectsBadQuery(t *testing.T) {
	_, ts := newTestServer(t, &config.Config{Mode: game.ModeSingle}, true)
	for _, q := range []string{"?mode=solo", "?limit=0", "?limit=x"} {
		resp, err := http.Get(ts.URL + "/api/scores" + q)
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status=%d want 400", q, resp.StatusCode)
		}
	}
}

func TestSingleSessionSteers(t *testing.T) {
	cfg := &config.Config{Mode: game.ModeSingle, Width: 10, Height: 10, FPS: 50}
	_, ts := newTestServer(t, cfg, false)
	conn := dial(t, ts, "")

	msg := readMessage(t, conn)
	if msg.Type != "config" || msg.Config == nil {
		t.Fatalf("first message %+v", msg)
	}
	if msg.Config.Width != 10 || msg.Config.Players != 1 || msg.Config.TickMs != 20 {
		t.Fatalf("config %+v", *msg.Config)
	}
	msg = readMessage(t, conn)
	if msg.Type != "state" || msg.State.Tick != 0 {
		t.Fatalf("initial state %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Action: "up", Player: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	// the press lands on whichever tick follows it; from then on the snake heads up
	for i := 0; i < 50; i++ {
		msg = readMessage(t, conn)
		if msg.State.Players[0].Heading == game.Up {
			return
		}
	}
	t.Fatal("direction never applied")
}

func TestCPUMatchIsSaved(t *testing.T) {
	cfg := &config.Config{Mode: game.ModeSingle, FPS: 100, RecordDir: t.TempDir()}
	_, ts := newTestServer(t, cfg, true)
	// player 1 never steers and hits the left wall after a few ticks
	conn := dial(t, ts, "?mode=cpu")

	msg := readMessage(t, conn)
	if msg.Config == nil || msg.Config.Mode != game.ModeCPU || msg.Config.Width != config.TwoPlayerWidth {
		t.Fatalf("config %+v", msg.Config)
	}

	var last *game.GameState
	for i := 0; i < 100; i++ {
		msg = readMessage(t, conn)
		if msg.State != nil && msg.State.GameOver {
			last = msg.State
			break
		}
	}
	if last == nil {
		t.Fatal("match never finished")
	}
	if last.Winner != game.WinnerPlayer2 || last.Players[0].Cause != game.CauseWallCollision {
		t.Fatalf("final state winner=%s cause=%s", last.Winner, last.Players[0].Cause)
	}

	resp, err := http.Get(ts.URL + "/api/scores?mode=cpu&limit=5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var body struct {
		Scores []store.MatchResult `json:"scores"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Scores) != 1 || body.Scores[0].Ticks != last.Tick || body.Scores[0].Winner != game.WinnerPlayer2 {
		t.Fatalf("scores %+v", body.Scores)
	}

	files, _ := filepath.Glob(filepath.Join(cfg.RecordDir, "game_*.jsonl"))
	if len(files) != 1 {
		t.Fatalf("recordings %v", files)
	}
	recs, err := game.ReadRecords(files[0])
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(recs) != last.Tick {
		t.Fatalf("recorded %d ticks want %d", len(recs), last.Tick)
	}

	// restart is accepted once the match is over
	if err := conn.WriteJSON(ClientMessage{Action: "restart"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for i := 0; i < 10; i++ {
		msg = readMessage(t, conn)
		if msg.Type == "config" {
			return
		}
	}
	t.Fatal("no config after restart")
}
