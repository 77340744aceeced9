package game

import (
	"errors"
	"math/rand"
	"time"
)

// ErrGridTooSmall is returned when the starting snakes do not fit on the board.
var ErrGridTooSmall = errors.New("grid too small")

// Mode selects who controls the snakes in a match
type Mode string

const (
	ModeSingle Mode = "single" // one player
	ModeTwo    Mode = "two"    // two local or remote players
	ModeCPU    Mode = "cpu"    // player 2 is the heuristic controller
)

// ParseMode maps a flag or query value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSingle, ModeTwo, ModeCPU:
		return Mode(s), true
	}
	return "", false
}

// Players returns how many snakes the mode puts on the board.
func (m Mode) Players() int {
	if m == ModeSingle {
		return 1
	}
	return 2
}

// Winner describes how a finished game ended
type Winner string

const (
	WinnerNone    Winner = "none" // still running, or a single-player game
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerDraw    Winner = "draw" // both snakes died on the same tick
)

// DeathCause records why a snake died
type DeathCause string

const (
	CauseNone           DeathCause = ""
	CauseSelfCollision  DeathCause = "self-collision"
	CauseWallCollision  DeathCause = "wall-collision"
	CauseSnakeCollision DeathCause = "snake-collision"
	CauseHeadToHead     DeathCause = "head-collision"
)

// PlayerState is the read-only view of one snake
type PlayerState struct {
	Snake   []Point    `json:"snake"`
	Heading Direction  `json:"heading"`
	Alive   bool       `json:"alive"`
	Score   int        `json:"score"`
	Cause   DeathCause `json:"cause,omitempty"`
	Growing bool       `json:"growing"` // ate on this tick, grows on the next
}

// Head returns the first cell of the snake.
func (p PlayerState) Head() Point {
	if len(p.Snake) == 0 {
		return Point{}
	}
	return p.Snake[0]
}

// GameState is a snapshot of the current game for drivers and clients
type GameState struct {
	Mode     Mode          `json:"mode"`
	Tick     int           `json:"tick"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Players  []PlayerState `json:"players"`
	Food     Point         `json:"food"`
	GameOver bool          `json:"gameOver"`
	Winner   Winner        `json:"winner"`
}

// Occupied reports whether any snake in the snapshot covers p.
func (s GameState) Occupied(p Point) bool {
	for _, pl := range s.Players {
		for _, c := range pl.Snake {
			if c == p {
				return true
			}
		}
	}
	return false
}

// GameConfig is a DTO for game settings sent to client on connect
type GameConfig struct {
	Mode    Mode `json:"mode"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	TickMs  int  `json:"tickMs"`
	Players int  `json:"players"`
}

// Option configures a game at construction time.
type Option func(*options)

type options struct {
	rng Rand
}

// WithRand replaces the time-seeded random source used for food placement.
func WithRand(rng Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}
