package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Match binds a game to the controllers that steer it. Drivers call Tick once
// per frame and never touch the game from another goroutine.
type Match struct {
	ID          string
	Mode        Mode
	width       int
	height      int
	controllers []Controller
	opts        []Option

	single *SinglePlayerGame
	two    *TwoPlayerGame
	inputs []Direction
}

// NewMatch starts a game for mode. controllers are indexed by player; in
// ModeCPU a missing player 2 controller defaults to the heuristic one.
func NewMatch(mode Mode, width, height int, controllers []Controller, opts ...Option) (*Match, error) {
	if mode == ModeCPU && len(controllers) < 2 {
		controllers = append(controllers, &HeuristicController{})
	}
	if len(controllers) < mode.Players() {
		return nil, fmt.Errorf("mode %s needs %d controllers, got %d", mode, mode.Players(), len(controllers))
	}
	m := &Match{
		Mode:        mode,
		width:       width,
		height:      height,
		controllers: controllers,
		opts:        opts,
	}
	if err := m.Restart(); err != nil {
		return nil, err
	}
	return m, nil
}

// Restart discards the current game and seeds a fresh one under a new ID.
func (m *Match) Restart() error {
	m.single, m.two = nil, nil
	var err error
	switch m.Mode {
	case ModeSingle:
		m.single, err = NewSinglePlayerGame(m.width, m.height, m.opts...)
	case ModeTwo, ModeCPU:
		m.two, err = NewTwoPlayerGame(m.width, m.height, m.opts...)
	default:
		err = fmt.Errorf("unknown mode %q", m.Mode)
	}
	if err != nil {
		return err
	}
	m.ID = uuid.New().String()
	m.inputs = make([]Direction, m.Mode.Players())
	return nil
}

// Tick asks every controller for a direction, advances the game by one tick
// and returns the new snapshot. A finished match is returned unchanged.
func (m *Match) Tick() GameState {
	if m.Over() {
		return m.State()
	}
	s := m.State()
	for i := range m.inputs {
		m.inputs[i] = m.controllers[i].NextDirection(s, i+1)
	}
	if m.single != nil {
		m.single.Update(m.inputs[0])
	} else {
		m.two.Update(m.inputs[0], m.inputs[1])
	}
	return m.State()
}

// Inputs returns the directions consumed on the last tick.
func (m *Match) Inputs() []Direction {
	return append([]Direction(nil), m.inputs...)
}

// Over reports whether the game has reached a terminal state.
func (m *Match) Over() bool {
	if m.single != nil {
		return !m.single.Alive()
	}
	return m.two.GameOver()
}

// State returns the current snapshot labelled with the match mode.
func (m *Match) State() GameState {
	var s GameState
	if m.single != nil {
		s = m.single.Snapshot()
	} else {
		s = m.two.Snapshot()
	}
	s.Mode = m.Mode
	return s
}

// Config describes the board for clients.
func (m *Match) Config(tickMs int) GameConfig {
	return GameConfig{
		Mode:    m.Mode,
		Width:   m.width,
		Height:  m.height,
		TickMs:  tickMs,
		Players: m.Mode.Players(),
	}
}
