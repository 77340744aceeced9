package game

import (
	"math/rand"
	"testing"
)

func TestMatchSingle(t *testing.T) {
	mc := &ManualController{}
	m, err := NewMatch(ModeSingle, 10, 10, []Controller{mc}, WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	if m.ID == "" {
		t.Fatal("match has no id")
	}

	mc.SetDirection(Up)
	s := m.Tick()
	if s.Tick != 1 || s.Mode != ModeSingle {
		t.Fatalf("tick=%d mode=%s", s.Tick, s.Mode)
	}
	if got := m.Inputs(); len(got) != 1 || got[0] != Up {
		t.Fatalf("inputs=%v", got)
	}
	if s.Players[0].Head() != (Point{5, 4}) {
		t.Fatalf("head=%v want=(5,4)", s.Players[0].Head())
	}
}

func TestMatchNeedsControllers(t *testing.T) {
	if _, err := NewMatch(ModeTwo, 10, 10, []Controller{&ManualController{}}); err == nil {
		t.Fatal("expected error for a two player match with one controller")
	}
	if _, err := NewMatch(Mode("bogus"), 10, 10, []Controller{&ManualController{}}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestMatchCPUFinishes(t *testing.T) {
	// player 1 never steers and runs into the left wall
	m, err := NewMatch(ModeCPU, 10, 10, []Controller{&ManualController{}}, WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	var s GameState
	for i := 0; i < 20 && !m.Over(); i++ {
		s = m.Tick()
	}
	if !m.Over() {
		t.Fatal("cpu match did not finish within 20 ticks")
	}
	if s.Mode != ModeCPU {
		t.Fatalf("mode=%s want=cpu", s.Mode)
	}
	if s.Players[0].Cause != CauseWallCollision {
		t.Fatalf("player 1 cause=%q", s.Players[0].Cause)
	}
	if s.Winner != WinnerPlayer2 {
		t.Fatalf("winner=%s want=player2", s.Winner)
	}

	tick := s.Tick
	if got := m.Tick(); got.Tick != tick {
		t.Fatal("finished match advanced")
	}

	id := m.ID
	if err := m.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if m.ID == id || m.Over() || m.State().Tick != 0 {
		t.Fatal("restart did not seed a fresh game")
	}
}
