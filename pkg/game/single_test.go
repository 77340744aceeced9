package game

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestSingle(t *testing.T, w, h int) *SinglePlayerGame {
	t.Helper()
	g, err := NewSinglePlayerGame(w, h, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewSinglePlayerGame: %v", err)
	}
	return g
}

func TestSinglePlayerStart(t *testing.T) {
	g := newTestSingle(t, 10, 10)
	assertBody(t, g.Snake(), []Point{{5, 5}, {6, 5}, {7, 5}})
	if g.Heading() != Left {
		t.Fatalf("heading=%v want=left", g.Heading())
	}
	if g.State() != Alive {
		t.Fatalf("state=%v want=alive", g.State())
	}
	food := g.Food()
	if !food.In(10, 10) {
		t.Fatalf("food %v off board", food)
	}
	for _, p := range g.Snake() {
		if p == food {
			t.Fatalf("food %v placed on snake", food)
		}
	}
}

func TestSinglePlayerGridTooSmall(t *testing.T) {
	_, err := NewSinglePlayerGame(4, 4)
	if !errors.Is(err, ErrGridTooSmall) {
		t.Fatalf("err=%v want ErrGridTooSmall", err)
	}
}

// TestSinglePlayerRunsOffLeftEdge walks the documented 10x10 scenario
func TestSinglePlayerRunsOffLeftEdge(t *testing.T) {
	g := newTestSingle(t, 10, 10)
	g.food.SetPosition(9, 9)

	if !g.Update(Up) {
		t.Fatal("died on first tick")
	}
	if g.Head() != (Point{5, 4}) {
		t.Fatalf("head=%v want=(5,4)", g.Head())
	}
	if !g.Update(Left) {
		t.Fatal("died on second tick")
	}
	if g.Head() != (Point{4, 4}) {
		t.Fatalf("head=%v want=(4,4)", g.Head())
	}

	for x := 3; x >= 0; x-- {
		if !g.Update(Left) {
			t.Fatalf("died early at x=%d", x)
		}
		if g.Head().X != x {
			t.Fatalf("head=%v want x=%d", g.Head(), x)
		}
	}

	if g.Update(Left) {
		t.Fatal("expected death when head reaches x=-1")
	}
	if g.Head() != (Point{-1, 4}) {
		t.Fatalf("head=%v want=(-1,4)", g.Head())
	}
	if g.State() != Dead || g.Cause() != CauseWallCollision {
		t.Fatalf("state=%v cause=%q", g.State(), g.Cause())
	}
}

func TestSinglePlayerReverseIgnored(t *testing.T) {
	g := newTestSingle(t, 10, 10)
	g.food.SetPosition(9, 9)
	if !g.Update(Right) {
		t.Fatal("reversal must not kill the snake")
	}
	if g.Head() != (Point{4, 5}) || g.Heading() != Left {
		t.Fatalf("head=%v heading=%v, want (4,5) left", g.Head(), g.Heading())
	}
}

// TestSinglePlayerEatsFood places food one step ahead of the head
func TestSinglePlayerEatsFood(t *testing.T) {
	g := newTestSingle(t, 10, 10)
	g.food.SetPosition(4, 5)

	if !g.Update(Left) {
		t.Fatal("died while eating")
	}
	s := g.Snapshot()
	if !s.Players[0].Growing {
		t.Fatal("expected pending growth after eating")
	}
	if g.Score() != 3 {
		t.Fatalf("len=%d, growth must wait for the next tick", g.Score())
	}
	food := g.Food()
	if !food.In(10, 10) {
		t.Fatalf("new food %v off board", food)
	}
	for _, p := range g.Snake() {
		if p == food {
			t.Fatalf("new food %v on snake %v", food, g.Snake())
		}
	}

	tailBefore := g.Snake()[2]
	if !g.Update(Left) {
		t.Fatal("died after eating")
	}
	if g.Score() != 4 {
		t.Fatalf("len=%d want=4", g.Score())
	}
	if tail := g.Snake()[3]; tail != tailBefore {
		t.Fatalf("tail=%v want=%v", tail, tailBefore)
	}
	t.Logf("body after growth: %v", g.Snake())
}

func TestSinglePlayerSelfCollision(t *testing.T) {
	g := newTestSingle(t, 10, 10)
	g.p.snake = NewSnake(5, 5, 5, Left)
	g.food.SetPosition(0, 0)

	g.Update(Up)
	g.Update(Right)
	if g.Update(Down) {
		t.Fatal("expected self collision")
	}
	if g.Cause() != CauseSelfCollision {
		t.Fatalf("cause=%q want self-collision", g.Cause())
	}
}

func TestSinglePlayerDeadIsTerminal(t *testing.T) {
	g := newTestSingle(t, 5, 5)
	g.food.SetPosition(4, 4)
	for g.Update(None) {
	}
	tick := g.Tick()
	body := g.Snake()

	if g.Update(Up) {
		t.Fatal("dead game came back to life")
	}
	if g.Tick() != tick {
		t.Fatalf("tick advanced on a dead game: %d -> %d", tick, g.Tick())
	}
	assertBody(t, g.Snake(), body)
	if s := g.Snapshot(); !s.GameOver || s.Players[0].Alive {
		t.Fatalf("snapshot not terminal: %+v", s)
	}
}
