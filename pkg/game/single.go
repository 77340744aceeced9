package game

import "fmt"

// SinglePlayerState is the state machine of a one-snake game.
type SinglePlayerState int

const (
	Alive SinglePlayerState = iota
	Dead
)

func (s SinglePlayerState) String() string {
	if s == Dead {
		return "dead"
	}
	return "alive"
}

// SinglePlayerGame advances one snake and one food item on a bounded grid.
type SinglePlayerGame struct {
	width, height int
	p             *player
	food          Segment
	tick          int
	rng           Rand
}

// NewSinglePlayerGame seeds a snake in the middle of the board heading Left
// and places the first food item.
func NewSinglePlayerGame(width, height int, opts ...Option) (*SinglePlayerGame, error) {
	if width/2+StartLength-1 >= width || height < 1 {
		return nil, fmt.Errorf("single player board %dx%d: %w", width, height, ErrGridTooSmall)
	}
	o := buildOptions(opts)
	g := &SinglePlayerGame{
		width:  width,
		height: height,
		p:      newPlayer(NewSnake(width/2, height/2, StartLength, Left)),
		rng:    o.rng,
	}
	g.placeFood()
	return g, nil
}

func (g *SinglePlayerGame) placeFood() {
	pos := PlaceFood(g.rng, g.width, g.height, g.p.snake)
	g.food.SetPosition(pos.X, pos.Y)
}

// Update advances one tick and reports whether the snake is still alive.
// A dead game is not mutated any further.
func (g *SinglePlayerGame) Update(d Direction) bool {
	if !g.p.alive {
		return false
	}
	g.tick++

	g.p.advance(d)

	head := g.p.snake.Head()
	g.p.growing = g.food.Collided(head)
	if g.p.growing {
		g.placeFood()
	}

	switch {
	case g.p.snake.CollidesWithSelf():
		g.p.kill(CauseSelfCollision)
	case outOfBounds(head, g.width, g.height):
		g.p.kill(CauseWallCollision)
	}
	return g.p.alive
}

// Alive reports the liveness flag.
func (g *SinglePlayerGame) Alive() bool { return g.p.alive }

// State returns Alive or Dead.
func (g *SinglePlayerGame) State() SinglePlayerState {
	if g.p.alive {
		return Alive
	}
	return Dead
}

func (g *SinglePlayerGame) Width() int  { return g.width }
func (g *SinglePlayerGame) Height() int { return g.height }
func (g *SinglePlayerGame) Tick() int   { return g.tick }

// Snake returns the body cells, head first.
func (g *SinglePlayerGame) Snake() []Point { return g.p.snake.Points() }

// Head returns the head cell.
func (g *SinglePlayerGame) Head() Point { return g.p.snake.Head() }

// Heading returns the committed heading.
func (g *SinglePlayerGame) Heading() Direction { return g.p.heading }

// Food returns the food cell.
func (g *SinglePlayerGame) Food() Point { return g.food.Position() }

// Score is the snake length.
func (g *SinglePlayerGame) Score() int { return g.p.snake.Len() }

// Cause returns why the snake died, or CauseNone.
func (g *SinglePlayerGame) Cause() DeathCause { return g.p.cause }

// Snapshot returns a copy of the current game state.
func (g *SinglePlayerGame) Snapshot() GameState {
	return GameState{
		Mode:     ModeSingle,
		Tick:     g.tick,
		Width:    g.width,
		Height:   g.height,
		Players:  []PlayerState{g.p.state()},
		Food:     g.food.Position(),
		GameOver: !g.p.alive,
		Winner:   WinnerNone,
	}
}
