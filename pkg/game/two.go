package game

import "fmt"

// TwoPlayerState is the state machine of a two-snake game.
type TwoPlayerState int

const (
	BothAlive TwoPlayerState = iota
	Player1Dead
	Player2Dead
	BothDead
)

func (s TwoPlayerState) String() string {
	switch s {
	case Player1Dead:
		return "player1-dead"
	case Player2Dead:
		return "player2-dead"
	case BothDead:
		return "both-dead"
	default:
		return "both-alive"
	}
}

// TwoPlayerGame advances two independently controlled snakes that share one
// board and one food item.
type TwoPlayerGame struct {
	width, height int
	players       [2]*player
	food          Segment
	tick          int
	rng           Rand
}

// NewTwoPlayerGame seeds player 1 on the upper third heading Left and player 2
// on the lower third heading Right, both with their heads on the centre column.
func NewTwoPlayerGame(width, height int, opts ...Option) (*TwoPlayerGame, error) {
	cx := width / 2
	if cx+StartLength-1 >= width || cx-(StartLength-1) < 0 || height < 2 {
		return nil, fmt.Errorf("two player board %dx%d: %w", width, height, ErrGridTooSmall)
	}
	return newTwoPlayerGame(width, height,
		NewSnake(cx, height/3, StartLength, Left),
		NewSnake(cx, 2*height/3, StartLength, Right),
		opts...), nil
}

func newTwoPlayerGame(width, height int, s1, s2 *Snake, opts ...Option) *TwoPlayerGame {
	o := buildOptions(opts)
	g := &TwoPlayerGame{
		width:   width,
		height:  height,
		players: [2]*player{newPlayer(s1), newPlayer(s2)},
		rng:     o.rng,
	}
	g.placeFood()
	return g
}

func (g *TwoPlayerGame) placeFood() {
	pos := PlaceFood(g.rng, g.width, g.height, g.players[0].snake, g.players[1].snake)
	g.food.SetPosition(pos.X, pos.Y)
}

// Update advances both snakes by one tick and reports whether both are still
// alive. Once either snake has died the game is over and further calls are
// no-ops.
func (g *TwoPlayerGame) Update(d1, d2 Direction) bool {
	if !g.Alive() {
		return false
	}
	g.tick++

	p1, p2 := g.players[0], g.players[1]
	p1.advance(d1)
	p2.advance(d2)

	p1.growing = g.food.Collided(p1.snake.Head())
	p2.growing = g.food.Collided(p2.snake.Head())
	if p1.growing || p2.growing {
		g.placeFood()
	}

	// Both verdicts read post-move positions only, so neither kill affects the other.
	c1 := g.deathCause(p1.snake, p2.snake)
	c2 := g.deathCause(p2.snake, p1.snake)
	if c1 != CauseNone {
		p1.kill(c1)
	}
	if c2 != CauseNone {
		p2.kill(c2)
	}
	return g.Alive()
}

func (g *TwoPlayerGame) deathCause(self, other *Snake) DeathCause {
	head := self.Head()
	switch {
	case self.CollidesWithSelf():
		return CauseSelfCollision
	case outOfBounds(head, g.width, g.height):
		return CauseWallCollision
	case head == other.Head():
		return CauseHeadToHead
	case other.CollidesWith(head):
		return CauseSnakeCollision
	}
	return CauseNone
}

// Alive is the conjunction of both liveness flags.
func (g *TwoPlayerGame) Alive() bool {
	return g.players[0].alive && g.players[1].alive
}

// GameOver is the negation of Alive.
func (g *TwoPlayerGame) GameOver() bool {
	return !g.Alive()
}

// PlayerAlive reports the liveness of player 1 or 2.
func (g *TwoPlayerGame) PlayerAlive(n int) bool {
	return g.player(n).alive
}

// State maps the two liveness flags onto the state machine.
func (g *TwoPlayerGame) State() TwoPlayerState {
	a1, a2 := g.players[0].alive, g.players[1].alive
	switch {
	case a1 && a2:
		return BothAlive
	case !a1 && !a2:
		return BothDead
	case !a1:
		return Player1Dead
	default:
		return Player2Dead
	}
}

// Winner names the single survivor, WinnerDraw on a double death and
// WinnerNone while the game is running.
func (g *TwoPlayerGame) Winner() Winner {
	switch g.State() {
	case Player1Dead:
		return WinnerPlayer2
	case Player2Dead:
		return WinnerPlayer1
	case BothDead:
		return WinnerDraw
	default:
		return WinnerNone
	}
}

func (g *TwoPlayerGame) player(n int) *player {
	if n == 2 {
		return g.players[1]
	}
	return g.players[0]
}

func (g *TwoPlayerGame) Width() int  { return g.width }
func (g *TwoPlayerGame) Height() int { return g.height }
func (g *TwoPlayerGame) Tick() int   { return g.tick }

// Snake returns the body cells of player 1 or 2, head first.
func (g *TwoPlayerGame) Snake(n int) []Point { return g.player(n).snake.Points() }

// Head returns the head cell of player 1 or 2.
func (g *TwoPlayerGame) Head(n int) Point { return g.player(n).snake.Head() }

// Score is the snake length of player 1 or 2.
func (g *TwoPlayerGame) Score(n int) int { return g.player(n).snake.Len() }

// Cause returns why player 1 or 2 died, or CauseNone.
func (g *TwoPlayerGame) Cause(n int) DeathCause { return g.player(n).cause }

// Food returns the shared food cell.
func (g *TwoPlayerGame) Food() Point { return g.food.Position() }

// Snapshot returns a copy of the current game state.
func (g *TwoPlayerGame) Snapshot() GameState {
	return GameState{
		Mode:     ModeTwo,
		Tick:     g.tick,
		Width:    g.width,
		Height:   g.height,
		Players:  []PlayerState{g.players[0].state(), g.players[1].state()},
		Food:     g.food.Position(),
		GameOver: g.GameOver(),
		Winner:   g.Winner(),
	}
}
