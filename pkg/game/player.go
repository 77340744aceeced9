package game

// player is the per-snake bookkeeping shared by both game kinds.
type player struct {
	snake   *Snake
	heading Direction // last committed heading
	growing bool      // food eaten on the previous tick, growth not yet applied
	alive   bool
	cause   DeathCause
}

func newPlayer(s *Snake) *player {
	return &player{
		snake:   s,
		heading: s.Heading(),
		alive:   true,
	}
}

// advance resolves the requested direction against the committed heading and
// moves the snake, applying any pending growth.
func (p *player) advance(requested Direction) {
	p.heading = ResolveDirection(p.heading, requested)
	p.snake.Move(p.heading, p.growing)
}

func (p *player) kill(cause DeathCause) {
	if !p.alive {
		return
	}
	p.alive = false
	p.cause = cause
}

func (p *player) state() PlayerState {
	return PlayerState{
		Snake:   p.snake.Points(),
		Heading: p.heading,
		Alive:   p.alive,
		Score:   p.snake.Len(),
		Cause:   p.cause,
		Growing: p.growing,
	}
}

// outOfBounds checks the edges in the order x<0, x>=width, y<0, y>=height.
func outOfBounds(p Point, width, height int) bool {
	return p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height
}
