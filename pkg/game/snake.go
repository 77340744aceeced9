package game

// StartLength is the number of segments a snake is created with.
const StartLength = 3

// Snake is an ordered chain of segments with the head at index 0.
type Snake struct {
	segments []Segment
	heading  Direction
	prev     []Point // scratch buffer for the pre-move snapshot
}

// NewSnake lays out a snake of the given length with its head at (x, y) and
// its body trailing away from the heading, e.g. heading Left puts the body at
// (x+1, y), (x+2, y), ...
func NewSnake(x, y, length int, heading Direction) *Snake {
	if length < 1 {
		length = 1
	}
	if !heading.Valid() {
		heading = Left
	}
	trail := heading.Opposite().Delta()
	s := &Snake{
		segments: make([]Segment, length),
		heading:  heading,
	}
	for i := range s.segments {
		s.segments[i] = NewSegment(x+trail.X*i, y+trail.Y*i)
	}
	return s
}

// NewSnakeFromPoints builds a snake from explicit cells, head first.
func NewSnakeFromPoints(heading Direction, points ...Point) *Snake {
	s := &Snake{
		segments: make([]Segment, len(points)),
		heading:  heading,
	}
	for i, p := range points {
		s.segments[i] = NewSegment(p.X, p.Y)
	}
	return s
}

// Heading returns the direction the snake moved on its last tick.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Move advances the snake by one tick. A valid direction becomes the new
// heading. Every trailing segment takes the position its predecessor held
// before the move; when grew is true a new segment is left behind on the
// tail's old cell.
func (s *Snake) Move(d Direction, grew bool) {
	if d.Valid() {
		s.heading = d
	}
	if len(s.segments) == 0 {
		return
	}

	s.prev = s.prev[:0]
	for i := range s.segments {
		s.prev = append(s.prev, s.segments[i].Position())
	}

	s.segments[0].Move(s.heading)
	for i := 1; i < len(s.segments); i++ {
		p := s.prev[i-1]
		s.segments[i].SetPosition(p.X, p.Y)
	}

	if grew {
		tail := s.prev[len(s.prev)-1]
		s.segments = append(s.segments, NewSegment(tail.X, tail.Y))
	}
}

// Head returns the head cell.
func (s *Snake) Head() Point {
	return s.segments[0].Position()
}

// Tail returns the last cell.
func (s *Snake) Tail() Point {
	return s.segments[len(s.segments)-1].Position()
}

// CollidesWithSelf reports whether the head shares a cell with any other segment.
func (s *Snake) CollidesWithSelf() bool {
	head := s.Head()
	for i := 1; i < len(s.segments); i++ {
		if s.segments[i].Collided(head) {
			return true
		}
	}
	return false
}

// CollidesWith reports whether any segment, head included, occupies p.
func (s *Snake) CollidesWith(p Point) bool {
	for i := range s.segments {
		if s.segments[i].Collided(p) {
			return true
		}
	}
	return false
}

// Len is the segment count, used as the score.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Points returns a copy of the body cells, head first.
func (s *Snake) Points() []Point {
	pts := make([]Point, len(s.segments))
	for i := range s.segments {
		pts[i] = s.segments[i].Position()
	}
	return pts
}
