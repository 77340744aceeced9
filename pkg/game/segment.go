package game

import "fmt"

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Step returns the neighbour of p in direction d.
func (p Point) Step(d Direction) Point {
	return p.Add(d.Delta())
}

// In reports whether p lies within a width x height board.
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Segment is one occupied cell: part of a snake body or the food marker.
// Segments carry no bounds; the owning game checks them.
type Segment struct {
	pos Point
}

// NewSegment creates a segment at (x, y).
func NewSegment(x, y int) Segment {
	return Segment{pos: Point{X: x, Y: y}}
}

func (s *Segment) X() int { return s.pos.X }

func (s *Segment) Y() int { return s.pos.Y }

// Position returns the segment's cell.
func (s *Segment) Position() Point {
	return s.pos
}

// SetPosition moves the segment directly to (x, y).
func (s *Segment) SetPosition(x, y int) {
	s.pos = Point{X: x, Y: y}
}

// Move shifts the segment one cell in direction d. None is a no-op.
func (s *Segment) Move(d Direction) {
	s.pos = s.pos.Step(d)
}

// Collided reports whether the segment occupies p.
func (s *Segment) Collided(p Point) bool {
	return s.pos == p
}
