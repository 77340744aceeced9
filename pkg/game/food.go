package game

// Occupant is anything that covers cells of the board.
type Occupant interface {
	CollidesWith(p Point) bool
}

// Rand is the subset of *rand.Rand used for food placement.
type Rand interface {
	Intn(n int) int
}

// PlaceFood samples x and y independently and uniformly until the cell is
// not covered by any occupant. It only terminates while a free cell exists;
// callers size the board so a snake cannot fill it.
func PlaceFood(rng Rand, width, height int, occupants ...Occupant) Point {
	for {
		p := Point{
			X: rng.Intn(width),
			Y: rng.Intn(height),
		}
		if !occupied(p, occupants) {
			return p
		}
	}
}

func occupied(p Point, occupants []Occupant) bool {
	for _, o := range occupants {
		if o.CollidesWith(p) {
			return true
		}
	}
	return false
}
