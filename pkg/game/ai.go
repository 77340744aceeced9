package game

var headings = [...]Direction{Up, Down, Left, Right}

// CalculateBestMove picks, for the snake at index idx, the non-reversing
// heading whose next cell is safe and closest to the food. With no safe
// option it keeps the current heading.
func CalculateBestMove(s GameState, idx int) Direction {
	me := s.Players[idx]
	if len(me.Snake) == 0 {
		return None
	}
	head := me.Head()

	best := None
	bestDist := 0
	for _, d := range headings {
		if d == me.Heading.Opposite() {
			continue
		}
		next := head.Step(d)
		if !isSafe(s, next) {
			continue
		}
		dist := manhattan(next, s.Food)
		// Prefer going straight on ties so the snake doesn't zig-zag.
		if best == None || dist < bestDist || (dist == bestDist && d == me.Heading) {
			best = d
			bestDist = dist
		}
	}
	if best == None {
		return me.Heading
	}
	return best
}

// isSafe reports whether moving onto p cannot kill a snake this tick.
// Tails are treated as occupied because a snake that is growing keeps its tail.
func isSafe(s GameState, p Point) bool {
	if !p.In(s.Width, s.Height) {
		return false
	}
	return !s.Occupied(p)
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
