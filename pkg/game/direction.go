package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction is a compass heading on the grid. None means no input for a tick.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var directionNames = [...]string{
	None:  "none",
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

var opposites = [...]Direction{
	None:  None,
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

// Screen coordinates: Up decreases Y, Down increases it.
var deltas = [...]Point{
	None:  {},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the heading that reverses the same axis.
func (d Direction) Opposite() Direction {
	if d < None || d > Right {
		return None
	}
	return opposites[d]
}

// Delta returns the one-step offset for d.
func (d Direction) Delta() Point {
	if d < None || d > Right {
		return Point{}
	}
	return deltas[d]
}

func (d Direction) String() string {
	if d < None || d > Right {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection accepts the lower-case names used on the wire ("up", "left", ...).
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return Direction(d), true
		}
	}
	return None, false
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseDirection(s)
	if !ok {
		return fmt.Errorf("unknown direction %q", s)
	}
	*d = parsed
	return nil
}

// ResolveDirection applies the reversal policy: a request for the exact
// opposite of the committed heading, or no request at all, keeps the heading.
func ResolveDirection(committed, requested Direction) Direction {
	if !requested.Valid() || requested == committed.Opposite() {
		return committed
	}
	return requested
}
