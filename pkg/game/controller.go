package game

import "sync"

// Controller defines the brain of a player (Human or AI)
type Controller interface {
	NextDirection(s GameState, player int) Direction
}

// --- Implementation: Manual Controller (Human) ---

// ManualController holds the latest direction pressed since the previous
// tick. Input goroutines call SetDirection; the tick loop drains it once per
// tick, so a tick without a key press yields None.
type ManualController struct {
	mu      sync.Mutex
	pending Direction
}

func (c *ManualController) SetDirection(d Direction) {
	if !d.Valid() {
		return
	}
	c.mu.Lock()
	c.pending = d
	c.mu.Unlock()
}

func (c *ManualController) NextDirection(GameState, int) Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.pending
	c.pending = None
	return d
}

// Reset drops any direction pressed before a restart.
func (c *ManualController) Reset() {
	c.mu.Lock()
	c.pending = None
	c.mu.Unlock()
}

// --- Implementation: Heuristic AI Controller ---

type HeuristicController struct{}

func (c *HeuristicController) NextDirection(s GameState, player int) Direction {
	idx := player - 1
	if idx < 0 || idx >= len(s.Players) {
		return None
	}
	return CalculateBestMove(s, idx)
}
