package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wsh32/AISnake/pkg/config"
	"github.com/wsh32/AISnake/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out     io.Writer
	palette config.Palette
	board   [][]int
	buffer  strings.Builder
}

// Cell types for the board
const (
	cellEmpty = iota
	cellFood
	cellHead1
	cellBody1
	cellHead2
	cellBody2
	cellCrash
)

// Frame carries the driver state shown around the board.
type Frame struct {
	Paused bool
	Title  string // e.g. "REPLAY 12/80"
}

// NewTerminalRenderer creates a renderer for a width x height board that
// writes to out, or to stdout when out is nil.
func NewTerminalRenderer(out io.Writer, width, height int, palette config.Palette) *TerminalRenderer {
	if out == nil {
		out = os.Stdout
	}
	// Pre-allocate board to reduce GC pressure
	board := make([][]int, height)
	for i := range board {
		board[i] = make([]int, width)
	}

	return &TerminalRenderer{
		out:     out,
		palette: palette,
		board:   board,
	}
}

// clearScreen clears the terminal using ANSI escape codes
func (r *TerminalRenderer) clearScreen() {
	r.buffer.WriteString("\033[H\033[2J\033[3J")
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

func (r *TerminalRenderer) set(p game.Point, cell int) {
	if p.Y < 0 || p.Y >= len(r.board) || p.X < 0 || p.X >= len(r.board[p.Y]) {
		return
	}
	r.board[p.Y][p.X] = cell
}

// Render draws s and writes the whole frame in one call
func (r *TerminalRenderer) Render(s game.GameState, f Frame) error {
	r.buffer.Reset()
	r.clearScreen()

	for y := range r.board {
		for x := range r.board[y] {
			r.board[y][x] = cellEmpty
		}
	}

	r.set(s.Food, cellFood)
	heads := [2]int{cellHead1, cellHead2}
	bodies := [2]int{cellBody1, cellBody2}
	for i, pl := range s.Players {
		if i > 1 {
			break
		}
		// Draw bodies tail first so the head stays on top.
		for j := len(pl.Snake) - 1; j > 0; j-- {
			r.set(pl.Snake[j], bodies[i])
		}
		if len(pl.Snake) > 0 {
			r.set(pl.Snake[0], heads[i])
		}
	}
	// A head that left the board has nothing to mark.
	for _, pl := range s.Players {
		if !pl.Alive && len(pl.Snake) > 0 {
			r.set(pl.Head(), cellCrash)
		}
	}

	title := "SNAKE"
	if f.Title != "" {
		title = f.Title
	}
	r.buffer.WriteString("\n  " + title + "\n")
	r.buffer.WriteString("  " + scoreLine(s) + "\n\n")

	width := 0
	if len(r.board) > 0 {
		width = len(r.board[0])
	}
	border := "  " + strings.Repeat(r.palette.Wall, width+2) + "\n"
	r.buffer.WriteString(border)
	for _, row := range r.board {
		r.buffer.WriteString("  ")
		r.buffer.WriteString(r.palette.Wall)
		for _, cell := range row {
			r.buffer.WriteString(r.glyph(cell))
		}
		r.buffer.WriteString(r.palette.Wall)
		r.buffer.WriteString("\n")
	}
	r.buffer.WriteString(border)

	if len(s.Players) > 1 {
		r.buffer.WriteString("\n  P1: arrow keys  |  P2: WASD\n")
	} else {
		r.buffer.WriteString("\n  Use WASD or Arrow keys to move\n")
	}
	r.buffer.WriteString("  P to pause, Q to quit\n")

	if f.Paused {
		r.buffer.WriteString("\n  PAUSED - Press P to continue\n")
	}
	if s.GameOver {
		r.buffer.WriteString("\n  GAME OVER! " + resultLine(s) + "  Press R to restart or Q to quit\n")
	}

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

func (r *TerminalRenderer) glyph(cell int) string {
	switch cell {
	case cellFood:
		return r.palette.Food
	case cellHead1:
		return r.palette.Heads[0]
	case cellBody1:
		return r.palette.Bodies[0]
	case cellHead2:
		return r.palette.Heads[1]
	case cellBody2:
		return r.palette.Bodies[1]
	case cellCrash:
		return r.palette.Crash
	default:
		return r.palette.Empty
	}
}

func scoreLine(s game.GameState) string {
	switch len(s.Players) {
	case 0:
		return fmt.Sprintf("Tick: %d", s.Tick)
	case 1:
		return fmt.Sprintf("Score: %d  |  Tick: %d", s.Players[0].Score, s.Tick)
	default:
		return fmt.Sprintf("P1: %d  |  P2: %d  |  Tick: %d", s.Players[0].Score, s.Players[1].Score, s.Tick)
	}
}

func resultLine(s game.GameState) string {
	switch s.Winner {
	case game.WinnerPlayer1:
		return "Player 1 wins."
	case game.WinnerPlayer2:
		return "Player 2 wins."
	case game.WinnerDraw:
		return "Draw."
	}
	if len(s.Players) == 1 && s.Players[0].Cause != game.CauseNone {
		return fmt.Sprintf("Final score %d (%s).", s.Players[0].Score, s.Players[0].Cause)
	}
	return ""
}
