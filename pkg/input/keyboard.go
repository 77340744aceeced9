package input

import (
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/wsh32/AISnake/pkg/game"
)

// KeyboardHandler handles keyboard input
type KeyboardHandler struct {
	inputChan chan KeyInput
	done      chan struct{}
	stopOnce  sync.Once
}

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan KeyInput),
		done:      make(chan struct{}),
	}
}

// Start puts the terminal in raw mode and begins listening for keys
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case h.inputChan <- KeyInput{Char: char, Key: key}:
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

// Stop restores the terminal
func (h *KeyboardHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		keyboard.Close()
	})
}

// GetInputChan returns the input channel
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// ParseDirection maps a key to a player and a direction. Arrow keys steer
// player 1 and WASD steers player 2.
func ParseDirection(input KeyInput) (player int, dir game.Direction, ok bool) {
	switch input.Key {
	case keyboard.KeyArrowUp:
		return 1, game.Up, true
	case keyboard.KeyArrowDown:
		return 1, game.Down, true
	case keyboard.KeyArrowLeft:
		return 1, game.Left, true
	case keyboard.KeyArrowRight:
		return 1, game.Right, true
	}

	switch input.Char {
	case 'w', 'W':
		return 2, game.Up, true
	case 's', 'S':
		return 2, game.Down, true
	case 'a', 'A':
		return 2, game.Left, true
	case 'd', 'D':
		return 2, game.Right, true
	}

	return 0, game.None, false
}

// IsQuit checks if the input is a quit command
func IsQuit(input KeyInput) bool {
	return input.Char == 'q' || input.Char == 'Q' || input.Key == keyboard.KeyEsc || input.Key == keyboard.KeyCtrlC
}

// IsRestart checks if the input is a restart command
func IsRestart(input KeyInput) bool {
	return input.Char == 'r' || input.Char == 'R'
}

// IsPause checks if the input is a pause command
func IsPause(input KeyInput) bool {
	return input.Char == 'p' || input.Char == 'P' || input.Key == keyboard.KeySpace
}
