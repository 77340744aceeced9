package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/wsh32/AISnake/pkg/game"
)

// Board defaults per mode
const (
	SingleWidth  = 15
	SingleHeight = 15
	SingleFPS    = 15

	TwoPlayerWidth  = 30
	TwoPlayerHeight = 20
	TwoPlayerFPS    = 10

	MaxBoardSide = 200
	MaxFPS       = 120
)

// Storage and server defaults
const (
	DefaultRecordDir = "records"
	DefaultDBPath    = "data/snake.db"
	DefaultAddr      = ":8080"
	DefaultScoreRows = 10
)

// Websocket limits
const (
	WSReadLimit    = 512 // bytes per client message
	WSWriteTimeout = 5 * time.Second
	WSPongTimeout  = 60 * time.Second
	WSPingPeriod   = (WSPongTimeout * 9) / 10
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharHead2 = "🔵"
	CharBody2 = "🟦"
	CharFood  = "🍎"
	CharCrash = "💥"
)

// Palette holds the glyphs used by the terminal renderer. Every glyph should
// render two columns wide so the board stays square.
type Palette struct {
	Empty  string
	Wall   string
	Food   string
	Crash  string
	Heads  [2]string
	Bodies [2]string
}

// DefaultPalette is the emoji palette.
func DefaultPalette() Palette {
	return Palette{
		Empty:  CharEmpty,
		Wall:   CharWall,
		Food:   CharFood,
		Crash:  CharCrash,
		Heads:  [2]string{CharHead, CharHead2},
		Bodies: [2]string{CharBody, CharBody2},
	}
}

// ASCIIPalette is for terminals without emoji fonts.
func ASCIIPalette() Palette {
	return Palette{
		Empty:  "  ",
		Wall:   "##",
		Food:   "()",
		Crash:  "XX",
		Heads:  [2]string{"@@", "&&"},
		Bodies: [2]string{"oo", "++"},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the runtime configuration shared by the drivers.
// Zero Width, Height or FPS mean "use the mode default".
type Config struct {
	Mode      game.Mode
	Width     int
	Height    int
	FPS       int
	RecordDir string // empty disables recording
	DBPath    string // empty disables match history
	Addr      string
	LogLevel  string
	LogJSON   bool
	Palette   Palette
}

// Load reads an optional .env file and then the SNAKE_* environment
// variables. Unset values keep their defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Mode:      game.ModeSingle,
		RecordDir: os.Getenv("SNAKE_RECORD_DIR"),
		DBPath:    DefaultDBPath,
		Addr:      DefaultAddr,
		LogLevel:  "info",
		Palette:   DefaultPalette(),
	}

	if v := os.Getenv("SNAKE_MODE"); v != "" {
		m, ok := game.ParseMode(v)
		if !ok {
			return nil, fmt.Errorf("SNAKE_MODE %q: %w", v, ErrInvalid)
		}
		cfg.Mode = m
	}
	if v, ok := os.LookupEnv("SNAKE_DB"); ok {
		cfg.DBPath = v
	}
	if v := os.Getenv("SNAKE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	cfg.LogJSON = os.Getenv("LOG_JSON") == "true"
	if os.Getenv("SNAKE_ASCII") == "true" {
		cfg.Palette = ASCIIPalette()
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"SNAKE_WIDTH", &cfg.Width},
		{"SNAKE_HEIGHT", &cfg.Height},
		{"SNAKE_FPS", &cfg.FPS},
	}
	for _, f := range ints {
		v := strings.TrimSpace(os.Getenv(f.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	return cfg, nil
}

// FillDefaults replaces zero board settings with the defaults of c.Mode.
func (c *Config) FillDefaults() {
	w, h, fps := SingleWidth, SingleHeight, SingleFPS
	if c.Mode.Players() == 2 {
		w, h, fps = TwoPlayerWidth, TwoPlayerHeight, TwoPlayerFPS
	}
	if c.Width == 0 {
		c.Width = w
	}
	if c.Height == 0 {
		c.Height = h
	}
	if c.FPS == 0 {
		c.FPS = fps
	}
}

// Validate checks the board settings after FillDefaults.
func (c *Config) Validate() error {
	if _, ok := game.ParseMode(string(c.Mode)); !ok {
		return fmt.Errorf("mode %q: %w", c.Mode, ErrInvalid)
	}
	if c.Width < 1 || c.Width > MaxBoardSide || c.Height < 1 || c.Height > MaxBoardSide {
		return fmt.Errorf("board %dx%d out of range 1..%d: %w", c.Width, c.Height, MaxBoardSide, ErrInvalid)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps %d out of range 1..%d: %w", c.FPS, MaxFPS, ErrInvalid)
	}
	return nil
}

// TickInterval is the wall-clock time between two updates.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// TickMs is TickInterval in whole milliseconds, as sent to web clients.
func (c *Config) TickMs() int {
	return int(c.TickInterval() / time.Millisecond)
}
