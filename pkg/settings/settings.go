package settings

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Settings collects the engine tunables. Values come from the environment
// (main loads a .env file via godotenv first) so deployments can adjust
// scheduling behaviour without a rebuild.
type Settings struct {
	// QueueCapacity bounds the decode-ahead frame queue.
	QueueCapacity int

	// DropTolerance is how far ahead of the playback clock a frame may be
	// and still be presented immediately.
	DropTolerance time.Duration

	// Windowed runs in a window instead of fullscreen.
	Windowed     bool
	WindowWidth  int32
	WindowHeight int32
}

var defaults = Settings{
	QueueCapacity: 4,
	DropTolerance: 5 * time.Millisecond,
	WindowWidth:   1280,
	WindowHeight:  720,
}

// Load reads settings from the environment, falling back to defaults for
// anything missing or malformed so the player always starts.
func Load() Settings {
	s := defaults
	if v := envInt("VIDFRAME_QUEUE_CAPACITY"); v > 0 {
		s.QueueCapacity = v
	}
	if v := envInt("VIDFRAME_DROP_TOLERANCE_MS"); v > 0 {
		s.DropTolerance = time.Duration(v) * time.Millisecond
	}
	if os.Getenv("VIDFRAME_WINDOWED") == "1" {
		s.Windowed = true
	}
	if v := envInt("VIDFRAME_WINDOW_WIDTH"); v > 0 {
		s.WindowWidth = int32(v)
	}
	if v := envInt("VIDFRAME_WINDOW_HEIGHT"); v > 0 {
		s.WindowHeight = int32(v)
	}
	return s
}

// envInt parses an integer environment variable, returning 0 when unset.
func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("settings: ignoring malformed %s=%q: %v", key, raw, err)
		return 0
	}
	return v
}
