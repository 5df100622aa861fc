package player

import (
	"context"

	"github.com/veandco/go-sdl2/sdl"

	"vidframe/pkg/decode"
	"vidframe/pkg/input"
	"vidframe/pkg/performance"
	"vidframe/pkg/playback"
	"vidframe/pkg/present"
)

// Screen owns the playback pipeline for a single video: the decode
// goroutine on one side, the presenter on the other, and the play/pause
// controller between them. The host loop calls Update then Draw once per
// frame on the render thread.
type Screen struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	dec       *decode.Decoder
	queue     *playback.Queue
	ctrl      *playback.Controller
	target    *present.SDLTarget
	presenter *present.Presenter

	cancel     context.CancelFunc
	decodeDone chan struct{}

	keyTracker   input.KeyPressTracker
	mouseTracker input.MousePressTracker

	perf      *performance.Monitor
	passCount int
}
