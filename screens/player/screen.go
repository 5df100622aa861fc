package player

import (
	"context"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"vidframe/pkg/decode"
	"vidframe/pkg/input"
	"vidframe/pkg/performance"
	"vidframe/pkg/playback"
	"vidframe/pkg/present"
	"vidframe/pkg/settings"
)

// perfLogInterval is how many render passes pass between perf log lines
// (10 seconds at 60fps).
const perfLogInterval = 600

// New opens the video and starts the decode goroutine. Playback begins in
// the Playing state; the first frame starts decoding immediately.
func New(window *sdl.Window, renderer *sdl.Renderer, videoPath string, cfg settings.Settings) (*Screen, error) {
	dec, err := decode.Open(videoPath)
	if err != nil {
		return nil, err
	}

	clock := playback.NewClock()
	ctrl := playback.NewController(clock)
	queue := playback.NewQueue(cfg.QueueCapacity)
	target := present.NewSDLTarget(renderer)
	presenter := present.New(queue, clock, target, present.Config{
		Tolerance: cfg.DropTolerance,
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{
		window:       window,
		renderer:     renderer,
		dec:          dec,
		queue:        queue,
		ctrl:         ctrl,
		target:       target,
		presenter:    presenter,
		cancel:       cancel,
		decodeDone:   make(chan struct{}),
		keyTracker:   input.NewKeyPressTracker(),
		mouseTracker: input.NewMousePressTracker(),
		perf:         performance.NewMonitor(120),
	}

	go func() {
		defer close(s.decodeDone)
		decode.Loop(ctx, dec, ctrl, queue)
	}()

	log.Printf("player: %s | %dx%d @ %.2ffps | queue capacity %d",
		videoPath, dec.Width(), dec.Height(), dec.FPS(), cfg.QueueCapacity)
	return s, nil
}

// Update polls input state and applies the play/pause toggle on a left
// click or space press edge.
func (s *Screen) Update() error {
	keyState := sdl.GetKeyboardState()
	_, _, buttons := sdl.GetMouseState()

	if s.keyTracker.IsPressed(keyState, sdl.SCANCODE_SPACE) ||
		s.mouseTracker.IsPressed(buttons, sdl.ButtonLMask()) {
		state := s.ctrl.Toggle()
		log.Printf("player: %s at %v", state, s.ctrl.Clock().Now())
	}
	return nil
}

// Draw runs one render pass: clear, present the current frame into the
// letterboxed viewport, dim the scene while paused.
func (s *Screen) Draw() error {
	start := time.Now()

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()

	if err := s.presenter.Present(s.viewport()); err != nil {
		return err
	}

	if s.ctrl.State() == playback.Paused {
		s.drawPauseOverlay()
	}

	s.renderer.Present()

	s.perf.Record(time.Since(start))
	s.passCount++
	if s.passCount%perfLogInterval == 0 {
		log.Printf("player: render %s", s.perf.Report())
	}
	return nil
}

// State exposes the current playback state for the host loop.
func (s *Screen) State() playback.State {
	return s.ctrl.State()
}

// Toggle flips play/pause; exposed so hosts can wire other inputs.
func (s *Screen) Toggle() playback.State {
	return s.ctrl.Toggle()
}

// viewport letterboxes the video into the current render output size.
func (s *Screen) viewport() present.Viewport {
	outW, outH, err := s.renderer.GetOutputSize()
	if err != nil || outW == 0 || outH == 0 {
		return present.Viewport{W: 1, H: 1}
	}
	return Letterbox(s.dec.Width(), s.dec.Height(), int(outW), int(outH))
}

// Letterbox returns the normalized destination rectangle that fits a
// videoW x videoH frame inside a screenW x screenH surface, preserving
// aspect ratio and centering.
func Letterbox(videoW, videoH, screenW, screenH int) present.Viewport {
	if videoW <= 0 || videoH <= 0 || screenW <= 0 || screenH <= 0 {
		return present.Viewport{W: 1, H: 1}
	}

	scaleW := float64(screenW) / float64(videoW)
	scaleH := float64(screenH) / float64(videoH)
	scale := scaleW
	if scaleH < scaleW {
		scale = scaleH
	}

	w := float64(videoW) * scale / float64(screenW)
	h := float64(videoH) * scale / float64(screenH)
	return present.Viewport{X: (1 - w) / 2, Y: (1 - h) / 2, W: w, H: h}
}

// drawPauseOverlay dims the frame and draws the pause glyph so it is
// obvious the freeze is deliberate.
func (s *Screen) drawPauseOverlay() {
	outW, outH, err := s.renderer.GetOutputSize()
	if err != nil {
		return
	}

	s.renderer.SetDrawColor(0, 0, 0, 96)
	s.renderer.FillRect(&sdl.Rect{W: outW, H: outH})

	barH := outH / 8
	barW := barH / 3
	gap := barW
	cx, cy := outW/2, outH/2
	s.renderer.SetDrawColor(255, 255, 255, 220)
	s.renderer.FillRect(&sdl.Rect{X: cx - gap/2 - barW, Y: cy - barH/2, W: barW, H: barH})
	s.renderer.FillRect(&sdl.Rect{X: cx + gap/2, Y: cy - barH/2, W: barW, H: barH})
}

// Close stops the decode goroutine and releases decoder and texture
// resources. Safe to call once the host loop has exited.
func (s *Screen) Close() {
	s.cancel()
	s.queue.Drain() // unblock a producer waiting on a full queue
	<-s.decodeDone
	s.target.Destroy()
	s.dec.Close()
}
