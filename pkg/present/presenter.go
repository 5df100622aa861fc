package present

import (
	"log"
	"time"

	"vidframe/pkg/playback"
)

// Clock is the read-only view of the playback clock the presenter paces
// against.
type Clock interface {
	Now() time.Duration
}

// Config carries the presenter's scheduling knobs. The tolerance is
// deliberately configuration rather than a constant; how aggressively to
// drop versus wait is a deployment choice.
type Config struct {
	// Tolerance is how far ahead of the clock a frame may be and still be
	// presented this pass. Frames beyond it are held for a later pass.
	Tolerance time.Duration
}

// Presenter consumes frames from the queue and, once per render pass,
// decides whether to present a new frame, keep waiting, or drop stale
// frames to catch up. It never blocks the render loop.
type Presenter struct {
	queue  *playback.Queue
	clock  Clock
	target Target
	cfg    Config

	pending *playback.Frame // popped but not yet due
	current *playback.Frame // most recently displayed
	ended   bool
}

// New wires a presenter to its queue, clock and draw target.
func New(queue *playback.Queue, clock Clock, target Target, cfg Config) *Presenter {
	return &Presenter{queue: queue, clock: clock, target: target, cfg: cfg}
}

// Present runs one render pass. All frames already due at the current
// playback time are consumed and only the newest is shown, so playback
// catches up smoothly after a stall instead of replaying late frames. A
// frame still ahead of the clock is held and re-attempted next pass. With
// nothing new to show the previously displayed frame is drawn again, so
// the surface never goes blank, including after end of stream.
func (p *Presenter) Present(vp Viewport) error {
	now := p.clock.Now()

	var due *playback.Frame
	for {
		f := p.pending
		p.pending = nil
		if f == nil {
			var done bool
			f, done = p.queue.TryPop()
			if done {
				p.ended = true
				break
			}
			if f == nil {
				break
			}
		}
		if f.PTS > now+p.cfg.Tolerance {
			// ahead of the clock; hold it without blocking the pass
			p.pending = f
			break
		}
		// due frames after the first replace it; older ones are dropped
		due = f
	}

	if due != nil {
		if err := p.target.Upload(due.Pixels, due.Width, due.Height); err != nil {
			// fatal for this frame only; keep showing the previous one
			log.Printf("present: texture upload failed: %v", err)
			return p.drawCurrent(vp)
		}
		p.current = due
	}
	return p.drawCurrent(vp)
}

func (p *Presenter) drawCurrent(vp Viewport) error {
	if p.current == nil {
		return nil // nothing decoded yet
	}
	if err := p.target.Draw(vp); err != nil {
		// per-frame failure; the texture still holds the last good frame
		log.Printf("present: draw failed: %v", err)
	}
	return nil
}

// Ended reports that the stream is exhausted and every decoded frame has
// been consumed.
func (p *Presenter) Ended() bool {
	return p.ended && p.pending == nil
}
