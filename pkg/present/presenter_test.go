package present

import (
	"context"
	"errors"
	"testing"
	"time"

	"vidframe/pkg/playback"
)

type fakeClock struct {
	t time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.t }

type fakeTarget struct {
	uploads   int
	draws     int
	lastPix   []byte
	lastVP    Viewport
	uploadErr error
}

func (t *fakeTarget) Upload(pix []byte, width, height int) error {
	t.uploads++
	if t.uploadErr != nil {
		err := t.uploadErr
		t.uploadErr = nil
		return err
	}
	t.lastPix = pix
	return nil
}

func (t *fakeTarget) Draw(dst Viewport) error {
	t.draws++
	t.lastVP = dst
	return nil
}

func push(t *testing.T, q *playback.Queue, pts ...time.Duration) {
	t.Helper()
	for _, p := range pts {
		f := &playback.Frame{Pixels: []byte{byte(p / time.Millisecond)}, Width: 1, Height: 1, PTS: p}
		if err := q.Push(context.Background(), f); err != nil {
			t.Fatalf("push %v: %v", p, err)
		}
	}
}

func TestPresentCatchUpDropsStaleFrames(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 10*time.Millisecond, 20*time.Millisecond, 35*time.Millisecond)
	clock := &fakeClock{t: 100 * time.Millisecond}
	target := &fakeTarget{}
	p := New(q, clock, target, Config{Tolerance: 5 * time.Millisecond})

	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if target.uploads != 1 || target.draws != 1 {
		t.Fatalf("uploads=%d draws=%d, want 1/1", target.uploads, target.draws)
	}
	if target.lastPix[0] != 35 {
		t.Fatalf("presented frame %dms, want the newest due (35ms)", target.lastPix[0])
	}
	if q.Len() != 0 {
		t.Fatalf("stale frames left in queue: %d", q.Len())
	}
}

func TestPresentHoldsFrameAheadOfClock(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 500*time.Millisecond)
	clock := &fakeClock{t: 100 * time.Millisecond}
	target := &fakeTarget{}
	p := New(q, clock, target, Config{Tolerance: 5 * time.Millisecond})

	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if target.uploads != 0 || target.draws != 0 {
		t.Fatalf("ahead frame presented: uploads=%d draws=%d", target.uploads, target.draws)
	}

	// once the clock catches up the held frame is shown
	clock.t = 600 * time.Millisecond
	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("second present: %v", err)
	}
	if target.uploads != 1 || target.draws != 1 {
		t.Fatalf("held frame not presented: uploads=%d draws=%d", target.uploads, target.draws)
	}
}

func TestPresentRedrawsLastFrameWhenQueueEmpty(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 10*time.Millisecond)
	clock := &fakeClock{t: 50 * time.Millisecond}
	target := &fakeTarget{}
	p := New(q, clock, target, Config{Tolerance: 5 * time.Millisecond})

	for i := 0; i < 3; i++ {
		if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if target.uploads != 1 {
		t.Fatalf("uploads=%d, want exactly 1", target.uploads)
	}
	if target.draws != 3 {
		t.Fatalf("draws=%d, want one redraw per pass", target.draws)
	}
}

func TestPresentAfterEndOfStream(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 10*time.Millisecond)
	q.Close()
	clock := &fakeClock{t: 50 * time.Millisecond}
	target := &fakeTarget{}
	p := New(q, clock, target, Config{Tolerance: 5 * time.Millisecond})

	for i := 0; i < 3; i++ {
		if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}
	if !p.Ended() {
		t.Fatal("Ended() false after drained closed queue")
	}
	if target.draws != 3 || target.lastPix[0] != 10 {
		t.Fatalf("last frame not held after EOS: draws=%d pix=%d", target.draws, target.lastPix)
	}
}

func TestPresentUploadFailureRetainsPreviousFrame(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 10*time.Millisecond)
	clock := &fakeClock{t: 50 * time.Millisecond}
	target := &fakeTarget{}
	p := New(q, clock, target, Config{Tolerance: 5 * time.Millisecond})

	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("first present: %v", err)
	}

	push(t, q, 60*time.Millisecond)
	clock.t = 100 * time.Millisecond
	target.uploadErr = errors.New("device lost")
	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("present with failing upload: %v", err)
	}
	if target.lastPix[0] != 10 {
		t.Fatalf("failed upload replaced displayed frame: pix=%d", target.lastPix[0])
	}
	if target.draws != 2 {
		t.Fatalf("draws=%d, want previous frame redrawn", target.draws)
	}
}

func TestPresentNothingDecodedDrawsNothing(t *testing.T) {
	q := playback.NewQueue(4)
	target := &fakeTarget{}
	p := New(q, &fakeClock{}, target, Config{Tolerance: 5 * time.Millisecond})

	if err := p.Present(Viewport{W: 1, H: 1}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if target.uploads != 0 || target.draws != 0 {
		t.Fatalf("drew with no frame ever decoded: uploads=%d draws=%d", target.uploads, target.draws)
	}
}

func TestPresentPassesViewportThrough(t *testing.T) {
	q := playback.NewQueue(4)
	push(t, q, 0)
	target := &fakeTarget{}
	p := New(q, &fakeClock{t: time.Millisecond}, target, Config{Tolerance: 5 * time.Millisecond})

	vp := Viewport{X: 0.25, Y: 0, W: 0.5, H: 1}
	if err := p.Present(vp); err != nil {
		t.Fatalf("present: %v", err)
	}
	if target.lastVP != vp {
		t.Fatalf("viewport %+v, want %+v", target.lastVP, vp)
	}
}
