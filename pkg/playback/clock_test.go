package playback

import (
	"testing"
	"time"
)

func TestClockAdvancesWhilePlaying(t *testing.T) {
	c := NewClock()
	a := c.Now()
	time.Sleep(20 * time.Millisecond)
	b := c.Now()
	if b <= a {
		t.Fatalf("clock did not advance: a=%v b=%v", a, b)
	}
}

func TestClockFrozenWhilePaused(t *testing.T) {
	c := NewClock()
	c.Pause()
	a := c.Now()
	time.Sleep(20 * time.Millisecond)
	b := c.Now()
	if a != b {
		t.Fatalf("paused clock moved: a=%v b=%v", a, b)
	}
}

func TestClockResumeKeepsOffset(t *testing.T) {
	c := NewClock()
	time.Sleep(30 * time.Millisecond)
	c.Pause()
	frozen := c.Now()
	if frozen < 30*time.Millisecond {
		t.Fatalf("frozen offset too small: %v", frozen)
	}

	// A long pause must not leak into playback time.
	time.Sleep(50 * time.Millisecond)
	c.Resume()
	resumed := c.Now()
	if resumed < frozen {
		t.Fatalf("clock ran backward across resume: frozen=%v resumed=%v", frozen, resumed)
	}
	if resumed > frozen+20*time.Millisecond {
		t.Fatalf("pause duration leaked into clock: frozen=%v resumed=%v", frozen, resumed)
	}
}

func TestClockMonotonicAcrossToggles(t *testing.T) {
	c := NewClock()
	prev := c.Now()
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			c.Pause()
		} else {
			c.Resume()
		}
		time.Sleep(2 * time.Millisecond)
		now := c.Now()
		if now < prev {
			t.Fatalf("iteration %d: clock ran backward: prev=%v now=%v", i, prev, now)
		}
		prev = now
	}
}

func TestClockPauseIdempotent(t *testing.T) {
	c := NewClock()
	c.Pause()
	a := c.Now()
	c.Pause()
	if b := c.Now(); a != b {
		t.Fatalf("double pause changed offset: a=%v b=%v", a, b)
	}
	if !c.Paused() {
		t.Fatal("expected paused")
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock()
	time.Sleep(10 * time.Millisecond)
	c.Reset()
	if now := c.Now(); now > 5*time.Millisecond {
		t.Fatalf("reset clock too far along: %v", now)
	}
}
