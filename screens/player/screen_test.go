package player

import (
	"math"
	"testing"

	"vidframe/pkg/present"
)

func viewportNear(a, b present.Viewport) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.W-b.W) < eps && math.Abs(a.H-b.H) < eps
}

func TestLetterboxExactFit(t *testing.T) {
	got := Letterbox(1920, 1080, 1920, 1080)
	if !viewportNear(got, present.Viewport{X: 0, Y: 0, W: 1, H: 1}) {
		t.Fatalf("exact fit: %+v", got)
	}
}

func TestLetterboxPillarbox(t *testing.T) {
	// 16:9 video on an ultrawide surface: full height, centered bars left
	// and right.
	got := Letterbox(1920, 1080, 3840, 1080)
	if !viewportNear(got, present.Viewport{X: 0.25, Y: 0, W: 0.5, H: 1}) {
		t.Fatalf("pillarbox: %+v", got)
	}
}

func TestLetterboxBars(t *testing.T) {
	// square video on a 2:1 surface scales by height
	got := Letterbox(100, 100, 200, 100)
	if !viewportNear(got, present.Viewport{X: 0.25, Y: 0, W: 0.5, H: 1}) {
		t.Fatalf("square on wide: %+v", got)
	}

	// wide video on a square surface scales by width
	got = Letterbox(200, 100, 100, 100)
	if !viewportNear(got, present.Viewport{X: 0, Y: 0.25, W: 1, H: 0.5}) {
		t.Fatalf("wide on square: %+v", got)
	}
}

func TestLetterboxDegenerateInput(t *testing.T) {
	got := Letterbox(0, 0, 1920, 1080)
	if !viewportNear(got, present.Viewport{W: 1, H: 1}) {
		t.Fatalf("degenerate input: %+v", got)
	}
}
