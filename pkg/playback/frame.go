package playback

import "time"

// Frame is one decoded video picture in packed RGBA layout (4 bytes per
// pixel, tightly packed rows). Ownership transfers from the decoder to the
// queue on Push and from the queue to the presenter on TryPop; at most one
// frame is current (displayed) at any time.
type Frame struct {
	Pixels []byte
	Width  int
	Height int

	// PTS is the presentation timestamp as a duration since stream start.
	PTS time.Duration
}
