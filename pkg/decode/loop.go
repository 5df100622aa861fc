package decode

import (
	"context"
	"errors"
	"io"
	"log"

	"vidframe/pkg/playback"
)

// Loop is the decode goroutine body: park while playback is paused, decode
// the next frame, hand it to the bounded queue (the backpressure point).
// The queue is closed on end of stream and on unrecoverable decode errors
// alike, so the presenter quietly keeps showing the last good frame instead
// of tearing down the render loop.
func Loop(ctx context.Context, dec *Decoder, ctrl *playback.Controller, queue *playback.Queue) {
	defer queue.Close()

	for {
		// Re-fetch the gate every iteration; it is swapped on each pause.
		select {
		case <-ctx.Done():
			return
		case <-ctrl.Gate():
		}

		frame, err := dec.NextFrame()
		if errors.Is(err, io.EOF) {
			log.Printf("decode: end of stream")
			return
		}
		if err != nil {
			log.Printf("decode: unrecoverable error, halting: %v", err)
			return
		}

		if err := queue.Push(ctx, frame); err != nil {
			return // shutdown while waiting for queue space
		}
	}
}
