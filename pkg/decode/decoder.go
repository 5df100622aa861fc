package decode

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/obinnaokechukwu/ffgo"
	"github.com/obinnaokechukwu/ffgo/avutil"

	"vidframe/pkg/playback"
)

// fallbackFPS is assumed when the container reports no usable frame rate.
const fallbackFPS = 30

// Decoder pulls encoded packets from a container file, decodes the selected
// video stream and emits packed RGBA frames tagged with presentation
// timestamps. It owns the open container; callers own the emitted frames.
type Decoder struct {
	dec    *ffgo.Decoder
	scaler *ffgo.Scaler

	streamIndex int
	width       int
	height      int
	timeBase    avutil.Rational
	frameRate   avutil.Rational

	// lastPTS backs timestamp synthesis for pictures without a PTS, keeping
	// emitted timestamps monotonically non-decreasing.
	lastPTS time.Duration
	havePTS bool
}

// Open opens path and prepares its best video stream for decoding. Every
// startup failure mode (missing file, unrecognized container, no video
// stream, unsupported codec) surfaces here, before any decode goroutine
// starts.
func Open(path string) (*Decoder, error) {
	dec, err := ffgo.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !dec.HasVideo() {
		dec.Close()
		return nil, fmt.Errorf("open %s: no video stream", path)
	}
	if err := dec.OpenVideoDecoder(); err != nil {
		dec.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info := dec.VideoStream()
	scaler, err := ffgo.NewScaler(
		info.Width, info.Height, info.PixelFmt,
		info.Width, info.Height, ffgo.PixelFormatRGBA,
		ffgo.ScaleBilinear,
	)
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("open %s: create scaler: %w", path, err)
	}

	return &Decoder{
		dec:         dec,
		scaler:      scaler,
		streamIndex: info.Index,
		width:       info.Width,
		height:      info.Height,
		timeBase:    info.TimeBase,
		frameRate:   info.FrameRate,
	}, nil
}

// Width returns the video width in pixels.
func (d *Decoder) Width() int { return d.width }

// Height returns the video height in pixels.
func (d *Decoder) Height() int { return d.height }

// FrameInterval returns the nominal duration of one frame at the stream's
// reported rate, falling back to 30fps when the container reports none.
func (d *Decoder) FrameInterval() time.Duration {
	return frameInterval(d.frameRate)
}

// FPS returns the stream's frames-per-second estimate.
func (d *Decoder) FPS() float64 {
	if d.frameRate.Num <= 0 || d.frameRate.Den <= 0 {
		return fallbackFPS
	}
	return d.frameRate.Float64()
}

// NextFrame returns the next decoded frame in presentation order, or io.EOF
// once the stream is exhausted and the codec flushed. A corrupt packet is
// logged and skipped so the codec can resynchronize on the next keyframe;
// only errors the codec cannot recover from are returned.
func (d *Decoder) NextFrame() (*playback.Frame, error) {
	for {
		streamIdx, pkt, err := d.dec.ReadPacket()
		if err != nil {
			if avutil.IsEOF(err) {
				return d.flush()
			}
			return nil, fmt.Errorf("read packet: %w", err)
		}
		if streamIdx != d.streamIndex {
			continue
		}

		frame, err := d.dec.DecodeVideoPacket(pkt)
		if err != nil {
			log.Printf("decode: skipping corrupt packet: %v", err)
			continue
		}
		if frame.IsNil() {
			continue // codec wants more input
		}
		return d.convert(frame)
	}
}

// flush drains buffered pictures out of the codec at end of stream. Called
// once per NextFrame after the container is exhausted, so a codec holding
// several pictures gives them up one at a time.
func (d *Decoder) flush() (*playback.Frame, error) {
	frame, err := d.dec.DecodeVideoPacket(nil)
	if err != nil {
		if avutil.IsEOF(err) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("flush: %w", err)
	}
	if frame.IsNil() {
		return nil, io.EOF
	}
	return d.convert(frame)
}

// convert scales the decoded picture to packed RGBA and copies it into a
// tightly packed buffer, dropping any per-row stride padding swscale leaves.
func (d *Decoder) convert(src ffgo.Frame) (*playback.Frame, error) {
	pts := d.framePTS(ffgo.WrapFrame(src, ffgo.MediaTypeVideo).PTS())

	scaled, err := d.scaler.Scale(src)
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	data := ffgo.WrapFrame(scaled, ffgo.MediaTypeVideo).Data(0)
	if len(data) == 0 || d.height <= 0 {
		return nil, fmt.Errorf("scale: empty frame data")
	}

	rowBytes := 4 * d.width
	stride := len(data) / d.height
	pix := make([]byte, rowBytes*d.height)
	if stride == rowBytes {
		copy(pix, data)
	} else {
		for y := 0; y < d.height; y++ {
			copy(pix[y*rowBytes:(y+1)*rowBytes], data[y*stride:y*stride+rowBytes])
		}
	}

	return &playback.Frame{Pixels: pix, Width: d.width, Height: d.height, PTS: pts}, nil
}

// framePTS maps a raw stream-timebase timestamp to a duration since stream
// start. Pictures without a timestamp are scheduled one frame interval after
// the previous picture.
func (d *Decoder) framePTS(raw int64) time.Duration {
	pts, ok := ptsToDuration(raw, d.timeBase)
	if !ok {
		if d.havePTS {
			pts = d.lastPTS + d.FrameInterval()
		} else {
			pts = 0
		}
	}
	if d.havePTS && pts < d.lastPTS {
		pts = d.lastPTS
	}
	d.lastPTS = pts
	d.havePTS = true
	return pts
}

// Close releases the scaler and the container.
func (d *Decoder) Close() {
	if d.scaler != nil {
		d.scaler.Close()
		d.scaler = nil
	}
	if d.dec != nil {
		d.dec.Close()
		d.dec = nil
	}
}

// ptsToDuration converts a timestamp expressed in tb units to a duration.
// ok is false when the timestamp is missing or the time base is unusable.
func ptsToDuration(pts int64, tb avutil.Rational) (time.Duration, bool) {
	if pts == avutil.NoPTSValue || tb.Num <= 0 || tb.Den <= 0 {
		return 0, false
	}
	return time.Duration(pts * int64(tb.Num) * int64(time.Second) / int64(tb.Den)), true
}

// frameInterval derives the nominal frame duration from a frame rate.
func frameInterval(rate avutil.Rational) time.Duration {
	if rate.Num <= 0 || rate.Den <= 0 {
		return time.Second / fallbackFPS
	}
	return time.Duration(int64(time.Second) * int64(rate.Den) / int64(rate.Num))
}
