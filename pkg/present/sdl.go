package present

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLTarget renders frames through an SDL2 streaming texture. The texture
// is created lazily on first upload and recreated if the frame size ever
// changes.
type SDLTarget struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
	texW     int32
	texH     int32
}

// NewSDLTarget wraps renderer as a presenter draw target.
func NewSDLTarget(renderer *sdl.Renderer) *SDLTarget {
	return &SDLTarget{renderer: renderer}
}

// Upload copies packed RGBA pixels into the streaming texture.
func (t *SDLTarget) Upload(pix []byte, width, height int) error {
	w, h := int32(width), int32(height)
	if t.texture == nil || w != t.texW || h != t.texH {
		if t.texture != nil {
			t.texture.Destroy()
			t.texture = nil
		}
		tex, err := t.renderer.CreateTexture(
			uint32(sdl.PIXELFORMAT_RGBA32), sdl.TEXTUREACCESS_STREAMING, w, h)
		if err != nil {
			return fmt.Errorf("create texture: %w", err)
		}
		t.texture, t.texW, t.texH = tex, w, h
	}

	pixels, _, err := t.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("lock texture: %w", err)
	}
	copy(pixels, pix)
	t.texture.Unlock()
	return nil
}

// Draw copies the texture into the pixel rectangle described by the
// normalized viewport.
func (t *SDLTarget) Draw(dst Viewport) error {
	if t.texture == nil {
		return nil
	}
	outW, outH, err := t.renderer.GetOutputSize()
	if err != nil {
		return fmt.Errorf("output size: %w", err)
	}
	rect := sdl.Rect{
		X: int32(dst.X * float64(outW)),
		Y: int32(dst.Y * float64(outH)),
		W: int32(dst.W * float64(outW)),
		H: int32(dst.H * float64(outH)),
	}
	return t.renderer.Copy(t.texture, nil, &rect)
}

// Destroy releases the texture. The renderer is owned by the caller.
func (t *SDLTarget) Destroy() {
	if t.texture != nil {
		t.texture.Destroy()
		t.texture = nil
	}
}
