package present

// Viewport is a normalized destination rectangle in [0,1] screen-fraction
// coordinates. The host UI layer supplies one per render pass; the core
// never decides where on screen the video goes.
type Viewport struct {
	X, Y, W, H float64
}

// Target is the GPU surface the presenter draws to: a fixed-function
// pipeline that samples one 2D texture into a destination rectangle. The
// presenter performs at most one Upload and one Draw per render pass.
type Target interface {
	// Upload replaces the texture contents with packed RGBA pixels.
	Upload(pix []byte, width, height int) error

	// Draw samples the current texture into dst.
	Draw(dst Viewport) error
}
