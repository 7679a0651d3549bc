package surface

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// Canvas is an in-memory RGBA surface. It doubles as its own drawing context
// and keeps counters of the primitives it received.
type Canvas struct {
	mu   sync.Mutex
	img  *image.RGBA
	fill color.RGBA

	fills    int
	clears   int
	presents int
}

// NewCanvas allocates a canvas with the given pixel dimensions
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		fill: color.RGBA{A: 0xff},
	}
}

// Resize reallocates the backing image, discarding its contents
func (c *Canvas) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Context returns the canvas itself
func (c *Canvas) Context() Context {
	return c
}

// Size returns the canvas dimensions in pixels
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetFillStyle sets the fill colour. Unparseable colours are ignored and the
// previous fill colour stays in effect.
func (c *Canvas) SetFillStyle(s string) {
	col, err := ParseColor(s)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.fill = col
	c.mu.Unlock()
}

// FillRect paints the rectangle with the current fill colour
func (c *Canvas) FillRect(x, y, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c.fill), image.Point{}, draw.Src)
	c.fills++
}

// ClearRect resets the rectangle to transparent black
func (c *Canvas) ClearRect(x, y, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), image.Transparent, image.Point{}, draw.Src)
	c.clears++
}

// Present counts completed frames
func (c *Canvas) Present() {
	c.mu.Lock()
	c.presents++
	c.mu.Unlock()
}

// At returns the pixel colour at (x, y)
func (c *Canvas) At(x, y int) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img.RGBAAt(x, y)
}

// Fills returns the number of FillRect calls received
func (c *Canvas) Fills() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fills
}

// Clears returns the number of ClearRect calls received
func (c *Canvas) Clears() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clears
}

// Presents returns the number of frames presented
func (c *Canvas) Presents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.presents
}

// ResetCounters zeroes the primitive counters
func (c *Canvas) ResetCounters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fills, c.clears, c.presents = 0, 0, 0
}
