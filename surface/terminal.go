package surface

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const (
	// DefaultPixelsPerColumn maps a 20px cell onto two terminal columns.
	DefaultPixelsPerColumn = 10
	// DefaultPixelsPerRow maps a 20px cell onto one terminal row.
	DefaultPixelsPerRow = 20

	blockRune = ' '
)

// Terminal draws onto a tcell screen. Pixel rectangles are mapped onto
// terminal cells using a fixed number of pixels per column and per row; the
// drawable area starts at the screen row given by top.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	pxPerCol int
	pxPerRow int
	top      int

	width  int
	height int
	fill   tcell.Color
}

// NewTerminal wraps screen as a drawing surface
func NewTerminal(screen tcell.Screen, pxPerCol, pxPerRow, top int) *Terminal {
	if pxPerCol <= 0 {
		pxPerCol = DefaultPixelsPerColumn
	}
	if pxPerRow <= 0 {
		pxPerRow = DefaultPixelsPerRow
	}
	return &Terminal{
		screen:   screen,
		pxPerCol: pxPerCol,
		pxPerRow: pxPerRow,
		top:      max(top, 0),
		fill:     tcell.ColorBlack,
	}
}

// Resize sets the logical pixel size of the surface
func (t *Terminal) Resize(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height = width, height
}

// Context returns the terminal itself, or nil when no screen is attached.
func (t *Terminal) Context() Context {
	if t.screen == nil {
		return nil
	}
	return t
}

// Size returns the logical pixel size of the surface
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height
}

// Cells returns the number of terminal columns and rows the surface covers
func (t *Terminal) Cells() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ceilDiv(t.width, t.pxPerCol), ceilDiv(t.height, t.pxPerRow)
}

// SetFillStyle sets the background colour used by FillRect. Unknown colour
// names are ignored.
func (t *Terminal) SetFillStyle(s string) {
	c := tcell.GetColor(strings.ToLower(strings.TrimSpace(s)))
	if c == tcell.ColorDefault {
		return
	}
	t.mu.Lock()
	t.fill = c
	t.mu.Unlock()
}

// FillRect paints every terminal cell touched by the rectangle
func (t *Terminal) FillRect(x, y, w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paint(x, y, w, h, tcell.StyleDefault.Background(t.fill))
}

// ClearRect resets every terminal cell touched by the rectangle
func (t *Terminal) ClearRect(x, y, w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paint(x, y, w, h, tcell.StyleDefault)
}

// Present flushes pending changes to the terminal
func (t *Terminal) Present() {
	t.screen.Show()
}

func (t *Terminal) paint(x, y, w, h int, style tcell.Style) {
	var (
		maxCol = ceilDiv(t.width, t.pxPerCol)
		maxRow = ceilDiv(t.height, t.pxPerRow)
		col0   = max(0, x/t.pxPerCol)
		row0   = max(0, y/t.pxPerRow)
		col1   = min(maxCol, ceilDiv(x+w, t.pxPerCol))
		row1   = min(maxRow, ceilDiv(y+h, t.pxPerRow))
	)

	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			t.screen.SetContent(col, t.top+row, blockRune, nil, style)
		}
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
