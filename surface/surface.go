// Package surface defines the drawing capability the simulation renders into
// and ships two implementations: an in-memory RGBA canvas and a tcell-backed
// terminal screen.
package surface

import (
	"reflect"
)

// Context is the minimal set of pixel primitives a grid needs to render.
type Context interface {
	// SetFillStyle sets the colour used by subsequent FillRect calls.
	SetFillStyle(color string)
	FillRect(x, y, w, h int)
	ClearRect(x, y, w, h int)
	// Size reports the dimensions of the backing surface in pixels.
	Size() (width, height int)
}

// Presenter is implemented by contexts that buffer drawing and need an
// explicit flush once a frame is complete.
type Presenter interface {
	Present()
}

// Surface is a resizable drawing target able to produce a Context.
type Surface interface {
	Resize(width, height int)
	Context() Context
}

// Provider looks up drawing surfaces by identifier.
type Provider interface {
	Acquire(id string) (Surface, error)
}

// ValidateSurface reports an InvalidSurfaceError when s cannot be drawn on
func ValidateSurface(s Surface) error {
	if isNil(s) {
		return &InvalidSurfaceError{Reason: "surface is nil"}
	}
	return nil
}

// ValidateContext reports an InvalidContextError when ctx cannot be drawn on
func ValidateContext(ctx Context) error {
	if isNil(ctx) {
		return &InvalidContextError{Reason: "context is nil"}
	}
	return nil
}

// Present flushes ctx if it buffers its output.
func Present(ctx Context) {
	if p, ok := ctx.(Presenter); ok {
		p.Present()
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
