package surface

import "fmt"

// SurfaceNotFoundError is returned when no surface is registered under ID.
type SurfaceNotFoundError struct {
	ID string
}

func (e *SurfaceNotFoundError) Error() string {
	return fmt.Sprintf("surface %q not found", e.ID)
}

// InvalidSurfaceError is returned for a surface that lacks the drawing
// capability.
type InvalidSurfaceError struct {
	Reason string
}

func (e *InvalidSurfaceError) Error() string {
	return "invalid surface: " + e.Reason
}

// InvalidContextError is returned for a drawing context that cannot fill or
// clear rectangles.
type InvalidContextError struct {
	Reason string
}

func (e *InvalidContextError) Error() string {
	return "invalid context: " + e.Reason
}
