package surface

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
)

func TestRegistryAcquire(t *testing.T) {
	reg := NewRegistry()
	canvas := NewCanvas(10, 10)
	reg.Register("gol", canvas)

	got, err := reg.Acquire("gol")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if got != Surface(canvas) {
		t.Fatalf("Acquire returned a different surface")
	}

	_, err = reg.Acquire("missing")
	var notFound *SurfaceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SurfaceNotFoundError, got %v", err)
	}
	if notFound.ID != "missing" {
		t.Fatalf("SurfaceNotFoundError.ID = %q, expected %q", notFound.ID, "missing")
	}

	reg.Unregister("gol")
	if _, err := reg.Acquire("gol"); err == nil {
		t.Fatalf("expected error after Unregister")
	}
}

func TestValidate(t *testing.T) {
	var invalidSurface *InvalidSurfaceError
	if err := ValidateSurface(nil); !errors.As(err, &invalidSurface) {
		t.Fatalf("ValidateSurface(nil) = %v, expected InvalidSurfaceError", err)
	}
	var typedNil *Canvas
	if err := ValidateSurface(typedNil); !errors.As(err, &invalidSurface) {
		t.Fatalf("ValidateSurface(typed nil) = %v, expected InvalidSurfaceError", err)
	}
	if err := ValidateSurface(NewCanvas(1, 1)); err != nil {
		t.Fatalf("ValidateSurface(canvas) = %v", err)
	}

	var invalidContext *InvalidContextError
	if err := ValidateContext(nil); !errors.As(err, &invalidContext) {
		t.Fatalf("ValidateContext(nil) = %v, expected InvalidContextError", err)
	}
	if err := ValidateContext(typedNil); !errors.As(err, &invalidContext) {
		t.Fatalf("ValidateContext(typed nil) = %v, expected InvalidContextError", err)
	}
	if err := ValidateContext(NewCanvas(1, 1)); err != nil {
		t.Fatalf("ValidateContext(canvas) = %v", err)
	}

	// a terminal without a screen cannot produce a context
	if err := ValidateContext(NewTerminal(nil, 0, 0, 0).Context()); !errors.As(err, &invalidContext) {
		t.Fatalf("expected InvalidContextError for screenless terminal, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "black", want: color.RGBA{A: 0xff}},
		{in: "Red", want: color.RGBA{R: 0xff, A: 0xff}},
		{in: " white ", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "#0f0", want: color.RGBA{G: 0xff, A: 0xff}},
		{in: "#102030", want: color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}},
		{in: "transparent", want: color.RGBA{}},
		{in: "#12", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "notacolour", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseColor(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseColor(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCanvasFillAndClear(t *testing.T) {
	canvas := NewCanvas(4, 4)
	canvas.Resize(40, 20)

	if w, h := canvas.Size(); w != 40 || h != 20 {
		t.Fatalf("Size() = %dx%d, expected 40x20", w, h)
	}

	canvas.SetFillStyle("red")
	canvas.FillRect(0, 0, 20, 20)

	red := color.RGBA{R: 0xff, A: 0xff}
	if got := canvas.At(5, 5); got != red {
		t.Fatalf("pixel (5,5) = %v, expected %v", got, red)
	}
	if got := canvas.At(25, 5); got != (color.RGBA{}) {
		t.Fatalf("pixel (25,5) = %v, expected transparent", got)
	}

	// unknown colours keep the previous fill style
	canvas.SetFillStyle("nope")
	canvas.FillRect(20, 0, 20, 20)
	if got := canvas.At(25, 5); got != red {
		t.Fatalf("pixel (25,5) = %v, expected %v", got, red)
	}

	canvas.ClearRect(0, 0, 40, 20)
	if got := canvas.At(5, 5); got != (color.RGBA{}) {
		t.Fatalf("pixel (5,5) after clear = %v, expected transparent", got)
	}

	canvas.Present()
	if canvas.Fills() != 2 || canvas.Clears() != 1 || canvas.Presents() != 1 {
		t.Fatalf("counters = fills %d clears %d presents %d", canvas.Fills(), canvas.Clears(), canvas.Presents())
	}

	canvas.ResetCounters()
	if canvas.Fills() != 0 || canvas.Clears() != 0 || canvas.Presents() != 0 {
		t.Fatalf("counters not reset")
	}
}
