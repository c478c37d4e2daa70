package engine

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// SaveSurface writes the whole surface to path as PNG. I/O failures are
// returned to the caller; the in-memory surface is unaffected either way.
func (e *Engine) SaveSurface(path string) error {
	if err := e.surface.SavePNG(path); err != nil {
		return fmt.Errorf("save surface: %w", err)
	}
	e.log.Info("surface saved", "path", path)
	return nil
}

// WriteSurface encodes the whole surface as PNG to w.
func (e *Engine) WriteSurface(w io.Writer) error {
	if err := e.surface.EncodePNG(w); err != nil {
		return fmt.Errorf("write surface: %w", err)
	}
	return nil
}

// SaveSelection crops the normalized selection rectangle out of the surface
// and writes it to path as PNG. An unset or zero-area selection performs no
// write and reports saved=false with a nil error: empty selections are
// ignored, not failed.
func (e *Engine) SaveSelection(path string) (saved bool, err error) {
	crop, ok := e.cropSelection()
	if !ok {
		return false, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("save selection: %w", err)
	}
	if err := png.Encode(f, crop); err != nil {
		f.Close()
		return false, fmt.Errorf("save selection: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("save selection: %w", err)
	}
	e.log.Info("selection saved", "path", path, "bounds", crop.Bounds().Size().String())
	return true, nil
}

// WriteSelection encodes the cropped selection as PNG to w, with the same
// empty-selection policy as SaveSelection.
func (e *Engine) WriteSelection(w io.Writer) (saved bool, err error) {
	crop, ok := e.cropSelection()
	if !ok {
		return false, nil
	}
	if err := png.Encode(w, crop); err != nil {
		return false, fmt.Errorf("write selection: %w", err)
	}
	return true, nil
}

// cropSelection copies the selected surface region into its own buffer.
// The rectangle is clamped to the surface bounds before cropping.
func (e *Engine) cropSelection() (*image.RGBA, bool) {
	r, ok := e.SelectionRect()
	if !ok || r.Empty() {
		return nil, false
	}
	r = r.Intersect(image.Rect(0, 0, e.width, e.height))
	if r.Empty() {
		return nil, false
	}
	crop := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(crop, crop.Bounds(), e.Image(), r.Min, draw.Src)
	return crop, true
}
