// Package export renders notes and canvas content into PDF documents.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/pathkiteja/infinite-notepad/internal/engine"
)

// A4 page geometry in millimeters, with a 10mm margin all around.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 10.0
	contentW   = pageWidth - 2*margin
	contentH   = pageHeight - 2*margin
)

// Embedded rasters are bounded to keep document size reasonable.
const maxEmbedPx = 1000

// NotesAndCanvasPDF writes a single A4 page with the notes text on the top
// half and the canvas raster on the bottom half.
func NotesAndCanvasPDF(path, notes string, canvas image.Image) error {
	p, err := notesAndCanvasDoc(notes, canvas)
	if err != nil {
		return err
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteNotesAndCanvasPDF is NotesAndCanvasPDF targeting an io.Writer, for
// save dialogs that hand out an open writer instead of a path.
func WriteNotesAndCanvasPDF(w io.Writer, notes string, canvas image.Image) error {
	p, err := notesAndCanvasDoc(notes, canvas)
	if err != nil {
		return err
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func notesAndCanvasDoc(notes string, canvas image.Image) (*gofpdf.Fpdf, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetMargins(margin, margin, margin)
	p.AddPage()

	p.SetFont("Helvetica", "", 11)
	p.MultiCell(contentW, 5, notes, "", "L", false)

	scaled := ScaleToFit(canvas, maxEmbedPx, maxEmbedPx)
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("canvas", opts, &buf)

	// Bottom half of the content area, aspect-fit.
	boxY := margin + contentH/2
	boxH := contentH / 2
	b := scaled.Bounds()
	w, h := fitBox(float64(b.Dx()), float64(b.Dy()), contentW, boxH)
	p.ImageOptions("canvas", margin, boxY, w, h, false, opts, 0, "")
	return p, nil
}

// StrokesPDF re-plots the committed stroke history as vector line segments
// on a single A4 page. surfaceW and surfaceH give the canvas dimensions the
// stroke coordinates live in.
func StrokesPDF(path string, surfaceW, surfaceH int, strokes []engine.Stroke) error {
	p, err := strokesDoc(surfaceW, surfaceH, strokes)
	if err != nil {
		return err
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteStrokesPDF is StrokesPDF targeting an io.Writer.
func WriteStrokesPDF(w io.Writer, surfaceW, surfaceH int, strokes []engine.Stroke) error {
	p, err := strokesDoc(surfaceW, surfaceH, strokes)
	if err != nil {
		return err
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func strokesDoc(surfaceW, surfaceH int, strokes []engine.Stroke) (*gofpdf.Fpdf, error) {
	if surfaceW <= 0 || surfaceH <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", surfaceW, surfaceH)
	}
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	scale := contentW / float64(surfaceW)
	if s := contentH / float64(surfaceH); s < scale {
		scale = s
	}

	for _, st := range strokes {
		col := st.Color
		if col == nil {
			col = color.Black
		}
		r, g, b, _ := col.RGBA()
		p.SetDrawColor(int(r>>8), int(g>>8), int(b>>8))
		p.SetLineWidth(float64(st.Width) * scale)
		p.SetLineCapStyle("round")
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				margin+float64(st.Points[i-1].X)*scale, margin+float64(st.Points[i-1].Y)*scale,
				margin+float64(st.Points[i].X)*scale, margin+float64(st.Points[i].Y)*scale,
			)
		}
	}
	return p, nil
}

// fitBox scales (w, h) to fit inside (boxW, boxH) preserving aspect ratio.
func fitBox(w, h, boxW, boxH float64) (float64, float64) {
	scale := boxW / w
	if s := boxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
