// Package engine implements the raster canvas engine: a fixed-size pixel
// surface that freehand strokes are composited onto incrementally, plus a
// rectangular selection used for cropped export. The engine is toolkit
// agnostic; the UI layer feeds it pointer events and blits Snapshot().
//
// All methods must be called from a single goroutine (the UI event loop).
// The engine holds no locks.
package engine

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/google/uuid"
)

// Default pen configuration, matching the stock toolbar state.
const (
	DefaultPenWidth         float32 = 3
	DefaultHighlighterWidth float32 = 20
	DefaultEraserWidth      float32 = 20
)

// selectionOutline is the accent color of the dashed selection rectangle.
var selectionOutline = color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}

// Engine owns the drawing surface and all drawing/selection state.
type Engine struct {
	width  int
	height int

	surface    *gg.Context
	background color.Color

	tool             Tool
	penColor         color.Color
	highlightColor   color.Color
	penWidth         float32
	highlighterWidth float32
	eraserWidth      float32

	// Active stroke, present only between a primary-button press and
	// release while an ink tool is selected.
	drawing bool
	active  *Stroke

	// Selection corners, valid only while selStarted.
	selStarted bool
	selStart   Point
	selEnd     Point

	strokes []Stroke

	log *slog.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBackground sets the surface background color. Default is white.
func WithBackground(c color.Color) Option {
	return func(e *Engine) { e.background = c }
}

// WithLogger sets the engine's logger. By default the engine is silent.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine with a width x height surface filled with the
// background color.
func New(width, height int, opts ...Option) *Engine {
	e := &Engine{
		width:            width,
		height:           height,
		background:       color.White,
		tool:             ToolPen,
		penColor:         color.Black,
		penWidth:         DefaultPenWidth,
		highlighterWidth: DefaultHighlighterWidth,
		eraserWidth:      DefaultEraserWidth,
		log:              slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.highlightColor = translucent(e.penColor)
	e.surface = gg.NewContext(width, height)
	e.surface.ClearWithColor(gg.FromColor(e.background))
	return e
}

// Width returns the surface width in pixels.
func (e *Engine) Width() int { return e.width }

// Height returns the surface height in pixels.
func (e *Engine) Height() int { return e.height }

// CurrentTool returns the active tool.
func (e *Engine) CurrentTool() Tool { return e.tool }

// PenColor returns the current pen color.
func (e *Engine) PenColor() color.Color { return e.penColor }

// PenWidth returns the current pen width.
func (e *Engine) PenWidth() float32 { return e.penWidth }

// Strokes returns a copy of the committed stroke history.
func (e *Engine) Strokes() []Stroke {
	out := make([]Stroke, len(e.strokes))
	copy(out, e.strokes)
	return out
}

// SetTool switches the active tool. Any in-progress selection rectangle is
// discarded; committed strokes and already-painted pixels are untouched.
func (e *Engine) SetTool(t Tool) {
	if t != e.tool {
		e.log.Debug("tool changed", "from", e.tool.String(), "to", t.String())
	}
	e.tool = t
	e.selStarted = false
}

// SetPenColor sets the pen color. The highlighter uses a half-transparent
// version of the same color.
func (e *Engine) SetPenColor(c color.Color) {
	e.penColor = c
	e.highlightColor = translucent(c)
}

// SetPenWidth sets the pen stroke width. Widths below one pixel are clamped.
func (e *Engine) SetPenWidth(w float32) {
	if w < 1 {
		w = 1
	}
	e.penWidth = w
}

func translucent(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 128}
}

// PointerDown handles a button press at p. Only the primary button starts a
// stroke or a selection.
func (e *Engine) PointerDown(p Point, primary bool) {
	if !primary {
		return
	}
	if e.tool == ToolSelect {
		e.selStarted = true
		e.selStart = p
		e.selEnd = p
		return
	}
	e.drawing = true
	e.active = &Stroke{
		ID:     uuid.NewString(),
		Tool:   e.tool,
		Points: []Point{p},
	}
}

// PointerMove handles pointer motion with the primary button held. While an
// ink tool is drawing, only the segment from the previous point to p is
// painted, so the cost per event does not grow with stroke length. A move
// without a preceding press is a no-op.
func (e *Engine) PointerMove(p Point, primary bool) {
	if e.tool == ToolSelect {
		if e.selStarted {
			e.selEnd = p
		}
		return
	}
	if !primary || !e.drawing || e.active == nil {
		return
	}
	last := e.active.Points[len(e.active.Points)-1]
	e.active.Points = append(e.active.Points, p)
	e.paintSegment(last, p)
}

// PointerUp handles the primary button release at p. In an ink tool the
// active stroke is committed to history; in select the end corner is
// updated and the selection persists. A release while idle is a no-op.
func (e *Engine) PointerUp(p Point, primary bool) {
	if !primary {
		return
	}
	if e.tool == ToolSelect {
		if e.selStarted {
			e.selEnd = p
		}
		return
	}
	if !e.drawing {
		return
	}
	e.drawing = false
	if e.active != nil {
		e.active.Color, e.active.Width = e.toolPaint(e.active.Tool)
		e.strokes = append(e.strokes, *e.active)
		e.log.Debug("stroke committed", "id", e.active.ID, "points", len(e.active.Points))
	}
	e.active = nil
}

// toolPaint returns the color and width an ink tool paints with right now.
// Pen settings are read per segment, so changing them mid-drag affects the
// rest of that same stroke.
func (e *Engine) toolPaint(t Tool) (color.Color, float32) {
	switch t {
	case ToolHighlighter:
		return e.highlightColor, e.highlighterWidth
	case ToolEraser:
		return e.background, e.eraserWidth
	default:
		return e.penColor, e.penWidth
	}
}

func (e *Engine) paintSegment(a, b Point) {
	col, width := e.toolPaint(e.active.Tool)
	e.surface.SetColor(col)
	e.surface.SetLineWidth(float64(width))
	e.surface.SetLineCap(gg.LineCapRound)
	e.surface.SetLineJoin(gg.LineJoinRound)
	e.surface.DrawLine(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
	if err := e.surface.Stroke(); err != nil {
		e.log.Warn("segment stroke failed", "err", err)
	}
}

// SelectionRect returns the normalized selection rectangle, or false when
// no selection has been started since the last tool switch. A zero-area
// rectangle is still reported; export decides whether it is usable.
func (e *Engine) SelectionRect() (image.Rectangle, bool) {
	if !e.selStarted {
		return image.Rectangle{}, false
	}
	r := image.Rect(
		int(e.selStart.X), int(e.selStart.Y),
		int(e.selEnd.X), int(e.selEnd.Y),
	)
	return r, true
}

// Clear repaints the surface to the background color and drops the
// committed stroke history and any active stroke. Tool and selection state
// are left alone.
func (e *Engine) Clear() {
	e.surface.ClearWithColor(gg.FromColor(e.background))
	e.strokes = nil
	e.active = nil
	e.drawing = false
	e.log.Debug("surface cleared")
}

// Image returns a copy of the surface pixels.
func (e *Engine) Image() *image.RGBA {
	return rgbaImage(e.surface.Image())
}

// Snapshot returns the surface with, in select mode only, the dashed
// selection outline composited on top. The outline is drawn on the copy,
// never on the surface itself.
func (e *Engine) Snapshot() *image.RGBA {
	img := e.Image()
	if e.tool != ToolSelect || !e.selStarted {
		return img
	}
	r, _ := e.SelectionRect()
	overlay := gg.NewContextForImage(img)
	overlay.SetColor(selectionOutline)
	overlay.SetLineWidth(1.5)
	overlay.SetDash(6, 4)
	overlay.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	if err := overlay.Stroke(); err != nil {
		e.log.Warn("selection outline failed", "err", err)
		return img
	}
	return rgbaImage(overlay.Image())
}

func rgbaImage(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
