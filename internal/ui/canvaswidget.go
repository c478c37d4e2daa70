package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/pathkiteja/infinite-notepad/internal/engine"
)

// CanvasWidget displays the engine's surface and translates Fyne pointer
// events into the engine's press/move/release protocol. The widget's
// minimum size is the surface size, so a surrounding scroll container
// provides the panning.
type CanvasWidget struct {
	widget.BaseWidget
	eng      *engine.Engine
	dragging bool
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)

func NewCanvasWidget(eng *engine.Engine) *CanvasWidget {
	c := &CanvasWidget{eng: eng}
	c.ExtendBaseWidget(c)
	return c
}

// Engine returns the engine this widget renders.
func (c *CanvasWidget) Engine() *engine.Engine { return c.eng }

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	primary := e.Button == desktop.MouseButtonPrimary
	c.eng.PointerDown(pt(e.Position), primary)
	c.dragging = primary
	c.Refresh()
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	c.eng.PointerUp(pt(e.Position), e.Button == desktop.MouseButtonPrimary)
	c.dragging = false
	c.Refresh()
}

// Dragged delivers the intermediate points of a primary-button drag; Fyne
// only produces drag events while a button is held.
func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	if !c.dragging {
		return
	}
	c.eng.PointerMove(pt(e.Position), true)
	c.Refresh()
}

func (c *CanvasWidget) DragEnd() {}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent)    {}
func (c *CanvasWidget) MouseOut()                      {}
func (c *CanvasWidget) MouseMoved(*desktop.MouseEvent) {}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(c.eng.Snapshot())
	img.FillMode = canvas.ImageFillStretch
	img.ScaleMode = canvas.ImageScalePixels
	return &canvasWidgetRenderer{cw: c, img: img}
}

type canvasWidgetRenderer struct {
	cw  *CanvasWidget
	img *canvas.Image
}

func (r *canvasWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.img}
}

func (r *canvasWidgetRenderer) Refresh() {
	r.img.Image = r.cw.eng.Snapshot()
	r.img.Refresh()
}

func (r *canvasWidgetRenderer) Layout(size fyne.Size) {
	r.img.Resize(size)
}

func (r *canvasWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.cw.eng.Width()), float32(r.cw.eng.Height()))
}

func (r *canvasWidgetRenderer) Destroy() {}

func pt(p fyne.Position) engine.Point {
	return engine.Point{X: p.X, Y: p.Y}
}
