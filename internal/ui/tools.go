package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/pathkiteja/infinite-notepad/internal/engine"
)

// toolbarActions are the file-level operations the toolbar triggers; the
// app wires them to save dialogs.
type toolbarActions struct {
	clear         func()
	saveCanvas    func()
	saveSelection func()
	exportPDF     func()
	exportStrokes func()
	saveNotes     func()
}

// colorSwatch is a small tappable color square for the pen palette.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar assembles the tool, color, width and file controls for the
// given canvas widget.
func NewToolbar(cv *CanvasWidget, win fyne.Window, act toolbarActions) fyne.CanvasObject {
	eng := cv.Engine()

	setTool := func(t engine.Tool) {
		eng.SetTool(t)
		cv.Refresh()
	}

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { setTool(engine.ToolPen) }),
		widget.NewToolbarAction(theme.ColorChromaticIcon(), func() { setTool(engine.ToolHighlighter) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { setTool(engine.ToolEraser) }),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() { setTool(engine.ToolSelect) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), act.clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), act.saveCanvas),
		widget.NewToolbarAction(theme.ContentCutIcon(), act.saveSelection),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), act.exportPDF),
		widget.NewToolbarAction(theme.FileTextIcon(), act.saveNotes),
	)

	onColorTapped := func(c color.Color) {
		eng.SetPenColor(c)
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{G: 160, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{B: 255, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{R: 255, G: 200, A: 255}, onColorTapped),
	)

	pickColor := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker("Pen color", "", func(c color.Color) {
			eng.SetPenColor(c)
		}, win)
		picker.Advanced = true
		picker.Show()
	})

	widthSlider := widget.NewSlider(1, 50)
	widthSlider.SetValue(float64(eng.PenWidth()))
	widthSlider.OnChanged = func(v float64) {
		eng.SetPenWidth(float32(v))
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), widthSlider)

	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		pickColor,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}
