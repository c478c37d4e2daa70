// Package ui is the Fyne layer: a split view pairing the notes editor with
// the scrollable drawing canvas, plus the toolbar and file dialogs. All
// drawing state lives in the injected engine; this package only feeds it
// events and presents its output.
package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/pathkiteja/infinite-notepad/internal/engine"
	"github.com/pathkiteja/infinite-notepad/internal/export"
	"github.com/pathkiteja/infinite-notepad/internal/prefs"
)

// RunApp builds the main window and runs the event loop until the user
// closes it. Preferences are applied on startup and written back on close.
func RunApp(eng *engine.Engine, settings prefs.Settings, prefsPath string, log *slog.Logger) {
	a := app.New()
	win := a.NewWindow("Infinite Notepad")
	win.Resize(fyne.NewSize(settings.WindowWidth, settings.WindowHeight))

	eng.SetPenColor(settings.Color())
	eng.SetPenWidth(settings.PenWidth)

	status := widget.NewLabel("Ready")
	setStatus := func(msg string) {
		if msg == "" {
			msg = "Ready"
		}
		status.SetText(msg)
	}

	notes := newNotesEditor(setStatus)
	cv := NewCanvasWidget(eng)
	scroll := container.NewScroll(cv)

	showSaveDialog := func(name, ext string, write func(fyne.URIWriteCloser) error) {
		d := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if wr == nil {
				return
			}
			defer wr.Close()
			if err := write(wr); err != nil {
				log.Error("save failed", "uri", wr.URI().String(), "err", err)
				dialog.ShowError(err, win)
				return
			}
			setStatus("Saved " + wr.URI().Name())
		}, win)
		d.SetFileName(name)
		d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
		d.Show()
	}

	act := toolbarActions{
		clear: func() {
			eng.Clear()
			cv.Refresh()
			setStatus("Canvas cleared")
		},
		saveCanvas: func() {
			showSaveDialog("canvas.png", ".png", func(wr fyne.URIWriteCloser) error {
				return eng.WriteSurface(wr)
			})
		},
		saveSelection: func() {
			// Empty and zero-area selections are a quiet no-op, not an error.
			if r, ok := eng.SelectionRect(); !ok || r.Empty() {
				setStatus("Nothing selected")
				return
			}
			showSaveDialog("selection.png", ".png", func(wr fyne.URIWriteCloser) error {
				_, err := eng.WriteSelection(wr)
				return err
			})
		},
		exportPDF: func() {
			showSaveDialog("notes.pdf", ".pdf", func(wr fyne.URIWriteCloser) error {
				return export.WriteNotesAndCanvasPDF(wr, notes.Text, eng.Image())
			})
		},
		exportStrokes: func() {
			showSaveDialog("strokes.pdf", ".pdf", func(wr fyne.URIWriteCloser) error {
				return export.WriteStrokesPDF(wr, eng.Width(), eng.Height(), eng.Strokes())
			})
		},
		saveNotes: func() {
			showSaveDialog("notes.txt", ".txt", func(wr fyne.URIWriteCloser) error {
				_, err := wr.Write([]byte(notes.Text))
				return err
			})
		},
	}

	toolbar := NewToolbar(cv, win, act)

	split := container.NewHSplit(notes, scroll)
	split.SetOffset(settings.SplitOffset)

	win.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Save Canvas Image...", act.saveCanvas),
			fyne.NewMenuItem("Save Selection...", act.saveSelection),
			fyne.NewMenuItem("Save Notes...", act.saveNotes),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Export PDF...", act.exportPDF),
			fyne.NewMenuItem("Export Strokes PDF...", act.exportStrokes),
		),
		fyne.NewMenu("Canvas",
			fyne.NewMenuItem("Clear", act.clear),
		),
	))

	win.SetContent(container.NewBorder(toolbar, status, nil, nil, split))

	win.SetOnClosed(func() {
		size := win.Canvas().Size()
		settings.WindowWidth = size.Width
		settings.WindowHeight = size.Height
		settings.SplitOffset = split.Offset
		settings.SetColor(eng.PenColor())
		settings.PenWidth = eng.PenWidth()
		if err := settings.Save(prefsPath); err != nil {
			log.Warn("saving preferences failed", "path", prefsPath, "err", err)
		}
	})

	win.ShowAndRun()
}
