package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/pathkiteja/infinite-notepad/internal/eval"
)

// newNotesEditor builds the notes entry with the auto-calc hook: ending a
// line with "=" evaluates the expression in front of it and rewrites the
// line as "expr=result". Evaluation failures only surface as a status
// warning; the text is left as typed.
func newNotesEditor(status func(string)) *widget.Entry {
	entry := widget.NewMultiLineEntry()
	entry.SetPlaceHolder("Type your notes here... (end a line with '=' to auto-calc)")
	entry.Wrapping = fyne.TextWrapWord

	var rewriting bool
	entry.OnChanged = func(text string) {
		if rewriting {
			return
		}
		out, changed, err := eval.AutoCalc(text)
		if err != nil {
			status("math: " + err.Error())
			return
		}
		if !changed {
			return
		}
		rewriting = true
		entry.SetText(out)
		// Leave the cursor at the end of the rewritten line.
		lines := strings.Split(out, "\n")
		entry.CursorRow = len(lines) - 1
		entry.CursorColumn = len(lines[len(lines)-1])
		entry.Refresh()
		rewriting = false
		status("")
	}
	return entry
}
