package engine

import (
	"fmt"
	"image/color"
)

// Point is a position in surface (content) coordinates.
type Point struct {
	X float32
	Y float32
}

// Tool selects how pointer input is interpreted. The three ink tools paint
// onto the surface; ToolSelect drags out a rectangle for cropped export.
type Tool int

const (
	ToolPen Tool = iota
	ToolHighlighter
	ToolEraser
	ToolSelect
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolHighlighter:
		return "highlighter"
	case ToolEraser:
		return "eraser"
	case ToolSelect:
		return "select"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps a tool name ("pen", "highlighter", "eraser", "select")
// to its Tool value.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "pen":
		return ToolPen, nil
	case "highlighter":
		return ToolHighlighter, nil
	case "eraser":
		return ToolEraser, nil
	case "select":
		return ToolSelect, nil
	}
	return ToolPen, fmt.Errorf("unknown tool %q", name)
}

// Stroke is one committed pointer-down-to-pointer-up drag. Once committed
// it is immutable; the pixels are already baked into the surface, the
// history entry exists for re-plotting (PDF export) and inspection.
type Stroke struct {
	ID     string
	Tool   Tool
	Points []Point
	Color  color.Color
	Width  float32
}
