package engine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// drag replays a press / move... / release sequence with the primary button.
func drag(e *Engine, pts ...Point) {
	e.PointerDown(pts[0], true)
	for _, p := range pts[1:] {
		e.PointerMove(p, true)
	}
	e.PointerUp(pts[len(pts)-1], true)
}

func isBackground(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 > 240 && g>>8 > 240 && b>>8 > 240
}

func TestNewEngineBlankSurface(t *testing.T) {
	e := New(100, 80)
	if e.Width() != 100 || e.Height() != 80 {
		t.Fatalf("size = %dx%d, want 100x80", e.Width(), e.Height())
	}
	img := e.Image()
	if got := img.Bounds().Size(); got != image.Pt(100, 80) {
		t.Fatalf("image size = %v, want (100,80)", got)
	}
	if !isBackground(img.At(50, 40)) {
		t.Errorf("fresh surface pixel not background: %v", img.At(50, 40))
	}
}

func TestDrawStrokeConnectsPoints(t *testing.T) {
	e := New(100, 100)
	pts := []Point{{10, 10}, {30, 10}, {30, 30}, {50, 30}}
	drag(e, pts...)

	img := e.Image()
	for _, p := range pts {
		if isBackground(img.At(int(p.X), int(p.Y))) {
			t.Errorf("point (%v,%v) not painted", p.X, p.Y)
		}
	}
	// Segment midpoints must be painted too: the path is connected.
	for i := 1; i < len(pts); i++ {
		mx := int((pts[i-1].X + pts[i].X) / 2)
		my := int((pts[i-1].Y + pts[i].Y) / 2)
		if isBackground(img.At(mx, my)) {
			t.Errorf("segment %d midpoint (%d,%d) not painted", i, mx, my)
		}
	}

	strokes := e.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("stroke history length = %d, want 1", len(strokes))
	}
	if len(strokes[0].Points) != len(pts) {
		t.Errorf("committed points = %d, want %d", len(strokes[0].Points), len(pts))
	}
	if strokes[0].ID == "" {
		t.Error("committed stroke has empty ID")
	}
	if strokes[0].Tool != ToolPen {
		t.Errorf("committed tool = %v, want pen", strokes[0].Tool)
	}
}

func TestMoveWithoutPressIsNoOp(t *testing.T) {
	e := New(50, 50)
	e.PointerMove(Point{25, 25}, true)
	e.PointerUp(Point{25, 25}, true)

	if !isBackground(e.Image().At(25, 25)) {
		t.Error("surface changed by move without press")
	}
	if len(e.Strokes()) != 0 {
		t.Errorf("stroke history = %d, want 0", len(e.Strokes()))
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	e := New(50, 50)
	e.PointerDown(Point{10, 10}, false)
	e.PointerMove(Point{30, 30}, false)
	e.PointerUp(Point{30, 30}, false)

	if !isBackground(e.Image().At(20, 20)) {
		t.Error("secondary button painted the surface")
	}
	if len(e.Strokes()) != 0 {
		t.Errorf("stroke history = %d, want 0", len(e.Strokes()))
	}
}

func TestToolSwitchPreservesPixelsAndHistory(t *testing.T) {
	e := New(80, 80)
	drag(e, Point{10, 40}, Point{70, 40})
	before := e.Image()

	e.SetTool(ToolSelect)
	e.SetTool(ToolPen)

	after := e.Image()
	if !bytes.Equal(before.Pix, after.Pix) {
		t.Error("tool switch altered surface pixels")
	}
	if len(e.Strokes()) != 1 {
		t.Errorf("stroke history = %d after tool switch, want 1", len(e.Strokes()))
	}
}

func TestSelectionRect(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolSelect)

	if _, ok := e.SelectionRect(); ok {
		t.Fatal("selection reported before any press")
	}

	e.PointerDown(Point{10, 10}, true)
	e.PointerMove(Point{30, 20}, true)
	e.PointerUp(Point{50, 40}, true)

	r, ok := e.SelectionRect()
	if !ok {
		t.Fatal("selection not reported after drag")
	}
	if r.Min != image.Pt(10, 10) || r.Dx() != 40 || r.Dy() != 30 {
		t.Errorf("selection = %v, want origin (10,10) size 40x30", r)
	}
}

func TestSelectionRectNormalized(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolSelect)
	drag(e, Point{50, 40}, Point{10, 10})

	r, ok := e.SelectionRect()
	if !ok {
		t.Fatal("selection not reported")
	}
	if r.Min != image.Pt(10, 10) || r.Max != image.Pt(50, 40) {
		t.Errorf("selection = %v, want (10,10)-(50,40)", r)
	}
}

func TestSelectionClearedOnToolSwitch(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolSelect)
	drag(e, Point{10, 10}, Point{50, 50})
	e.SetTool(ToolPen)
	e.SetTool(ToolSelect)
	if _, ok := e.SelectionRect(); ok {
		t.Error("selection survived a tool switch")
	}
}

func TestSelectionPersistsAfterRelease(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolSelect)
	drag(e, Point{10, 10}, Point{40, 40})
	if _, ok := e.SelectionRect(); !ok {
		t.Error("selection did not persist past release")
	}
	// A new press restarts the rectangle at the press point.
	e.PointerDown(Point{60, 60}, true)
	r, ok := e.SelectionRect()
	if !ok || !r.Empty() || r.Min != image.Pt(60, 60) {
		t.Errorf("restarted selection = %v ok=%v, want zero-size at (60,60)", r, ok)
	}
}

func TestSaveSelectionEmptyIsNoOp(t *testing.T) {
	dir := t.TempDir()
	e := New(100, 100)

	// No selection at all.
	path := filepath.Join(dir, "none.png")
	saved, err := e.SaveSelection(path)
	if err != nil || saved {
		t.Fatalf("SaveSelection with no selection = (%v, %v), want (false, nil)", saved, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file written for unset selection")
	}

	// Zero-area selection: press and release at the same point.
	e.SetTool(ToolSelect)
	e.PointerDown(Point{20, 20}, true)
	e.PointerUp(Point{20, 20}, true)
	saved, err = e.SaveSelection(path)
	if err != nil || saved {
		t.Fatalf("SaveSelection with zero-area selection = (%v, %v), want (false, nil)", saved, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file written for zero-area selection")
	}
}

func TestSaveSelectionCropsSurface(t *testing.T) {
	e := New(100, 100)
	drag(e, Point{20, 20}, Point{40, 20})

	e.SetTool(ToolSelect)
	drag(e, Point{10, 10}, Point{50, 30})

	path := filepath.Join(t.TempDir(), "crop.png")
	saved, err := e.SaveSelection(path)
	if err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}
	if !saved {
		t.Fatal("SaveSelection reported no-op for a real selection")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open crop: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(40, 20) {
		t.Fatalf("crop size = %v, want (40,20)", got)
	}
	// (30,20) on the surface is on the stroke; in crop coordinates that is
	// (20,10).
	if isBackground(img.At(20, 10)) {
		t.Error("stroke pixel missing from crop")
	}
	if !isBackground(img.At(2, 2)) {
		t.Error("crop corner should be background")
	}
}

func TestClearResetsSurface(t *testing.T) {
	e := New(60, 60)
	drag(e, Point{5, 5}, Point{55, 55})
	e.Clear()

	fresh := New(60, 60)
	if !bytes.Equal(e.Image().Pix, fresh.Image().Pix) {
		t.Error("cleared surface differs from a fresh one")
	}
	if len(e.Strokes()) != 0 {
		t.Errorf("stroke history = %d after clear, want 0", len(e.Strokes()))
	}
}

func TestClearKeepsToolAndSelection(t *testing.T) {
	e := New(60, 60)
	e.SetTool(ToolSelect)
	drag(e, Point{10, 10}, Point{30, 30})
	e.Clear()

	if e.CurrentTool() != ToolSelect {
		t.Errorf("tool = %v after clear, want select", e.CurrentTool())
	}
	if _, ok := e.SelectionRect(); !ok {
		t.Error("selection lost by clear")
	}
}

func TestSaveSurfaceRoundTrip(t *testing.T) {
	e := New(50, 50)
	drag(e, Point{5, 25}, Point{45, 25})

	path := filepath.Join(t.TempDir(), "surface.png")
	if err := e.SaveSurface(path); err != nil {
		t.Fatalf("SaveSurface: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	loaded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	mem := e.Image()
	if loaded.Bounds().Size() != mem.Bounds().Size() {
		t.Fatalf("size mismatch: %v vs %v", loaded.Bounds(), mem.Bounds())
	}
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			want := color.RGBAModel.Convert(mem.At(x, y))
			got := color.RGBAModel.Convert(loaded.At(x, y))
			if want != got {
				t.Fatalf("pixel (%d,%d): saved %v, memory %v", x, y, got, want)
			}
		}
	}
}

func TestSaveSurfaceBadPath(t *testing.T) {
	e := New(20, 20)
	err := e.SaveSurface(filepath.Join(t.TempDir(), "missing", "deep", "out.png"))
	if err == nil {
		t.Fatal("SaveSurface into a missing directory did not fail")
	}
	// Engine state must survive the failure.
	if !isBackground(e.Image().At(10, 10)) {
		t.Error("surface corrupted by failed save")
	}
}

func TestWriteSurface(t *testing.T) {
	e := New(30, 40)
	var buf bytes.Buffer
	if err := e.WriteSurface(&buf); err != nil {
		t.Fatalf("WriteSurface: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(30, 40) {
		t.Errorf("encoded size = %v, want (30,40)", got)
	}
}

func TestPenWidthAffectsOnlyLaterStrokes(t *testing.T) {
	e := New(100, 100)
	drag(e, Point{10, 20}, Point{90, 20})
	e.SetPenWidth(15)
	drag(e, Point{10, 60}, Point{90, 60})

	img := e.Image()
	// 6px off the thin stroke's center line: outside width 3.
	if !isBackground(img.At(50, 26)) {
		t.Error("thin stroke widened retroactively")
	}
	// 6px off the thick stroke's center line: inside width 15.
	if isBackground(img.At(50, 66)) {
		t.Error("thick stroke not wide enough")
	}
	strokes := e.Strokes()
	if len(strokes) != 2 || strokes[0].Width != DefaultPenWidth || strokes[1].Width != 15 {
		t.Errorf("recorded widths = %+v", strokes)
	}
}

func TestMidStrokePenChange(t *testing.T) {
	// Pen settings are read per segment: a color change mid-drag affects the
	// rest of the same stroke.
	e := New(100, 100)
	e.PointerDown(Point{10, 50}, true)
	e.PointerMove(Point{40, 50}, true)
	e.SetPenColor(color.NRGBA{R: 255, A: 255})
	e.PointerMove(Point{80, 50}, true)
	e.PointerUp(Point{80, 50}, true)

	img := e.Image()
	r1, g1, b1, _ := img.At(25, 50).RGBA()
	if r1>>8 > 80 || g1>>8 > 80 || b1>>8 > 80 {
		t.Errorf("first segment not black: (%d,%d,%d)", r1>>8, g1>>8, b1>>8)
	}
	r2, g2, _, _ := img.At(60, 50).RGBA()
	if r2>>8 < 200 || g2>>8 > 80 {
		t.Errorf("second segment not red: (%d,%d)", r2>>8, g2>>8)
	}
}

func TestEraserRestoresBackground(t *testing.T) {
	e := New(100, 100)
	drag(e, Point{10, 50}, Point{90, 50})
	if isBackground(e.Image().At(50, 50)) {
		t.Fatal("pen stroke missing")
	}

	e.SetTool(ToolEraser)
	drag(e, Point{10, 50}, Point{90, 50})
	if !isBackground(e.Image().At(50, 50)) {
		t.Errorf("eraser left ink behind: %v", e.Image().At(50, 50))
	}
}

func TestHighlighterIsTranslucent(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolHighlighter)
	drag(e, Point{10, 50}, Point{90, 50})

	// Half-transparent black over white lands near mid gray.
	r, _, _, _ := e.Image().At(50, 50).RGBA()
	if v := r >> 8; v < 90 || v > 170 {
		t.Errorf("highlighter pixel value = %d, want mid gray", v)
	}
}

func TestSnapshotOverlayNotBaked(t *testing.T) {
	e := New(100, 100)
	e.SetTool(ToolSelect)
	drag(e, Point{10, 10}, Point{60, 60})

	before := e.Image()
	snap := e.Snapshot()
	after := e.Image()

	if !bytes.Equal(before.Pix, after.Pix) {
		t.Fatal("Snapshot mutated the surface")
	}
	// The overlay must actually show up in the snapshot: scan the top edge
	// of the rectangle for an outline pixel.
	found := false
	for x := 10; x <= 60; x++ {
		if !isBackground(snap.At(x, 10)) {
			found = true
			break
		}
	}
	if !found {
		t.Error("selection outline missing from snapshot")
	}
	// But never on the surface itself.
	for x := 10; x <= 60; x++ {
		if !isBackground(after.At(x, 10)) {
			t.Fatal("selection outline baked into surface")
		}
	}
}

func TestSnapshotNoOverlayInPenTool(t *testing.T) {
	e := New(50, 50)
	e.SetTool(ToolSelect)
	drag(e, Point{5, 5}, Point{45, 45})
	e.SetTool(ToolPen)

	snap := e.Snapshot()
	if !bytes.Equal(snap.Pix, e.Image().Pix) {
		t.Error("snapshot shows overlay outside select tool")
	}
}

func TestParseTool(t *testing.T) {
	for name, want := range map[string]Tool{
		"pen": ToolPen, "highlighter": ToolHighlighter,
		"eraser": ToolEraser, "select": ToolSelect,
	} {
		got, err := ParseTool(name)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = (%v, %v), want %v", name, got, err, want)
		}
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Error("ParseTool accepted an unknown tool")
	}
}

func TestSelectionClampedToSurface(t *testing.T) {
	e := New(50, 50)
	e.SetTool(ToolSelect)
	drag(e, Point{40, 40}, Point{200, 200})

	var buf bytes.Buffer
	saved, err := e.WriteSelection(&buf)
	if err != nil || !saved {
		t.Fatalf("WriteSelection = (%v, %v)", saved, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(10, 10) {
		t.Errorf("clamped crop size = %v, want (10,10)", got)
	}
}
