package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

func unitBox(t *testing.T) *geom.Geometry {
	t.Helper()
	g, err := geom.NewBuilder(0).Build(
		math.Vec3{},
		[3]float64{1, 2, 3},
		[3]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
		geom.Color{R: 1},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBoxEdges(t *testing.T) {
	g := unitBox(t)
	seen := make(map[[2]int]bool)
	degree := make([]int, geom.CornerCount)

	for _, e := range BoxEdges() {
		if seen[e] {
			t.Errorf("duplicate edge %v", e)
		}
		seen[e] = true
		degree[e[0]]++
		degree[e[1]]++

		// Every edge is parallel to one box axis.
		d := g.Corners[e[1]].Sub(g.Corners[e[0]])
		zeros := 0
		for _, v := range d.Array() {
			if v == 0 {
				zeros++
			}
		}
		if zeros != 2 {
			t.Errorf("edge %v is not axis aligned: %v", e, d)
		}
	}
	for i, d := range degree {
		if d != 3 {
			t.Errorf("corner %d touches %d edges, want 3", i, d)
		}
	}
}

func TestBoxWireframe(t *testing.T) {
	g := unitBox(t)
	lines := BoxWireframe(g.Corners, g.Color, 0)
	if len(lines) != BoxWireframeVertexCount {
		t.Fatalf("got %d vertices, want %d", len(lines), BoxWireframeVertexCount)
	}
	for _, v := range lines {
		if v.R != 1 || v.G != 0 || v.B != 0 {
			t.Fatalf("vertex color = (%g %g %g), want red", v.R, v.G, v.B)
		}
		if abs32(v.X) != 1 || abs32(v.Y) != 2 || abs32(v.Z) != 3 {
			t.Fatalf("vertex (%g %g %g) is not a corner", v.X, v.Y, v.Z)
		}
	}

	padded := BoxWireframe(g.Corners, g.Color, 0.5)
	for i := range padded {
		if abs32(padded[i].X) <= abs32(lines[i].X) {
			t.Fatalf("padding did not grow vertex %d", i)
		}
	}
}

func TestAABBWireframe(t *testing.T) {
	if AABBWireframe(math.EmptyBounds(), geom.Color{}) != nil {
		t.Error("empty bounds should produce no lines")
	}
	b := math.Bounds3{Min: math.Vec3{X: 1, Y: 2, Z: 3}, Max: math.Vec3{X: 4, Y: 5, Z: 6}}
	lines := AABBWireframe(b, geom.Color{})
	if len(lines) != BoxWireframeVertexCount {
		t.Fatalf("got %d vertices, want %d", len(lines), BoxWireframeVertexCount)
	}
	for _, v := range lines {
		p := math.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
		if !b.Contains(p) {
			t.Errorf("vertex %v outside bounds", p)
		}
	}
}

func TestGroundGrid(t *testing.T) {
	b := math.Bounds3{Min: math.Vec3{X: -0.9, Y: -5, Z: -0.4}, Max: math.Vec3{X: 1.1, Y: 5, Z: 0.4}}
	lines := GroundGrid(b, 0.5, 0, 100)

	// X snaps to [-1, 1.5] (6 lines), Z to [-0.5, 0.5] (3 lines).
	if want := (6 + 3) * 2; len(lines) != want {
		t.Fatalf("got %d vertices, want %d", len(lines), want)
	}
	for _, v := range lines {
		if v.Y != 0 {
			t.Fatalf("grid vertex off plane: %v", v)
		}
	}

	coarse := GroundGrid(b, 0.01, 0, 10)
	if n := len(coarse) / 2; n > 2*10+2 {
		t.Errorf("max lines not honoured: %d lines", n)
	}

	if GroundGrid(math.EmptyBounds(), 1, 0, 10) != nil || GroundGrid(b, 0, 0, 10) != nil {
		t.Error("degenerate input should produce no lines")
	}
}

func TestFlatten(t *testing.T) {
	out := Flatten(OriginAxes(2))
	if len(out) != 6*LineVertexFloats {
		t.Fatalf("got %d floats, want %d", len(out), 6*LineVertexFloats)
	}
	// Second vertex is the tip of the X axis.
	if out[LineVertexFloats] != 2 || out[LineVertexFloats+3] != float32(axisX.R) {
		t.Errorf("unexpected layout: %v", out[:2*LineVertexFloats])
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "boxedit")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 2x2: bottom row red (first in GL order), top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "boxedit_2024-05-01_12-00-00") {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("top row should be blue after the flip")
	}
	if r, _, _, _ := img.At(0, 1).RGBA(); r == 0 {
		t.Error("bottom row should be red after the flip")
	}

	if _, err := sc.CaptureFromPixels(pixels[:4], 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
