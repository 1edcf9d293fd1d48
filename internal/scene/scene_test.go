package scene

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/boxedit/internal/editor"
	"github.com/Faultbox/boxedit/internal/engine/picking"
	"github.com/Faultbox/boxedit/pkg/formats"
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

var axes = [3]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}}

func cube(x, y, z float64) geom.SolidRecord {
	return geom.SolidRecord{
		Center:  math.Vec3{X: x, Y: y, Z: z},
		Extents: [3]float64{1, 1, 1},
		Normals: axes,
	}
}

func newNormalizer(t *testing.T) *geom.Normalizer {
	t.Helper()
	n, err := geom.NewNormalizer(geom.DefaultCalibration())
	if err != nil {
		t.Fatalf("NewNormalizer failed: %v", err)
	}
	return n
}

func TestBuildSymmetricAnchor(t *testing.T) {
	sc := Build([]geom.SolidRecord{cube(-2, 0, 0), cube(2, 0, 0)}, geom.NewBuilder(0), newNormalizer(t))

	if sc.BuildErr != nil {
		t.Fatalf("unexpected build error: %v", sc.BuildErr)
	}
	if sc.Len() != 2 || sc.Built() != 2 {
		t.Fatalf("Len/Built = %d/%d, want 2/2", sc.Len(), sc.Built())
	}
	if !sc.HasAnchor {
		t.Fatal("expected an anchor")
	}
	// A cloud symmetric about the origin maps the origin to the middle of
	// every target range.
	want := math.Vec3{X: 0, Y: 0, Z: 0.4}
	if !sc.Anchor.ApproxEqual(want, 1e-9) {
		t.Errorf("anchor = %v, want %v", sc.Anchor, want)
	}
	wantBounds := math.Bounds3{Min: math.Vec3{X: -3, Y: -1, Z: -1}, Max: math.Vec3{X: 3, Y: 1, Z: 1}}
	if sc.Bounds != wantBounds {
		t.Errorf("bounds = %v, want %v", sc.Bounds, wantBounds)
	}
}

func TestBuildColorsFollowLoadOrder(t *testing.T) {
	records := []geom.SolidRecord{cube(0, 0, 0), cube(2, 0, 0), cube(4, 0, 0), cube(6, 0, 0)}
	sc := Build(records, geom.NewBuilder(0), newNormalizer(t))

	for i, want := range []float64{0, 90, 180, 270} {
		if got := sc.Solids[i].Geometry.Color.Hue(); gomath.Abs(got-want) > 1e-6 {
			t.Errorf("solid %d hue = %v, want %v", i, got, want)
		}
	}
}

func TestBuildSkipsInvalidSolids(t *testing.T) {
	bad := cube(0, 0, 0)
	bad.Normals[1] = math.Vec3{X: 1, Y: 1}

	records := []geom.SolidRecord{cube(-2, 0, 0), bad, cube(2, 0, 0)}
	sc := Build(records, geom.NewBuilder(0), newNormalizer(t))

	if sc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (skipped solids keep their slot)", sc.Len())
	}
	if sc.Built() != 2 {
		t.Errorf("Built() = %d, want 2", sc.Built())
	}
	if !sc.Solids[1].Skipped() {
		t.Error("solid 1 should be skipped")
	}
	if !errors.Is(sc.BuildErr, geom.ErrNonOrthogonal) {
		t.Errorf("BuildErr = %v, want ErrNonOrthogonal", sc.BuildErr)
	}
	var de *geom.DomainError
	if !errors.As(sc.BuildErr, &de) {
		t.Errorf("BuildErr should carry a DomainError, got %T", sc.BuildErr)
	}

	// Colors follow the load order over all records, skipped included.
	want, _ := geom.RainbowColor(2, 3)
	if sc.Solids[2].Geometry.Color != want {
		t.Errorf("solid 2 color = %v, want %v", sc.Solids[2].Geometry.Color, want)
	}
}

func TestBuildWithoutAnchor(t *testing.T) {
	bad := cube(0, 0, 0)
	bad.Extents[0] = gomath.NaN()

	sc := Build([]geom.SolidRecord{bad}, geom.NewBuilder(0), newNormalizer(t))
	if sc.HasAnchor {
		t.Error("no built corners should mean no anchor")
	}
	if sc.Anchor != (math.Vec3{}) {
		t.Errorf("fallback anchor = %v, want origin", sc.Anchor)
	}

	empty := Build(nil, geom.NewBuilder(0), newNormalizer(t))
	if empty.HasAnchor || empty.Len() != 0 || empty.BuildErr != nil {
		t.Errorf("empty scene: anchor=%v len=%d err=%v", empty.HasAnchor, empty.Len(), empty.BuildErr)
	}
}

func writeData(t *testing.T, records []geom.SolidRecord) string {
	t.Helper()
	data, err := formats.EncodeSolids(records)
	if err != nil {
		t.Fatalf("EncodeSolids failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeData(t, []geom.SolidRecord{cube(-2, 0, 0), cube(2, 0, 0)})
	sc, err := Load(path, geom.NewBuilder(0), newNormalizer(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sc.Built() != 2 {
		t.Errorf("Built() = %d, want 2", sc.Built())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.json")
	os.WriteFile(malformed, []byte(`{"trans": [`), 0644)

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.json"), os.ErrNotExist},
		{"malformed", malformed, formats.ErrMalformedJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Load(tt.path, geom.NewBuilder(0), newNormalizer(t))
			if sc != nil {
				t.Error("failed load should return no scene")
			}
			var le *formats.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("got %T %v, want *formats.LoadError", err, err)
			}
			if le.Path != tt.path {
				t.Errorf("LoadError.Path = %q, want %q", le.Path, tt.path)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v in chain", err, tt.want)
			}
		})
	}
}

// pollResult polls l the way the event loop does, failing after a deadline.
func pollResult(t *testing.T, l *Loader) Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if r, ok := l.Poll(); ok {
			return r
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("load did not finish")
	return Result{}
}

func TestLoadAsync(t *testing.T) {
	path := writeData(t, []geom.SolidRecord{cube(0, 0, 0)})
	l := LoadAsync(path, geom.NewBuilder(0), newNormalizer(t))

	r := pollResult(t, l)
	if r.Err != nil {
		t.Fatalf("async load failed: %v", r.Err)
	}
	if r.Path != path || r.Scene.Len() != 1 {
		t.Errorf("result = %+v", r)
	}

	again, ok := l.Poll()
	if !ok || again.Scene != r.Scene {
		t.Error("a second Poll should return the same result")
	}
}

func TestLoadAsyncFailure(t *testing.T) {
	l := LoadAsync(filepath.Join(t.TempDir(), "missing.json"), geom.NewBuilder(0), newNormalizer(t))
	r := pollResult(t, l)
	if r.Err == nil || r.Scene != nil {
		t.Errorf("expected failed result, got %+v", r)
	}
}

func TestPick(t *testing.T) {
	sc := Build([]geom.SolidRecord{cube(-2, 0, 0), cube(2, 0, 0), cube(2, 0, -4)}, geom.NewBuilder(0), newNormalizer(t))
	down := math.Vec3{Z: -1}

	// The ray through x=2.3 crosses solids 1 and 2; 1 is nearer.
	hit, ok := sc.Pick(picking.Ray{Origin: math.Vec3{X: 2.3, Y: 0.1, Z: 10}, Direction: down}, nil)
	if !ok || hit.Index != 1 {
		t.Fatalf("Pick = %+v %v, want solid 1", hit, ok)
	}
	if gomath.Abs(hit.Distance-9) > 1e-9 {
		t.Errorf("distance = %g, want 9", hit.Distance)
	}
	if !hit.Point.ApproxEqual(math.Vec3{X: 2.3, Y: 0.1, Z: 1}, 1e-9) {
		t.Errorf("hit point = %v", hit.Point)
	}

	if _, ok := sc.Pick(picking.Ray{Origin: math.Vec3{Z: 10}, Direction: down}, nil); ok {
		t.Error("ray between solids should miss")
	}

	// Moving solid 1 out of the way exposes solid 2.
	s := editor.NewSession(sc.Len())
	s.Select(1)
	s.ApplyEdit(editor.Edit{Position: &math.Vec3{Y: 5}})
	hit, ok = sc.Pick(picking.Ray{Origin: math.Vec3{X: 2.3, Y: 0.1, Z: 10}, Direction: down}, s.States())
	if !ok || hit.Index != 2 {
		t.Fatalf("Pick after edit = %+v %v, want solid 2", hit, ok)
	}

	// And the moved solid is hit where it now is.
	hit, ok = sc.Pick(picking.Ray{Origin: math.Vec3{X: 2.3, Y: 5.1, Z: 10}, Direction: down}, s.States())
	if !ok || hit.Index != 1 {
		t.Errorf("Pick at moved solid = %+v %v, want solid 1", hit, ok)
	}
}

func TestPickIgnoresSkipped(t *testing.T) {
	bad := cube(0, 0, 0)
	bad.Normals[0] = math.Vec3{}
	sc := Build([]geom.SolidRecord{bad}, geom.NewBuilder(0), newNormalizer(t))

	if _, ok := sc.Pick(picking.Ray{Origin: math.Vec3{Z: 10}, Direction: math.Vec3{Z: -1}}, nil); ok {
		t.Error("skipped solid should not be pickable")
	}
}
