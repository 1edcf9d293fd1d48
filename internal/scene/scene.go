// Package scene turns loaded solid records into renderable box geometry,
// computes the camera anchor and hit-tests solids under their edit
// transforms.
package scene

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/formats"
	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// Solid is one loaded record and its mesh. Geometry is nil when the record
// could not be built; the solid still occupies its slot so indices match
// the input and the export.
type Solid struct {
	Index    int
	Record   geom.SolidRecord
	Geometry *geom.Geometry
}

// Skipped reports whether the solid has no mesh.
func (s *Solid) Skipped() bool {
	return s.Geometry == nil
}

// Scene is the built content of one data file.
type Scene struct {
	Solids []Solid

	// Anchor is the camera position. HasAnchor is false when no anchor
	// could be computed, in which case Anchor is the origin.
	Anchor    math.Vec3
	HasAnchor bool

	// Bounds encloses every built corner.
	Bounds math.Bounds3

	// BuildErr aggregates the errors of skipped solids, or is nil.
	BuildErr error
}

// Len returns the number of solids, built or skipped.
func (s *Scene) Len() int {
	return len(s.Solids)
}

// Built returns the number of solids with a mesh.
func (s *Scene) Built() int {
	n := 0
	for i := range s.Solids {
		if !s.Solids[i].Skipped() {
			n++
		}
	}
	return n
}

// Build creates one mesh per record, colored along the rainbow by load
// order, and anchors the camera on the normalized image of the world origin.
// Records that fail validation are skipped and reported in BuildErr.
func Build(records []geom.SolidRecord, b *geom.Builder, n *geom.Normalizer) *Scene {
	log := logger.Named("scene")

	sc := &Scene{
		Solids: make([]Solid, len(records)),
		Bounds: math.EmptyBounds(),
	}

	palette := geom.Palette(len(records))
	corners := make([]math.Vec3, 0, len(records)*geom.CornerCount)
	for i, r := range records {
		sc.Solids[i] = Solid{Index: i, Record: r}

		g, err := b.BuildRecord(r, palette[i])
		if err != nil {
			log.Warn("skipping solid", zap.Int("solid", i), zap.Error(err))
			sc.BuildErr = multierr.Append(sc.BuildErr, fmt.Errorf("solid %d: %w", i, err))
			continue
		}
		sc.Solids[i].Geometry = g
		corners = append(corners, g.Corners[:]...)
		sc.Bounds = sc.Bounds.Union(g.Bounds())
	}

	anchor, err := n.FindCenterPoints(corners)
	if err != nil {
		log.Warn("no camera anchor, using origin", zap.Error(err))
	} else {
		sc.Anchor = anchor
		sc.HasAnchor = true
	}

	log.Info("scene built",
		zap.Int("solids", sc.Len()),
		zap.Int("skipped", sc.Len()-sc.Built()),
		zap.Bool("anchored", sc.HasAnchor),
	)
	return sc
}

// Load parses a data file and builds it. A LoadError aborts the load; build
// errors of individual solids are kept in Scene.BuildErr.
func Load(path string, b *geom.Builder, n *geom.Normalizer) (*Scene, error) {
	records, err := formats.ParseSolidsFile(path)
	if err != nil {
		return nil, err
	}
	return Build(records, b, n), nil
}
