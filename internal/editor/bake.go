package editor

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/boxedit/pkg/geom"
)

// Bake applies each transform to its record and returns records that
// describe the edited solids directly. Each half-axis e_k*n_k is mapped by
// R*S, giving a unit normal and the new extent. The center is mapped by the
// full matrix. A non-uniform scale that is not aligned with the box axes shears
// it, so every baked record is checked with b and failures are aggregated.
func Bake(records []geom.SolidRecord, states []TransformState, b *geom.Builder) ([]geom.SolidRecord, error) {
	if len(records) != len(states) {
		return nil, fmt.Errorf("%w: %d transforms for %d solids", ErrRestoreLength, len(states), len(records))
	}

	out := make([]geom.SolidRecord, len(records))
	var errs error
	for i, r := range records {
		baked := bakeRecord(r, states[i])
		if err := b.Validate(baked.Center, baked.Extents, baked.Normals); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("solid %d: %w", i, err))
		}
		out[i] = baked
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func bakeRecord(r geom.SolidRecord, t TransformState) geom.SolidRecord {
	m := t.Matrix()
	out := geom.SolidRecord{Center: m.TransformPoint(r.Center)}
	for k := 0; k < 3; k++ {
		axis := m.TransformDirection(r.Normals[k].Scale(r.Extents[k]))
		length := axis.Length()
		if length == 0 {
			// A zero extent keeps its direction.
			out.Normals[k] = m.TransformDirection(r.Normals[k]).Normalize()
			continue
		}
		out.Extents[k] = length
		out.Normals[k] = axis.Scale(1 / length)
	}
	return out
}
