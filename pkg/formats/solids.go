// Package formats reads and writes the solids document (data.json) and the
// transform export (modified_data.json).
package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	gomath "math"
	"os"

	"github.com/Faultbox/boxedit/pkg/geom"
	"github.com/Faultbox/boxedit/pkg/math"
)

// Solid document errors.
var (
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrSchema        = errors.New("unexpected document shape")
)

// LoadError reports a failure to read or decode a solids document.
// The whole load is aborted; no solids are returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load solids: %v", e.Err)
	}
	return fmt.Sprintf("load solids from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// solidsDocument mirrors data.json. Every field carries an outer singleton
// wrapper; only element 0 is read. Extents are wrapped once more per axis:
// offset[0][i] is [[e0], [e1], [e2]].
type solidsDocument struct {
	Trans  [][][]float64   `json:"trans"`
	Offset [][][][]float64 `json:"offset"`
	Norm   [][][][]float64 `json:"norm"`
}

// ParseSolids decodes a data.json document into solid records, in file order.
// Extents are taken as absolute values.
func ParseSolids(data []byte) ([]geom.SolidRecord, error) {
	var doc solidsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Err: fmt.Errorf("%w: %w", ErrMalformedJSON, err)}
	}
	records, err := doc.records()
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return records, nil
}

// ParseSolidsFile reads and decodes a data.json file.
func ParseSolidsFile(path string) ([]geom.SolidRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	records, err := ParseSolids(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return records, nil
}

func (doc *solidsDocument) records() ([]geom.SolidRecord, error) {
	if len(doc.Trans) == 0 {
		return nil, fmt.Errorf("%w: trans is missing or has no outer wrapper", ErrSchema)
	}
	if len(doc.Offset) == 0 {
		return nil, fmt.Errorf("%w: offset is missing or has no outer wrapper", ErrSchema)
	}
	if len(doc.Norm) == 0 {
		return nil, fmt.Errorf("%w: norm is missing or has no outer wrapper", ErrSchema)
	}

	trans, offsets, norms := doc.Trans[0], doc.Offset[0], doc.Norm[0]
	n := len(trans)
	if len(offsets) != n || len(norms) != n {
		return nil, fmt.Errorf("%w: %d centers, %d offsets, %d normal sets",
			ErrSchema, n, len(offsets), len(norms))
	}

	records := make([]geom.SolidRecord, n)
	for i := 0; i < n; i++ {
		r := &records[i]

		if len(trans[i]) != 3 {
			return nil, fmt.Errorf("%w: trans[0][%d] has %d components", ErrSchema, i, len(trans[i]))
		}
		r.Center = math.Vec3{X: trans[i][0], Y: trans[i][1], Z: trans[i][2]}

		if len(offsets[i]) != 3 {
			return nil, fmt.Errorf("%w: offset[0][%d] has %d axes", ErrSchema, i, len(offsets[i]))
		}
		for k, e := range offsets[i] {
			if len(e) == 0 {
				return nil, fmt.Errorf("%w: offset[0][%d][%d] is empty", ErrSchema, i, k)
			}
			r.Extents[k] = gomath.Abs(e[0])
		}

		if len(norms[i]) != 3 {
			return nil, fmt.Errorf("%w: norm[0][%d] has %d normals", ErrSchema, i, len(norms[i]))
		}
		for k, nv := range norms[i] {
			if len(nv) != 3 {
				return nil, fmt.Errorf("%w: norm[0][%d][%d] has %d components", ErrSchema, i, k, len(nv))
			}
			r.Normals[k] = math.Vec3{X: nv[0], Y: nv[1], Z: nv[2]}
		}
	}
	return records, nil
}

// EncodeSolids writes records in the data.json shape, outer wrappers included.
func EncodeSolids(records []geom.SolidRecord) ([]byte, error) {
	trans := make([][]float64, 0, len(records))
	offsets := make([][][]float64, 0, len(records))
	norms := make([][][]float64, 0, len(records))

	for _, r := range records {
		trans = append(trans, []float64{r.Center.X, r.Center.Y, r.Center.Z})
		offsets = append(offsets, [][]float64{{r.Extents[0]}, {r.Extents[1]}, {r.Extents[2]}})
		nv := make([][]float64, 3)
		for k, n := range r.Normals {
			nv[k] = []float64{n.X, n.Y, n.Z}
		}
		norms = append(norms, nv)
	}

	doc := solidsDocument{
		Trans:  [][][]float64{trans},
		Offset: [][][][]float64{offsets},
		Norm:   [][][][]float64{norms},
	}
	return json.Marshal(doc)
}
