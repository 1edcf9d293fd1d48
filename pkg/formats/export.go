package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/boxedit/pkg/math"
)

// Export document errors.
var (
	ErrExportShape  = errors.New("export columns have different lengths")
	ErrExportValue  = errors.New("export value is not finite")
	ErrExportSchema = errors.New("unexpected export document shape")
)

// ExportError reports a failed export. No file is left behind.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export transforms: %v", e.Err)
	}
	return fmt.Sprintf("export transforms to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ExportDocument mirrors modified_data.json. The field names are those of
// the input document but the meaning differs: Trans holds positions,
// Offset holds scales and Norm holds rotations in radians.
type ExportDocument struct {
	Trans  [][3]float64 `json:"trans"`
	Offset [][3]float64 `json:"offset"`
	Norm   [][3]float64 `json:"norm"`
}

// NewExportDocument returns an empty document with room for n solids.
func NewExportDocument(n int) *ExportDocument {
	return &ExportDocument{
		Trans:  make([][3]float64, 0, n),
		Offset: make([][3]float64, 0, n),
		Norm:   make([][3]float64, 0, n),
	}
}

// Append adds one solid's transform.
func (d *ExportDocument) Append(position, scale math.Vec3, rotation math.Euler) {
	d.Trans = append(d.Trans, position.Array())
	d.Offset = append(d.Offset, scale.Array())
	d.Norm = append(d.Norm, rotation.Vec3().Array())
}

// Len returns the number of solids.
func (d *ExportDocument) Len() int {
	return len(d.Trans)
}

// At returns the transform of solid i.
func (d *ExportDocument) At(i int) (position, scale math.Vec3, rotation math.Euler) {
	r := d.Norm[i]
	return math.Vec3FromArray(d.Trans[i]), math.Vec3FromArray(d.Offset[i]), math.Euler{X: r[0], Y: r[1], Z: r[2]}
}

func (d *ExportDocument) validate() error {
	if len(d.Offset) != len(d.Trans) || len(d.Norm) != len(d.Trans) {
		return fmt.Errorf("%w: %d/%d/%d", ErrExportShape, len(d.Trans), len(d.Offset), len(d.Norm))
	}
	for i := range d.Trans {
		for _, v := range [][3]float64{d.Trans[i], d.Offset[i], d.Norm[i]} {
			if !math.Vec3FromArray(v).IsFinite() {
				return fmt.Errorf("%w: solid %d", ErrExportValue, i)
			}
		}
	}
	return nil
}

// EncodeExport serializes the document as compact JSON.
func EncodeExport(d *ExportDocument) ([]byte, error) {
	if err := d.validate(); err != nil {
		return nil, &ExportError{Err: err}
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, &ExportError{Err: err}
	}
	return data, nil
}

// WriteExport writes the document to path. The file is written to a
// temporary sibling and renamed into place, so a failed export leaves
// any existing file untouched.
func WriteExport(path string, d *ExportDocument) error {
	data, err := EncodeExport(d)
	if err != nil {
		var ee *ExportError
		if errors.As(err, &ee) {
			ee.Path = path
		}
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &ExportError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// exportRows is the loose form of ExportDocument used while decoding, so
// short or long rows are seen instead of being padded or truncated.
type exportRows struct {
	Trans  [][]float64 `json:"trans"`
	Offset [][]float64 `json:"offset"`
	Norm   [][]float64 `json:"norm"`
}

// ParseExport decodes a modified_data.json document. Every row must hold
// exactly three numbers.
func ParseExport(data []byte) (*ExportDocument, error) {
	var raw exportRows
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if len(raw.Offset) != len(raw.Trans) || len(raw.Norm) != len(raw.Trans) {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrExportSchema, len(raw.Trans), len(raw.Offset), len(raw.Norm))
	}

	d := NewExportDocument(len(raw.Trans))
	columns := []struct {
		name string
		rows [][]float64
		dst  *[][3]float64
	}{
		{"trans", raw.Trans, &d.Trans},
		{"offset", raw.Offset, &d.Offset},
		{"norm", raw.Norm, &d.Norm},
	}
	for _, c := range columns {
		for i, row := range c.rows {
			if len(row) != 3 {
				return nil, fmt.Errorf("%w: %s[%d] has %d values", ErrExportSchema, c.name, i, len(row))
			}
			*c.dst = append(*c.dst, [3]float64{row[0], row[1], row[2]})
		}
	}
	return d, nil
}

// ParseExportFile reads and decodes a modified_data.json file.
func ParseExportFile(path string) (*ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}
	return ParseExport(data)
}
