// Package geom builds oriented-box meshes and maps point clouds into the
// normalized viewing space used to place the camera.
package geom

import "math"

// CalibrationParameters are the fixed constants of the normalized viewing
// space. The principal point is carried for completeness; the transform math
// does not use it.
type CalibrationParameters struct {
	FocalX      float64 `yaml:"focal_x"`
	FocalY      float64 `yaml:"focal_y"`
	CenterX     float64 `yaml:"center_x"`
	CenterY     float64 `yaml:"center_y"`
	AspectRatio float64 `yaml:"aspect_ratio"`
	Margin      float64 `yaml:"margin"`
	DepthMin    float64 `yaml:"depth_min"`
	DepthMax    float64 `yaml:"depth_max"`
	Thickness   float64 `yaml:"thickness"`
}

// DefaultCalibration returns the calibration of the reference depth camera.
func DefaultCalibration() CalibrationParameters {
	return CalibrationParameters{
		FocalX:      5.8262448167737955e+02,
		FocalY:      5.8269103270988637e+02,
		CenterX:     3.1304475870804731e+02,
		CenterY:     2.3844389626620386e+02,
		AspectRatio: 4.0 / 3.0,
		Margin:      0.1,
		DepthMin:    0,
		DepthMax:    0.8,
		Thickness:   0.1,
	}
}

// Range is a closed scalar interval.
type Range struct {
	Min, Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// valid reports whether Min < Max with both ends finite.
func (r Range) valid() bool {
	return !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) && r.Max > r.Min
}

// NormalizedBounds are the ranges derived from CalibrationParameters.
//
// X, Y and Depth are the target ranges of Transform. ShapeDepthMax is the
// far face of the thickest shape (DepthMax + Thickness). The View ranges add
// the bounding margin on every side and describe the full viewing volume.
type NormalizedBounds struct {
	X, Y, Depth   Range
	ShapeDepthMax float64

	ViewX, ViewY, ViewDepth Range
}

// Bounds derives the normalized ranges. It fails if any derived range is
// empty or the parameters are not finite.
func (p CalibrationParameters) Bounds() (NormalizedBounds, error) {
	maxx := p.AspectRatio * 0.5
	maxy := 0.5
	shape := p.DepthMax + p.Thickness

	b := NormalizedBounds{
		X:             Range{-maxx, maxx},
		Y:             Range{-maxy, maxy},
		Depth:         Range{p.DepthMin, p.DepthMax},
		ShapeDepthMax: shape,
		ViewX:         Range{-maxx - p.Margin, maxx + p.Margin},
		ViewY:         Range{-maxy - p.Margin, maxy + p.Margin},
		ViewDepth:     Range{p.DepthMin - p.Margin, shape + p.Margin},
	}

	for name, r := range map[string]Range{
		"x":          b.X,
		"y":          b.Y,
		"depth":      b.Depth,
		"view x":     b.ViewX,
		"view y":     b.ViewY,
		"view depth": b.ViewDepth,
	} {
		if !r.valid() {
			return NormalizedBounds{}, domainErr("calibration", ErrInvalidCalibration,
				"%s range [%g, %g] is empty", name, r.Min, r.Max)
		}
	}
	if p.Margin < 0 || p.Thickness < 0 || math.IsNaN(p.Margin) || math.IsNaN(p.Thickness) {
		return NormalizedBounds{}, domainErr("calibration", ErrInvalidCalibration,
			"margin %g and thickness %g must be non-negative", p.Margin, p.Thickness)
	}
	return b, nil
}
