package geom

import (
	"errors"
	"fmt"
)

// Geometry domain errors.
var (
	ErrDegenerateRange    = errors.New("degenerate range: max must exceed min")
	ErrEmptyPointSet      = errors.New("empty point set")
	ErrInvalidPoint       = errors.New("point must be finite")
	ErrInvalidCenter      = errors.New("center must be finite")
	ErrInvalidExtent      = errors.New("extent must be finite and non-negative")
	ErrInvalidNormal      = errors.New("normal must be finite and non-zero")
	ErrNonOrthogonal      = errors.New("normals are not mutually orthogonal")
	ErrInvalidCalibration = errors.New("invalid calibration parameters")
	ErrColorIndex         = errors.New("color index out of range")
)

// DomainError reports input that lies outside the domain of a geometric
// operation. It wraps one of the sentinel errors above.
type DomainError struct {
	Op     string
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func domainErr(op string, err error, format string, args ...any) error {
	return &DomainError{Op: op, Err: err, Reason: fmt.Sprintf(format, args...)}
}
