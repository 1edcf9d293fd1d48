package scene

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/geom"
)

// Result is the outcome of an asynchronous load.
type Result struct {
	Path     string
	Scene    *Scene
	Err      error
	Duration time.Duration
}

// Loader hands one load result from a worker goroutine to the event loop.
type Loader struct {
	ch     chan Result
	result *Result
}

// LoadAsync starts loading path in the background.
func LoadAsync(path string, b *geom.Builder, n *geom.Normalizer) *Loader {
	l := &Loader{ch: make(chan Result, 1)}
	go func() {
		start := time.Now()
		sc, err := Load(path, b, n)
		r := Result{Path: path, Scene: sc, Err: err, Duration: time.Since(start)}
		if err != nil {
			logger.Error("load failed", zap.String("path", path), zap.Error(err))
		} else {
			logger.Info("load finished", zap.String("path", path), zap.Duration("took", r.Duration))
		}
		l.ch <- r
	}()
	return l
}

// Poll returns the result once it is available, without blocking. After the
// first successful poll it keeps returning the same result.
func (l *Loader) Poll() (Result, bool) {
	if l.result != nil {
		return *l.result, true
	}
	select {
	case r := <-l.ch:
		l.result = &r
		return r, true
	default:
		return Result{}, false
	}
}
