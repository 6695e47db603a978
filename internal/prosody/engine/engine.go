// Package engine assembles the prosody registries, the pattern cache, the detector and
// the segmenter into one immutable Context. Build it once at startup and share it.
package engine

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/qawafi/arud/internal/prosody/detector"
	perrors "github.com/qawafi/arud/internal/prosody/errors"
	"github.com/qawafi/arud/internal/prosody/meter"
	"github.com/qawafi/arud/internal/prosody/patterncache"
	"github.com/qawafi/arud/internal/prosody/segmenter"
	"github.com/qawafi/arud/internal/prosody/tafila"
)

// Context holds the read-only engine state. All fields are safe for concurrent use.
type Context struct {
	Tafilas   *tafila.Registry
	Meters    *meter.Registry
	Cache     *patterncache.Cache
	Library   *segmenter.Library
	Detector  *detector.Detector
	Segmenter *segmenter.Segmenter
}

// Options configures New. Zero values select the built-in grammar and defaults.
type Options struct {
	Tafilas   []tafila.Definition
	Meters    []meter.Definition
	Detector  detector.Options
	Segmenter segmenter.Options
	Logger    *zap.Logger
}

// DefaultOptions uses the classical grammar with standard detector settings
func DefaultOptions() Options {
	return Options{
		Detector:  detector.DefaultOptions(),
		Segmenter: segmenter.DefaultOptions(),
	}
}

// New validates the grammar and builds every component. The first stage that fails its
// self-check aborts construction and reports all of its violations as an errors.ErrorList.
func New(opts Options) (*Context, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Tafilas == nil {
		opts.Tafilas = tafila.Definitions()
	}
	if opts.Meters == nil {
		opts.Meters = meter.Definitions()
	}

	tafilas, err := tafila.NewRegistry(opts.Tafilas)
	if err != nil {
		return nil, err
	}
	meters, err := meter.NewRegistry(tafilas, opts.Meters)
	if err != nil {
		return nil, err
	}
	cache, err := patterncache.Build(meters)
	if err != nil {
		return nil, err
	}

	if opts.Detector.Logger == nil {
		opts.Detector.Logger = logger
	}
	if opts.Segmenter.Logger == nil {
		opts.Segmenter.Logger = logger
	}
	library := segmenter.NewLibrary(tafilas)

	ctx := &Context{
		Tafilas:   tafilas,
		Meters:    meters,
		Cache:     cache,
		Library:   library,
		Detector:  detector.New(meters, cache, opts.Detector),
		Segmenter: segmenter.New(meters, library, opts.Segmenter),
	}

	logger.Debug("prosody engine ready",
		zap.Int("tafilas", tafilas.Len()),
		zap.Int("meters", meters.Len()),
		zap.Int("patterns", cache.Total()),
		zap.Int("library", library.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return ctx, nil
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide context built from the classical grammar. A
// grammar that fails its self-check is a programming error, so Default panics with
// the formatted violations.
func Default() *Context {
	defaultOnce.Do(func() {
		ctx, err := New(DefaultOptions())
		if err != nil {
			var list perrors.ErrorList
			if errors.As(err, &list) {
				panic(perrors.FormatErrorList(list))
			}
			panic(err)
		}
		defaultCtx = ctx
	})
	return defaultCtx
}
