// Package export freezes a composition surface into a PNG.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/youruser/vignette/internal/scene"
)

// Oversample is the fixed ratio between exported and logical pixels.
const Oversample = 2

// DataURIPrefix starts every exported data URI.
const DataURIPrefix = "data:image/png;base64,"

var ErrBusy = errors.New("export already in progress")

// Rasterizer turns a frame into pixels at the given scale.
type Rasterizer interface {
	Rasterize(f *scene.Frame, scale float64) (image.Image, error)
}

// Exporter snapshots surfaces. It allows one export at a time.
type Exporter struct {
	raster Rasterizer
	log    *slog.Logger
	busy   atomic.Bool
}

// New returns an exporter drawing with r. A nil logger discards diagnostics.
func New(r Rasterizer, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Exporter{raster: r, log: log}
}

// Snapshot rasterizes what s currently shows at Oversample and encodes it
// as PNG. Any failure is logged and reported as ok == false; the surface is
// never modified.
func (e *Exporter) Snapshot(s *scene.Surface) ([]byte, bool) {
	b, err := e.snapshot(s)
	if err != nil {
		switch {
		case errors.Is(err, scene.ErrNotMounted):
			e.log.Debug("export skipped", "reason", err)
		case errors.Is(err, ErrBusy):
			e.log.Warn("export skipped", "reason", err)
		default:
			e.log.Error("export failed", "err", err)
		}
		return nil, false
	}
	e.log.Info("exported image", "size", humanize.Bytes(uint64(len(b))))
	return b, true
}

// DataURI is Snapshot encoded as a data:image/png;base64 URI.
func (e *Exporter) DataURI(s *scene.Surface) (string, bool) {
	b, ok := e.Snapshot(s)
	if !ok {
		return "", false
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(b), true
}

func (e *Exporter) snapshot(s *scene.Surface) (b []byte, err error) {
	if s == nil || e.raster == nil {
		return nil, scene.ErrNotMounted
	}
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("rasterize: panic: %v", r)
		}
	}()

	f, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	img, err := e.raster.Rasterize(f, Oversample)
	if err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeDataURI reverses DataURI.
func DecodeDataURI(uri string) ([]byte, error) {
	if len(uri) < len(DataURIPrefix) || uri[:len(DataURIPrefix)] != DataURIPrefix {
		return nil, errors.New("not a png data uri")
	}
	return base64.StdEncoding.DecodeString(uri[len(DataURIPrefix):])
}
