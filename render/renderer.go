// Copyright 2026 The facenox Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
	"github.com/facenox/editor/internal/lru"
	"github.com/facenox/editor/internal/workers"
)

// Render errors.
var (
	// ErrNotFound is returned when an in-memory image reference is unknown.
	ErrNotFound = errors.New("render: image not found")

	// ErrInvalidRect is returned when a crop rectangle does not overlap the image.
	ErrInvalidRect = errors.New("render: invalid rectangle")
)

const memScheme = "mem://"

// Renderer renders edit states and commits crops. It is safe for
// concurrent use.
type Renderer struct {
	logger *slog.Logger
	pool   *workers.Pool
	files  *lru.Cache[fileKey, image.Image]

	mu     sync.RWMutex
	images map[string]image.Image
	seq    atomic.Uint64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. By default the editor package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// fileKey identifies one version of a file on disk.
type fileKey struct {
	path string
	mod  time.Time
	size int64
}

// WithCacheSize sets how many decoded disk images are kept. The default
// is lru.DefaultCapacity.
func WithCacheSize(n int) Option {
	return func(r *Renderer) {
		r.files = lru.New[fileKey, image.Image](n)
	}
}

// WithWorkers spreads color matrix work over n goroutines. A value of 0
// uses GOMAXPROCS. The Renderer must then be closed.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.pool = workers.NewPool(n)
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		images: make(map[string]image.Image),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = editor.Logger()
	}
	if r.files == nil {
		r.files = lru.New[fileKey, image.Image](0)
	}
	return r
}

// Close stops the worker pool, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Put stores img in memory under name and returns its reference.
// An existing image with the same name is replaced.
func (r *Renderer) Put(name string, img image.Image) editor.ImageRef {
	uri := memScheme + name
	r.mu.Lock()
	r.images[uri] = img
	r.mu.Unlock()

	b := img.Bounds()
	return editor.ImageRef{URI: uri, Width: b.Dx(), Height: b.Dy()}
}

// Load resolves ref to an image.
func (r *Renderer) Load(ctx context.Context, ref editor.ImageRef) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(ref.URI, memScheme) {
		r.mu.RLock()
		img, ok := r.images[ref.URI]
		r.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("render: load %s: %w", ref.URI, ErrNotFound)
		}
		return img, nil
	}

	path, err := imageio.PathFromURI(ref.URI)
	if err != nil {
		return nil, fmt.Errorf("render: load: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("render: load: %w", err)
	}

	key := fileKey{path: path, mod: info.ModTime(), size: info.Size()}
	if img, ok := r.files.Get(key); ok {
		return img, nil
	}
	img, err := imageio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("render: load: %w", err)
	}
	r.files.Add(key, img)
	r.logger.Debug("image decoded", "path", path, "cached", r.files.Len())
	return img, nil
}

// CacheStats reports the decoded-image cache counters.
func (r *Renderer) CacheStats() lru.Stats {
	return r.files.Stats()
}

// Render produces the edited image for st: the working image with the
// color matrix applied and the committed paths stroked on top. A pending
// crop rectangle is not applied.
func (r *Renderer) Render(ctx context.Context, st editor.EditState) (*image.NRGBA, error) {
	src, err := r.Load(ctx, st.Image)
	if err != nil {
		return nil, err
	}

	out := ToNRGBA(src)
	applyColorMatrix(r.pool, out, st.ColorMatrix())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := DrawPaths(out, st.Paths); err != nil {
		return nil, fmt.Errorf("render: paths: %w", err)
	}

	r.logger.Debug("rendered",
		"image", st.Image.URI,
		"filters", len(st.Filters),
		"paths", len(st.Paths),
	)
	return out, nil
}

func (r *Renderer) store(prefix string, img image.Image) editor.ImageRef {
	name := fmt.Sprintf("%s/%d", prefix, r.seq.Add(1))
	return r.Put(name, img)
}

var _ editor.Processor = (*Renderer)(nil)

// ToNRGBA returns a copy of img as straight-alpha NRGBA with its origin
// at (0, 0).
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
