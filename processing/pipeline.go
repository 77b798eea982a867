package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
	"github.com/facenox/editor/render"
)

// Pipeline errors.
var (
	// ErrBusy is returned by Start while a run is in progress.
	ErrBusy = errors.New("processing: already running")

	// ErrNothingToRetry is returned by Retry when no run has failed or been
	// cancelled.
	ErrNothingToRetry = errors.New("processing: nothing to retry")
)

// Source resolves image references. *render.Renderer implements it.
type Source interface {
	Load(ctx context.Context, ref editor.ImageRef) (image.Image, error)
}

// Request describes one run.
type Request struct {
	ProjectID   string
	Destination editor.Destination
	State       editor.EditState
	Format      imageio.Format
	Quality     int
}

// Pipeline runs requests one at a time and publishes a Status for every
// step. It is safe for concurrent use.
type Pipeline struct {
	source    Source
	outputDir string
	stepDelay time.Duration
	logger    *slog.Logger

	mu        sync.Mutex
	status    Status
	running   bool
	last      *Request
	cancel    context.CancelFunc
	done      chan struct{}
	listeners map[uint64]func(Status)
	nextID    uint64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithOutputDir sets the directory output files are written to. The
// default is the working directory.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		p.outputDir = dir
	}
}

// WithStepDelay pauses before every step. It exists so progress can be
// followed by eye; the default is no delay.
func WithStepDelay(d time.Duration) Option {
	return func(p *Pipeline) {
		p.stepDelay = d
	}
}

// WithLogger sets the logger. By default the editor package logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates an idle Pipeline reading images from src.
func New(src Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:    src,
		outputDir: ".",
		listeners: make(map[uint64]func(Status)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = editor.Logger()
	}
	return p
}

// Status returns the latest published status.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Subscribe registers fn to receive every published status in order. fn
// runs on the pipeline goroutine with the pipeline locked, so it must not
// call back into the Pipeline.
func (p *Pipeline) Subscribe(fn func(Status)) (unsubscribe func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Start begins processing req in the background. The run stops early when
// ctx is cancelled or Cancel is called.
func (p *Pipeline) Start(ctx context.Context, req Request) error {
	if req.ProjectID == "" {
		return fmt.Errorf("processing: empty project id")
	}
	if !req.Format.Encodable() {
		return fmt.Errorf("processing: format %s: %w", req.Format, imageio.ErrUnsupportedFormat)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrBusy
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.running = true
	p.cancel = cancel
	p.done = done
	p.last = &req

	go func() {
		defer close(done)
		defer cancel()
		p.run(runCtx, req)

		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()
	return nil
}

// Cancel stops the current run. It reports whether a run was in progress.
func (p *Pipeline) Cancel() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return false
	}
	p.cancel()
	return true
}

// Retry restarts the last request after it failed or was cancelled.
func (p *Pipeline) Retry(ctx context.Context) error {
	p.mu.Lock()
	last := p.last
	st := p.status
	p.mu.Unlock()

	if last == nil || (st.Phase != PhaseFailed && st.Phase != PhaseCancelled) {
		return ErrNothingToRetry
	}
	if st.Phase == PhaseFailed && !st.CanRetry {
		return ErrNothingToRetry
	}
	return p.Start(ctx, *last)
}

// Wait blocks until the current run ends or ctx is done, and returns the
// final status.
func (p *Pipeline) Wait(ctx context.Context) (Status, error) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return p.Status(), ctx.Err()
		}
	}
	return p.Status(), nil
}

// Run processes req synchronously and returns the final status.
func (p *Pipeline) Run(ctx context.Context, req Request) (Status, error) {
	if err := p.Start(ctx, req); err != nil {
		return p.Status(), err
	}
	return p.Wait(ctx)
}

func (p *Pipeline) publish(s Status) {
	p.mu.Lock()
	p.publishLocked(s)
	p.mu.Unlock()
}

func (p *Pipeline) publishLocked(s Status) {
	p.status = s
	for _, fn := range p.listeners {
		fn(s)
	}
}

// job carries intermediate results between steps.
type job struct {
	req    Request
	steps  []Step
	img    *image.NRGBA
	styled bool
	data   []byte
	uri    string
}

func (p *Pipeline) run(ctx context.Context, req Request) {
	j := &job{req: req, steps: Steps(req.Destination)}
	logger := p.logger.With("project", req.ProjectID, "destination", req.Destination)
	logger.Info("processing started", "steps", len(j.steps))

	for i, step := range j.steps {
		p.publish(Status{
			Phase:      PhaseRunning,
			Progress:   float64(i) / float64(len(j.steps)),
			Step:       step,
			TotalSteps: len(j.steps),
		})

		err := p.pause(ctx)
		if err == nil {
			err = p.runStep(ctx, j, step)
		}
		if err != nil {
			p.fail(logger, step, err)
			return
		}
		logger.Debug("step done", "step", step)
	}

	if j.uri == "" {
		if err := p.write(j); err != nil {
			p.fail(logger, StepSaving, err)
			return
		}
	}

	logger.Info("processing finished", "output", j.uri)
	p.publish(Status{
		Phase:     PhaseSucceeded,
		Progress:  1,
		OutputURI: j.uri,
		Message:   "Processing complete!",
	})
}

func (p *Pipeline) fail(logger *slog.Logger, step Step, err error) {
	if errors.Is(err, context.Canceled) {
		logger.Info("processing cancelled", "step", step)
		p.publish(Status{Phase: PhaseCancelled})
		return
	}
	logger.Warn("processing failed", "step", step, "err", err)
	p.publish(Status{
		Phase:    PhaseFailed,
		Message:  err.Error(),
		CanRetry: !errors.Is(err, imageio.ErrUnsupportedFormat),
	})
}

func (p *Pipeline) pause(ctx context.Context) error {
	if p.stepDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.stepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Pipeline) runStep(ctx context.Context, j *job, step Step) error {
	st := j.req.State

	switch step {
	case StepLoading:
		src, err := p.source.Load(ctx, st.Image)
		if err != nil {
			return err
		}
		j.img = render.ToNRGBA(src)

	case StepApplyingEdits:
		if st.CropRect != nil {
			cropped, err := cropNRGBA(j.img, *st.CropRect)
			if err != nil {
				return err
			}
			j.img = cropped
		}
		if !slices.Contains(j.steps, StepApplyingFilters) {
			return style(j)
		}

	case StepApplyingFilters:
		return style(j)

	case StepCompressing:
		var buf bytes.Buffer
		if err := imageio.Encode(&buf, j.img, j.req.Format, j.req.Quality); err != nil {
			return err
		}
		j.data = buf.Bytes()

	case StepSaving:
		return p.write(j)

	default:
		return fmt.Errorf("processing: step %s not supported", step)
	}
	return ctx.Err()
}

// style applies the color matrix and strokes the drawing paths.
func style(j *job) error {
	if j.styled {
		return nil
	}
	render.ApplyColorMatrix(j.img, j.req.State.ColorMatrix())
	if err := render.DrawPaths(j.img, j.req.State.Paths); err != nil {
		return fmt.Errorf("processing: paths: %w", err)
	}
	j.styled = true
	return nil
}

func (p *Pipeline) write(j *job) error {
	if j.data == nil {
		return fmt.Errorf("processing: write before compress")
	}
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("processing: output dir: %w", err)
	}
	path := filepath.Join(p.outputDir, OutputName(j.req.ProjectID, j.req.Format))
	if err := os.WriteFile(path, j.data, 0o644); err != nil {
		return fmt.Errorf("processing: write: %w", err)
	}
	j.uri = imageio.FileURI(path)
	return nil
}

// OutputName is the file name written for a project.
func OutputName(projectID string, f imageio.Format) string {
	return "output_" + projectID + f.Extension()
}

func cropNRGBA(img *image.NRGBA, r editor.Rect) (*image.NRGBA, error) {
	area, ok := render.PixelRect(img.Bounds(), r)
	if !ok {
		return nil, fmt.Errorf("processing: crop %v: %w", r, render.ErrInvalidRect)
	}
	return render.ToNRGBA(img.SubImage(area)), nil
}
