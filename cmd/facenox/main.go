// Command facenox replays an edit recipe on an image and writes the result.
//
//	facenox -in beach.jpg -recipe edit.yaml -dest export
//
// With -watch the recipe is replayed every time it changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/config"
	"github.com/facenox/editor/detect"
	"github.com/facenox/editor/internal/imageio"
	"github.com/facenox/editor/processing"
	"github.com/facenox/editor/project"
	"github.com/facenox/editor/recipe"
	"github.com/facenox/editor/render"
)

func main() {
	var (
		configPath = flag.String("config", "facenox.toml", "config file (.toml or .yaml)")
		input      = flag.String("in", "", "input image (overrides the recipe's image)")
		recipePath = flag.String("recipe", "", "edit recipe (.yaml)")
		dest       = flag.String("dest", "save", "destination: save, export or share")
		projectID  = flag.String("project", "", "project id (overrides the recipe's project)")
		watch      = flag.Bool("watch", false, "replay the recipe whenever it changes")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, options{
		configPath: *configPath,
		input:      *input,
		recipePath: *recipePath,
		dest:       *dest,
		projectID:  *projectID,
		watch:      *watch,
	}); err != nil {
		log.Fatalf("facenox: %v", err)
	}
}

type options struct {
	configPath string
	input      string
	recipePath string
	dest       string
	projectID  string
	watch      bool
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	editor.SetLogger(logger)

	destination, ok := editor.ParseDestination(opts.dest)
	if !ok {
		return fmt.Errorf("unknown destination %q", opts.dest)
	}

	renderer := render.New(render.WithWorkers(cfg.Processing.Workers))
	defer renderer.Close()

	a := &app{
		cfg:         cfg,
		logger:      logger,
		renderer:    renderer,
		saver:       &project.Saver{Projects: project.NewStore(), Sessions: project.NewSessionStore(), Logger: logger},
		destination: destination,
		opts:        opts,
	}

	r := &recipe.Recipe{}
	if opts.recipePath != "" {
		if r, err = recipe.Load(opts.recipePath); err != nil {
			return err
		}
	}
	if err := a.replay(ctx, r); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	if opts.recipePath == "" {
		return errors.New("-watch needs -recipe")
	}

	logger.Info("watching recipe", "path", opts.recipePath)
	return recipe.Watch(ctx, opts.recipePath, func(r *recipe.Recipe, err error) {
		if err != nil {
			logger.Error("recipe reload failed", "err", err)
			return
		}
		if err := a.replay(ctx, r); err != nil {
			logger.Error("replay failed", "err", err)
		}
	})
}

type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	renderer    *render.Renderer
	saver       *project.Saver
	destination editor.Destination
	opts        options
}

// replay runs r in a fresh session and processes the result.
func (a *app) replay(ctx context.Context, r *recipe.Recipe) error {
	input := firstNonEmpty(a.opts.input, r.Image)
	if input == "" {
		return errors.New("no input image: pass -in or set image in the recipe")
	}
	if a.opts.recipePath != "" && !filepath.IsAbs(input) && a.opts.input == "" {
		input = filepath.Join(filepath.Dir(a.opts.recipePath), input)
	}

	ref, err := a.imageRef(ctx, input)
	if err != nil {
		return err
	}

	s := editor.NewSession(a.cfg.InitialState(firstNonEmpty(a.opts.projectID, r.Project), ref),
		editor.WithLogger(a.logger),
		editor.WithFaceDetector(&detect.Sidecar{Suffix: a.cfg.Detection.SidecarSuffix, Path: a.cfg.Detection.SidecarPath}),
		editor.WithProcessor(a.renderer),
		editor.WithSessionSaver(a.saver),
	)
	defer s.Close()

	nav := make(chan editor.NavigateToProcessing, 1)
	go a.drain(s.Effects(), nav)

	if err := recipe.Apply(ctx, s, r); err != nil {
		return err
	}

	switch a.destination {
	case editor.DestinationExport:
		s.Dispatch(editor.Export{})
	case editor.DestinationShare:
		s.Dispatch(editor.Share{})
	default:
		s.Dispatch(editor.Save{})
	}

	var target editor.NavigateToProcessing
	select {
	case target = <-nav:
	case <-ctx.Done():
		return ctx.Err()
	}
	return a.process(ctx, target, s.State())
}

func (a *app) imageRef(ctx context.Context, path string) (editor.ImageRef, error) {
	ref := editor.ImageRef{URI: imageio.FileURI(path)}
	img, err := a.renderer.Load(ctx, ref)
	if err != nil {
		return editor.ImageRef{}, err
	}
	b := img.Bounds()
	ref.Width, ref.Height = b.Dx(), b.Dy()
	return ref, nil
}

func (a *app) drain(effects <-chan editor.Effect, nav chan<- editor.NavigateToProcessing) {
	for e := range effects {
		switch e := e.(type) {
		case editor.ShowMessage:
			a.logger.Info(e.Text)
		case editor.ShowError:
			a.logger.Error(e.Text)
		case editor.NavigateToProcessing:
			select {
			case nav <- e:
			default:
			}
		}
	}
}

func (a *app) process(ctx context.Context, target editor.NavigateToProcessing, st editor.EditState) error {
	pipeline := processing.New(a.renderer,
		processing.WithOutputDir(a.cfg.Output.Dir),
		processing.WithStepDelay(a.cfg.StepDelay()),
		processing.WithLogger(a.logger),
	)
	unsubscribe := pipeline.Subscribe(func(s processing.Status) {
		if s.Phase == processing.PhaseRunning {
			a.logger.Info(s.Step.Label(), "progress", fmt.Sprintf("%.0f%%", s.Progress*100))
		}
	})
	defer unsubscribe()

	final, err := pipeline.Run(ctx, processing.Request{
		ProjectID:   target.ProjectID,
		Destination: target.Destination,
		State:       st,
		Format:      a.cfg.OutputFormat(),
		Quality:     a.cfg.Output.Quality,
	})
	if err != nil {
		return err
	}

	switch final.Phase {
	case processing.PhaseSucceeded:
		fmt.Println(final.OutputURI)
		if stats := a.saver.Projects.Stats(); stats.TotalProjects > 0 {
			a.logger.Debug("projects", "total", stats.TotalProjects, "faces_cut", stats.FacesCut)
		}
		return nil
	case processing.PhaseCancelled:
		return context.Canceled
	default:
		return errors.New(strings.TrimSpace(final.Message))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
