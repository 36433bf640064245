// Package app implements the application layer: one composite build run
// from the root build in a directory.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.trai.ch/composite/internal/adapters/detector"
	"go.trai.ch/composite/internal/adapters/options"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/composite"
	"go.trai.ch/composite/internal/engine/lease"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// AttrRunID is the span attribute carrying the id of one invocation.
const AttrRunID = "composite.run_id"

// jsonLogger is implemented by loggers that can switch to JSON output.
type jsonLogger interface {
	SetJSON(enable bool)
}

// holdingLogger is implemented by loggers that can hold output back while
// the terminal belongs to the TUI.
type holdingLogger interface {
	Hold() (release func())
}

// modeSelector is implemented by renderers that support several output modes.
type modeSelector interface {
	Select(mode detector.OutputMode) detector.OutputMode
}

// App runs composite builds.
type App struct {
	factory  ports.ControllerFactory
	logger   ports.Logger
	tracer   ports.Tracer
	renderer ports.Renderer
	newRunID func() string
}

// New creates a new App instance.
func New(
	factory ports.ControllerFactory,
	logger ports.Logger,
	tracer ports.Tracer,
	renderer ports.Renderer,
) *App {
	return &App{
		factory:  factory,
		logger:   logger,
		tracer:   tracer,
		renderer: renderer,
		newRunID: uuid.NewString,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Dir is the root directory of the root build. Empty means the working directory.
	Dir string
	// Flags holds the option flags of the command line; it may be nil.
	Flags *pflag.FlagSet
}

// Run executes the tasks at targets in the root build, together with
// everything they need from included builds. Task failures are logged and
// reported as domain.ErrBuildExecutionFailed.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	rootDir, cfg, err := a.prepare(opts)
	if err != nil {
		return err
	}

	tree, err := composite.NewTree(
		domain.BuildDefinition{RootDir: rootDir},
		a.factory,
		lease.NewTracker(cfg.Workers),
		a.logger,
		a.tracer,
	)
	if err != nil {
		return err
	}
	defer func() {
		_ = a.tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	if s, ok := a.renderer.(modeSelector); ok {
		mode := s.Select(detector.ResolveMode(detector.ModeAuto, cfg.Output))
		if l, ok := a.logger.(holdingLogger); ok && mode == detector.ModeTUI {
			defer l.Hold()()
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.renderer.Start(ctx); err != nil {
			return err
		}
		return a.renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = a.renderer.Stop()
		}()

		failures := a.build(ctx, tree, targets)
		if len(failures) == 0 {
			return nil
		}
		for _, failure := range failures {
			a.logger.Error(failure)
		}
		return domain.Annotate(domain.ErrBuildExecutionFailed, "failures", len(failures))
	})

	return g.Wait()
}

// build drives the tree through one invocation and returns every failure.
func (a *App) build(ctx context.Context, tree *composite.Tree, targets []string) []error {
	ctx, span := a.tracer.Start(ctx, "composite", ports.WithAttribute(AttrRunID, a.newRunID()))
	defer span.End()

	var (
		mu       sync.Mutex
		failures []error
	)
	collect := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	}

	controllers := tree.Controllers()
	defer controllers.StopBuilds()

	registry := tree.Registry()
	root := registry.Root()

	if err := registry.LoadTree(ctx); err != nil {
		collect(err)
	} else if err := root.AddTasks(ctx, targets); err != nil {
		collect(err)
	} else {
		if err := tree.TaskGraph().RunScheduledTasks(ctx, collect); err != nil {
			collect(err)
		}

		plan := make([]string, 0, len(targets))
		for _, path := range root.Pending() {
			plan = append(plan, root.Identity().IdentityPathForProject(domain.ParsePath(path)).String())
		}
		a.tracer.EmitPlan(ctx, plan)

		if err := root.Execute(ctx, nil); err != nil {
			for _, e := range domain.Unjoin(err) {
				collect(domain.Annotate(e, "build", root.Identity().String()))
			}
		}
	}

	controllers.FinishBuilds(ctx, collect)

	for _, failure := range failures {
		span.RecordError(failure)
	}
	return failures
}

// Builds prints the builds of the tree rooted in opts.Dir.
func (a *App) Builds(ctx context.Context, w io.Writer, opts RunOptions) error {
	rootDir, cfg, err := a.prepare(opts)
	if err != nil {
		return err
	}

	tree, err := composite.NewTree(
		domain.BuildDefinition{RootDir: rootDir},
		a.factory,
		lease.NewTracker(cfg.Workers),
		a.logger,
		a.tracer,
	)
	if err != nil {
		return err
	}
	controllers := tree.Controllers()
	defer controllers.StopBuilds()

	registry := tree.Registry()
	loadErr := registry.LoadTree(ctx)
	controllers.FinishBuilds(ctx, func(err error) { loadErr = errors.Join(loadErr, err) })
	if loadErr != nil {
		return loadErr
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("BUILD", "NAME", "KIND", "DIR")
	for _, p := range registry.Participants() {
		id := p.Identity()
		t.Row(id.String(), id.Name, kind(id), relativeDir(rootDir, id.RootDir))
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func (a *App) prepare(opts RunOptions) (string, *options.Options, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	rootDir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(err, "failed to resolve root directory"), "dir", dir)
	}

	cfg, err := options.Load(rootDir, opts.Flags)
	if err != nil {
		return "", nil, err
	}
	if l, ok := a.logger.(jsonLogger); ok && cfg.Log.JSON {
		l.SetJSON(true)
	}
	return rootDir, cfg, nil
}

func kind(id domain.BuildIdentity) string {
	switch {
	case id.IsRoot():
		return "root"
	case id.Implicit:
		return "implicit"
	case id.PluginBuild:
		return "plugin"
	default:
		return "included"
	}
}

func relativeDir(rootDir, dir string) string {
	rel, err := filepath.Rel(rootDir, dir)
	if err != nil {
		return dir
	}
	return rel
}
