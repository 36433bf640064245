// Package build holds the participants of a composite build and the registry
// that assigns their identities.
package build

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/lease"
	"go.trai.ch/zerr"
)

// Services are the collaborators shared by every participant of one build tree.
type Services struct {
	Factory ports.ControllerFactory
	Tree    ports.BuildTree
	Tracker *lease.Tracker
	Logger  ports.Logger
	Tracer  ports.Tracer
}

// Participant owns the lifecycle controller of one build and serializes access to it.
type Participant struct {
	identity   domain.BuildIdentity
	definition domain.BuildDefinition
	controller ports.BuildLifecycleController
	lease      *lease.Lease
	svc        Services

	mu         sync.Mutex
	state      domain.BuildLifecycleState
	settings   *domain.Settings
	configured *domain.ConfiguredBuild
	scheduled  []string
	unexecuted []string
	seen       map[string]struct{}
	pending    bool
	failure    error
	listeners  []ports.BuildListener
}

// NewParticipant creates the participant for a build. The controller receives
// a copy of definition; the participant keeps the declared original. The
// participant's lease is derived from parentLease.
func NewParticipant(
	identity domain.BuildIdentity,
	definition domain.BuildDefinition,
	parentLease *lease.Lease,
	svc Services,
) (*Participant, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	controller, err := svc.Factory.NewController(identity, definition.Clone(), svc.Tree)
	if err != nil {
		return nil, domain.Annotate(err, "build", identity.String())
	}

	return &Participant{
		identity:   identity,
		definition: definition,
		controller: controller,
		lease:      parentLease.Child(identity.String()),
		svc:        svc,
		state:      domain.StateCreated,
		seen:       make(map[string]struct{}),
	}, nil
}

// Identity returns the identity of the build.
func (p *Participant) Identity() domain.BuildIdentity {
	return p.identity
}

// ID returns the build identifier.
func (p *Participant) ID() domain.BuildID {
	return p.identity.ID()
}

// Definition returns the build definition as it was declared.
func (p *Participant) Definition() domain.BuildDefinition {
	return p.definition
}

// Lease returns the worker lease nested builds of this build derive theirs from.
func (p *Participant) Lease() *lease.Lease {
	return p.lease
}

// State returns the current lifecycle state.
func (p *Participant) State() domain.BuildLifecycleState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Task returns a reference to a task of this build. The path must be qualified,
// e.g. ":compile" or ":sub:compile".
func (p *Participant) Task(path string) (domain.TaskReference, error) {
	return domain.NewTaskReference(p.ID(), path)
}

// LoadSettings loads the settings of the build. Later calls return the loaded settings.
func (p *Participant) LoadSettings(ctx context.Context) (*domain.Settings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadSettingsLocked(ctx)
}

func (p *Participant) loadSettingsLocked(ctx context.Context) (*domain.Settings, error) {
	if err := p.assertNotTerminal("load settings"); err != nil {
		return nil, err
	}
	if p.state.Reached(domain.StateSettingsLoaded) {
		return p.settings, nil
	}

	settings, err := p.controller.LoadSettings(ctx)
	if err != nil {
		return nil, domain.Annotate(err, "build", p.identity.String())
	}
	p.settings = settings
	p.state = domain.StateSettingsLoaded
	return settings, nil
}

// Configure configures the build, loading its settings first if needed.
func (p *Participant) Configure(ctx context.Context) (*domain.ConfiguredBuild, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configureLocked(ctx)
}

func (p *Participant) configureLocked(ctx context.Context) (*domain.ConfiguredBuild, error) {
	if _, err := p.loadSettingsLocked(ctx); err != nil {
		return nil, err
	}
	if p.state.Reached(domain.StateConfigured) {
		return p.configured, nil
	}

	configured, err := p.controller.ConfiguredBuild(ctx)
	if err != nil {
		return nil, domain.Annotate(err, "build", p.identity.String())
	}
	p.configured = configured
	p.state = domain.StateConfigured
	return configured, nil
}

// AddTasks schedules the tasks at the given qualified paths for the next Execute.
// Every path is validated before anything is scheduled.
func (p *Participant) AddTasks(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := domain.ValidateTaskPath(path); err != nil {
			return domain.Annotate(err, "build", p.identity.String())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Reached(domain.StateExecuting) {
		return p.violation("add tasks")
	}
	if _, err := p.configureLocked(ctx); err != nil {
		return err
	}

	var fresh []string
	for _, path := range paths {
		if _, ok := p.seen[path]; ok {
			continue
		}
		p.seen[path] = struct{}{}
		fresh = append(fresh, path)
	}

	if len(fresh) > 0 {
		if err := p.controller.ScheduleTasks(ctx, fresh); err != nil {
			for _, path := range fresh {
				delete(p.seen, path)
			}
			return domain.Annotate(err, "build", p.identity.String())
		}
		p.scheduled = append(p.scheduled, fresh...)
		p.unexecuted = append(p.unexecuted, fresh...)
		p.pending = true
	}

	p.state = domain.StateTaskGraphPopulated
	return nil
}

// Scheduled returns every task path added so far, in the order they were added.
func (p *Participant) Scheduled() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.scheduled)
}

// Pending returns the task paths added since the last Execute, in the order
// they were added.
func (p *Participant) Pending() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.unexecuted)
}

// Execute runs the scheduled tasks under the participant's worker lease,
// blocking until a slot is free. The listener is registered with the
// controller once; it must be comparable.
func (p *Participant) Execute(ctx context.Context, listener ports.BuildListener) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.assertNotTerminal("execute"); err != nil {
		return err
	}
	if !p.pending {
		return nil
	}
	if listener != nil && !slices.Contains(p.listeners, listener) {
		p.listeners = append(p.listeners, listener)
		p.controller.AddListener(listener)
	}

	p.state = domain.StateExecuting
	p.pending = false
	p.unexecuted = nil

	err := p.svc.Tracker.WithSharedLease(ctx, p.lease, func(ctx context.Context) error {
		ctx, span := p.svc.Tracer.Start(ctx, "build "+p.identity.String(),
			ports.WithAttribute(ports.AttrBuild, p.identity.String()),
		)
		defer span.End()

		err := p.controller.ExecuteTasks(ctx)
		if err != nil {
			span.RecordError(err)
		}
		return err
	})
	if err != nil {
		p.failure = err
	}
	return err
}

// FinishBuild runs build-finished cleanup. Errors are passed to collector.
// Calling it again is a no-op.
func (p *Participant) FinishBuild(ctx context.Context, collector func(error)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.IsTerminal() {
		return
	}
	if p.state.Reached(domain.StateSettingsLoaded) {
		p.controller.FinishBuild(ctx, p.failure, func(err error) {
			collector(domain.Annotate(err, "build", p.identity.String()))
		})
	}
	p.state = domain.StateFinished
}

// Stop releases the controller's resources. It is safe to call more than once
// and on a build that never started; release errors are logged, not returned.
func (p *Participant) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == domain.StateStopped {
		return
	}
	p.state = domain.StateStopped

	if err := p.controller.Stop(); err != nil {
		p.svc.Logger.Warn("failed to stop build " + p.identity.String() + ": " + err.Error())
	}
}

func (p *Participant) assertNotTerminal(op string) error {
	if p.state.IsTerminal() {
		return p.violation(op)
	}
	return nil
}

func (p *Participant) violation(op string) error {
	err := domain.Annotate(domain.ErrLifecycleViolation, "operation", op)
	err = zerr.With(err, "state", p.state.String())
	return domain.Annotate(err, "build", p.identity.String())
}
