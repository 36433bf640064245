// Package lifecycle provides the default build lifecycle controller, which
// drives a build described by a build.yaml file and runs its tasks as shell
// commands.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/lease"
	"go.trai.ch/zerr"
)

// Controller implements ports.BuildLifecycleController for one build.
type Controller struct {
	identity   domain.BuildIdentity
	definition domain.BuildDefinition
	tree       ports.BuildTree
	loader     ports.BuildLoader
	executor   ports.Executor
	logger     ports.Logger
	tracer     ports.Tracer

	mu         sync.Mutex
	settings   *domain.Settings
	configured *domain.ConfiguredBuild
	scheduled  map[domain.InternedString]bool
	waiting    map[domain.InternedString][]ports.IncludedBuildTaskResource
	outcomes   map[domain.InternedString]domain.TaskStatus
	listeners  []ports.BuildListener
	stopped    bool
}

// LoadSettings reads the build file once. Injected plugin requests are
// appended to the plugins the build file declares.
func (c *Controller) LoadSettings(_ context.Context) (*domain.Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadSettings()
}

func (c *Controller) loadSettings() (*domain.Settings, error) {
	if c.stopped {
		return nil, c.violation("LoadSettings")
	}
	if c.settings != nil {
		return c.settings, nil
	}

	settings, err := c.loader.LoadSettings(c.definition.RootDir)
	if err != nil {
		return nil, err
	}
	if settings.Name == "" {
		settings.Name = c.identity.Name
	}
	if c.definition.HasInjectedSettingsPlugins() {
		for _, plugin := range c.definition.InjectedPluginRequests {
			if !slices.Contains(settings.Plugins, plugin) {
				settings.Plugins = append(settings.Plugins, plugin)
			}
		}
	}
	c.settings = settings
	return settings, nil
}

// ConfiguredBuild loads the task graph of the build once.
func (c *Controller) ConfiguredBuild(_ context.Context) (*domain.ConfiguredBuild, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configure()
}

func (c *Controller) configure() (*domain.ConfiguredBuild, error) {
	if c.configured != nil {
		return c.configured, nil
	}
	if _, err := c.loadSettings(); err != nil {
		return nil, err
	}

	graph, err := c.loader.LoadGraph(c.definition.RootDir)
	if err != nil {
		return nil, err
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	c.configured = &domain.ConfiguredBuild{Identity: c.identity, Graph: graph}
	return c.configured, nil
}

// ScheduleTasks adds the tasks at paths and everything they depend on inside
// this build. Cross-build dependencies of newly scheduled tasks are queued on
// the composite task graph.
func (c *Controller) ScheduleTasks(_ context.Context, paths []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return c.violation("ScheduleTasks")
	}
	configured, err := c.configure()
	if err != nil {
		return err
	}
	graph := configured.Graph

	targets := make([]domain.InternedString, 0, len(paths))
	for _, path := range paths {
		if err := domain.ValidateTaskPath(path); err != nil {
			return err
		}
		task, ok := graph.TaskByPath(path)
		if !ok {
			return zerr.With(domain.Annotate(domain.ErrTaskNotFound, "task", path), "build", c.identity.String())
		}
		targets = append(targets, task.Name)
	}

	closure := graph.Closure(targets)
	for task := range graph.Walk() {
		if !closure[task.Name] || c.scheduled[task.Name] {
			continue
		}
		if err := c.queueCrossBuild(&task); err != nil {
			return err
		}
		c.scheduled[task.Name] = true
	}
	return nil
}

// queueCrossBuild requests the tasks of other builds that task needs.
// Build names are resolved below this build unless they are absolute.
func (c *Controller) queueCrossBuild(task *domain.Task) error {
	if !task.HasCrossBuildDependencies() {
		return nil
	}
	taskGraph := c.tree.TaskGraph()
	self := c.identity.ID()

	for _, name := range slices.Sorted(maps.Keys(task.BuildDependencies)) {
		target := c.resolveBuild(name)
		for _, path := range task.BuildDependencies[name] {
			res, err := taskGraph.QueueTaskPathForExecution(self, target, path)
			if err != nil {
				return zerr.With(err, "task", task.Path())
			}
			c.waiting[task.Name] = append(c.waiting[task.Name], res)
		}
	}

	for _, module := range task.Requires {
		ref, ok := c.tree.Substitute(module)
		if !ok {
			err := domain.Annotate(domain.ErrUnresolvedSubstitution, "module", module)
			return zerr.With(err, "task", task.Path())
		}
		res, err := taskGraph.QueueTaskForExecution(self, ref.Build(), ref)
		if err != nil {
			return zerr.With(err, "task", task.Path())
		}
		c.waiting[task.Name] = append(c.waiting[task.Name], res)
	}
	return nil
}

func (c *Controller) resolveBuild(name string) domain.BuildID {
	if strings.HasPrefix(name, domain.PathSeparator) {
		return domain.BuildID(domain.ParsePath(name).String())
	}
	return domain.BuildID(c.identity.PrefixForChildBuilds().Child(name).String())
}

// ExecuteTasks runs every scheduled task that has not run yet. A task starts
// once its scheduled dependencies are done, and independent tasks run in
// parallel, each on a worker slot of the lease held in ctx. A task whose
// dependencies did not complete is skipped; failures of independent tasks do
// not stop the others.
func (c *Controller) ExecuteTasks(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped || c.configured == nil {
		c.mu.Unlock()
		return c.violation("ExecuteTasks")
	}
	state := c.newRunState(ctx)
	c.mu.Unlock()

	return state.run()
}

type taskResult struct {
	task   domain.InternedString
	status domain.TaskStatus
	err    error
}

type runState struct {
	ctx       context.Context
	c         *Controller
	graph     *domain.Graph
	tasks     map[domain.InternedString]domain.Task
	inDegree  map[domain.InternedString]int
	ready     []domain.InternedString
	active    int
	resultsCh chan taskResult
	listeners []ports.BuildListener
	errs      []error
}

// newRunState collects the pending tasks. Caller holds c.mu.
func (c *Controller) newRunState(ctx context.Context) *runState {
	graph := c.configured.Graph
	tasks := make(map[domain.InternedString]domain.Task)
	var order []domain.InternedString
	for task := range graph.Walk() {
		if !c.scheduled[task.Name] {
			continue
		}
		if _, done := c.outcomes[task.Name]; done {
			continue
		}
		tasks[task.Name] = task
		order = append(order, task.Name)
	}

	inDegree := make(map[domain.InternedString]int, len(tasks))
	var ready []domain.InternedString
	for _, name := range order {
		for _, dep := range tasks[name].Dependencies {
			if _, pending := tasks[dep]; pending {
				inDegree[name]++
			}
		}
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	return &runState{
		ctx:       ctx,
		c:         c,
		graph:     graph,
		tasks:     tasks,
		inDegree:  inDegree,
		ready:     ready,
		resultsCh: make(chan taskResult, len(tasks)),
		listeners: slices.Clone(c.listeners),
	}
}

func (state *runState) run() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		res := <-state.resultsCh
		state.handleResult(res)
	}

	if err := state.ctx.Err(); err != nil {
		state.errs = append(state.errs, err)
	}
	return errors.Join(state.errs...)
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 {
		name := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		t := state.tasks[name]
		go state.executeTask(&t)
	}
}

func (state *runState) executeTask(task *domain.Task) {
	status, err := state.c.runTask(state.ctx, task, state.listeners)
	state.resultsCh <- taskResult{task: task.Name, status: status, err: err}
}

func (state *runState) handleResult(res taskResult) {
	state.active--

	state.c.mu.Lock()
	state.c.outcomes[res.task] = res.status
	state.c.mu.Unlock()

	if res.err != nil {
		state.errs = append(state.errs, res.err)
	}

	for _, dep := range state.graph.Dependents(res.task) {
		if _, ok := state.tasks[dep]; ok {
			state.inDegree[dep]--
			if state.inDegree[dep] == 0 {
				state.ready = append(state.ready, dep)
			}
		}
	}
}

// runTask runs one task and notifies listeners. Only failures of the task
// itself are returned; skips are reported to listeners with their cause.
func (c *Controller) runTask(ctx context.Context, task *domain.Task, listeners []ports.BuildListener) (domain.TaskStatus, error) {
	id := c.identity.ID()
	path := task.Path()

	skip := func(cause error) (domain.TaskStatus, error) {
		for _, l := range listeners {
			l.OnTaskComplete(id, path, domain.StatusSkipped, cause)
		}
		return domain.StatusSkipped, nil
	}

	if cause := c.blocked(ctx, task); cause != nil {
		return skip(cause)
	}

	var started bool
	err := lease.RunTask(ctx, func(ctx context.Context) error {
		started = true
		for _, l := range listeners {
			l.OnTaskStart(id, path)
		}

		ctx, span := c.tracer.Start(ctx, c.identity.IdentityPathForProject(domain.ParsePath(path)).String(),
			ports.WithAttribute(ports.AttrBuild, string(id)),
			ports.WithAttribute(ports.AttrTask, path),
		)
		defer span.End()

		err := c.executor.Execute(ctx, task, task.WorkingDir, c.buildEnv(), span, span)
		if err != nil {
			span.RecordError(err)
		}
		return err
	})
	if !started {
		return skip(err)
	}

	status := domain.StatusCompleted
	if err != nil {
		status = domain.StatusFailed
		err = zerr.With(zerr.Wrap(err, domain.ErrTaskExecutionFailed.Error()), "task", path)
	}
	for _, l := range listeners {
		l.OnTaskComplete(id, path, status, err)
	}
	return status, err
}

// blocked returns why task cannot run, or nil.
func (c *Controller) blocked(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, dep := range task.Dependencies {
		if c.outcomes[dep] != domain.StatusCompleted {
			return domain.Annotate(domain.ErrDependencyFailed, "dependency", domain.PathSeparator+dep.String())
		}
	}
	for _, res := range c.waiting[task.Name] {
		if !res.IsComplete() || res.Failed() {
			return domain.Annotate(domain.ErrDependencyFailed, "dependency", res.Task().String())
		}
	}
	return nil
}

// FinishBuild reports scheduled tasks that never ran. When the build already
// failed, the failure has been reported and nothing more is collected.
func (c *Controller) FinishBuild(_ context.Context, failure error, collector func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var completed, failed, skipped int
	var notExecuted []string
	for name := range c.scheduled {
		switch c.outcomes[name] {
		case domain.StatusCompleted:
			completed++
		case domain.StatusFailed:
			failed++
		case domain.StatusSkipped:
			skipped++
		default:
			notExecuted = append(notExecuted, domain.PathSeparator+name.String())
		}
	}

	if failure == nil {
		slices.Sort(notExecuted)
		for _, path := range notExecuted {
			collector(domain.Annotate(domain.ErrTaskNotExecuted, "task", path))
		}
	}

	if completed+failed+skipped > 0 {
		c.logger.Info(fmt.Sprintf("build %s finished: %d completed, %d failed, %d skipped",
			c.identity.String(), completed, failed, skipped))
	}
}

// Stop drops listeners and refuses further work. It is safe to call more than once.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.listeners = nil
	return nil
}

// AddListener registers a listener for task events.
func (c *Controller) AddListener(listener ports.BuildListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.listeners = append(c.listeners, listener)
	}
}

func (c *Controller) violation(op string) error {
	err := domain.Annotate(domain.ErrLifecycleViolation, "operation", op)
	return zerr.With(err, "build", c.identity.String())
}

// buildEnv tells a task which build it belongs to.
func (c *Controller) buildEnv() []string {
	return []string{
		"COMPOSITE_BUILD=" + c.identity.String(),
		"COMPOSITE_BUILD_DIR=" + c.definition.RootDir,
	}
}
