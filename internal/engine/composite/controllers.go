package composite

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/engine/build"
)

// buildController holds the cross-build work queued against one participant.
type buildController struct {
	participant *build.Participant

	mu        sync.Mutex
	queued    []domain.QueuedTaskRequest
	resources map[string]*taskResource
	scheduled bool
}

func newBuildController(p *build.Participant) *buildController {
	return &buildController{
		participant: p,
		resources:   make(map[string]*taskResource),
	}
}

// queue records request and returns the resource for its task path. The
// second result is false when the path was already queued.
func (c *buildController) queue(request domain.QueuedTaskRequest) (*taskResource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := request.Task.Path()
	if res, ok := c.resources[path]; ok {
		return res, false
	}
	res := newTaskResource(request.Task)
	c.resources[path] = res
	c.queued = append(c.queued, request)
	return res, true
}

func (c *buildController) takeQueued() []domain.QueuedTaskRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	queued := c.queued
	c.queued = nil
	return queued
}

func (c *buildController) resource(path string) (*taskResource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.resources[path]
	return res, ok
}

// populate hands the queued paths to the participant and reports whether it
// now has work to execute.
func (c *buildController) populate(ctx context.Context, requests []domain.QueuedTaskRequest) error {
	paths := make([]string, 0, len(requests))
	for _, req := range requests {
		if !slices.Contains(paths, req.Task.Path()) {
			paths = append(paths, req.Task.Path())
		}
	}

	if err := c.participant.AddTasks(ctx, paths); err != nil {
		for _, path := range paths {
			if res, ok := c.resource(path); ok {
				res.update(domain.StatusFailed, err)
			}
		}
		return err
	}

	for _, path := range paths {
		if res, ok := c.resource(path); ok {
			res.update(domain.StatusScheduled, nil)
		}
	}
	c.mu.Lock()
	c.scheduled = true
	c.mu.Unlock()
	return nil
}

func (c *buildController) takeScheduled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	scheduled := c.scheduled
	c.scheduled = false
	return scheduled
}

// skipIncomplete completes every resource the build left unfinished.
func (c *buildController) skipIncomplete(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path, res := range c.resources {
		if res.IsComplete() || res.Status() == domain.StatusQueued {
			continue
		}
		err := cause
		if err == nil {
			err = domain.Annotate(domain.ErrTaskNotExecuted, "task", path)
		}
		res.update(domain.StatusSkipped, err)
	}
}

// Controllers drives the two-phase protocol across every participant with
// queued cross-build work: populate all task graphs, then execute.
type Controllers struct {
	registry *build.Registry
	listener ports.BuildListener
	logger   ports.Logger
	tracer   ports.Tracer

	mu          sync.Mutex
	controllers map[domain.BuildID]*buildController
	order       []domain.BuildID
	requires    map[domain.BuildID]map[domain.BuildID]bool
}

// NewControllers creates the controllers for the builds of registry. Task
// events of executing builds are sent to listener.
func NewControllers(
	registry *build.Registry,
	listener ports.BuildListener,
	logger ports.Logger,
	tracer ports.Tracer,
) *Controllers {
	return &Controllers{
		registry:    registry,
		listener:    listener,
		logger:      logger,
		tracer:      tracer,
		controllers: make(map[domain.BuildID]*buildController),
		requires:    make(map[domain.BuildID]map[domain.BuildID]bool),
	}
}

// buildController returns the controller for an included build.
func (c *Controllers) buildController(id domain.BuildID) (*buildController, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if bc, ok := c.controllers[id]; ok {
		return bc, nil
	}
	p, ok := c.registry.Get(id)
	if !ok || p.Identity().IsRoot() {
		return nil, domain.Annotate(domain.ErrInvalidBuildIdentity, "target", string(id))
	}
	bc := newBuildController(p)
	c.controllers[id] = bc
	c.order = append(c.order, id)
	return bc, nil
}

// lookup returns the controller of a build that has had work queued against it.
func (c *Controllers) lookup(id domain.BuildID) (*buildController, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bc, ok := c.controllers[id]
	return bc, ok
}

// dependOn records that requesting may only execute after target.
func (c *Controllers) dependOn(requesting, target domain.BuildID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.requires[requesting] == nil {
		c.requires[requesting] = make(map[domain.BuildID]bool)
	}
	c.requires[requesting][target] = true
}

func (c *Controllers) snapshot() []*buildController {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*buildController, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.controllers[id])
	}
	return out
}

// PopulateTaskGraphs resolves every queued request into its target build's
// task graph. Populating a build can queue new requests, so it repeats until
// nothing is left. Failed requests mark their resources failed; the errors are
// returned joined.
func (c *Controllers) PopulateTaskGraphs(ctx context.Context) error {
	var errs error
	for {
		progressed := false
		for _, bc := range c.snapshot() {
			requests := bc.takeQueued()
			if len(requests) == 0 {
				continue
			}
			progressed = true
			if err := bc.populate(ctx, requests); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if !progressed {
			return errs
		}
	}
}

type buildResult struct {
	id  domain.BuildID
	err error
}

type executionRunState struct {
	ctx       context.Context
	c         *Controllers
	builds    map[domain.BuildID]*buildController
	inDegree  map[domain.BuildID]int
	consumers map[domain.BuildID][]domain.BuildID
	ready     []domain.BuildID
	active    int
	resultsCh chan buildResult
	collector func(error)
}

// ExecuteScheduled executes every build with newly scheduled work. A build
// starts once the builds it requested tasks from are done; otherwise builds
// run concurrently, bounded by their worker leases. A failing build does not
// stop the others: each task failure is passed to collector.
func (c *Controllers) ExecuteScheduled(ctx context.Context, collector func(error)) error {
	state, err := c.newExecutionRunState(ctx, collector)
	if err != nil {
		return err
	}
	if len(state.builds) == 0 {
		return nil
	}

	plan := make([]string, 0, len(state.builds))
	for _, bc := range state.builds {
		identity := bc.participant.Identity()
		for _, path := range bc.participant.Pending() {
			plan = append(plan, identity.IdentityPathForProject(domain.ParsePath(path)).String())
		}
	}
	if len(plan) > 0 {
		slices.Sort(plan)
		c.tracer.EmitPlan(ctx, plan)
	}

	return state.run()
}

func (c *Controllers) newExecutionRunState(ctx context.Context, collector func(error)) (*executionRunState, error) {
	builds := make(map[domain.BuildID]*buildController)
	var ids []domain.BuildID
	for _, bc := range c.snapshot() {
		if bc.takeScheduled() {
			builds[bc.participant.ID()] = bc
			ids = append(ids, bc.participant.ID())
		}
	}

	inDegree := make(map[domain.BuildID]int, len(builds))
	consumers := make(map[domain.BuildID][]domain.BuildID)
	c.mu.Lock()
	for _, id := range ids {
		inDegree[id] = 0
		for target := range c.requires[id] {
			if _, ok := builds[target]; ok {
				inDegree[id]++
				consumers[target] = append(consumers[target], id)
			}
		}
	}
	c.mu.Unlock()

	var ready []domain.BuildID
	for _, id := range ids {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	if err := checkAcyclic(ids, inDegree, consumers, ready); err != nil {
		// Nothing ran; hand the work back so the resources are settled.
		for _, bc := range builds {
			bc.skipIncomplete(err)
		}
		return nil, err
	}

	return &executionRunState{
		ctx:       ctx,
		c:         c,
		builds:    builds,
		inDegree:  inDegree,
		consumers: consumers,
		ready:     ready,
		resultsCh: make(chan buildResult, len(builds)),
		collector: collector,
	}, nil
}

// checkAcyclic runs the ready-queue walk without executing anything and fails
// if some builds never become ready.
func checkAcyclic(
	ids []domain.BuildID,
	inDegree map[domain.BuildID]int,
	consumers map[domain.BuildID][]domain.BuildID,
	ready []domain.BuildID,
) error {
	degree := make(map[domain.BuildID]int, len(inDegree))
	for id, d := range inDegree {
		degree[id] = d
	}
	queue := slices.Clone(ready)
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, consumer := range consumers[id] {
			degree[consumer]--
			if degree[consumer] == 0 {
				queue = append(queue, consumer)
			}
		}
	}
	if visited == len(ids) {
		return nil
	}

	var stuck []string
	for _, id := range ids {
		if degree[id] > 0 {
			stuck = append(stuck, string(id))
		}
	}
	return domain.Annotate(domain.ErrCycleDetected, "builds", strings.Join(stuck, ", "))
}

func (state *executionRunState) run() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		res := <-state.resultsCh
		state.handleResult(res)
	}
	return state.ctx.Err()
}

func (state *executionRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *executionRunState) schedule() {
	for len(state.ready) > 0 {
		id := state.ready[0]
		state.ready = state.ready[1:]

		state.active++
		go state.execute(state.builds[id])
	}
}

func (state *executionRunState) execute(bc *buildController) {
	err := bc.participant.Execute(state.ctx, state.c.listener)
	state.resultsCh <- buildResult{id: bc.participant.ID(), err: err}
}

func (state *executionRunState) handleResult(res buildResult) {
	state.active--

	bc := state.builds[res.id]
	bc.skipIncomplete(res.err)

	if res.err != nil {
		for _, err := range domain.Unjoin(res.err) {
			state.collector(domain.Annotate(err, "build", string(res.id)))
		}
	}

	for _, consumer := range state.consumers[res.id] {
		state.inDegree[consumer]--
		if state.inDegree[consumer] == 0 {
			state.ready = append(state.ready, consumer)
		}
	}
}

// FinishBuilds finishes every build of the tree. Failures go to collector.
func (c *Controllers) FinishBuilds(ctx context.Context, collector func(error)) {
	c.registry.FinishAll(ctx, collector)
}

// StopBuilds stops every build of the tree.
func (c *Controllers) StopBuilds() {
	c.registry.StopAll()
}
