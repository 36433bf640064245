package composite_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/composite/internal/core/ports"
	"go.trai.ch/composite/internal/core/ports/mocks"
	"go.trai.ch/composite/internal/engine/composite"
	"go.trai.ch/composite/internal/engine/lease"
	"go.uber.org/mock/gomock"
)

// crossDep is a task of another build a fake task depends on.
type crossDep struct {
	build domain.BuildID
	path  string
}

// buildSpec describes the tasks of one fake build.
type buildSpec struct {
	deps  map[string][]crossDep
	fails map[string]error
}

// eventLog records schedule/execute events across every fake build in order.
type eventLog struct {
	mu      sync.Mutex
	events  []string
	plans   [][]string
	running int
	peak    int
}

func (l *eventLog) plan(_ context.Context, tasks []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plans = append(l.plans, slices.Clone(tasks))
}

func (l *eventLog) emittedPlans() [][]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.plans)
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.events)
}

func (l *eventLog) enter() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running++
	l.peak = max(l.peak, l.running)
}

func (l *eventLog) leave() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running--
}

// fakeController is a lifecycle controller whose tasks only record that they ran.
type fakeController struct {
	id   domain.BuildID
	tree ports.BuildTree
	spec buildSpec
	log  *eventLog
	work time.Duration

	mu        sync.Mutex
	scheduled []string
	executed  map[string]bool
	waitingOn map[string][]ports.IncludedBuildTaskResource
	listeners []ports.BuildListener
	stopped   bool
}

func (f *fakeController) LoadSettings(context.Context) (*domain.Settings, error) {
	return &domain.Settings{}, nil
}

func (f *fakeController) ConfiguredBuild(context.Context) (*domain.ConfiguredBuild, error) {
	return &domain.ConfiguredBuild{}, nil
}

func (f *fakeController) ScheduleTasks(_ context.Context, paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, path := range paths {
		f.log.add("schedule " + string(f.id) + " " + path)
		for _, dep := range f.spec.deps[path] {
			res, err := f.tree.TaskGraph().QueueTaskPathForExecution(f.id, dep.build, dep.path)
			if err != nil {
				return err
			}
			f.waitingOn[path] = append(f.waitingOn[path], res)
		}
		f.scheduled = append(f.scheduled, path)
	}
	return nil
}

func (f *fakeController) ExecuteTasks(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs error
	for _, path := range f.scheduled {
		if f.executed[path] {
			continue
		}
		f.executed[path] = true

		if failed := f.failedDependency(path); failed != nil {
			err := domain.Annotate(domain.ErrDependencyFailed, "task", path)
			f.complete(path, domain.StatusSkipped, err)
			errs = errors.Join(errs, err)
			continue
		}

		for _, l := range f.listeners {
			l.OnTaskStart(f.id, path)
		}
		_ = lease.RunTask(ctx, func(context.Context) error {
			f.log.add("execute " + string(f.id) + " " + path)
			f.log.enter()
			defer f.log.leave()
			if f.work > 0 {
				time.Sleep(f.work)
			}
			return nil
		})

		if err := f.spec.fails[path]; err != nil {
			f.complete(path, domain.StatusFailed, err)
			errs = errors.Join(errs, err)
			continue
		}
		f.complete(path, domain.StatusCompleted, nil)
	}
	return errs
}

func (f *fakeController) failedDependency(path string) ports.IncludedBuildTaskResource {
	for _, res := range f.waitingOn[path] {
		if !res.IsComplete() || res.Failed() {
			return res
		}
	}
	return nil
}

func (f *fakeController) complete(path string, status domain.TaskStatus, err error) {
	for _, l := range f.listeners {
		l.OnTaskComplete(f.id, path, status, err)
	}
}

func (f *fakeController) FinishBuild(context.Context, error, func(error)) {}

func (f *fakeController) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeController) AddListener(l ports.BuildListener) {
	f.listeners = append(f.listeners, l)
}

func (f *fakeController) executedTasks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, path := range f.scheduled {
		if f.executed[path] {
			out = append(out, path)
		}
	}
	return out
}

// fakeFactory creates one fakeController per build from specs keyed by build id.
type fakeFactory struct {
	specs map[domain.BuildID]buildSpec
	log   *eventLog
	work  time.Duration

	mu          sync.Mutex
	controllers map[domain.BuildID]*fakeController
}

func (f *fakeFactory) NewController(
	identity domain.BuildIdentity,
	_ domain.BuildDefinition,
	tree ports.BuildTree,
) (ports.BuildLifecycleController, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := &fakeController{
		id:        identity.ID(),
		tree:      tree,
		spec:      f.specs[identity.ID()],
		log:       f.log,
		work:      f.work,
		executed:  make(map[string]bool),
		waitingOn: make(map[string][]ports.IncludedBuildTaskResource),
	}
	f.controllers[identity.ID()] = c
	return c, nil
}

func (f *fakeFactory) controller(id domain.BuildID) *fakeController {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.controllers[id]
}

type treeFixture struct {
	tree    *composite.Tree
	factory *fakeFactory
	log     *eventLog
	tracker *lease.Tracker
}

// newTreeFixture creates a tree rooted at /work/app that includes one build per name.
func newTreeFixture(t *testing.T, workers int, work time.Duration, specs map[domain.BuildID]buildSpec, included ...string) treeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	log := &eventLog{}
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).Do(log.plan).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	factory := &fakeFactory{
		specs:       specs,
		log:         log,
		work:        work,
		controllers: make(map[domain.BuildID]*fakeController),
	}
	tracker := lease.NewTracker(workers)

	tree, err := composite.NewTree(domain.BuildDefinition{RootDir: "/work/app"}, factory, tracker, logger, tracer)
	require.NoError(t, err)

	for _, name := range included {
		_, err := tree.Registry().AddIncludedBuild(domain.RootBuildID, domain.BuildDefinition{RootDir: "/work/" + name}, false)
		require.NoError(t, err)
	}

	return treeFixture{tree: tree, factory: factory, log: log, tracker: tracker}
}

// collect returns a failure collector and a getter for what it collected.
func collect() (func(error), func() []error) {
	var (
		mu   sync.Mutex
		errs []error
	)
	return func(err error) {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
		}, func() []error {
			mu.Lock()
			defer mu.Unlock()
			return slices.Clone(errs)
		}
}
