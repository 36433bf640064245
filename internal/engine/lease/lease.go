// Package lease bounds how many tasks may run at once across a composite build.
//
// Every running task occupies one slot of the tracker's pool. A build holds a
// lease while it executes; the slot it acquired for that is handed to its
// tasks. Work started from inside a held lease (a nested build executing on
// behalf of a task or build that waits for it) shares the caller's slot
// instead of taking another one. The held lease travels in the context, so
// builds started side by side never share.
package lease

import (
	"context"
	"sync"

	"go.trai.ch/composite/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// Lease is a node in the lease tree of a composite build.
type Lease struct {
	name    string
	parent  *Lease
	tracker *Tracker
	holds   int
}

// Name returns the lease name.
func (l *Lease) Name() string {
	return l.name
}

// Parent returns the lease this one was derived from, or nil for a root lease.
func (l *Lease) Parent() *Lease {
	return l.parent
}

// Child derives a lease for a nested build.
func (l *Lease) Child(name string) *Lease {
	return &Lease{name: name, parent: l, tracker: l.tracker}
}

// Held reports whether work is currently running under the lease.
func (l *Lease) Held() bool {
	l.tracker.mu.Lock()
	defer l.tracker.mu.Unlock()
	return l.holds > 0
}

// covers reports whether l is other or one of its ancestors.
func (l *Lease) covers(other *Lease) bool {
	for p := other; p != nil; p = p.parent {
		if p == l {
			return true
		}
	}
	return false
}

// slot is one occupied worker slot.
type slot struct {
	lease  *Lease
	pooled bool
}

// holder is a held lease: one base slot, lent to one task at a time, plus
// the pool for any further tasks.
type holder struct {
	lease   *Lease
	tracker *Tracker
	idle    bool
	freed   chan struct{}
}

type holderKey struct{}

type slotKey struct{}

func holderFrom(ctx context.Context) *holder {
	h, _ := ctx.Value(holderKey{}).(*holder)
	return h
}

func slotFrom(ctx context.Context) *slot {
	s, _ := ctx.Value(slotKey{}).(*slot)
	return s
}

// take returns the base slot when it is idle, otherwise a slot from the
// pool. It blocks until either frees up or ctx is done.
func (h *holder) take(ctx context.Context) (*slot, error) {
	t := h.tracker
	for {
		t.mu.Lock()
		if h.idle {
			h.idle = false
			t.mu.Unlock()
			return &slot{lease: h.lease}, nil
		}
		freed := h.freed
		t.mu.Unlock()

		if t.tryAcquire() {
			return &slot{lease: h.lease, pooled: true}, nil
		}

		waitCtx, cancel := context.WithCancel(ctx)
		acquired := make(chan error, 1)
		go func() {
			acquired <- t.acquire(waitCtx)
		}()

		select {
		case err := <-acquired:
			cancel()
			if err != nil {
				return nil, err
			}
			return &slot{lease: h.lease, pooled: true}, nil
		case <-freed:
			cancel()
			if err := <-acquired; err == nil {
				t.release()
			}
		}
	}
}

// give returns s to wherever it came from.
func (h *holder) give(s *slot) {
	if s.pooled {
		h.tracker.release()
		return
	}
	h.tracker.mu.Lock()
	defer h.tracker.mu.Unlock()
	h.idle = true
	close(h.freed)
	h.freed = make(chan struct{})
}

// Tracker is the worker slot pool of one composite build.
type Tracker struct {
	sem *semaphore.Weighted
	max int

	mu     sync.Mutex
	active int
	peak   int
}

// NewTracker creates a tracker with maxWorkers slots. Values below one are raised to one.
func NewTracker(maxWorkers int) *Tracker {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Tracker{
		sem: semaphore.NewWeighted(int64(maxWorkers)),
		max: maxWorkers,
	}
}

// Root returns a new, unheld root lease.
func (t *Tracker) Root(name string) *Lease {
	return &Lease{name: name, tracker: t}
}

// WithSharedLease runs work while holding lease.
//
// When ctx comes from a task running under lease or one of its ancestors,
// work borrows that task's slot. When ctx comes from the execution of such a
// build itself, work takes a slot through that build. Otherwise a slot is
// acquired from the pool. Acquiring blocks until a slot frees up or ctx is
// done. The slot is given back when work returns or panics.
func (t *Tracker) WithSharedLease(ctx context.Context, lease *Lease, work func(context.Context) error) error {
	var giveBack func()

	switch s, h := slotFrom(ctx), holderFrom(ctx); {
	case s != nil && s.lease.covers(lease):
		giveBack = func() {}
	case h != nil && h.lease.covers(lease):
		borrowed, err := h.take(ctx)
		if err != nil {
			return acquireFailed(err, lease)
		}
		giveBack = func() { h.give(borrowed) }
	default:
		if err := t.acquire(ctx); err != nil {
			return acquireFailed(err, lease)
		}
		giveBack = t.release
	}
	defer giveBack()

	t.mu.Lock()
	lease.holds++
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		lease.holds--
		t.mu.Unlock()
	}()

	h := &holder{lease: lease, tracker: t, idle: true, freed: make(chan struct{})}
	ctx = context.WithValue(ctx, holderKey{}, h)
	ctx = context.WithValue(ctx, slotKey{}, (*slot)(nil))
	return work(ctx)
}

// RunTask runs one task on a worker slot of the lease held in ctx. The first
// task uses the slot the lease was acquired with; tasks running next to it
// take further slots from the pool. Outside a held lease work runs directly.
func RunTask(ctx context.Context, work func(context.Context) error) error {
	h := holderFrom(ctx)
	if h == nil {
		return work(ctx)
	}

	s, err := h.take(ctx)
	if err != nil {
		return acquireFailed(err, h.lease)
	}
	defer h.give(s)

	return work(context.WithValue(ctx, slotKey{}, s))
}

func acquireFailed(err error, lease *Lease) error {
	return zerr.With(zerr.Wrap(err, domain.ErrLeaseAcquireFailed.Error()), "lease", lease.name)
}

func (t *Tracker) acquire(ctx context.Context) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	t.occupy()
	return nil
}

func (t *Tracker) tryAcquire() bool {
	if !t.sem.TryAcquire(1) {
		return false
	}
	t.occupy()
	return true
}

func (t *Tracker) occupy() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active++
	t.peak = max(t.peak, t.active)
}

func (t *Tracker) release() {
	t.mu.Lock()
	t.active--
	t.mu.Unlock()
	t.sem.Release(1)
}

// Active returns the number of pool slots currently occupied.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Peak returns the highest number of pool slots occupied at once.
func (t *Tracker) Peak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.peak
}

// Max returns the size of the pool.
func (t *Tracker) Max() int {
	return t.max
}
