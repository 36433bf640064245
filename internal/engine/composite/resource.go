package composite

import (
	"sync"

	"go.trai.ch/composite/internal/core/domain"
)

// taskResource is the outcome handle of one queued cross-build task.
type taskResource struct {
	ref  domain.TaskReference
	done chan struct{}

	mu     sync.Mutex
	status domain.TaskStatus
	err    error
}

func newTaskResource(ref domain.TaskReference) *taskResource {
	return &taskResource{
		ref:    ref,
		done:   make(chan struct{}),
		status: domain.StatusQueued,
	}
}

func (r *taskResource) Task() domain.TaskReference {
	return r.ref
}

func (r *taskResource) Status() domain.TaskStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *taskResource) IsComplete() bool {
	return r.Status().IsComplete()
}

func (r *taskResource) Failed() bool {
	return r.Status().IsFailure()
}

func (r *taskResource) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *taskResource) Done() <-chan struct{} {
	return r.done
}

// update moves the resource to status. A completed resource never changes again.
func (r *taskResource) update(status domain.TaskStatus, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.IsComplete() {
		return
	}
	r.status = status
	r.err = err
	if status.IsComplete() {
		close(r.done)
	}
}
