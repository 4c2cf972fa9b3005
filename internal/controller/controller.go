// Package controller implements the fetch → display → edit → persist cycle
// shared by every resource view. One generic state machine is instantiated
// per collection; the web layer decides when to invoke it.
package controller

import (
	"context"
	"sync"
)

// State is the controller's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateLoadFailed
	StateSubmitting
	StateSubmitFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load-failed"
	case StateSubmitting:
		return "submitting"
	case StateSubmitFailed:
		return "submit-failed"
	}
	return "unknown"
}

// Ops are the directory-client calls backing one resource.
type Ops[T any] struct {
	List   func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, item T) (T, error)
	Update func(ctx context.Context, id int64, item T) (T, error)
	Delete func(ctx context.Context, id int64) error
}

// Validator checks an item before it is allowed near the network. A non-nil
// result blocks submission.
type Validator[T any] func(item T, create bool) *ValidationError

// Resource is the view controller for one collection. Mutations are full
// round trips: a success triggers a complete refetch, never an incremental
// local patch, and a failure leaves the previously loaded data untouched.
type Resource[T any] struct {
	name     string
	ops      Ops[T]
	validate Validator[T]
	idOf     func(T) int64

	mu        sync.Mutex
	state     State
	items     []T
	gen       int
	loadErr   error
	submitErr error
}

// New builds a controller. idOf extracts an item's id for lookups.
func New[T any](name string, ops Ops[T], validate Validator[T], idOf func(T) int64) *Resource[T] {
	return &Resource[T]{name: name, ops: ops, validate: validate, idOf: idOf}
}

// List refetches the collection, superseding the cached copy wholesale. A
// response that arrives after a newer List began is dropped so a stale fetch
// can never clobber fresher data.
func (r *Resource[T]) List(ctx context.Context) error {
	r.mu.Lock()
	r.state = StateLoading
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	items, err := r.ops.List(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return nil
	}
	if err != nil {
		r.state = StateLoadFailed
		r.loadErr = err
		return err
	}
	r.items = items
	r.state = StateLoaded
	r.loadErr = nil
	return nil
}

// Create validates the item locally, submits it, and on success refetches
// the whole collection. Validation failures never reach the network.
func (r *Resource[T]) Create(ctx context.Context, item T) error {
	if r.validate != nil {
		if verr := r.validate(item, true); verr != nil {
			return verr
		}
	}
	r.beginSubmit()
	if _, err := r.ops.Create(ctx, item); err != nil {
		r.failSubmit(err)
		return err
	}
	r.finishSubmit()
	// Refetch strictly after the mutation response.
	return r.List(ctx)
}

// Update behaves like Create for an existing item.
func (r *Resource[T]) Update(ctx context.Context, id int64, item T) error {
	if r.validate != nil {
		if verr := r.validate(item, false); verr != nil {
			return verr
		}
	}
	r.beginSubmit()
	if _, err := r.ops.Update(ctx, id, item); err != nil {
		r.failSubmit(err)
		return err
	}
	r.finishSubmit()
	return r.List(ctx)
}

// Delete removes an item and refetches. The caller is responsible for the
// explicit confirmation step before invoking this.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	r.beginSubmit()
	if err := r.ops.Delete(ctx, id); err != nil {
		r.failSubmit(err)
		return err
	}
	r.finishSubmit()
	return r.List(ctx)
}

func (r *Resource[T]) beginSubmit() {
	r.mu.Lock()
	r.state = StateSubmitting
	r.mu.Unlock()
}

func (r *Resource[T]) failSubmit(err error) {
	r.mu.Lock()
	r.state = StateSubmitFailed
	r.submitErr = err
	r.mu.Unlock()
}

func (r *Resource[T]) finishSubmit() {
	r.mu.Lock()
	r.submitErr = nil
	r.mu.Unlock()
}

// Name is the resource's display name.
func (r *Resource[T]) Name() string {
	return r.name
}

// State reports the current lifecycle state.
func (r *Resource[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Items returns the last successfully loaded collection. It stays intact
// across failed loads and failed mutations.
func (r *Resource[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items
}

// Find looks an item up by id in the loaded collection.
func (r *Resource[T]) Find(id int64) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if r.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// LoadErr is the error attached to the last failed load, until the next
// successful load or an explicit dismissal.
func (r *Resource[T]) LoadErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadErr
}

// SubmitErr is the error attached to the last failed mutation, until the
// next successful mutation of the same kind or an explicit dismissal.
func (r *Resource[T]) SubmitErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitErr
}

// Dismiss clears both attached errors without touching the data.
func (r *Resource[T]) Dismiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErr = nil
	r.submitErr = nil
	if r.state == StateLoadFailed || r.state == StateSubmitFailed {
		r.state = StateLoaded
	}
}
