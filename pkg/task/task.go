package task

import (
	"errors"
	"sync"

	"github.com/maxkimambo/taskpool/pkg/future"
)

// Dependency is the interface prerequisite lists are made of. Every *Task[T]
// is a Dependency, regardless of its result type, so prerequisites of mixed
// result types go into the same slice.
type Dependency interface {
	// dependencyHandle returns the handle a dependent must wait on. For a
	// nested task this is the tail of the indirection chain, whose
	// completion means the inner task is done.
	dependencyHandle() *handle
}

// Task pairs a dependency-graph handle with the completion cell that
// delivers the callable's result of type T.
type Task[T any] struct {
	mu     sync.Mutex
	cell   *future.Cell[T]
	handle *handle
	// nested is the handle dependents wait on. It differs from handle only
	// when T is itself a task type; see chainNested.
	nested *handle
}

func (t *Task[T]) dependencyHandle() *handle {
	if t == nil {
		return nil
	}
	return t.nested
}

// newTask wraps a handle and its result cell. When the result type is itself
// a task, the wrapper grows the indirection chain so that dependents observe
// the inner task's completion rather than the outer callable's.
func newTask[T any](h *handle, cell *future.Cell[T]) *Task[T] {
	if !cell.Valid() {
		panic("task: invalid result cell")
	}
	t := &Task[T]{cell: cell, handle: h, nested: h}
	var zero T
	if _, nested := any(zero).(Dependency); nested {
		t.nested = chainNested(h, func() *handle {
			value, err := cell.Get()
			if err != nil {
				return nil
			}
			if inner, ok := any(value).(Dependency); ok {
				return inner.dependencyHandle()
			}
			return nil
		})
	}
	return t
}

// chainNested builds the two auxiliary handles that flatten one level of
// task indirection. The inner task is unknown until the outer callable has
// run, so outerAux picks it up after the fact and grafts it onto innerAux;
// innerAux finishing then stands for "inner task fully done". innerHandle is
// only called once outer has finished, i.e. after its result is published;
// a nil return (failed outer callable, nil inner task) leaves the chain to
// complete on its own so dependents keep moving.
func chainNested(outer *handle, innerHandle func() *handle) *handle {
	outerAux := newHandle()
	innerAux := newHandle()
	innerAux.addDependency(outerAux)
	innerAux.setDispatch(innerAux.finish)
	outerAux.addDependency(outer)
	outerAux.setDispatch(func() {
		if inner := innerHandle(); inner != nil {
			innerAux.addDependency(inner)
		}
		innerAux.finishPreparation()
		outerAux.finish()
	})
	outerAux.finishPreparation()
	return innerAux
}

// Join blocks until the task's result is published. For a task whose result
// is itself a task, Join additionally waits for the inner task.
func (t *Task[T]) Join() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cell.Wait()
	value, err := t.cell.Get()
	if err != nil {
		return
	}
	if inner, ok := any(value).(joiner); ok {
		inner.Join()
	}
}

type joiner interface{ Join() }

// Get blocks until the result is published and returns the value, or the
// error the callable failed with.
func (t *Task[T]) Get() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cell.Get()
}

// GetValue reads through one level of task nesting: it waits for the outer
// result, then for the inner task's value. The first error wins.
func GetValue[U any](t *Task[*Task[U]]) (U, error) {
	inner, err := t.Get()
	if err != nil {
		var zero U
		return zero, err
	}
	if inner == nil {
		var zero U
		return zero, errors.New("task: nested task is nil")
	}
	return inner.Get()
}
