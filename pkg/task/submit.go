package task

import (
	"fmt"

	"github.com/maxkimambo/taskpool/pkg/future"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
)

// Func is a task's unit of work. Inputs are closure captures; prerequisite
// results are read with Get or GetValue on the captured tasks, which by the
// time the callable runs return without blocking.
type Func[T any] func() (T, error)

// Void is the result type of side-effect-only tasks.
type Void = struct{}

// Submit hands fn to the pool once every task in deps has finished. It
// returns immediately; submission never blocks on prerequisites. A nil or
// empty deps slice dispatches as soon as the pool has capacity.
func Submit[T any](pool workerpool.Pool, deps []Dependency, fn Func[T]) *Task[T] {
	return submit(pool, deps, fn, nil)
}

// SubmitVoid is Submit for callables that only produce side effects.
func SubmitVoid(pool workerpool.Pool, deps []Dependency, fn func() error) *Task[Void] {
	return Submit(pool, deps, voidFunc(fn))
}

// submit is the common front end. post, when non-nil, runs after the result
// is published and all dependents have been notified; the group counter
// decrement rides on it.
func submit[T any](pool workerpool.Pool, deps []Dependency, fn Func[T], post func()) *Task[T] {
	if pool == nil {
		panic("task: nil pool")
	}
	if fn == nil {
		panic("task: nil task function")
	}
	cell := future.New[T]()
	h := newHandle()
	t := newTask(h, cell)
	for _, dep := range deps {
		if dep == nil {
			panic("task: nil dependency")
		}
		prereq := dep.dependencyHandle()
		if prereq == nil {
			panic("task: dependency without handle")
		}
		h.addDependency(prereq)
	}
	h.setDispatch(func() {
		pool.Submit(func() {
			// Publish before finish: notification releases dependents,
			// and their callables may read the result immediately.
			value, err := invoke(fn)
			if err != nil {
				cell.Fail(err)
			} else {
				cell.Complete(value)
			}
			h.finish()
			if post != nil {
				post()
			}
		})
	})
	h.finishPreparation()
	return t
}

// invoke runs fn, converting a panic into an error so that a failing
// callable completes its cell instead of killing the worker. The graph keeps
// moving either way; consumers observe the failure at Get.
func invoke[T any](fn Func[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task: callable panicked: %v", r)
		}
	}()
	return fn()
}

func voidFunc(fn func() error) Func[Void] {
	if fn == nil {
		return nil
	}
	return func() (Void, error) {
		return Void{}, fn()
	}
}
