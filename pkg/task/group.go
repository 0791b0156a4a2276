package task

import (
	"sync"

	"github.com/maxkimambo/taskpool/internal/logger"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
)

// Group counts the tasks submitted through it and lets a caller wait for
// all of them at once. The owning scope joins on exit:
//
//	g := task.NewGroup(pool)
//	defer g.Join()
//
// so leaving the scope guarantees every task of the group has finished.
type Group struct {
	pool   workerpool.Pool
	mu     sync.Mutex
	idle   *sync.Cond
	active int
}

// NewGroup creates a group submitting to the given pool.
func NewGroup(pool workerpool.Pool) *Group {
	if pool == nil {
		panic("task: nil pool")
	}
	g := &Group{pool: pool}
	g.idle = sync.NewCond(&g.mu)
	return g
}

// Join blocks until every task submitted through the group has finished.
// It is idempotent; joining an empty group returns immediately.
func (g *Group) Join() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for g.active > 0 {
		g.idle.Wait()
	}
}

// Active returns the number of tasks submitted through the group that have
// not finished yet.
func (g *Group) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// enter counts a task into the group. It must happen before the task's
// preparation finishes: a task without prerequisites can complete, and
// decrement, before the submitting call returns.
func (g *Group) enter() {
	g.mu.Lock()
	g.active++
	g.mu.Unlock()
}

func (g *Group) leave() {
	g.mu.Lock()
	if g.active == 0 {
		g.mu.Unlock()
		panic("task: group counter underflow")
	}
	g.active--
	if g.active == 0 {
		logger.Debugf("task group drained")
		g.idle.Broadcast()
	}
	g.mu.Unlock()
}

// SubmitIn submits a task through a group. Generic methods are not a thing
// in Go, so group submission mirrors the free Submit as a function.
func SubmitIn[T any](g *Group, deps []Dependency, fn Func[T]) *Task[T] {
	g.enter()
	return submit(g.pool, deps, fn, g.leave)
}

// SubmitVoidIn is SubmitIn for callables that only produce side effects.
func SubmitVoidIn(g *Group, deps []Dependency, fn func() error) *Task[Void] {
	return SubmitIn(g, deps, voidFunc(fn))
}
