package cmd

import (
	"github.com/maxkimambo/taskpool/pkg/task"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
)

// fibTask builds the task graph for fib(n) recursively: two subtasks and a
// combiner depending on both. Submission from within a running task is the
// point of the exercise.
func fibTask(pool workerpool.Pool, n int) *task.Task[int] {
	if n <= 1 {
		return task.Submit(pool, nil, func() (int, error) {
			return n, nil
		})
	}
	a := fibTask(pool, n-1)
	b := fibTask(pool, n-2)
	return task.Submit(pool, []task.Dependency{a, b}, func() (int, error) {
		av, err := a.Get()
		if err != nil {
			return 0, err
		}
		bv, err := b.Get()
		if err != nil {
			return 0, err
		}
		return av + bv, nil
	})
}

// sumTask splits [from, to) recursively. The split halves are produced by
// tasks whose result is itself a task, so the combiner depends on nested
// tasks and reads them through GetValue.
func sumTask(pool workerpool.Pool, from, to int) *task.Task[int] {
	n := to - from
	if n <= 2 {
		return task.Submit(pool, nil, func() (int, error) {
			switch n {
			case 1:
				return from, nil
			case 2:
				return from + from + 1, nil
			default:
				return 0, nil
			}
		})
	}
	mid := from + n/2
	left := task.Submit(pool, nil, func() (*task.Task[int], error) {
		return sumTask(pool, from, mid), nil
	})
	right := task.Submit(pool, nil, func() (*task.Task[int], error) {
		return sumTask(pool, mid, to), nil
	})
	return task.Submit(pool, []task.Dependency{left, right}, func() (int, error) {
		lv, err := task.GetValue(left)
		if err != nil {
			return 0, err
		}
		rv, err := task.GetValue(right)
		if err != nil {
			return 0, err
		}
		return lv + rv, nil
	})
}
