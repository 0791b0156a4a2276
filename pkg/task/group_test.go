package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxkimambo/taskpool/pkg/workerpool"
)

func TestNewGroupNilPoolPanics(t *testing.T) {
	assert.Panics(t, func() { NewGroup(nil) })
}

func TestGroupDiamondScope(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var aVal, bVal, cVal, dVal, eVal int
	// Leaving the scope joins the group; no explicit synchronization on the
	// individual tasks.
	func() {
		g := NewGroup(pool)
		defer g.Join()

		a := SubmitVoidIn(g, nil, func() error { aVal = 7; return nil })
		b := SubmitVoidIn(g, nil, func() error { bVal = 22; return nil })
		c := SubmitVoidIn(g, []Dependency{a, b}, func() error {
			cVal = aVal + bVal
			return nil
		})
		d := SubmitVoidIn(g, nil, func() error { dVal = 13; return nil })
		SubmitVoidIn(g, []Dependency{c, d}, func() error {
			eVal = cVal + dVal
			return nil
		})
	}()

	assert.Equal(t, 42, eVal)
}

func TestGroupJoinBlocksUntilTasksFinish(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	release := make(chan struct{})
	started := make(chan struct{})
	SubmitVoidIn(g, nil, func() error {
		close(started)
		<-release
		return nil
	})
	<-started

	joined := make(chan struct{})
	go func() {
		g.Join()
		close(joined)
	}()

	select {
	case <-joined:
		t.Fatal("Join returned while a task was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)

	select {
	case <-joined:
	case <-time.After(time.Second):
		t.Fatal("Join did not return after the task finished")
	}
}

func TestGroupJoinIdempotent(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	// Joining an empty group returns immediately, as often as asked.
	g.Join()
	g.Join()

	SubmitVoidIn(g, nil, func() error { return nil })
	g.Join()
	g.Join()
	assert.Zero(t, g.Active())
}

func TestGroupActiveCount(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	release := make(chan struct{})
	started := make(chan struct{})
	SubmitVoidIn(g, nil, func() error {
		close(started)
		<-release
		return nil
	})
	<-started
	assert.Equal(t, 1, g.Active())

	close(release)
	g.Join()
	assert.Zero(t, g.Active())
}

func TestGroupCountsBeforeDispatch(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	// Zero-prerequisite tasks can finish before the submitting call
	// returns; the counter must already be incremented by then.
	g := NewGroup(pool)
	var count atomic.Int32
	for i := 0; i < 500; i++ {
		SubmitVoidIn(g, nil, func() error {
			count.Add(1)
			return nil
		})
	}
	g.Join()
	assert.Equal(t, int32(500), count.Load())
}

func TestSubmitInReturnsTask(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	g := NewGroup(pool)
	submitted := SubmitIn(g, nil, func() (int, error) { return 9, nil })
	value, err := submitted.Get()
	require.NoError(t, err)
	assert.Equal(t, 9, value)
	g.Join()
}

func TestGroupWithDependenciesAcrossGroups(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	// A group task may depend on a free task and the other way round.
	free := Submit(pool, nil, func() (int, error) { return 4, nil })

	g := NewGroup(pool)
	grouped := SubmitIn(g, []Dependency{free}, func() (int, error) {
		v, err := free.Get()
		return v * 10, err
	})
	after := Submit(pool, []Dependency{grouped}, func() (int, error) {
		v, err := grouped.Get()
		return v + 2, err
	})

	value, err := after.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	g.Join()
}
