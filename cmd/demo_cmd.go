package cmd

import (
	"fmt"

	"github.com/maxkimambo/taskpool/internal/logger"
	"github.com/maxkimambo/taskpool/pkg/task"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
	"github.com/spf13/cobra"
)

var (
	demoWorkers int

	demoCmd = &cobra.Command{
		Use:   "demo",
		Short: "Run the example workloads and report pass/fail",
		RunE:  runDemo,
	}
)

func init() {
	demoCmd.Flags().IntVarP(&demoWorkers, "workers", "w", 2, "Number of pool workers")
}

func runDemo(cmd *cobra.Command, args []string) error {
	scenarios := []struct {
		name string
		run  func(pool *workerpool.FixedPool) error
	}{
		{"diamond", demoDiamond},
		{"task group", demoGroup},
		{"reduction", demoReduction},
	}

	failed := 0
	for _, s := range scenarios {
		pool := workerpool.New(demoWorkers)
		err := s.run(pool)
		pool.Shutdown()
		if err != nil {
			failed++
			logger.Errorf("%s: %v", s.name, err)
			continue
		}
		logger.Infof("%s: ok", s.name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	logger.Infof("all %d scenarios passed", len(scenarios))
	return nil
}

// demoDiamond wires the diamond graph: e depends on c and d, c on a and b.
func demoDiamond(pool *workerpool.FixedPool) error {
	a := task.Submit(pool, nil, func() (int, error) { return 7, nil })
	b := task.Submit(pool, nil, func() (int, error) { return 22, nil })
	c := task.Submit(pool, []task.Dependency{a, b}, func() (int, error) {
		av, _ := a.Get()
		bv, _ := b.Get()
		return av + bv, nil
	})
	d := task.Submit(pool, nil, func() (int, error) { return 13, nil })
	e := task.Submit(pool, []task.Dependency{c, d}, func() (int, error) {
		cv, _ := c.Get()
		dv, _ := d.Get()
		return cv + dv, nil
	})
	value, err := e.Get()
	if err != nil {
		return err
	}
	if value != 42 {
		return fmt.Errorf("got %d, want 42", value)
	}
	return nil
}

// demoGroup runs the side-effect diamond inside a group scope; the deferred
// join makes leaving the scope the synchronization point.
func demoGroup(pool *workerpool.FixedPool) error {
	var aVal, bVal, cVal, dVal, eVal int
	func() {
		g := task.NewGroup(pool)
		defer g.Join()
		a := task.SubmitVoidIn(g, nil, func() error { aVal = 7; return nil })
		b := task.SubmitVoidIn(g, nil, func() error { bVal = 22; return nil })
		c := task.SubmitVoidIn(g, []task.Dependency{a, b}, func() error {
			cVal = aVal + bVal
			return nil
		})
		d := task.SubmitVoidIn(g, nil, func() error { dVal = 13; return nil })
		task.SubmitVoidIn(g, []task.Dependency{c, d}, func() error {
			eVal = cVal + dVal
			return nil
		})
	}()
	if eVal != 42 {
		return fmt.Errorf("got %d, want 42", eVal)
	}
	return nil
}

func demoReduction(pool *workerpool.FixedPool) error {
	value, err := sumTask(pool, 0, 100).Get()
	if err != nil {
		return err
	}
	if value != 4950 {
		return fmt.Errorf("got %d, want 4950", value)
	}
	return nil
}
