package cmd

import (
	"fmt"

	"github.com/maxkimambo/taskpool/internal/logger"
	"github.com/maxkimambo/taskpool/pkg/task"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
	"github.com/spf13/cobra"
)

var (
	fibN       int
	fibWorkers int

	fibCmd = &cobra.Command{
		Use:   "fib",
		Short: "Compute a Fibonacci number with recursively submitted tasks",
		RunE:  runFib,
	}
)

func init() {
	fibCmd.Flags().IntVarP(&fibN, "number", "n", 10, "Index of the Fibonacci number to compute")
	fibCmd.Flags().IntVarP(&fibWorkers, "workers", "w", 4, "Number of pool workers")
}

func runFib(cmd *cobra.Command, args []string) error {
	if fibN < 0 {
		return fmt.Errorf("invalid index %d: must be non-negative", fibN)
	}
	pool := workerpool.New(fibWorkers)
	defer pool.Shutdown()

	// The driver task itself returns a task, exercising the nested path.
	result := task.Submit(pool, nil, func() (*task.Task[int], error) {
		return fibTask(pool, fibN), nil
	})
	value, err := task.GetValue(result)
	if err != nil {
		return err
	}
	logger.Infof("fib(%d) = %d", fibN, value)
	return nil
}
