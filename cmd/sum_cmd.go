package cmd

import (
	"fmt"

	"github.com/maxkimambo/taskpool/internal/logger"
	"github.com/maxkimambo/taskpool/pkg/workerpool"
	"github.com/spf13/cobra"
)

var (
	sumFrom    int
	sumTo      int
	sumWorkers int

	sumCmd = &cobra.Command{
		Use:   "sum",
		Short: "Sum an integer range with a recursive split-and-combine task graph",
		RunE:  runSum,
	}
)

func init() {
	sumCmd.Flags().IntVar(&sumFrom, "from", 0, "Start of the range (inclusive)")
	sumCmd.Flags().IntVar(&sumTo, "to", 100, "End of the range (exclusive)")
	sumCmd.Flags().IntVarP(&sumWorkers, "workers", "w", 4, "Number of pool workers")
}

func runSum(cmd *cobra.Command, args []string) error {
	if sumTo <= sumFrom {
		return fmt.Errorf("invalid range [%d, %d)", sumFrom, sumTo)
	}
	pool := workerpool.New(sumWorkers)
	defer pool.Shutdown()

	result := sumTask(pool, sumFrom, sumTo)
	value, err := result.Get()
	if err != nil {
		return err
	}
	logger.Infof("sum of [%d, %d) = %d", sumFrom, sumTo, value)
	return nil
}
