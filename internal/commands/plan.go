package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacelabs/paceforge/internal/config"
	"github.com/pacelabs/paceforge/internal/pace"
)

var planConfigPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the checkpoint schedule without rendering audio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(planConfigPath)
		if err != nil {
			return err
		}
		paceDur, err := cfg.PaceDuration()
		if err != nil {
			return err
		}
		calc, err := pace.NewCalculator(paceDur, cfg.Target.Segment, cfg.Pool.Length)
		if err != nil {
			return err
		}

		warmup := time.Duration(cfg.Audio.Warmup * float64(time.Second))
		fmt.Printf("Pace %v per %g, distance %g, activity %v (warmup %v)\n",
			paceDur, cfg.Target.Segment, cfg.Target.Distance,
			calc.ActivityDuration(cfg.Target.Distance), warmup)

		for _, series := range cfg.Announcements {
			cps, err := calc.Checkpoints(cfg.Target.Distance, series.Interval, series.Format)
			if err != nil {
				return err
			}
			fmt.Printf("Every %g:\n", series.Interval)
			for _, cp := range cps {
				fmt.Printf("  %8v  %q\n", (warmup + cp.Time).Round(time.Millisecond), cp.Label)
			}
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&planConfigPath, "config", "c", "paceforge.yaml", "config file")
}
