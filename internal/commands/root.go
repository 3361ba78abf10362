// Package commands defines the paceforge CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/pacelabs/paceforge/internal/log"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "paceforge",
	Short: "Generate pace-announcement audio tracks",
	Long: `paceforge turns a target pace and distance into a single audio track:
spoken checkpoint announcements over a metronome click, ready to play
during a workout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
