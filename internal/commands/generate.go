package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pacelabs/paceforge/internal/config"
	"github.com/pacelabs/paceforge/internal/generate"
)

var (
	configPath string
	outputPath string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the configured pace track to an audio file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		var opts []generate.Option
		if outputPath != "" {
			opts = append(opts, generate.WithOutput(outputPath))
		}

		res, err := generate.New(cfg, opts...).Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %s (%v, %d checkpoints, %d beats, %d voice clips)\n",
			res.Path, res.Duration.Round(0), res.Checkpoints, res.Beats, res.DistinctClips)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&configPath, "config", "c", "paceforge.yaml", "config file")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (overrides config)")
}
