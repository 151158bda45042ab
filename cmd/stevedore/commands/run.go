package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stevedore/internal/app"
	"go.trai.ch/stevedore/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build images, run builders and export artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			rebuild, _ := cmd.Flags().GetBool("rebuild")
			rerun, _ := cmd.Flags().GetBool("rerun")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			jobs, _ := cmd.Flags().GetInt("jobs")
			progress, _ := cmd.Flags().GetBool("progress")

			return c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath: configPath,
				OutputDir:  output,
				Rebuild:    rebuild,
				Rerun:      rerun,
				Timeout:    timeout,
				Jobs:       jobs,
				Progress:   progress,
			})
		},
	}
	cmd.Flags().StringP("output", "o", domain.DefaultOutputDir, "Directory exports are written to")
	cmd.Flags().Bool("rebuild", false, "Rebuild images that already exist")
	cmd.Flags().Bool("rerun", false, "Rerun builders that already succeeded")
	cmd.Flags().Duration("timeout", 0, "Upper bound on the whole run (0 disables)")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent images or builders (0 uses one per CPU)")
	cmd.Flags().BoolP("progress", "p", false, "Show a live progress view")
	return cmd
}
