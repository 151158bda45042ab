package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stevedore/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the project's builder containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			images, _ := cmd.Flags().GetBool("images")
			jobs, _ := cmd.Flags().GetInt("jobs")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				Images:     images,
				Jobs:       jobs,
			})
		},
	}

	cmd.Flags().Bool("images", false, "Also remove the project's images")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent removals (0 uses one per CPU)")

	return cmd
}
