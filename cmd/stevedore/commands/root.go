// Package commands implements the CLI commands for stevedore.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/stevedore/internal/app"
	"go.trai.ch/stevedore/internal/build"
	"go.trai.ch/stevedore/internal/core/domain"
)

// CLI represents the command line interface for stevedore.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// LogSettings is implemented by loggers whose format and level can change at startup.
type LogSettings interface {
	SetJSON(enable bool)
	SetLevel(level domain.LogLevel)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "stevedore",
		Short:         "Declarative Docker build orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", domain.DefaultConfigFile, "Path to the build file")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Minimum log level (debug, info, warn, error)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRun = c.configureLogging

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// WithLogSettings lets the --json and --log-level flags reconfigure s.
func (c *CLI) WithLogSettings(s LogSettings) *CLI {
	c.logs = s
	return c
}

func (c *CLI) configureLogging(cmd *cobra.Command, _ []string) {
	if c.logs == nil {
		return
	}
	jsonLogs, _ := cmd.Flags().GetBool("json")
	levelName, _ := cmd.Flags().GetString("log-level")
	c.logs.SetJSON(jsonLogs)
	c.logs.SetLevel(domain.ParseLogLevel(levelName))
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
