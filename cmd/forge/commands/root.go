// Package commands implements the CLI commands for the forge build tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/build"
	"go.trai.ch/forge/internal/core/domain"
)

// CLI represents the command line interface for forge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options)
	Build(ctx context.Context, opts app.BuildOptions) error
	Refresh(ctx context.Context, projects []string) error
	Watch(ctx context.Context) error
	ImportSettings(ctx context.Context) (int, error)
	ExportSettings(ctx context.Context) error
	CheckSettings(ctx context.Context) (bool, error)
	AddEntity(ctx context.Context, e *domain.Entity) error
	RemoveEntity(ctx context.Context, kind domain.EntityKind, id string) error
	ListEntities(ctx context.Context, kind domain.EntityKind) ([]*domain.Entity, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "forge",
		Short:         "Code generation builds and shared runtime settings for multi-module workspaces",
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

	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to every question")
	rootCmd.PersistentFlags().Bool("no-prompt", false, "Never ask questions, skip what would need an answer")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json")
		yes, _ := cmd.Flags().GetBool("yes")
		noPrompt, _ := cmd.Flags().GetBool("no-prompt")
		c.app.Configure(app.Options{JSON: jsonLogs, Yes: yes, NoPrompt: noPrompt})
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newSettingsCmd())
	for _, kind := range domain.ImportOrder {
		rootCmd.AddCommand(c.newEntityCmd(kind))
	}
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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
