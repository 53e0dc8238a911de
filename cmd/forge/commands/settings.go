package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Share runtimes, servers and SDKs between workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "import",
			Short: "Import the global settings into this workspace",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				n, err := c.app.ImportSettings(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d entities\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Export this workspace's entities to the global settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.app.ExportSettings(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Offer to import the global settings unless already offered",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				imported, err := c.app.CheckSettings(cmd.Context())
				if err != nil {
					return err
				}
				if imported {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "global settings imported")
				}
				return nil
			},
		},
	)
	return cmd
}
