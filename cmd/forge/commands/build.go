package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate build artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		c.newBuildKindCmd("service", domain.DescriptorService, "Generate the service layer from service.xml"),
		c.newBuildKindCmd("wsdd", domain.DescriptorWSDD, "Generate web service deployment descriptors"),
		c.newBuildKindCmd("lang", domain.DescriptorLanguage, "Build language resource bundles"),
	)
	return cmd
}

func (c *CLI) newBuildKindCmd(use string, kind domain.DescriptorKind, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [projects...]",
		Short: short,
		Long: short + ".\n\n" +
			"Without projects, the project containing the current directory is built.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			descriptor, _ := cmd.Flags().GetString("descriptor")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Kind:       kind,
				Projects:   args,
				All:        all,
				Descriptor: descriptor,
			})
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Build every project of the workspace")
	cmd.Flags().StringP("descriptor", "d", "", "Build the module owning this descriptor file")
	cmd.MarkFlagsMutuallyExclusive("all", "descriptor")
	return cmd
}
