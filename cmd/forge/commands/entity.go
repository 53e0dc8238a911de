package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newEntityCmd(kind domain.EntityKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: "Manage the " + kind.Plural() + " of this workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(c.newEntityAddCmd(kind), c.newEntityRemoveCmd(kind), c.newEntityListCmd(kind))
	return cmd
}

func (c *CLI) newEntityAddCmd(kind domain.EntityKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + string(kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, _ := cmd.Flags().GetString("id")
			typeID, _ := cmd.Flags().GetString("type")
			name, _ := cmd.Flags().GetString("name")
			location, _ := cmd.Flags().GetString("location")
			attrs, _ := cmd.Flags().GetStringToString("attr")

			return c.app.AddEntity(cmd.Context(), &domain.Entity{
				ID:         id,
				Kind:       kind,
				TypeID:     typeID,
				Name:       name,
				Location:   location,
				Attributes: attrs,
			})
		},
	}
	cmd.Flags().String("id", "", "Unique id")
	cmd.Flags().String("type", "", "Vendor qualified type, for example forge."+string(kind)+".tomcat")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("location", "", "Installation directory")
	cmd.Flags().StringToString("attr", nil, "Extra attribute as key=value, repeatable")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func (c *CLI) newEntityRemoveCmd(kind domain.EntityKind) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a " + string(kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveEntity(cmd.Context(), kind, args[0])
		},
	}
}

func (c *CLI) newEntityListCmd(kind domain.EntityKind) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the " + kind.Plural(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entities, err := c.app.ListEntities(cmd.Context(), kind)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tTYPE\tNAME\tLOCATION\tATTRIBUTES")
			for _, e := range entities {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.TypeID, e.Name, e.Location, formatAttrs(e.Attributes))
			}
			return w.Flush()
		},
	}
}

func formatAttrs(attrs map[string]string) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, ",")
}
