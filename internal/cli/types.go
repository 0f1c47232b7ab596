package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/shapes"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the entity and relationship types the loader recognizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			th := defaultTheme()
			reg := shapes.Default()

			fmt.Fprintln(out, th.Title.Render("Entities"))
			for _, t := range reg.EntityTypes() {
				fmt.Fprintf(out, "  %s\n", t)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, th.Title.Render("Relationships"))
			for _, t := range reg.RelationshipTypes() {
				fmt.Fprintf(out, "  %s\n", t)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, th.Title.Render("Cross-section parameters"))
			for _, s := range shapes.CrossSectionShapes.Values() {
				layouts := shapes.ParameterLayouts(s)
				if len(layouts) == 0 {
					fmt.Fprintf(out, "  %-20s any\n", s)
					continue
				}
				alts := make([]string, len(layouts))
				for i, l := range layouts {
					alts[i] = strings.Join(l, " ")
				}
				fmt.Fprintf(out, "  %-20s %s\n", s, strings.Join(alts, " | "))
			}
			return nil
		},
	}
}
