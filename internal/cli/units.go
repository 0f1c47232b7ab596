package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/domain"
	"github.com/aalvaropc/xmigraph/internal/shapes"
)

func unitsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "units",
		Short: "Inspect and convert the units an XmiUnit entity can declare",
	}
	c.AddCommand(unitsListCmd(), unitsConvertCmd())
	return c
}

func unitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List units grouped by family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, u := range shapes.Units.Values() {
				fam, _ := shapes.UnitFamilyOf(u)
				fmt.Fprintf(out, "%-6s %s\n", u, fam)
			}
			return nil
		},
	}
}

func unitsConvertCmd() *cobra.Command {
	var display bool
	var imperial bool

	c := &cobra.Command{
		Use:     "convert <value> <from> [to]",
		Short:   "Convert a value between units of the same family",
		Example: "  xmigraph units convert 1000 mm m\n  xmigraph units convert 0.001 m --display",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return &domain.OpError{Op: "cli.units", Kind: domain.KindInvalidInput, Err: fmt.Errorf("invalid value %q", args[0])}
			}

			from := args[1]
			var to string
			switch {
			case len(args) == 3:
				to = args[2]
			case display:
				to = shapes.DisplayUnit(v, from, !imperial)
			default:
				return fmt.Errorf("give a target unit or use --display")
			}

			got, err := shapes.ConvertValue(v, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strconv.FormatFloat(got, 'g', 12, 64), to)
			return nil
		},
	}

	c.Flags().BoolVar(&display, "display", false, "Pick a readable length unit instead of naming one")
	c.Flags().BoolVar(&imperial, "imperial", false, "With --display, pick among in, ft and yd")
	return c
}
