package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/xmigraph/internal/codec"
	"github.com/aalvaropc/xmigraph/internal/usecase/query"
)

func queryCmd(flags *rootFlags) *cobra.Command {
	var verbose bool
	var exists bool
	var count int
	var eq, contains, matches string
	var gt, lt float64

	c := &cobra.Command{
		Use:   "query <model> <jsonpath>",
		Short: "Evaluate a JSONPath expression against a loaded model",
		Long: `Evaluate a JSONPath expression against the model as it would be exported.

Without expectation flags the matched value is printed as JSON. With any of
--exists, --count, --eq, --contains, --matches, --gt or --lt the command checks
the value instead and fails when a check does not pass.`,
		Example: `  xmigraph query demo '$.Entities[?(@.EntityType == "XmiStructuralCurveMember")].Name'
  xmigraph query demo '$.Errors' --count 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags.workspace, false)
			if err != nil {
				return err
			}
			path, err := resolveModelPath(ws, args[0])
			if err != nil {
				return err
			}
			m, err := ws.loadModel().Execute(cmd.Context(), path)
			if err != nil {
				return err
			}

			mode := codec.Compact
			if verbose {
				mode = codec.Verbose
			}
			doc, err := query.Document(m, mode)
			if err != nil {
				return err
			}

			check := query.Check{Expr: args[1], Exists: exists}
			fl := cmd.Flags()
			if fl.Changed("count") {
				check.Count = &count
			}
			if fl.Changed("eq") {
				check.Eq = &eq
			}
			if fl.Changed("contains") {
				check.Contains = &contains
			}
			if fl.Changed("matches") {
				check.Matches = &matches
			}
			if fl.Changed("gt") {
				check.Gt = &gt
			}
			if fl.Changed("lt") {
				check.Lt = &lt
			}

			out := cmd.OutOrStdout()
			results := query.Evaluate(doc, check)
			if len(results) == 0 {
				v, err := query.Get(doc, args[1])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}

			th := defaultTheme()
			for _, r := range results {
				mark := th.OK.Render("✓")
				if !r.Passed {
					mark = th.Fail.Render("✗")
				}
				fmt.Fprintf(out, "%s %s\n", mark, r.Message)
			}
			if !query.Passed(results) {
				return fmt.Errorf("query checks failed")
			}
			return nil
		},
	}

	f := c.Flags()
	f.BoolVar(&verbose, "verbose-fields", false, "Query the verbose export (absent fields present as null)")
	f.BoolVar(&exists, "exists", false, "Expect a non-empty value")
	f.IntVar(&count, "count", 0, "Expect this many matches")
	f.StringVar(&eq, "eq", "", "Expect the value to equal this string")
	f.StringVar(&contains, "contains", "", "Expect the value to contain this string")
	f.StringVar(&matches, "matches", "", "Expect the value to match this regular expression")
	f.Float64Var(&gt, "gt", 0, "Expect a number greater than this")
	f.Float64Var(&lt, "lt", 0, "Expect a number less than this")
	return c
}
