package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/fontgarden/internal/engine"
	"github.com/danieljhkim/fontgarden/internal/planner"
)

var diffSets []string

var diffCmd = &cobra.Command{
	Use:   "diff <fontgarden> <source.ufo>...",
	Short: "Show what importing sources would change",
	Long: `Compare UFO sources with a fontgarden without writing anything.

Glyphs are reported as added (not stored anywhere), modified (stored and
imported) or removed (stored in the compared sets but missing from the
sources). With --set only the named sets and the glyphs their components
reference are compared.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		req := &engine.DiffRequest{
			Target:     args[0],
			Sources:    args[1:],
			TargetSets: diffSets,
		}

		result, err := eng.PlanImport(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		p := newPrinter(cmd.OutOrStdout())
		if !result.TargetExists {
			p.Warning(fmt.Sprintf("%s does not exist yet; every glyph would be added", args[0]))
		}
		printPlan(p, result.Plan)
		return nil
	},
}

func init() {
	diffCmd.Flags().StringArrayVarP(&diffSets, "set", "s", nil, "Limit the comparison to this set (repeatable)")
}

// printPlan prints the scope and conflicts of an import plan.
func printPlan(p *printer, plan *planner.ImportPlan) {
	scope := plan.Scope

	p.Section("Import Plan")
	p.LabelValue("Styles", strings.Join(plan.Styles, ", "))
	if len(scope.TargetSets) > 0 {
		p.LabelValue("Sets", strings.Join(scope.TargetSets, ", "))
	} else {
		p.LabelValue("Sets", "all")
	}
	p.LabelValue("Compared", countNoun(len(scope.Reference), "glyph", "glyphs"))

	if len(scope.Added)+len(scope.Modified)+len(scope.Removed) == 0 {
		p.Info("")
		p.EmptyState("No glyphs to import")
	} else {
		p.Info("")
		p.List(scope.Added, "A", addedColor)
		p.List(scope.Modified, "M", changedColor)
		p.List(scope.Removed, "D", removedColor)
		p.Info("")
		p.Info(fmt.Sprintf("%s added, %s modified, %s removed",
			countNoun(len(scope.Added), "glyph", "glyphs"),
			countNoun(len(scope.Modified), "glyph", "glyphs"),
			countNoun(len(scope.Removed), "glyph", "glyphs"),
		))
	}

	if plan.HasConflicts() {
		p.Info("")
		p.Warning(fmt.Sprintf("%s outside the selected sets would be overwritten:",
			countNoun(len(plan.Conflicts), "glyph", "glyphs")))
		for _, c := range plan.Conflicts {
			p.Info(fmt.Sprintf("  %s (%s)", c.Glyph, c.Existing))
		}
	}
}
