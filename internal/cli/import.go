package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/fontgarden/internal/engine"
)

var (
	importSets   []string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import <fontgarden> <source.ufo>...",
	Short: "Import UFO sources into a fontgarden",
	Long: `Merge one UFO source per style into a fontgarden, creating it if needed.

Every layer of every source is stored under "<style>" (the default layer),
"<style>.background" or "<style>.<layer>". Code points come from the Regular
source, or from the first style name in sorted order when there is none.

With --set only the named sets, and the glyphs their components reference,
are compared against the sources: stored glyphs of those sets that the sources
no longer contain lose the imported styles' layers. New glyphs go into the
set named by a single --set, or are categorized by script otherwise.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		req := &engine.ImportRequest{
			Target:     args[0],
			Sources:    args[1:],
			TargetSets: importSets,
			DryRun:     importDryRun,
		}

		result, err := eng.Import(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		p := newPrinter(cmd.OutOrStdout())
		if importDryRun {
			printPlan(p, result.Plan)
			p.Info("")
			p.Info(fmt.Sprintf("Dry run: %s not written", args[0]))
			return nil
		}

		verb := "Updated"
		if result.Created {
			verb = "Created"
		}
		p.Success(fmt.Sprintf("%s %s from %s (%s, default style %s)",
			verb, args[0],
			countNoun(len(req.Sources), "source", "sources"),
			countNoun(result.Glyphs, "glyph", "glyphs"),
			result.DefaultStyle,
		))
		if result.Plan.HasConflicts() {
			p.Warning(fmt.Sprintf("%s outside the selected sets were overwritten",
				countNoun(len(result.Plan.Conflicts), "glyph", "glyphs")))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringArrayVarP(&importSets, "set", "s", nil, "Limit the import to this set (repeatable)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show the plan without writing the fontgarden")
}
