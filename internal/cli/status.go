package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/fontgarden/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status <fontgarden>",
	Short: "Summarize a fontgarden",
	Long:  `Show the sets, glyph counts and styles of a fontgarden.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		result, err := eng.Status(cmd.Context(), &engine.StatusRequest{Path: args[0]})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		p := newPrinter(cmd.OutOrStdout())
		p.Section("Fontgarden")
		p.LabelValue("Path", result.Path)
		p.LabelValue("Glyphs", strconv.Itoa(result.Glyphs))
		p.LabelValue("Layer files", strconv.Itoa(result.LayerFiles))
		if len(result.Styles) > 0 {
			p.LabelValue("Styles", strings.Join(result.Styles, ", "))
		} else {
			p.LabelValue("Styles", "none")
		}

		p.Section("Sets")
		if len(result.Sets) == 0 {
			p.EmptyState("No glyphs stored")
			return nil
		}
		rows := make([][]string, 0, len(result.Sets))
		for _, set := range result.Sets {
			rows = append(rows, []string{set.Name, strconv.Itoa(set.Glyphs), strconv.Itoa(set.Empty)})
		}
		p.Table([]string{"SET", "GLYPHS", "WITHOUT LAYERS"}, rows)
		return nil
	},
}
