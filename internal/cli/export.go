package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/fontgarden/internal/engine"
)

var (
	exportOutput string
	exportStyles []string
)

var exportCmd = &cobra.Command{
	Use:   "export <fontgarden>",
	Short: "Export a fontgarden to UFO sources",
	Long: `Write one UFO source per style found in a fontgarden.

Sources are named "<fontgarden>-<style>.ufo" and replace existing sources of
the same name. With --style only the named styles are written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		output := exportOutput
		if !cmd.Flags().Changed("output") && settings != nil {
			output = settings.Export.OutputDir
		}

		req := &engine.ExportRequest{
			Source:    args[0],
			OutputDir: output,
			Styles:    exportStyles,
		}

		result, err := eng.Export(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), result)
		}

		p := newPrinter(cmd.OutOrStdout())
		for _, src := range result.Sources {
			p.Success(fmt.Sprintf("%s: %s (%s, %s)",
				src.Style, src.Path,
				countNoun(src.Glyphs, "glyph", "glyphs"),
				countNoun(src.Layers, "layer", "layers"),
			))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", ".", "Directory receiving the UFO sources")
	exportCmd.Flags().StringArrayVar(&exportStyles, "style", nil, "Export only this style (repeatable)")
}
