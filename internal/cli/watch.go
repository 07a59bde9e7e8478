package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/fontgarden/internal/engine"
	"github.com/danieljhkim/fontgarden/internal/hash"
	"github.com/danieljhkim/fontgarden/internal/logging"
	"github.com/danieljhkim/fontgarden/internal/watch"
)

var (
	watchSets     []string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <fontgarden> <source.ufo>...",
	Short: "Re-import UFO sources whenever they change",
	Long: `Import sources into a fontgarden, then import them again after every
change until interrupted. Changes arriving within the debounce interval are
imported together. Batches that leave the sources' content unchanged are
skipped. A failed import is reported and watching continues.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := newEngine()

		debounce := watchDebounce
		if !cmd.Flags().Changed("debounce") && settings != nil {
			debounce = settings.Watch.Debounce
		}

		req := &engine.ImportRequest{
			Target:     args[0],
			Sources:    args[1:],
			TargetSets: watchSets,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p := newPrinter(cmd.OutOrStdout())
		hasher := hash.NewSHA256Hasher()
		var last string
		runImport := func(ctx context.Context) {
			sum, err := hash.Trees(hasher, req.Sources)
			if err != nil {
				logger.Debug("could not fingerprint sources", "error", err)
			} else if sum == last {
				logger.Debug("sources unchanged, skipping import")
				return
			}

			result, err := eng.Import(ctx, req)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
				return
			}
			last = sum
			p.Success(fmt.Sprintf("Imported %s into %s", countNoun(result.Glyphs, "glyph", "glyphs"), req.Target))
		}

		runImport(ctx)

		w, err := watch.New(req.Sources, debounce, logging.WithComponent(logger, "watch"))
		if err != nil {
			return err
		}
		defer w.Close()

		p.Info(fmt.Sprintf("Watching %s (Ctrl-C to stop)", countNoun(len(req.Sources), "source", "sources")))
		return w.Run(ctx, func(ctx context.Context, changed []string) error {
			logger.Info("sources changed", "files", len(changed))
			runImport(ctx)
			return nil
		})
	},
}

func init() {
	watchCmd.Flags().StringArrayVarP(&watchSets, "set", "s", nil, "Limit the import to this set (repeatable)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Quiet period before re-importing")
}
