package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/bnema/mst-orders/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type renderFlags struct {
	baseDir  string
	lagSet   string
	runs     int
	outDir   string
	seed     uint64
	trials   int
	setDir   string
	binsPath string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseDir, "base-dir", ".", "Directory holding lag set folders and bin files")
	cmd.Flags().StringVar(&f.lagSet, "lag-set", "", "Lag set whose orders are rendered")
	cmd.Flags().IntVar(&f.runs, "runs", 0, "Identical run files per order (default from settings)")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Output directory (default from settings)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed for pool assignment (random when unset)")
	cmd.Flags().IntVar(&f.trials, "trials", -1, "Expected rows per order; 0 disables the check (default from schedule)")
	cmd.Flags().StringVar(&f.setDir, "set-dir-format", "", "Image directory format, %s is the set (default from settings)")
	_ = cmd.MarkFlagRequired("lag-set")
}

// resolve fills unset flags from settings.
func (f *renderFlags) resolve(cmd *cobra.Command, app *app) {
	if !cmd.Flags().Changed("seed") {
		f.seed = rand.Uint64()
	}
	if !cmd.Flags().Changed("runs") {
		f.runs = app.settings.Render.Runs
	}
	if !cmd.Flags().Changed("out") {
		f.outDir = app.settings.Render.OutDir
	}
	if !cmd.Flags().Changed("set-dir-format") {
		f.setDir = app.settings.Render.SetDirFormat
	}
	if !cmd.Flags().Changed("trials") {
		f.trials = app.schedule.TotalTrials()
	}
	app.logger.Info("using seed", zap.Uint64("seed", f.seed))
}

func newRenderCmd(app *app) *cobra.Command {
	var (
		flags   renderFlags
		order   int
		stimSet string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one order against one stimulus set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.resolve(cmd, app)

			paths, err := app.renderService.Render(cmd.Context(), application.RenderCommand{
				BaseDir:        flags.baseDir,
				LagSet:         flags.lagSet,
				Order:          order,
				StimSet:        stimSet,
				BinsPath:       flags.binsPath,
				Runs:           flags.runs,
				OutDir:         flags.outDir,
				SetDirFormat:   flags.setDir,
				Seed:           flags.seed,
				ExpectedTrials: flags.trials,
			})
			if err != nil {
				return err
			}

			return writeRendered(cmd, paths, flags.seed)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&order, "order", 0, "Order number to render")
	cmd.Flags().StringVar(&stimSet, "set", "", "Stimulus set name")
	cmd.Flags().StringVar(&flags.binsPath, "bins", "", "Bin file (default <base-dir>/Set<set> bins.txt)")
	_ = cmd.MarkFlagRequired("order")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func newRenderAllCmd(app *app) *cobra.Command {
	var (
		flags    renderFlags
		orders   []int
		stimSets []string
	)

	cmd := &cobra.Command{
		Use:   "render-all",
		Short: "Render every order of a lag set against every stimulus set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.resolve(cmd, app)

			var paths []string
			render := func(ctx context.Context, progress func(done, total int)) error {
				var err error
				paths, err = app.renderService.RenderAll(ctx, application.RenderAllCommand{
					BaseDir:        flags.baseDir,
					LagSet:         flags.lagSet,
					StimSets:       stimSets,
					Orders:         orders,
					Runs:           flags.runs,
					OutDir:         flags.outDir,
					SetDirFormat:   flags.setDir,
					Seed:           flags.seed,
					ExpectedTrials: flags.trials,
					Progress:       progress,
				})
				return err
			}

			var err error
			if app.isTerminal(cmd.ErrOrStderr()) {
				err = renderWithProgress(cmd.Context(), cmd.ErrOrStderr(), len(stimSets)*len(orders), render)
			} else {
				err = render(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}

			return writeRendered(cmd, paths, flags.seed)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntSliceVar(&orders, "orders", nil, "Order numbers to render")
	cmd.Flags().StringSliceVar(&stimSets, "sets", nil, "Stimulus set names")
	_ = cmd.MarkFlagRequired("orders")
	_ = cmd.MarkFlagRequired("sets")

	return cmd
}

func writeRendered(cmd *cobra.Command, paths []string, seed uint64) error {
	out := cmd.OutOrStdout()
	for _, path := range paths {
		_, _ = fmt.Fprintln(out, path)
	}
	_, err := fmt.Fprintf(out, "rendered %d files, seed: %d\n", len(paths), seed)
	return err
}
