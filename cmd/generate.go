package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/bnema/mst-orders/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(app *app) *cobra.Command {
	var (
		baseDir    string
		lagSet     string
		firstOrder int
		count      int
		seed       uint64
		attempts   int
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate lag-controlled trial orders",
		Long: "Generate writes <base-dir>/<lag-set>/order_<n>.txt for every requested order. " +
			"Either every order is written or none is.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			if !cmd.Flags().Changed("attempts") {
				attempts = app.settings.Attempts
			}
			app.logger.Info("using seed", zap.Uint64("seed", seed))

			entries, err := app.orderService.Generate(cmd.Context(), application.GenerateCommand{
				Schedule:   app.schedule,
				BaseDir:    baseDir,
				LagSet:     lagSet,
				FirstOrder: firstOrder,
				Count:      count,
				Seed:       seed,
				Attempts:   attempts,
				Debug:      debug,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				_, _ = fmt.Fprintf(out, "order %d: %s (%d trials, attempt %d)\n", entry.Order, entry.Path, entry.TotalTrials, entry.Attempt)
				if entry.DebugPath != "" {
					_, _ = fmt.Fprintf(out, "  debug: %s\n", entry.DebugPath)
				}
			}
			_, _ = fmt.Fprintf(out, "seed: %d\n", seed)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "Directory holding lag set folders")
	cmd.Flags().StringVar(&lagSet, "lag-set", "", "Lag set name, used as the output folder")
	cmd.Flags().IntVar(&firstOrder, "first", 1, "Number of the first order to generate")
	cmd.Flags().IntVar(&count, "count", 1, "Number of orders to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (random when unset)")
	cmd.Flags().IntVar(&attempts, "attempts", 1, "Placement attempts per order before giving up")
	cmd.Flags().BoolVar(&debug, "debug", false, "Also write a readable trial list per order")
	_ = cmd.MarkFlagRequired("lag-set")

	return cmd
}
