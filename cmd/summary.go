package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/mst-orders/internal/application"
	"github.com/spf13/cobra"
)

var errOrderChecksFailed = errors.New("order checks failed")

func newSummaryCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary <order-file>...",
		Short: "Check order files against the configured lag schedule",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := make([]application.OrderSummary, 0, len(args))
			failed := 0
			for _, path := range args {
				summary, err := app.summaryService.Summarize(cmd.Context(), path, app.schedule)
				if err != nil {
					return err
				}
				if !summary.OK() {
					failed++
				}
				summaries = append(summaries, summary)
			}

			if err := writeSummaries(cmd, app, summaries, asJSON); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d orders", errOrderChecksFailed, failed, len(summaries))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print summaries as JSON")

	return cmd
}

func writeSummaries(cmd *cobra.Command, app *app, summaries []application.OrderSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	rendered, err := app.summaryRenderer(summaries)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
