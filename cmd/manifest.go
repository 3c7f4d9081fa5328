package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newManifestCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect the record of generated orders",
	}

	cmd.AddCommand(newManifestListCmd(app))

	return cmd
}

func newManifestListCmd(app *app) *cobra.Command {
	var (
		lagSet string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated orders with the seed that reproduces each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.manifest.List(cmd.Context())
			if err != nil {
				return err
			}

			filtered := entries[:0]
			for _, entry := range entries {
				if lagSet == "" || entry.LagSet == lagSet {
					filtered = append(filtered, entry)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(filtered)
			}

			if len(filtered) == 0 {
				_, _ = fmt.Fprintln(out, "orders: none")
				return nil
			}
			for _, entry := range filtered {
				_, _ = fmt.Fprintf(out, "%s order %d: seed %d attempt %d schedule %s (%s, %s)\n",
					entry.LagSet, entry.Order, entry.Seed, entry.Attempt, entry.Schedule,
					entry.Path, entry.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lagSet, "lag-set", "", "Only list orders of this lag set")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}
