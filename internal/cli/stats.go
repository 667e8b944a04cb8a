package cli

import (
	"encoding/json"
	"fmt"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/analysis"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var (
		session string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize toolbar usage for a session (default: the latest)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			analyzer := analysis.NewAnalyzer(store)
			summary, err := analyzer.Summarize(session)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				b, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding summary: %w", err)
				}
				fmt.Fprintln(out, string(b))
			case "markdown":
				fmt.Fprint(out, analyzer.FormatReport(summary))
			default:
				return fmt.Errorf("unknown format %q (want markdown or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session ID or prefix")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown, json")

	return cmd
}
