package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/jsonutil"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/timeutil"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		session string
		kind    string
		limit   int
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, or the events of one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if session == "" {
				return listSessions(out, store, limit)
			}

			id, err := resolveSession(store, session)
			if err != nil {
				return err
			}
			filter := database.EventFilter{SessionID: &id, Limit: limit}
			if kind != "" {
				filter.Kind = &kind
			}
			events, err := store.QueryEvents(filter)
			if err != nil {
				return fmt.Errorf("querying events: %w", err)
			}
			return listEvents(out, events, pretty)
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "Session ID or prefix to show events for")
	cmd.Flags().StringVar(&kind, "kind", "", "Only show events of this kind (e.g. did-select)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum rows")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print event payloads")

	return cmd
}

// resolveSession expands a session prefix to a full ID.
func resolveSession(store database.Store, prefix string) (string, error) {
	sess, err := store.FindSession(prefix)
	if err != nil {
		return "", fmt.Errorf("resolving session: %w", err)
	}
	return sess.SessionID, nil
}

func listSessions(out io.Writer, store database.Store, limit int) error {
	sessions, err := store.QuerySessions(limit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tSTARTED\tITEMS\tSTYLE")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			s.SessionID, timeutil.FormatTimestampFull(s.StartedAt), s.ItemCount, s.Style)
	}
	return w.Flush()
}

func listEvents(out io.Writer, events []*database.Event, pretty bool) error {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTIME\tKIND\tITEM\tINDEX\tSELECTED\tPAYLOAD")
	for _, e := range events {
		item, index, payload := "-", "-", "-"
		if e.ItemID != nil {
			item = *e.ItemID
		}
		if e.ItemIndex != nil {
			index = fmt.Sprint(*e.ItemIndex)
		}
		if e.Payload != nil && !pretty {
			payload = jsonutil.CompactJSON(*e.Payload)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
			e.Seq, timeutil.FormatTimestamp(e.Timestamp), e.Kind, item, index, e.SelectedIndex, payload)
		if pretty && e.Payload != nil {
			for _, ln := range strings.Split(jsonutil.PrettyJSON(*e.Payload), "\n") {
				fmt.Fprintf(w, "\t\t  %s\n", ln)
			}
		}
	}
	return w.Flush()
}
