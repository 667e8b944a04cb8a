package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/config"
	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
	"github.com/Mr-Dark-debug/scrolltoolbar/internal/ingestion"
	"github.com/Mr-Dark-debug/scrolltoolbar/internal/tui"
	"github.com/Mr-Dark-debug/scrolltoolbar/pkg/toolbar"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type runFlags struct {
	selection bool
	exchange  bool
	dismiss   bool
	blur      bool
	style     string
	noJournal bool
}

func newRunCmd(app *App) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive toolbar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := app.Config.Toolbar
			flags := cmd.Flags()
			if flags.Changed("selection") {
				tc.SelectionEnabled = f.selection
			}
			if flags.Changed("exchange") {
				tc.ItemExchangeEnabled = f.exchange
			}
			if flags.Changed("dismiss") {
				tc.DismissOnSubitemTap = f.dismiss
			}
			if flags.Changed("blur") {
				tc.BlurEnabled = f.blur
			}
			if flags.Changed("style") {
				tc.Style = f.style
			}
			return runToolbar(cmd.Context(), app, tc, !f.noJournal)
		},
	}

	cmd.Flags().BoolVar(&f.selection, "selection", true, "Show the selection indicator")
	cmd.Flags().BoolVar(&f.exchange, "exchange", true, "Promote tapped subitems into the main row")
	cmd.Flags().BoolVar(&f.dismiss, "dismiss", true, "Close the panel after a subitem tap")
	cmd.Flags().BoolVar(&f.blur, "blur", true, "Draw the blur backdrop")
	cmd.Flags().StringVar(&f.style, "style", "dark", "Style: light, dark or custom")
	cmd.Flags().BoolVar(&f.noJournal, "no-journal", false, "Do not record the session")

	return cmd
}

func runToolbar(ctx context.Context, app *App, tc config.ToolbarConfig, journal bool) error {
	logger := app.Log.Logger

	items, err := tc.BuildItems()
	if err != nil {
		return err
	}
	opts, err := tc.Options()
	if err != nil {
		return err
	}
	style, _ := tc.ParseStyle()

	actions := &demoActions{logger: logger}
	items = actions.attach(items)

	delegates := toolbar.MultiDelegate{hookLogger{logger}}
	modelOpts := tui.Options{
		Styles: []toolbar.Style{toolbar.LightStyle, toolbar.DarkStyle},
		Logger: logger,
	}
	if style.Kind == toolbar.StyleCustom {
		modelOpts.Styles = append(modelOpts.Styles, style)
	}

	if journal {
		store, err := app.openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		batcher := ingestion.NewBatcher(store, ingestion.DefaultConfig(), logger)
		batcher.Start(ctx)
		defer batcher.Stop()

		rec, err := database.NewRecorder(batcher, items, style, logger)
		if err != nil {
			return err
		}
		delegates = append(delegates, rec)
		modelOpts.Observer = rec.ObserveEffects
		modelOpts.SessionID = rec.SessionID()
		defer func() {
			if err := rec.Err(); err != nil {
				logger.Warn("journal incomplete", "session", rec.SessionID(), "err", err)
			}
		}()
	}

	opts = append(opts, toolbar.WithDelegate(delegates), toolbar.WithLogger(logger))
	tb, err := toolbar.New(items, opts...)
	if err != nil {
		return fmt.Errorf("building toolbar: %w", err)
	}

	logger.Info("toolbar started", "items", tb.Len(), "style", style.Kind.String())
	p := tea.NewProgram(tui.NewModel(tb, modelOpts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	// Actions hold their owner weakly; it has to outlive the program.
	runtime.KeepAlive(actions)
	logger.Info("toolbar stopped", "actions", actions.count)
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// demoActions owns the actions attached to leaf items in the main row.
type demoActions struct {
	logger *slog.Logger
	count  int
}

func (d *demoActions) fire(t *toolbar.Toolbar) {
	d.count++
	item, _ := t.Item(t.SelectedItemIndex())
	d.logger.Info("item action", "item", item.Identifier, "selected", t.SelectedItemIndex(), "count", d.count)
}

// attach gives every main item without subitems an action, unless it
// already has one.
func (d *demoActions) attach(items []toolbar.ActionItem) []toolbar.ActionItem {
	for i := range items {
		if items[i].IsExpandable() || items[i].Action != nil {
			continue
		}
		items[i].Action = toolbar.WeakAction(d, (*demoActions).fire)
	}
	return items
}

// hookLogger traces delegate notifications at debug level.
type hookLogger struct {
	logger *slog.Logger
}

func (h hookLogger) WillSelect(t *toolbar.Toolbar, item toolbar.ActionItem) {
	h.logger.Debug("will select", "item", item.Identifier, "selected", t.SelectedItemIndex())
}

func (h hookLogger) DidSelect(t *toolbar.Toolbar, item toolbar.ActionItem) {
	h.logger.Debug("did select", "item", item.Identifier, "selected", t.SelectedItemIndex())
}

func (h hookLogger) WillShowSubitems(t *toolbar.Toolbar, subitems []toolbar.ActionItem, index int) {
	h.logger.Debug("will show subitems", "index", index, "count", len(subitems))
}

func (h hookLogger) DidShowSubitems(t *toolbar.Toolbar, subitems []toolbar.ActionItem, index int) {
	h.logger.Debug("did show subitems", "index", index, "count", len(subitems))
}

func (h hookLogger) WillHideSubitems(t *toolbar.Toolbar) {
	h.logger.Debug("will hide subitems")
}

func (h hookLogger) DidHideSubitems(t *toolbar.Toolbar) {
	h.logger.Debug("did hide subitems")
}
