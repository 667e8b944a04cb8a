// Package cli builds the scrolltoolbar command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mr-Dark-debug/scrolltoolbar/internal/config"
	"github.com/Mr-Dark-debug/scrolltoolbar/internal/database"
	"github.com/Mr-Dark-debug/scrolltoolbar/internal/logging"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// App carries state shared by every command.
type App struct {
	Config config.Config
	DBPath string
	Log    *logging.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "scrolltoolbar",
		Short:        "Scrollable animated toolbar in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the toolbar
  scrolltoolbar run --style dark --exchange

  # Inspect what was recorded
  scrolltoolbar history --limit 50
  scrolltoolbar stats
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		app.Config = cfg
		if app.DBPath == "" {
			app.DBPath = cfg.Database.Path
		}

		log, err := logging.New(cfg.Log.Path, cfg.Log.Level)
		if err != nil {
			return err
		}
		app.Log = log
		return nil
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if app.Log == nil {
			return nil
		}
		return app.Log.Close()
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the journal database (default from config)")

	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// openStore opens the journal at the configured path.
func (app *App) openStore() (*database.DBService, error) {
	if app.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(app.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}
	store, err := database.NewDBService(app.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal at %s: %w", app.DBPath, err)
	}
	return store, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "scrolltoolbar v%s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
			return nil
		},
	}
}
