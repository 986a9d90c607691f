// Package main implements the cellplan CLI tool.
package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cellplan/internal/db"
	"cellplan/internal/engine"
	"cellplan/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A local .env can hold CELLPLAN_DB_URL and CELLPLAN_ACTOR.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "cellplan",
	Short:        "Plan tasks on shared workplaces with working-day scheduling",
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.AddCommand(
		taskCmd,
		projectCmd,
		workplaceCmd,
		recalcCmd,
		collisionsCmd,
		simulateCmd,
		logCmd,
	)
}

// actor is recorded on every audit entry written by this invocation.
func actor() string {
	if a := os.Getenv("CELLPLAN_ACTOR"); a != "" {
		return a
	}
	return "system"
}

// openEngine opens the store and builds the scheduling engine on it. The
// caller closes the returned database.
func openEngine() (*db.DB, *engine.Engine, error) {
	database, err := db.New()
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, engine.New(database, actor()), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an id", s)
	}
	return id, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	database, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer database.Close()

	app := ui.NewApp(database, eng)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
