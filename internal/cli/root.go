// Package cli wires the cobra command tree. The bare command starts the
// interactive UI; subcommands cover the same operations for scripting.
package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/config"
	"github.com/sadopc/jobtrack/internal/migrate"
	"github.com/sadopc/jobtrack/internal/store"
	"github.com/sadopc/jobtrack/internal/tracker"
	"github.com/sadopc/jobtrack/internal/tui"
)

// Shared handles, opened once by the root command before any subcommand
// runs and closed by Execute.
var (
	dbPath     string
	legacyPath string

	st     *store.Store
	svc    *tracker.Service
	runner *migrate.Runner
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Track job applications and re-apply cool-offs",
	Long: `jobtrack keeps a local record of your job applications and derives,
for each one, the date you are eligible to apply to that company again.
Run without arguments for the interactive UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openStore()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := tui.NewApp(st, svc, runner)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

func openStore() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if legacyPath == "" {
		legacyPath = cfg.LegacyPath
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	st = s
	svc = tracker.NewService(st)
	runner = migrate.NewRunner(st, legacyPath)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (defaults to the user config dir)")
	rootCmd.PersistentFlags().StringVar(&legacyPath, "legacy", "", "Legacy JSON store read by migrate")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(verifyCmd)
}

// Execute runs the command tree and closes the store afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if st != nil {
		st.Close()
	}
	return err
}

func checkMark() string {
	return color.New(color.FgHiGreen).Sprint("✓")
}

func statusColored(s store.Status) string {
	switch s {
	case store.StatusApplied:
		return color.New(color.FgHiBlue).Sprint(string(s))
	case store.StatusInterviewing:
		return color.New(color.FgYellow).Sprint(string(s))
	case store.StatusOffer:
		return color.New(color.FgHiGreen).Sprint(string(s))
	case store.StatusRejected:
		return color.New(color.FgRed).Sprint(string(s))
	case store.StatusWithdrawn:
		return color.New(color.FgHiBlack).Sprint(string(s))
	}
	return string(s)
}

// parseStatus matches user input against the known statuses, ignoring
// case, so "rejected" works as well as "Rejected".
func parseStatus(s string) (store.Status, error) {
	for _, status := range store.Statuses {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (valid: Applied, Interviewing, Offer, Rejected, Withdrawn)", s)
}

func parseStartType(s string) (store.CoolOffStartType, error) {
	switch {
	case s == "" || strings.EqualFold(s, string(store.StartApplication)):
		return store.StartApplication, nil
	case strings.EqualFold(s, string(store.StartRejection)):
		return store.StartRejection, nil
	}
	return "", fmt.Errorf("unknown cool-off start %q (valid: application, rejection)", s)
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
