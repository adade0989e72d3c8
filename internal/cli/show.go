package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/cooloff"
	"github.com/sadopc/jobtrack/internal/store"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one application in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		app, err := svc.GetApplication(id)
		if err != nil {
			return fmt.Errorf("failed to load application: %w", err)
		}

		fmt.Printf("#%d %s at %s\n", app.ID, app.JobTitle, app.Company)
		fmt.Printf("  Location:  %s\n", app.Location)
		fmt.Printf("  Status:    %s\n", statusColored(app.Status))
		fmt.Printf("  Applied:   %s\n", app.AppliedDate.Format(store.DateLayout))
		fmt.Printf("  Cool-off:  from %s date\n", string(app.CoolOffStartType))
		fmt.Printf("  Eligible:  %s", app.CoolOffEnds.Format(store.DateLayout))
		if days := cooloff.DaysRemaining(app.CoolOffEnds, todayUTC()); days > 0 {
			fmt.Printf(" (%d days left)", days)
		} else {
			fmt.Printf(" (eligible now)")
		}
		fmt.Println()
		return nil
	},
}
