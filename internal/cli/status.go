package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Change an application's status",
	Long: `Change an application's status. Moving into Rejected restarts the
cool-off window for records anchored to the rejection date.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		status, err := parseStatus(args[1])
		if err != nil {
			return err
		}

		app, err := svc.ChangeStatus(id, status)
		if err != nil {
			return fmt.Errorf("failed to change status: %w", err)
		}

		fmt.Printf("%s #%d %s at %s is now %s\n", checkMark(), app.ID, app.JobTitle, app.Company, statusColored(app.Status))
		fmt.Printf("  Eligible: %s\n", app.CoolOffEnds.Format(store.DateLayout))
		return nil
	},
}
