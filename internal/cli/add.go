package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/store"
	"github.com/sadopc/jobtrack/internal/tracker"
)

var (
	addTitle    string
	addLocation string
	addStatus   string
	addStart    string
)

var addCmd = &cobra.Command{
	Use:   "add [company]",
	Short: "Record a new application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := parseStatus(addStatus)
		if err != nil {
			return err
		}
		start, err := parseStartType(addStart)
		if err != nil {
			return err
		}

		app, err := svc.CreateApplication(tracker.CreateApplicationInput{
			Company:          args[0],
			JobTitle:         addTitle,
			Location:         addLocation,
			Status:           status,
			CoolOffStartType: start,
		})
		if err != nil {
			return fmt.Errorf("failed to add application: %w", err)
		}

		fmt.Printf("%s Added #%d: %s at %s, %s\n", checkMark(), app.ID, app.JobTitle, app.Company, app.Location)
		fmt.Printf("  Status:   %s\n", statusColored(app.Status))
		fmt.Printf("  Applied:  %s\n", app.AppliedDate.Format(store.DateLayout))
		fmt.Printf("  Eligible: %s\n", app.CoolOffEnds.Format(store.DateLayout))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Job title (required)")
	addCmd.Flags().StringVarP(&addLocation, "location", "l", "", "Location (required)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "Applied", "Initial status")
	addCmd.Flags().StringVar(&addStart, "cool-off-from", "application", "Cool-off anchor: application or rejection")
}
