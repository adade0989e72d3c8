package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/cooloff"
	"github.com/sadopc/jobtrack/internal/store"
)

var (
	listPage int
	listSize int
	listAll  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		size := listSize
		if size <= 0 {
			size = st.PageSize()
		}
		pageNum := listPage
		if listAll {
			count, err := st.CountApplications()
			if err != nil {
				return fmt.Errorf("failed to count applications: %w", err)
			}
			size = max(count, 1)
			pageNum = 1
		}

		page, err := svc.LoadPage(pageNum, size)
		if err != nil {
			return fmt.Errorf("failed to load applications: %w", err)
		}
		if page.TotalCount == 0 {
			fmt.Println("No applications yet. Add one with: jobtrack add")
			return nil
		}

		today := todayUTC()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCOMPANY\tTITLE\tLOCATION\tSTATUS\tAPPLIED\tELIGIBLE")
		fmt.Fprintln(w, "--\t-------\t-----\t--------\t------\t-------\t--------")
		for _, app := range page.Applications {
			eligible := "now"
			if days := cooloff.DaysRemaining(app.CoolOffEnds, today); days > 0 {
				eligible = fmt.Sprintf("%s (%dd)", app.CoolOffEnds.Format(store.DateLayout), days)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				app.ID, app.Company, app.JobTitle, app.Location,
				string(app.Status), app.AppliedDate.Format(store.DateLayout), eligible)
		}
		w.Flush()

		totalPages := (page.TotalCount + size - 1) / size
		if totalPages > 1 {
			fmt.Printf("\nPage %d of %d (%d total)\n", page.Page, totalPages, page.TotalCount)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number")
	listCmd.Flags().IntVarP(&listSize, "size", "n", 0, "Applications per page (default from settings)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show every application on one page")
}
