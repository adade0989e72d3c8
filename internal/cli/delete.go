package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/store"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		app, err := svc.GetApplication(id)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Printf("No application #%d, nothing to delete\n", id)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load application: %w", err)
		}

		if !deleteYes && st.ConfirmDelete() {
			fmt.Printf("Delete #%d %s at %s? [y/N] ", app.ID, app.JobTitle, app.Company)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := svc.DeleteApplication(id); err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}
		fmt.Printf("%s Deleted #%d\n", checkMark(), id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
