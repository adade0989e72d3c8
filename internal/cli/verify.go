package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report how many applications the store holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := runner.Verify()
		if err != nil {
			return fmt.Errorf("failed to verify store: %w", err)
		}
		fmt.Printf("Store holds %d applications\n", count)
		return nil
	},
}
