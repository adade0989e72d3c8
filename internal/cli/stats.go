package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the tracked applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := svc.LoadStats()
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		fmt.Printf("Tracked:      %d\n", stats.Total)
		fmt.Printf("Interviewing: %d\n", stats.Interviewing)
		fmt.Printf("Offers:       %d\n", stats.Offers)
		fmt.Printf("Cooling off:  %d\n", stats.ActiveCoolOffs)

		if stats.Total == 0 {
			return nil
		}
		fmt.Println("\nBy status:")
		for _, status := range store.Statuses {
			count, err := st.CountWhere("status", string(status))
			if err != nil {
				return fmt.Errorf("failed to count by status: %w", err)
			}
			// Pad before coloring, the escape codes would throw off %-14s.
			pad := strings.Repeat(" ", max(14-len(status), 1))
			fmt.Printf("  %s%s%d\n", statusColored(status), pad, count)
		}
		return nil
	},
}
