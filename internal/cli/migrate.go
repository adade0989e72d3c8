package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/jobtrack/internal/migrate"
)

var (
	migrateFrom string
	migrateYes  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Import applications from the legacy JSON store",
	Long: `Import applications from the legacy JSON store. The import replaces
everything currently in the database and keeps the legacy ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := runner
		if migrateFrom != "" {
			r = migrate.NewRunner(st, migrateFrom)
		}

		count, err := st.CountApplications()
		if err != nil {
			return fmt.Errorf("failed to count applications: %w", err)
		}
		if count > 0 && !migrateYes {
			fmt.Printf("The store holds %d applications that will be replaced. Continue? [y/N] ", count)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Println("Aborted")
				return nil
			}
		}

		migrated, err := r.Run()
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Printf("%s Migrated %d applications from %s\n", checkMark(), migrated, r.Path())
		if verified, err := r.Verify(); err == nil {
			fmt.Printf("  Store now holds %d applications\n", verified)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "Legacy JSON file (defaults to --legacy)")
	migrateCmd.Flags().BoolVarP(&migrateYes, "yes", "y", false, "Replace existing applications without asking")
}
