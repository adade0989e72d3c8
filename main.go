package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sadopc/jobtrack/internal/cli"
)

func main() {
	// Optional .env for JOBTRACK_DB / JOBTRACK_LEGACY overrides.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
