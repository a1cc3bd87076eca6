// Command tripctl is a local, offline trip-planning CLI: it takes the
// location, cycle-hours and start-time inputs of POST /api/plan (not the
// optional pre-resolved coordinates), resolves the route via the configured
// route provider, and prints the resulting timeline and log sheets as
// JSON. Command structure follows the one-file-per-subcommand cobra
// convention used throughout xbe-cli.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripctl",
		Short: "Plan an HOS-compliant trip from the command line",
		Long: `tripctl resolves a route and computes an FMCSA hours-of-service
timeline and per-day log sheets for a single pickup/dropoff trip,
without running the HTTP service.`,
	}
	cmd.AddCommand(newPlanCmd())
	return cmd
}
