package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "namecard",
		Short: "Digital business card server",
		Long: `namecard serves one digital business card per path handle, read from a
Supabase (PostgREST) project, a Postgres database or an in-memory list, and
offers each card as a downloadable vCard.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./namecard.yaml)")
	flags.String("backend", "", "card store: postgrest, postgres or memory")
	flags.String("endpoint-url", "", "Supabase project URL")
	flags.String("access-key", "", "Supabase anon API key")
	flags.String("database-url", "", "Postgres connection string for the postgres backend")
	flags.String("default-handle", "", "handle shown for the root path")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVCardCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
