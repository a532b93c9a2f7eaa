package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/anonto42/quillpost/internal/bootstrap"
	"github.com/anonto42/quillpost/pkg/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL    string
	mongoURI string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Operator tool for the quillpost blog backend",
	Long: `blogctl runs maintenance tasks against the quillpost databases.

Connection settings come from the same environment (and .env file) as the server;
--db and --mongo override them.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "PostgreSQL connection string (overrides POSTGRES_CONN_STR)")
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo", "", "MongoDB URI (overrides MONGO_URI)")
}

// openApp loads the configuration, applies flag overrides and connects.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg := config.Load()
	if dbURL != "" {
		cfg.PostgresURL = dbURL
	}
	if mongoURI != "" {
		cfg.MongoURI = mongoURI
	}
	return bootstrap.New(ctx, cfg)
}
