// Command libctl performs operator tasks against the library database:
// applying the schema and creating accounts.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"library-backend/internal/config"
	"library-backend/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "libctl",
		Short:         "Operator tooling for the library backend",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
		},
	}

	root.AddCommand(newMigrateCmd(), newUserCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies driver/path overrides
func loadConfig(driver, sqlitePath string) (*config.Config, error) {
	if driver != "" {
		os.Setenv("STORAGE_DRIVER", driver)
	}
	if sqlitePath != "" {
		os.Setenv("SQLITE_PATH", sqlitePath)
	}
	return config.Load()
}
