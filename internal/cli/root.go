// Package cli implements the plantctl operator commands.
package cli

import (
	"fmt"
	"os"

	"github.com/emilyand-i/AgileWebGroup82/pkg/config"
	"github.com/emilyand-i/AgileWebGroup82/pkg/logger"
	"github.com/spf13/cobra"
)

var sqlitePath string

var rootCmd = &cobra.Command{
	Use:   "plantctl",
	Short: "Plantly server and database operations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger.Init(cfg.Env, cfg.LogLevel)
	},
}

func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "Use the SQLite database at this path instead of DB_DRIVER")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, inspectCmd)
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if sqlitePath != "" {
		cfg.DBDriver = config.DriverSQLite
		cfg.SQLitePath = sqlitePath
	}
	return cfg
}

// openDatabase connects and migrates the relational store.
func openDatabase(cfg *config.Config) (*config.DB, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := config.AutoMigrate(db.SQL); err != nil {
		db.CloseDB()
		return nil, err
	}
	return db, nil
}
