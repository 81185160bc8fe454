// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface (CLI) for the SGPI application
// using the Cobra library. It defines the root command, subcommands (serve,
// import, backup, user, maintenance), flags, and the main entry point.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/toeirei/sgpi/internal/config"
	"github.com/toeirei/sgpi/internal/db"
	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/logging"
)

var version = "dev" // this will be set by the linker

var (
	cfgFile string
	cfg     config.Config
	store   db.Store
)

// flagBindings maps config keys to the flags that can override them.
var flagBindings = map[string]string{
	"database.type": "db-type",
	"database.dsn":  "db-dsn",
	"server.addr":   "addr",
	"backup.dir":    "backup-dir",
	"language":      "lang",
	"debug":         "debug",
}

// main is the entry point of the application.
func main() {
	if err := rootCmd.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// newRootCmd creates and configures a new root cobra command.
// This function is used to create the main application command as well as
// fresh instances for isolated testing.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sgpi",
		Short: "SGPI is a small building management server.",
		Long: `SGPI (Sistema de Gestão Predial Inteligente) manages office-room
occupancy records for a building or condominium. Operators register
and search rooms, bulk-import them from spreadsheets, and admins
manage user accounts. Storage is a local SQLite file or a networked
PostgreSQL/MySQL database, selected by configuration.

Running without a subcommand starts the web server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, usedFile, err := config.LoadConfig[config.Config](cmd, config.Defaults(), flagBindings, &cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = c

			// First run, or the config file was deleted: persist the resolved
			// configuration so subsequent runs have a file to inspect and edit.
			// The app can still run on defaults, so a write failure only warns.
			if usedFile == "" {
				if writeErr := config.WriteConfigFile(&cfg, false); writeErr != nil {
					logging.Warnf("could not write default config file: %v", writeErr)
				}
			}

			i18n.Init(cfg.Language)
			logging.SetDebug(cfg.Debug)
			db.SetDebug(cfg.Debug)

			// The store is required by every command; a missing backend is a
			// fatal startup error.
			s, err := db.New(cfg.Database.Type, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			store = s
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The database is already initialized by PersistentPreRunE.
			return runServe()
		},
	}

	// Add subcommands to the newly created root command.
	cmd.AddCommand(serveCmd)
	cmd.AddCommand(importCmd)
	cmd.AddCommand(backupCmd)
	cmd.AddCommand(userCmd)
	cmd.AddCommand(maintenanceCmd)

	// Set version
	cmd.Version = version

	// Define flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sgpi.yaml in the config dir or current dir)")
	cmd.PersistentFlags().String("db-type", "sqlite", "Database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("db-dsn", "./sgpi.db", "Database connection string (DSN)")
	cmd.PersistentFlags().String("addr", ":8420", "Listen address for the web server")
	cmd.PersistentFlags().String("backup-dir", "./data/backups", "Directory for backup artifacts")
	cmd.PersistentFlags().String("lang", "en", `Message language ("en", "pt")`)
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return cmd
}
