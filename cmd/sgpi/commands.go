// Copyright (c) 2025 ToeiRei
// SGPI - building management system
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/toeirei/sgpi/internal/backup"
	"github.com/toeirei/sgpi/internal/db"
	"github.com/toeirei/sgpi/internal/i18n"
	"github.com/toeirei/sgpi/internal/importer"
	"github.com/toeirei/sgpi/internal/logging"
	"github.com/toeirei/sgpi/internal/model"
	"github.com/toeirei/sgpi/internal/web"
)

// runServe starts the web server on the configured address. It blocks until
// the listener fails.
func runServe() error {
	handler := web.NewHandler(store, importer.ImportRooms, func() (string, error) {
		return backup.Run(cfg.Database.Type, cfg.Database.DSN, cfg.Backup.Dir)
	})

	logging.Infof("sgpi: serving on %s (backend: %s)", cfg.Server.Addr, cfg.Database.Type)
	return http.ListenAndServe(cfg.Server.Addr, handler.Router())
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SGPI web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Bulk-import rooms from an Excel spreadsheet",
	Long: `Reads the first sheet of the given spreadsheet, skips the header row
and inserts every remaining row into the rooms table (owner, floor,
room, company, office type, in that column order). The import is
atomic: a malformed row aborts it and nothing is inserted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := importer.ImportRooms(store, args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", i18n.T("rooms.import_failed"), err)
		}
		fmt.Printf("%s: %d\n", i18n.T("rooms.imported"), n)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Produce a timestamped backup artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := backup.Run(cfg.Database.Type, cfg.Database.DSN, cfg.Backup.Dir)
		if err != nil {
			logging.Errorf("backup failed: %v", err)
			return errors.New(i18n.T("backup.failed"))
		}
		fmt.Printf("%s: %s\n", i18n.T("backup.created"), path)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := store.ListUsers()
		if err != nil {
			return err
		}
		for _, u := range users {
			fmt.Printf("%d\t%s\t%s\n", u.ID, u.Username, u.Level)
		}
		return nil
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add <username> <password> <level>",
	Short: "Create a user account (level: admin or operator)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := model.PrivilegeLevel(args[2])
		if !level.Valid() {
			return errors.New(i18n.T("users.invalid_level"))
		}
		if err := store.AddUser(args[0], args[1], level); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return errors.New(i18n.T("users.duplicate"))
			}
			return err
		}
		return nil
	},
}

var userDelCmd = &cobra.Command{
	Use:   "del <id>",
	Short: "Delete a user account by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}
		return store.DeleteUser(id)
	},
}

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Run engine-specific database maintenance (VACUUM etc.)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return db.RunDBMaintenance(cfg.Database.Type, cfg.Database.DSN)
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userDelCmd)
}
