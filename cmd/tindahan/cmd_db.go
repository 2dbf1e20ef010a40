package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/config"
	"github.com/shashiranjanraj/tindahan/database/seeders"
	"github.com/shashiranjanraj/tindahan/pkg/database"
	"github.com/shashiranjanraj/tindahan/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// tindahan migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running migrations…")
		return migration.New(database.DB).Run()
	},
}

// tindahan migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback()
	},
}

// tindahan migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

// tindahan seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the product catalog into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		if err := seeders.RunAll(database.DB); err != nil {
			return err
		}
		n, err := repositories.NewProductRepository().Count()
		if err != nil {
			return err
		}
		fmt.Printf("Catalogue holds %d products\n", n)
		return nil
	},
}
