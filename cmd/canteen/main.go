package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported for their init() registrations.
	_ "github.com/smartbytes/canteen/database/migrations"
	_ "github.com/smartbytes/canteen/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "canteen",
	Short: "SmartBytes canteen backend CLI",
	Long:  "Backend for the SmartBytes canteen: food catalog, student orders, payments and surplus-food donations.",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
