package main

import (
	"fmt"
	"os"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
)

// migrate runs AutoMigrate as a standalone job so DDL never blocks the
// serving path (pair with SKIP_MIGRATIONS=true on the server).
func main() {
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	models.MigrateTable()
	fmt.Println("migrations complete")
}
