package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/refsync"
)

// refsync-import loads a client's reference-data workbook (one sheet per
// registry) into the lookup tables the level-3 validator reads.
func main() {
	userId := flag.Uint("user-id", 0, "Required: owning client's user id")
	path := flag.String("file", "", "Required: path to the registry workbook (.xlsx)")
	flag.Parse()

	if *userId == 0 || strings.TrimSpace(*path) == "" {
		fmt.Fprintln(os.Stderr, "--user-id and --file are required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	summary, err := refsync.ImportWorkbook(context.Background(), *userId, *path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("imported broker-dealers=%d firms=%d accounts=%d currencies=%d instruments=%d\n",
		summary.BrokerDealers, summary.FirmEntities, summary.Accounts, summary.Currencies, summary.Instruments)
}
