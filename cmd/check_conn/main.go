// check_conn walks the configured connection candidates the same way the
// server does and prints a per-candidate verdict. Useful on a fresh
// deployment to see which variant (SSL, plain, localhost) actually works.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/config"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	logger.InitDiscard()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	candidates := cfg.ConnectionCandidates()
	if len(candidates) == 0 {
		fmt.Println("No connection candidates configured. Set DATABASE_URL or DB_HOST.")
		os.Exit(1)
	}

	anyOK := false
	for _, cand := range candidates {
		fmt.Printf("%-16s %-8s ... ", cand.Name, cand.Driver)

		db, err := sql.Open(cand.DriverName(), cand.DSN())
		if err != nil {
			fmt.Printf("FAIL (open: %v)\n", err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), cand.AttemptTimeout())
		start := time.Now()
		err = db.PingContext(ctx)
		cancel()
		db.Close()

		if err != nil {
			fmt.Printf("FAIL (%v)\n", err)
			continue
		}
		fmt.Printf("OK (%v)\n", time.Since(start).Round(time.Millisecond))
		anyOK = true
	}

	if !anyOK {
		fmt.Println("\nNo candidate reachable. The server will run in fallback-only mode.")
		os.Exit(1)
	}
}
