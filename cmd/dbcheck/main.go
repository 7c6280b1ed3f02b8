// Command dbcheck verifies that DATABASE_URL is reachable and lists the tables in the public schema.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ticketresale/config"
	"ticketresale/internal/repository/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	fmt.Println("Attempting to connect to database...")
	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolOptions{MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Database connection error:", err)
		if db != nil {
			db.Close()
		}
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("Connection successful!")

	var now time.Time
	if err := db.QueryRowContext(ctx, "SELECT current_timestamp").Scan(&now); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read server time:", err)
		os.Exit(1)
	}
	fmt.Println("Current database time:", now.Format(time.RFC3339))

	tables, err := postgres.ListTables(ctx, db)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to list tables:", err)
		os.Exit(1)
	}
	fmt.Println("\nExisting tables:")
	if len(tables) == 0 {
		fmt.Println("No tables found. Database is empty.")
		return
	}
	for _, name := range tables {
		fmt.Println("-", name)
	}
}
