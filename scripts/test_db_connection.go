//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"admin-panel/internal/config"

	"github.com/jackc/pgx/v5"
)

// Usage: go run scripts/test_db_connection.go
// Reads the same DB_* variables (and .env) as the API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.Database.ConnectionString())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	var dbName string
	var tables int
	err = conn.QueryRow(ctx, `
		SELECT current_database(),
			(SELECT COUNT(*) FROM information_schema.tables
			 WHERE table_schema = 'public' AND table_name IN ('users', 'categories', 'products'))
	`).Scan(&dbName, &tables)
	if err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully connected to database: %s (%d/3 tables present)\n", dbName, tables)
}
