// migrate-to-postgres copies stored scenarios from a SQLite store into
// PostgreSQL. Scenarios whose name already exists in PostgreSQL are skipped.
//
// Usage:
//
//	go run ./cmd/migrate-to-postgres \
//	    -sqlite data/scenarios.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user worldgen \
//	    -pg-password worldgen \
//	    -pg-database worldgen
package main

import (
	"flag"
	"log"

	"github.com/lawnchairsociety/screenworld/internal/database"
)

func main() {
	pg := database.DefaultPostgresConfig()

	sqlitePath := flag.String("sqlite", "data/scenarios.db", "Path to SQLite scenario store")
	flag.StringVar(&pg.Host, "pg-host", pg.Host, "PostgreSQL host")
	flag.IntVar(&pg.Port, "pg-port", pg.Port, "PostgreSQL port")
	flag.StringVar(&pg.User, "pg-user", pg.User, "PostgreSQL user")
	flag.StringVar(&pg.Password, "pg-password", "", "PostgreSQL password")
	flag.StringVar(&pg.Database, "pg-database", pg.Database, "PostgreSQL database name")
	flag.StringVar(&pg.SSLMode, "pg-sslmode", pg.SSLMode, "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("Scenario store migration: SQLite to PostgreSQL")

	log.Printf("Opening SQLite store: %s", *sqlitePath)
	src, err := database.Open(*sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite store: %v", err)
	}
	defer src.Close()

	log.Printf("Opening PostgreSQL store: %s@%s:%d/%s", pg.User, pg.Host, pg.Port, pg.Database)
	dst, err := database.OpenWithConfig(database.Config{Driver: string(database.DialectPostgres), Postgres: pg})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL store: %v", err)
	}
	defer dst.Close()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	res, err := database.CopyScenarios(src, dst, *dryRun)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Migration complete: %d copied, %d already present", res.Copied, res.Skipped)
}
