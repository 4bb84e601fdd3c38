// seed/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/engineer-english/eigo_api/model"
	"github.com/engineer-english/eigo_api/seed/seeders"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType       = flag.String("type", "all", "Type of seeding: all, curriculum, admin")
		dbPath         = flag.String("db", "", "SQLite database path (overrides DB_DATABASE env var)")
		curriculumPath = flag.String("curriculum", "", "Curriculum YAML file (default: embedded curriculum)")
		help           = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := connect(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Scene{},
		&model.Lesson{},
		&model.Phrase{},
		&model.Dialogue{},
		&model.UserProgress{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db, *curriculumPath)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "curriculum":
		log.Println("Reconciling curriculum only...")
		result, err := mainSeeder.SeedCurriculumOnly()
		if err != nil {
			log.Fatalf("Failed to seed curriculum: %v", err)
		}
		log.Printf("Curriculum seed done: %s", result)
	case "admin":
		log.Println("Seeding admin account only...")
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'curriculum', or 'admin'", *seedType)
	}

	log.Println("Seeding operation completed successfully!")
}

// connect prefers DATABASE_URL (postgres); a -db flag or DB_DATABASE env
// selects a local sqlite file instead.
func connect(sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if sqlitePath == "" {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			return gorm.Open(postgres.Open(dsn), config)
		}
		sqlitePath = os.Getenv("DB_DATABASE")
		if sqlitePath == "" {
			sqlitePath = "eigo_api.db"
		}
	}

	return gorm.Open(sqlite.Open(sqlitePath), config)
}

func showHelp() {
	log.Println(`
Curriculum Seeding Tool

Usage: go run ./seed [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, curriculum, admin
  -db string
        SQLite database path (overrides DB_DATABASE environment variable)
  -curriculum string
        Path to a curriculum YAML file (default: embedded curriculum)
  -help
        Show this help message

Examples:
  # Seed everything against the default database
  go run ./seed

  # Reconcile the curriculum only
  go run ./seed -type=curriculum

  # Use a custom curriculum file
  go run ./seed -type=curriculum -curriculum=./my_curriculum.yaml

Environment Variables:
  DATABASE_URL   - Postgres DSN (takes precedence when -db is not set)
  DB_DATABASE    - Default sqlite path (default: eigo_api.db)
  ADMIN_USERNAME - Default admin username (default: admin)
  ADMIN_EMAIL    - Default admin email
  ADMIN_PASSWORD - Admin password; admin seeding is skipped when unset
`)
}
