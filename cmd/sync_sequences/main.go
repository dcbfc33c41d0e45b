package main

import (
	"log"

	"partnerhub/internal/config"
	"partnerhub/internal/database"
)

// Resets the PostgreSQL id sequences after migrate_data copied rows with
// explicit ids.
func main() {
	cfg := config.LoadConfig()
	if cfg.DBDriver != "postgres" {
		log.Fatalf("DB_DRIVER must be postgres, got %q", cfg.DBDriver)
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	tables := []string{
		"contact_submissions",
		"webhook_verifications",
		"office_contact",
	}

	log.Println("Syncing PostgreSQL sequences...")

	for _, table := range tables {
		query := "SELECT setval(pg_get_serial_sequence('" + table + "', 'id'), coalesce(max(id), 0) + 1, false) FROM " + table
		if err := db.Exec(query).Error; err != nil {
			log.Printf("Error syncing sequence for %s: %v", table, err)
		} else {
			log.Printf("Successfully synced sequence for %s", table)
		}
	}

	log.Println("DONE!")
}
