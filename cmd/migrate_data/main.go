package main

import (
	"log"

	"partnerhub/internal/config"
	"partnerhub/internal/database"
	"partnerhub/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Copies every table from the SQLite file at DB_PATH into the PostgreSQL
// database at DATABASE_URL. Rows already present are skipped, so the copy
// can be re-run.
func main() {
	cfg := config.LoadConfig()
	if cfg.DBDriver != "postgres" {
		log.Fatalf("DB_DRIVER must be postgres for the destination, got %q", cfg.DBDriver)
	}

	sqliteDB, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	pgDB, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	log.Println("Starting data migration...")
	failed := 0
	count := func(ok bool) {
		if !ok {
			failed++
		}
	}
	count(migrateTable[models.Message](sqliteDB, pgDB, "messages"))
	count(migrateTable[models.Recipient](sqliteDB, pgDB, "approved_recipients"))
	count(migrateTable[models.Template](sqliteDB, pgDB, "templates"))
	count(migrateTable[models.ScheduledMessage](sqliteDB, pgDB, "scheduled_messages"))
	count(migrateTable[models.ContactSubmission](sqliteDB, pgDB, "contact_submissions"))
	count(migrateTable[models.Document](sqliteDB, pgDB, "documents"))
	count(migrateTable[models.UserProfile](sqliteDB, pgDB, "user_profiles"))
	count(migrateTable[models.RoleAssignment](sqliteDB, pgDB, "role_assignments"))
	count(migrateTable[models.SystemSetting](sqliteDB, pgDB, "system_settings"))
	count(migrateTable[models.WebhookVerification](sqliteDB, pgDB, "webhook_verifications"))
	count(migrateTable[models.FAQ](sqliteDB, pgDB, "faqs"))
	count(migrateTable[models.PartnerBenefit](sqliteDB, pgDB, "partner_benefits"))
	count(migrateTable[models.OfficeContact](sqliteDB, pgDB, "office_contact"))

	if failed > 0 {
		log.Fatalf("Migration finished with %d failed tables", failed)
	}
	log.Println("Migration completed! Run sync_sequences next.")
}

func migrateTable[T any](src, dst *gorm.DB, table string) bool {
	log.Printf("Migrating table: %s", table)

	var rows []T
	if err := src.Find(&rows).Error; err != nil {
		log.Printf("Error reading %s from SQLite: %v", table, err)
		return false
	}
	if len(rows) == 0 {
		log.Printf("Nothing to migrate in %s", table)
		return true
	}

	err := dst.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 500).Error
	})
	if err != nil {
		log.Printf("Error writing %s to Postgres: %v", table, err)
		return false
	}
	log.Printf("Successfully migrated %d rows of %s", len(rows), table)
	return true
}
