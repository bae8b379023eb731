// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"biasboard/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.Team{},
		&models.ArtistMember{},
		&models.PendingTeam{},
		&models.PendingArtistMember{},
		&models.Reviewer{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates supporting indexes beyond what the model tags declare.
// teams.ticker carries a unique index from its tag; pending_teams.ticker is
// deliberately NOT unique because any number of rejected submissions may share
// a ticker. Duplicate checking on the submit path stays read-then-insert;
// only the live table's unique index hard-stops a colliding promotion.
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_pending_teams_status_ticker ON pending_teams(status, ticker)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_pending_teams_submitted ON pending_teams(submitted_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_pending_members_team ON pending_artist_members(pending_team_id, member_order)")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_artist_members_order ON artist_members(team_id, member_order)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_teams_group_type ON teams(group_type)")

	log.Println("✅ Indexes created successfully")
}
