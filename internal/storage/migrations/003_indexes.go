package migrations

import "gorm.io/gorm"

// migration003Up creates the query-path indexes. The GIN index on
// participants_emails backs the membership filter used by the project list.
func migration003Up(db *gorm.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_projects_participants_emails ON projects USING GIN (participants_emails)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_owner_email ON projects (owner_email)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_rubro ON suppliers (rubro)`,
		`CREATE INDEX IF NOT EXISTS idx_suppliers_name ON suppliers (name)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the indexes created by migration003Up
func migration003Down(db *gorm.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_projects_participants_emails`,
		`DROP INDEX IF EXISTS idx_projects_created_at`,
		`DROP INDEX IF EXISTS idx_projects_owner_email`,
		`DROP INDEX IF EXISTS idx_suppliers_rubro`,
		`DROP INDEX IF EXISTS idx_suppliers_name`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
