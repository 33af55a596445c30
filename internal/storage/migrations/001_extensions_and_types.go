package migrations

import "gorm.io/gorm"

// migration001Up creates the required extensions and enum types
func migration001Up(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.Exec(`
        DO $$ BEGIN
            CREATE TYPE project_status AS ENUM ('planning', 'in-progress', 'completed', 'on-hold');
        EXCEPTION
            WHEN duplicate_object THEN null;
        END $$
    `).Error
}

// migration001Down drops the enum types (the extension is left in place)
func migration001Down(db *gorm.DB) error {
	return db.Exec(`DROP TYPE IF EXISTS project_status`).Error
}
