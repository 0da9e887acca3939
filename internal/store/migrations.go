package store

import (
	"fmt"
	"strings"
)

// migrations is the schema, one idempotent statement per entry. Column types
// that differ between databases are expanded from the active dialect: {ts}
// for timestamps and {bool} for booleans.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id VARCHAR(64) PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at {ts} NOT NULL,
		updated_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS services (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		icon VARCHAR(255) NOT NULL,
		active {bool} NOT NULL,
		created_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS technologies (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		icon VARCHAR(255) NOT NULL,
		active {bool} NOT NULL,
		created_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		technologies_json TEXT NOT NULL,
		project_url VARCHAR(1024) NOT NULL,
		image_url VARCHAR(1024) NOT NULL,
		featured {bool} NOT NULL,
		active {bool} NOT NULL,
		created_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(255) NOT NULL,
		bio TEXT NOT NULL,
		photo_url VARCHAR(1024) NOT NULL,
		social_links_json TEXT NOT NULL,
		active {bool} NOT NULL,
		created_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS testimonials (
		id VARCHAR(64) PRIMARY KEY,
		client_name VARCHAR(255) NOT NULL,
		client_role VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		rating INTEGER NOT NULL,
		photo_url VARCHAR(1024) NOT NULL,
		active {bool} NOT NULL,
		created_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS company_profiles (
		id VARCHAR(64) PRIMARY KEY,
		company_name VARCHAR(255) NOT NULL,
		about TEXT NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		address TEXT NOT NULL,
		social_links_json TEXT NOT NULL,
		updated_at {ts} NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		message TEXT NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at {ts} NOT NULL
	)`,
}

// SchemaVersion is the number of schema migrations this build applies.
func SchemaVersion() int {
	return len(migrations)
}

// Drivers lists the supported database.driver values.
func Drivers() []string {
	return []string{DriverSQLite, DriverPostgres, DriverMySQL}
}

// migrate creates the schema. Every statement is idempotent so migrate runs
// on each start.
func (s *Store) migrate() error {
	r := strings.NewReplacer("{ts}", s.dialect.timestamp, "{bool}", s.dialect.boolean)
	for _, m := range migrations {
		stmt := r.Replace(m)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}
