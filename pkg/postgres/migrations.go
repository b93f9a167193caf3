package postgres

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations executes the migrations for the given service.
func RunMigrations(db *sql.DB, service string) error {
	migrations := getServiceMigrations(service)
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d for %s: %w", i, service, err)
		}
	}
	log.Printf("Migrations completed for service: %s", service)
	return nil
}

func getServiceMigrations(service string) []string {
	users := `CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		age INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	idempotency := `CREATE TABLE IF NOT EXISTS idempotency_keys (
		message_id VARCHAR(36) PRIMARY KEY,
		processed_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	notificationLog := `CREATE TABLE IF NOT EXISTS notification_log (
		id SERIAL PRIMARY KEY,
		message_id VARCHAR(36) NOT NULL,
		correlation_id VARCHAR(36),
		event_type VARCHAR(50) NOT NULL,
		user_email VARCHAR(255) NOT NULL,
		received_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`

	switch service {
	case "api":
		return []string{users}
	case "notify":
		return []string{idempotency, notificationLog}
	default:
		return []string{users}
	}
}
