package database

import (
	"github.com/cdy-agency/api-sky-solutions/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all platform models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Business{},
		&domain.ShareRequest{},
		&domain.Investment{},
		&domain.Expense{},
		&domain.Invoice{},
		&domain.Employee{},
		&domain.Payroll{},
		&domain.Notification{},
	)
}
