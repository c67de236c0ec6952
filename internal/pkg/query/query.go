package query

import (
	"time"

	"gorm.io/gorm"
)

// Options is a typed filter for list endpoints. Zero-valued fields are
// ignored; set fields are translated to WHERE clauses by Scope. Each module's
// handler fills in the fields its listing supports.
type Options struct {
	Status   string
	Kind     string
	Priority string
	DueFrom  *time.Time
	DueTo    *time.Time
	Limit    int
	Offset   int
	OrderBy  string
}

// Scope translates the options into a gorm scope.
func (o Options) Scope(dateColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if o.Status != "" {
			db = db.Where("status = ?", o.Status)
		}
		if o.Kind != "" {
			db = db.Where("kind = ?", o.Kind)
		}
		if o.Priority != "" {
			db = db.Where("priority = ?", o.Priority)
		}
		if o.DueFrom != nil {
			db = db.Where(dateColumn+" >= ?", *o.DueFrom)
		}
		if o.DueTo != nil {
			db = db.Where(dateColumn+" <= ?", *o.DueTo)
		}
		if o.OrderBy != "" {
			db = db.Order(o.OrderBy)
		} else {
			db = db.Order("created_at DESC")
		}
		if o.Limit > 0 {
			db = db.Limit(o.Limit)
		}
		if o.Offset > 0 {
			db = db.Offset(o.Offset)
		}
		return db
	}
}
