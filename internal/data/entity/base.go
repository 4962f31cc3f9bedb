package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record carries the audit columns of mutable, soft-deletable rows.
type Record struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (r Record) Deleted() bool { return r.DeletedAt != nil }

// AppendOnly is for rows that are written once and never updated in place.
type AppendOnly struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
