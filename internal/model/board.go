package model

import (
	"time"

	"github.com/google/uuid"
)

// Board is the top-level container. A user owns at most one board,
// enforced by the unique index on OwnerID.
type Board struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title        string    `gorm:"not null"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderVersion int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner   User     `gorm:"foreignKey:OwnerID"`
	Columns []Column `gorm:"foreignKey:BoardID"`
}
