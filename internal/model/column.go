package model

import (
	"github.com/google/uuid"
)

// DefaultColumnColor matches the first entry of the client palette.
const DefaultColumnColor = "#3b3b3b"

// Column belongs to exactly one board. Display order within the board is
// given by Position; the board's column order is the column IDs sorted by
// Position. OrderVersion increments whenever the column's ticket order or
// membership changes, and backs the optimistic version check on reorders.
type Column struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"not null"`
	BackgroundColor string    `gorm:"not null;default:'#3b3b3b'"`
	Position        int       `gorm:"not null"`
	OrderVersion    int64     `gorm:"not null;default:0"`

	Board   Board    `gorm:"foreignKey:BoardID"`
	Tickets []Ticket `gorm:"foreignKey:ColumnID"`
}
