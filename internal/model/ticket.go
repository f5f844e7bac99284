package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket belongs to exactly one column. ColumnID is the authoritative
// membership reference; Position orders tickets within the column.
type Ticket struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ColumnID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"not null"`
	Description     string
	BackgroundColor string   `gorm:"not null;default:'#3b3b3b'"`
	Labels          []string `gorm:"serializer:json"`
	Position        int      `gorm:"not null"`
	CreatedAt       time.Time
	ModifiedAt      *time.Time

	Column Column `gorm:"foreignKey:ColumnID"`
}
