package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Saved lookup values backing the entry-form suggestion lists. Append-only,
// upper-cased, deduplicated by a unique constraint.

// SavedTruck is a previously used truck number
type SavedTruck struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	TruckNo   string    `gorm:"column:truck_no;not null;uniqueIndex" json:"truck_no"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for SavedTruck
func (SavedTruck) TableName() string {
	return "saved_trucks"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (t *SavedTruck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SavedTransport is a previously used transport company name
type SavedTransport struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	TransportName string    `gorm:"column:transport_name;not null;uniqueIndex" json:"transport_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for SavedTransport
func (SavedTransport) TableName() string {
	return "saved_transports"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (t *SavedTransport) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SavedDestination is a previously used destination
type SavedDestination struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	DestinationName string    `gorm:"column:destination_name;not null;uniqueIndex" json:"destination_name"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for SavedDestination
func (SavedDestination) TableName() string {
	return "saved_destinations"
}

// BeforeCreate assigns a UUID when the store has not been given one.
func (d *SavedDestination) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
