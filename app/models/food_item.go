package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FoodItem is a sellable/donatable catalog entry.
//
// Donation sub-state invariants:
//   - ReceivedByNgoAt set ⇒ DonatedAt set
//   - DonatedAt set ⇒ AvailableToday is false
//
// Re-enabling an item for sale clears both timestamps.
type FoodItem struct {
	gorm.Model
	Name            string          `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	AvailableToday  bool            `gorm:"not null" json:"available_today"`
	PhotoPath       string          `gorm:"size:512" json:"-"`
	DonatedAt       *time.Time      `json:"donated_at,omitempty"`
	ReceivedByNgoAt *time.Time      `json:"received_by_ngo_at,omitempty"`
}
