package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment settles exactly one order. The unique index on OrderID enforces
// the one-payment-per-order invariant at the persistence boundary, inside
// the same transaction as the duplicate pre-check.
type Payment struct {
	gorm.Model
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        User            `json:"-"`
	OrderID     uint            `gorm:"not null;uniqueIndex" json:"order_id"`
	Order       Order           `json:"-"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Status      PaymentStatus   `gorm:"size:50;not null" json:"status"`
	Method      string          `gorm:"size:100" json:"payment_method"`
	Reference   string          `gorm:"size:64;uniqueIndex" json:"reference"`
}
