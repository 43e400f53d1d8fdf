package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is placed atomically with all its lines. TotalPrice is the sum of
// line subtotals at placement time and is never recomputed, even when
// catalog prices change or referenced items are later deleted.
type Order struct {
	gorm.Model
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	User       User            `json:"-"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status     OrderStatus     `gorm:"size:50;not null;default:PENDING" json:"status"`
	Lines      []OrderLine     `gorm:"foreignKey:OrderID" json:"lines"`
}

// OrderLine is a frozen-price quantity of one food item within one order.
// PriceAtOrder and Subtotal are snapshots taken at placement; they never
// change afterwards.
type OrderLine struct {
	gorm.Model
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	FoodItemID   uint            `gorm:"not null;index" json:"food_item_id"`
	FoodItem     FoodItem        `json:"-"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
}
