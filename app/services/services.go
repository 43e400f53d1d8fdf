package services

import (
	"github.com/shopspring/decimal"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/orm"
)

// Event names fired after committed lifecycle transitions. The server boot
// registers listeners on these for metrics and the audit trail.
const (
	EventFoodDonated          = "food.donated"
	EventFoodReceived         = "food.ngo_received"
	EventOrderPlaced          = "order.placed"
	EventOrderStatusChanged   = "order.status_changed"
	EventOrderCancelled       = "order.cancelled"
	EventPaymentProcessed     = "payment.processed"
	EventPaymentStatusChanged = "payment.status_changed"
)

type FoodDonated struct {
	FoodItemID uint
	Name       string
}

type FoodReceived struct {
	FoodItemID uint
	Name       string
}

type OrderPlaced struct {
	OrderID uint
	UserID  uint
	Total   decimal.Decimal
}

type OrderStatusChanged struct {
	OrderID uint
	From    models.OrderStatus
	To      models.OrderStatus
}

type OrderCancelled struct {
	OrderID   uint
	ByManager bool
}

type PaymentProcessed struct {
	PaymentID uint
	OrderID   uint
	Amount    decimal.Decimal
}

type PaymentStatusChanged struct {
	PaymentID uint
	From      models.PaymentStatus
	To        models.PaymentStatus
}

// fetchErr maps a repository miss onto a NotFound error and passes every
// other error through unchanged.
func fetchErr(err error, format string, args ...interface{}) error {
	if orm.IsNotFound(err) {
		return apperr.NotFound(format, args...)
	}
	return err
}
