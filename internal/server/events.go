package server

import (
	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/pkg/event"
	"github.com/smartbytes/canteen/pkg/logger"
	"github.com/smartbytes/canteen/pkg/metrics"
)

// registerListeners subscribes the audit log and the Prometheus counters to
// the lifecycle events fired by the services.
func registerListeners() {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		p, ok := payload.(services.OrderPlaced)
		if !ok {
			return
		}
		metrics.OrdersPlaced.Inc()
		logger.Info("order placed", "order_id", p.OrderID, "user_id", p.UserID, "total", p.Total.String())
	})

	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		p, ok := payload.(services.OrderStatusChanged)
		if !ok {
			return
		}
		logger.Info("order status changed", "order_id", p.OrderID, "from", string(p.From), "to", string(p.To))
	})

	event.Listen(services.EventOrderCancelled, func(payload interface{}) {
		p, ok := payload.(services.OrderCancelled)
		if !ok {
			return
		}
		by := "student"
		if p.ByManager {
			by = "manager"
		}
		metrics.OrdersCancelled.WithLabelValues(by).Inc()
		logger.Info("order cancelled", "order_id", p.OrderID, "by", by)
	})

	event.Listen(services.EventPaymentProcessed, func(payload interface{}) {
		p, ok := payload.(services.PaymentProcessed)
		if !ok {
			return
		}
		metrics.PaymentsProcessed.Inc()
		logger.Info("payment processed", "payment_id", p.PaymentID, "order_id", p.OrderID, "amount", p.Amount.String())
	})

	event.Listen(services.EventPaymentStatusChanged, func(payload interface{}) {
		p, ok := payload.(services.PaymentStatusChanged)
		if !ok {
			return
		}
		logger.Info("payment status changed", "payment_id", p.PaymentID, "from", string(p.From), "to", string(p.To))
	})

	event.Listen(services.EventFoodDonated, func(payload interface{}) {
		p, ok := payload.(services.FoodDonated)
		if !ok {
			return
		}
		metrics.DonationsRouted.Inc()
		logger.Info("food item donated", "food_item_id", p.FoodItemID, "name", p.Name)
	})

	event.Listen(services.EventFoodReceived, func(payload interface{}) {
		p, ok := payload.(services.FoodReceived)
		if !ok {
			return
		}
		metrics.DonationsCollected.Inc()
		logger.Info("donation collected by ngo", "food_item_id", p.FoodItemID, "name", p.Name)
	})
}
