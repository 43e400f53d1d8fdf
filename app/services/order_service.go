package services

import (
	"github.com/shopspring/decimal"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/app/repositories"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/event"
	"github.com/smartbytes/canteen/pkg/orm"
)

// OrderService owns the order lifecycle. Line prices are snapshotted at
// placement time; later catalog price changes never touch existing orders.
type OrderService struct {
	orders *repositories.OrderRepository
	items  *repositories.FoodItemRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders: repositories.NewOrderRepository(),
		items:  repositories.NewFoodItemRepository(),
	}
}

type OrderLineInput struct {
	FoodItemID uint `json:"food_item_id"`
	Quantity   int  `json:"quantity"`
}

type PlaceOrderInput struct {
	Lines []OrderLineInput `json:"lines"`
}

// Place creates an order for the caller. Every referenced item must exist
// and be on sale today; the order and its lines are written in one
// transaction so a partial order is never visible.
func (s *OrderService) Place(caller policy.Identity, in PlaceOrderInput) (OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return OrderResponse{}, err
	}

	if len(in.Lines) == 0 {
		return OrderResponse{}, apperr.InvalidArgument("order must contain at least one line")
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			return OrderResponse{}, apperr.InvalidArgument("quantity must be at least 1")
		}
	}

	order := models.Order{
		UserID: caller.UserID,
		Status: models.OrderPending,
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		items := s.items.WithTx(tx)
		total := decimal.Zero

		for _, line := range in.Lines {
			item, err := items.FindByID(line.FoodItemID)
			if err != nil {
				return fetchErr(err, "food item %d not found", line.FoodItemID)
			}
			if !item.AvailableToday {
				return apperr.InvalidState("food item %q is not available today", item.Name)
			}

			subtotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			order.Lines = append(order.Lines, models.OrderLine{
				FoodItemID:   item.ID,
				Quantity:     line.Quantity,
				PriceAtOrder: item.Price,
				Subtotal:     subtotal,
			})
			total = total.Add(subtotal)
		}

		order.TotalPrice = total
		return s.orders.WithTx(tx).Create(&order)
	})
	if err != nil {
		return OrderResponse{}, err
	}

	placed, err := s.orders.FindByID(order.ID)
	if err != nil {
		return OrderResponse{}, err
	}
	event.Fire(EventOrderPlaced, OrderPlaced{OrderID: placed.ID, UserID: placed.UserID, Total: placed.TotalPrice})

	return newOrderResponse(placed), nil
}

// UpdateStatus moves an order to a new lifecycle state. Orders in a
// terminal state reject every transition; non-terminal states accept any
// target, including jumps.
func (s *OrderService) UpdateStatus(caller policy.Identity, id uint, raw string) (OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return OrderResponse{}, err
	}

	status, ok := models.ParseOrderStatus(raw)
	if !ok {
		return OrderResponse{}, apperr.InvalidArgument("invalid order status %q", raw)
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return OrderResponse{}, fetchErr(err, "order %d not found", id)
	}
	if order.Status.Terminal() {
		return OrderResponse{}, apperr.InvalidTransition("order %d is %s and cannot change state", id, order.Status)
	}

	from := order.Status
	order.Status = status
	if err := s.orders.Save(&order); err != nil {
		return OrderResponse{}, err
	}
	event.Fire(EventOrderStatusChanged, OrderStatusChanged{OrderID: order.ID, From: from, To: status})

	return newOrderResponse(order), nil
}

// Cancel cancels an order. Students may only cancel their own orders;
// managers may cancel any. Cancelling an already cancelled order is a
// no-op; a picked-up order cannot be cancelled.
func (s *OrderService) Cancel(caller policy.Identity, id uint) (OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return OrderResponse{}, err
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return OrderResponse{}, fetchErr(err, "order %d not found", id)
	}

	byManager := caller.IsManager()
	if !byManager && order.UserID != caller.UserID {
		return OrderResponse{}, apperr.Forbidden("order %d belongs to another user", id)
	}

	switch order.Status {
	case models.OrderCancelled:
		return newOrderResponse(order), nil
	case models.OrderPickedUp:
		return OrderResponse{}, apperr.InvalidTransition("order %d was already picked up", id)
	}

	order.Status = models.OrderCancelled
	if err := s.orders.Save(&order); err != nil {
		return OrderResponse{}, err
	}
	event.Fire(EventOrderCancelled, OrderCancelled{OrderID: order.ID, ByManager: byManager})

	return newOrderResponse(order), nil
}

// MyOrders returns the caller's own orders.
func (s *OrderService) MyOrders(caller policy.Identity) ([]OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return nil, err
	}

	orders, err := s.orders.FindByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	return newOrderResponses(orders), nil
}

// MyOrder returns one of the caller's own orders. Orders of other users
// read as not found.
func (s *OrderService) MyOrder(caller policy.Identity, id uint) (OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return OrderResponse{}, err
	}

	order, err := s.orders.FindByIDAndUser(id, caller.UserID)
	if err != nil {
		return OrderResponse{}, fetchErr(err, "order %d not found", id)
	}
	return newOrderResponse(order), nil
}

// All returns every order in the system.
func (s *OrderService) All(caller policy.Identity) ([]OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return nil, err
	}

	orders, err := s.orders.All()
	if err != nil {
		return nil, err
	}
	return newOrderResponses(orders), nil
}

// Get returns any order by id.
func (s *OrderService) Get(caller policy.Identity, id uint) (OrderResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return OrderResponse{}, err
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return OrderResponse{}, fetchErr(err, "order %d not found", id)
	}
	return newOrderResponse(order), nil
}
