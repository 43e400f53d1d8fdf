package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/storage"
)

// Response projections returned across the service boundary. Callers never
// receive the mutable gorm entities.

type FoodItemResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	AvailableToday  bool            `json:"available_today"`
	PhotoURL        string          `json:"photo_url,omitempty"`
	DonatedAt       *time.Time      `json:"donated_at,omitempty"`
	ReceivedByNgoAt *time.Time      `json:"received_by_ngo_at,omitempty"`
}

func newFoodItemResponse(item models.FoodItem) FoodItemResponse {
	resp := FoodItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		AvailableToday:  item.AvailableToday,
		DonatedAt:       item.DonatedAt,
		ReceivedByNgoAt: item.ReceivedByNgoAt,
	}
	if item.PhotoPath != "" {
		resp.PhotoURL = storage.URL(item.PhotoPath)
	}
	return resp
}

func newFoodItemResponses(items []models.FoodItem) []FoodItemResponse {
	out := make([]FoodItemResponse, len(items))
	for i, item := range items {
		out[i] = newFoodItemResponse(item)
	}
	return out
}

type OrderLineResponse struct {
	LineID       uint            `json:"line_id"`
	FoodItemID   uint            `json:"food_item_id"`
	FoodItemName string          `json:"food_item_name"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID         uint                `json:"id"`
	UserID     uint                `json:"user_id"`
	Username   string              `json:"username"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Status     models.OrderStatus  `json:"status"`
	Lines      []OrderLineResponse `json:"lines"`
}

func newOrderResponse(order models.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineResponse{
			LineID:       line.ID,
			FoodItemID:   line.FoodItemID,
			FoodItemName: line.FoodItem.Name, // empty when the item was later deleted
			PriceAtOrder: line.PriceAtOrder,
			Quantity:     line.Quantity,
			Subtotal:     line.Subtotal,
		}
	}
	return OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		Username:   order.User.Username,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		Lines:      lines,
	}
}

func newOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, order := range orders {
		out[i] = newOrderResponse(order)
	}
	return out
}

type PaymentResponse struct {
	ID            uint                 `json:"id"`
	UserID        uint                 `json:"user_id"`
	Username      string               `json:"username"`
	OrderID       uint                 `json:"order_id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentDate   time.Time            `json:"payment_date"`
	Status        models.PaymentStatus `json:"status"`
	PaymentMethod string               `json:"payment_method"`
	Reference     string               `json:"reference"`
}

func newPaymentResponse(payment models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		UserID:        payment.UserID,
		Username:      payment.User.Username,
		OrderID:       payment.OrderID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		Status:        payment.Status,
		PaymentMethod: payment.Method,
		Reference:     payment.Reference,
	}
}

func newPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		out[i] = newPaymentResponse(payment)
	}
	return out
}

type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
