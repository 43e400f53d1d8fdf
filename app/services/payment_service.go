package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/app/repositories"
	"github.com/smartbytes/canteen/pkg/apperr"
	"github.com/smartbytes/canteen/pkg/event"
	"github.com/smartbytes/canteen/pkg/orm"
)

// PaymentService owns the payment lifecycle. An order carries at most one
// payment, enforced both by a pre-check and by the unique index on
// order_id.
type PaymentService struct {
	payments *repositories.PaymentRepository
	orders   *repositories.OrderRepository
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		payments: repositories.NewPaymentRepository(),
		orders:   repositories.NewOrderRepository(),
	}
}

type ProcessPaymentInput struct {
	OrderID uint            `json:"order_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Method  string          `json:"payment_method"`
}

// Process settles an order. The caller must own the order, the order must
// be open (not cancelled, not picked up) and unpaid, and the amount must
// match the order total exactly.
func (s *PaymentService) Process(caller policy.Identity, in ProcessPaymentInput) (PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return PaymentResponse{}, err
	}

	method := strings.TrimSpace(in.Method)
	if method == "" {
		return PaymentResponse{}, apperr.InvalidArgument("payment method is required")
	}

	order, err := s.orders.FindByID(in.OrderID)
	if err != nil {
		return PaymentResponse{}, fetchErr(err, "order %d not found", in.OrderID)
	}
	if order.UserID != caller.UserID {
		return PaymentResponse{}, apperr.Forbidden("order %d belongs to another user", in.OrderID)
	}

	exists, err := s.payments.ExistsByOrder(order.ID)
	if err != nil {
		return PaymentResponse{}, err
	}
	if exists {
		return PaymentResponse{}, apperr.Conflict("order %d is already paid", order.ID)
	}

	if order.Status == models.OrderCancelled || order.Status == models.OrderPickedUp {
		return PaymentResponse{}, apperr.InvalidState("order %d is %s and cannot be paid", order.ID, order.Status)
	}
	if !in.Amount.Equal(order.TotalPrice) {
		return PaymentResponse{}, apperr.InvalidArgument("amount %s does not match order total %s", in.Amount, order.TotalPrice)
	}

	payment := models.Payment{
		UserID:      order.UserID,
		OrderID:     order.ID,
		Amount:      order.TotalPrice,
		PaymentDate: time.Now(),
		Status:      models.PaymentCompleted,
		Method:      method,
		Reference:   uuid.NewString(),
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		payments := s.payments.WithTx(tx)

		// Re-check inside the transaction; the unique index backs this up
		// if two payments race past the check.
		exists, err := payments.ExistsByOrder(order.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("order %d is already paid", order.ID)
		}
		return payments.Create(&payment)
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	created, err := s.payments.FindByID(payment.ID)
	if err != nil {
		return PaymentResponse{}, err
	}
	event.Fire(EventPaymentProcessed, PaymentProcessed{PaymentID: created.ID, OrderID: created.OrderID, Amount: created.Amount})

	return newPaymentResponse(created), nil
}

// UpdateStatus moves a payment to a new lifecycle state. Terminal payments
// reject every transition.
func (s *PaymentService) UpdateStatus(caller policy.Identity, id uint, raw string) (PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return PaymentResponse{}, err
	}

	status, ok := models.ParsePaymentStatus(raw)
	if !ok {
		return PaymentResponse{}, apperr.InvalidArgument("invalid payment status %q", raw)
	}

	payment, err := s.payments.FindByID(id)
	if err != nil {
		return PaymentResponse{}, fetchErr(err, "payment %d not found", id)
	}
	if payment.Status.Terminal() {
		return PaymentResponse{}, apperr.InvalidTransition("payment %d is %s and cannot change state", id, payment.Status)
	}

	from := payment.Status
	payment.Status = status
	if err := s.payments.Save(&payment); err != nil {
		return PaymentResponse{}, err
	}
	event.Fire(EventPaymentStatusChanged, PaymentStatusChanged{PaymentID: payment.ID, From: from, To: status})

	return newPaymentResponse(payment), nil
}

// MyPayments returns the caller's own payments.
func (s *PaymentService) MyPayments(caller policy.Identity) ([]PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return nil, err
	}

	payments, err := s.payments.FindByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	return newPaymentResponses(payments), nil
}

// MyPayment returns one of the caller's own payments. Payments of other
// users read as not found.
func (s *PaymentService) MyPayment(caller policy.Identity, id uint) (PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleStudent); err != nil {
		return PaymentResponse{}, err
	}

	payment, err := s.payments.FindByIDAndUser(id, caller.UserID)
	if err != nil {
		return PaymentResponse{}, fetchErr(err, "payment %d not found", id)
	}
	return newPaymentResponse(payment), nil
}

// All returns every payment in the system.
func (s *PaymentService) All(caller policy.Identity) ([]PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return nil, err
	}

	payments, err := s.payments.All()
	if err != nil {
		return nil, err
	}
	return newPaymentResponses(payments), nil
}

// Get returns any payment by id.
func (s *PaymentService) Get(caller policy.Identity, id uint) (PaymentResponse, error) {
	if err := policy.Authorize(caller, models.RoleCanteenManager, models.RoleAdmin); err != nil {
		return PaymentResponse{}, err
	}

	payment, err := s.payments.FindByID(id)
	if err != nil {
		return PaymentResponse{}, fetchErr(err, "payment %d not found", id)
	}
	return newPaymentResponse(payment), nil
}
