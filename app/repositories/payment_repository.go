package repositories

import (
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/orm"
)

// PaymentRepository handles database operations for Payment.
type PaymentRepository struct {
	tx *orm.Query
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// WithTx returns a repository bound to the given transaction.
func (r *PaymentRepository) WithTx(tx *orm.Query) *PaymentRepository {
	return &PaymentRepository{tx: tx}
}

func (r *PaymentRepository) q() *orm.Query {
	if r.tx != nil {
		return r.tx
	}
	return orm.DB()
}

func (r *PaymentRepository) loaded() *orm.Query {
	return r.q().Model(&models.Payment{}).Preload("User")
}

// Create persists a new payment. The unique index on order_id backs the
// one-payment-per-order invariant even under concurrent calls.
func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.q().Create(payment)
}

// ExistsByOrder reports whether a payment already exists for the order.
func (r *PaymentRepository) ExistsByOrder(orderID uint) (bool, error) {
	var count int64
	err := r.q().Model(&models.Payment{}).Where("order_id = ?", orderID).Count(&count)
	return count > 0, err
}

// FindByID returns a payment with its owner loaded.
func (r *PaymentRepository) FindByID(id uint) (models.Payment, error) {
	var payment models.Payment
	err := r.loaded().Where("payments.id = ?", id).First(&payment)
	return payment, err
}

// FindByIDAndUser returns the payment only when owned by userID.
func (r *PaymentRepository) FindByIDAndUser(id, userID uint) (models.Payment, error) {
	var payment models.Payment
	err := r.loaded().Where("payments.id = ? AND payments.user_id = ?", id, userID).First(&payment)
	return payment, err
}

// FindByUser returns all payments made by userID.
func (r *PaymentRepository) FindByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.loaded().Where("payments.user_id = ?", userID).Order("payments.id").Get(&payments)
	return payments, err
}

// All returns every payment.
func (r *PaymentRepository) All() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.loaded().Order("payments.id").Get(&payments)
	return payments, err
}

// Save persists changes to an existing payment.
func (r *PaymentRepository) Save(payment *models.Payment) error {
	return r.q().Save(payment)
}
