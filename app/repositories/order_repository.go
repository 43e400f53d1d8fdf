package repositories

import (
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/orm"
)

// OrderRepository handles database operations for Order and its lines.
type OrderRepository struct {
	tx *orm.Query
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// WithTx returns a repository bound to the given transaction.
func (r *OrderRepository) WithTx(tx *orm.Query) *OrderRepository {
	return &OrderRepository{tx: tx}
}

func (r *OrderRepository) q() *orm.Query {
	if r.tx != nil {
		return r.tx
	}
	return orm.DB()
}

func (r *OrderRepository) loaded() *orm.Query {
	return r.q().Model(&models.Order{}).
		Preload("User").
		Preload("Lines").
		Preload("Lines.FoodItem")
}

// Create persists an order together with all its lines in one insert graph.
// Callers wrap this in a transaction so the order is never visible without
// its lines.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.q().Create(order)
}

// FindByID returns an order with lines and owner loaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.loaded().Where("orders.id = ?", id).First(&order)
	return order, err
}

// FindByIDAndUser returns the order only when owned by userID.
func (r *OrderRepository) FindByIDAndUser(id, userID uint) (models.Order, error) {
	var order models.Order
	err := r.loaded().Where("orders.id = ? AND orders.user_id = ?", id, userID).First(&order)
	return order, err
}

// FindByUser returns all orders owned by userID.
func (r *OrderRepository) FindByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.loaded().Where("orders.user_id = ?", userID).Order("orders.id").Get(&orders)
	return orders, err
}

// All returns every order.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := r.loaded().Order("orders.id").Get(&orders)
	return orders, err
}

// Save persists changes to an existing order.
func (r *OrderRepository) Save(order *models.Order) error {
	return r.q().Save(order)
}

// DeleteLinesByFoodItem removes every order line referencing the given food
// item. Part of the food item delete cascade; order totals are intentionally
// left as placed (historical-data trade-off).
func (r *OrderRepository) DeleteLinesByFoodItem(foodItemID uint) error {
	return r.q().Unscoped().Where("food_item_id = ?", foodItemID).Delete(&models.OrderLine{})
}
