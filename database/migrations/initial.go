package migrations

import (
	"gorm.io/gorm"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/migration"
)

func init() {
	migration.Register("20260801000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260801000001_create_food_items_table", &CreateFoodItemsTable{})
	migration.Register("20260801000002_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260801000003_create_payments_table", &CreatePaymentsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: food_items --------

type CreateFoodItemsTable struct{}

func (m *CreateFoodItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.FoodItem{})
}

func (m *CreateFoodItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("food_items")
}

// -------- 0003: orders + order_lines --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderLine{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_lines", "orders")
}

// -------- 0004: payments --------

type CreatePaymentsTable struct{}

func (m *CreatePaymentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Payment{})
}

func (m *CreatePaymentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("payments")
}
