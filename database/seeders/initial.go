package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("menu", SeedMenu)
}

// SeedUsers creates one account per role for local development. Idempotent:
// existing usernames are left alone.
func SeedUsers(db *gorm.DB) error {
	accounts := []struct {
		username string
		email    string
		role     models.Role
	}{
		{"admin", "admin@smartbytes.local", models.RoleAdmin},
		{"manager", "manager@smartbytes.local", models.RoleCanteenManager},
		{"student", "student@smartbytes.local", models.RoleStudent},
		{"foodbank", "foodbank@smartbytes.local", models.RoleNGO},
	}

	for _, a := range accounts {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", a.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := auth.HashPassword("password")
		if err != nil {
			return err
		}

		user := models.User{
			Username: a.username,
			Email:    a.email,
			Password: hash,
			Role:     a.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedMenu fills the catalog with a starter menu.
func SeedMenu(db *gorm.DB) error {
	items := []models.FoodItem{
		{Name: "Tea", Description: "Hot masala chai", Price: decimal.RequireFromString("10.00"), AvailableToday: true},
		{Name: "Coffee", Description: "Filter coffee", Price: decimal.RequireFromString("15.00"), AvailableToday: true},
		{Name: "Veg Thali", Description: "Rice, dal, two sabzis, roti", Price: decimal.RequireFromString("45.00"), AvailableToday: true},
		{Name: "Samosa", Description: "Crispy fried samosa", Price: decimal.RequireFromString("12.00"), AvailableToday: true},
		{Name: "Fruit Bowl", Description: "Seasonal fruit", Price: decimal.RequireFromString("25.00"), AvailableToday: false},
	}

	for _, item := range items {
		var count int64
		if err := db.Model(&models.FoodItem{}).Where("name = ?", item.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
