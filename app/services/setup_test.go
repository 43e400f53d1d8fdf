package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/pkg/database"
	"github.com/smartbytes/canteen/pkg/event"
)

// setupDB points the shared connection at a fresh in-memory sqlite database
// for the duration of one test.
func setupDB(t *testing.T) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Payment{},
	))

	database.DB = db
	t.Cleanup(func() {
		event.Flush()
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
		database.DB = nil
	})
}

func seedUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedItem(t *testing.T, name, price string, available bool) models.FoodItem {
	t.Helper()

	item := models.FoodItem{
		Name:           name,
		Price:          decimal.RequireFromString(price),
		AvailableToday: available,
	}
	require.NoError(t, database.DB.Create(&item).Error)
	return item
}

func asIdentity(user models.User) policy.Identity {
	return policy.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
