package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/app/policy"
	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestCatalogCreate(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))

	created, err := svc.Create(manager, CreateFoodItemInput{
		Name:        "Veg Thali",
		Description: "rice, dal, two sabzis",
		Price:       money("45.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Veg Thali", created.Name)
	assert.True(t, created.AvailableToday)
	assert.True(t, created.Price.Equal(money("45.00")))

	_, err = svc.Create(manager, CreateFoodItemInput{Name: "Veg Thali", Price: money("50.00")})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Create(manager, CreateFoodItemInput{Name: "   ", Price: money("10.00")})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Create(manager, CreateFoodItemInput{Name: "Broken", Price: money("-1.00")})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	_, err = svc.Create(student, CreateFoodItemInput{Name: "Nope", Price: money("5.00")})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.Create(policy.Identity{}, CreateFoodItemInput{Name: "Ghost", Price: money("5.00")})
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestCatalogUpdate(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	item := seedItem(t, "Tea", "10.00", true)
	seedItem(t, "Coffee", "15.00", true)

	newName := "Masala Tea"
	newPrice := money("12.00")
	updated, err := svc.Update(manager, item.ID, UpdateFoodItemInput{Name: &newName, Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "Masala Tea", updated.Name)
	assert.True(t, updated.Price.Equal(money("12.00")))

	clash := "Coffee"
	_, err = svc.Update(manager, item.ID, UpdateFoodItemInput{Name: &clash})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Update(manager, 9999, UpdateFoodItemInput{Name: &newName})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCatalogDonationFlow(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	ngo := asIdentity(seedUser(t, "ngo", models.RoleNGO))
	item := seedItem(t, "Leftover Rice", "20.00", true)

	donated, err := svc.Donate(manager, item.ID)
	require.NoError(t, err)
	require.NotNil(t, donated.DonatedAt)
	assert.Nil(t, donated.ReceivedByNgoAt)
	assert.False(t, donated.AvailableToday)

	_, err = svc.Donate(manager, item.ID)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	pending, err := svc.Donated(ngo)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, item.ID, pending[0].ID)

	received, err := svc.MarkReceived(ngo, item.ID)
	require.NoError(t, err)
	require.NotNil(t, received.ReceivedByNgoAt)

	_, err = svc.MarkReceived(ngo, item.ID)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	// Collected items drop off the NGO pickup list.
	pending, err = svc.Donated(ngo)
	require.NoError(t, err)
	assert.Empty(t, pending)

	fresh := seedItem(t, "Fresh Buns", "8.00", true)
	_, err = svc.MarkReceived(ngo, fresh.ID)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	_, err = svc.Donated(manager)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCatalogReenableClearsDonation(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	ngo := asIdentity(seedUser(t, "ngo", models.RoleNGO))
	item := seedItem(t, "Samosa", "12.00", true)

	_, err := svc.Donate(manager, item.ID)
	require.NoError(t, err)
	_, err = svc.MarkReceived(ngo, item.ID)
	require.NoError(t, err)

	back, err := svc.SetAvailability(manager, item.ID, true)
	require.NoError(t, err)
	assert.True(t, back.AvailableToday)
	assert.Nil(t, back.DonatedAt)
	assert.Nil(t, back.ReceivedByNgoAt)

	// The full cycle can start over.
	_, err = svc.Donate(manager, item.ID)
	require.NoError(t, err)
}

func TestCatalogDeleteCascadesToOrderLines(t *testing.T) {
	setupDB(t)
	catalog := NewCatalogService()
	orders := NewOrderService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	tea := seedItem(t, "Tea", "10.00", true)
	bun := seedItem(t, "Bun", "5.00", true)

	placed, err := orders.Place(student, PlaceOrderInput{Lines: []OrderLineInput{
		{FoodItemID: tea.ID, Quantity: 2},
		{FoodItemID: bun.ID, Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, placed.Lines, 2)

	require.NoError(t, catalog.Delete(manager, tea.ID))

	_, err = catalog.Get(student, tea.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// The order survives with the remaining line and its original total.
	after, err := orders.MyOrder(student, placed.ID)
	require.NoError(t, err)
	require.Len(t, after.Lines, 1)
	assert.Equal(t, bun.ID, after.Lines[0].FoodItemID)
	assert.True(t, after.TotalPrice.Equal(money("25.00")))
}

func TestCatalogDeleteFreesName(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	item := seedItem(t, "Tea", "10.00", true)

	require.NoError(t, svc.Delete(manager, item.ID))

	// The name is reusable after deletion.
	recreated, err := svc.Create(manager, CreateFoodItemInput{Name: "Tea", Price: money("11.00")})
	require.NoError(t, err)
	assert.Equal(t, "Tea", recreated.Name)
	assert.True(t, recreated.Price.Equal(money("11.00")))
}

func TestCatalogResetAvailability(t *testing.T) {
	setupDB(t)
	svc := NewCatalogService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	seedItem(t, "Tea", "10.00", true)
	seedItem(t, "Bun", "5.00", true)
	donatedItem := seedItem(t, "Rice", "20.00", true)

	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	_, err := svc.Donate(manager, donatedItem.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ResetAvailability())

	menu, err := svc.Available(student)
	require.NoError(t, err)
	assert.Empty(t, menu)

	// Donation state is untouched by the nightly reset.
	item, err := svc.Get(student, donatedItem.ID)
	require.NoError(t, err)
	assert.NotNil(t, item.DonatedAt)
}
