package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestPlaceOrderTotals(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	tea := seedItem(t, "Tea", "10.00", true)
	bun := seedItem(t, "Bun", "5.50", true)

	order, err := svc.Place(student, PlaceOrderInput{Lines: []OrderLineInput{
		{FoodItemID: tea.ID, Quantity: 3},
		{FoodItemID: bun.ID, Quantity: 2},
	}})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, student.UserID, order.UserID)
	require.Len(t, order.Lines, 2)

	assert.True(t, order.Lines[0].PriceAtOrder.Equal(money("10.00")))
	assert.True(t, order.Lines[0].Subtotal.Equal(money("30.00")))
	assert.True(t, order.Lines[1].Subtotal.Equal(money("11.00")))
	assert.True(t, order.TotalPrice.Equal(money("41.00")))
}

func TestPlaceOrderValidation(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	offSale := seedItem(t, "Yesterday Special", "30.00", false)
	tea := seedItem(t, "Tea", "10.00", true)

	_, err := svc.Place(student, PlaceOrderInput{})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 0}}})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: 9999, Quantity: 1}}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: offSale.ID, Quantity: 1}}})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	_, err = svc.Place(manager, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	// A failed order leaves nothing behind.
	orders, err := svc.MyOrders(student)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	catalog := NewCatalogService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	placed, err := orders.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 3}}})
	require.NoError(t, err)

	bumped := money("99.00")
	_, err = catalog.Update(manager, tea.ID, UpdateFoodItemInput{Price: &bumped})
	require.NoError(t, err)

	after, err := orders.MyOrder(student, placed.ID)
	require.NoError(t, err)
	assert.True(t, after.Lines[0].PriceAtOrder.Equal(money("10.00")))
	assert.True(t, after.TotalPrice.Equal(money("30.00")))
}

func TestUpdateOrderStatus(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	placed, err := svc.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)

	// Skipping PREPARING is allowed between non-terminal states.
	updated, err := svc.UpdateStatus(manager, placed.ID, "READY_FOR_PICKUP")
	require.NoError(t, err)
	assert.Equal(t, models.OrderReadyForPickup, updated.Status)

	_, err = svc.UpdateStatus(manager, placed.ID, "ready_for_pickup")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = svc.UpdateStatus(manager, placed.ID, "PICKED_UP")
	require.NoError(t, err)

	for _, target := range []string{"PENDING", "PREPARING", "CANCELLED", "PICKED_UP"} {
		_, err = svc.UpdateStatus(manager, placed.ID, target)
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err), "target %s", target)
	}

	_, err = svc.UpdateStatus(student, placed.ID, "PREPARING")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = svc.UpdateStatus(manager, 9999, "PREPARING")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCancelOrder(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	alice := asIdentity(seedUser(t, "alice", models.RoleStudent))
	bob := asIdentity(seedUser(t, "bob", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	placed, err := svc.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = svc.Cancel(bob, placed.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	cancelled, err := svc.Cancel(alice, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	// Cancelling an already cancelled order is a no-op.
	again, err := svc.Cancel(alice, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, again.Status)

	second, err := svc.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(manager, second.ID, "PICKED_UP")
	require.NoError(t, err)

	_, err = svc.Cancel(alice, second.ID)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	// Managers may cancel any open order.
	third, err := svc.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	cancelled, err = svc.Cancel(manager, third.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
}

func TestOrderScoping(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	alice := asIdentity(seedUser(t, "alice", models.RoleStudent))
	bob := asIdentity(seedUser(t, "bob", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	placed, err := svc.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)

	mine, err := svc.MyOrders(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice", mine[0].Username)

	theirs, err := svc.MyOrders(bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	// Someone else's order reads as not found, not forbidden.
	_, err = svc.MyOrder(bob, placed.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	all, err := svc.All(manager)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.All(alice)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := svc.Get(manager, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
}
