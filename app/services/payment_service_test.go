package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/apperr"
)

func TestProcessPayment(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	payments := NewPaymentService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	tea := seedItem(t, "Tea", "10.00", true)

	order, err := orders.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 3}}})
	require.NoError(t, err)
	require.True(t, order.TotalPrice.Equal(money("30.00")))

	payment, err := payments.Process(student, ProcessPaymentInput{
		OrderID: order.ID,
		Amount:  money("30.00"),
		Method:  "UPI",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentCompleted, payment.Status)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.Equal(t, "UPI", payment.PaymentMethod)
	assert.True(t, payment.Amount.Equal(money("30.00")))
	assert.NotEmpty(t, payment.Reference)
	assert.False(t, payment.PaymentDate.IsZero())
}

func TestProcessPaymentValidation(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	payments := NewPaymentService()
	alice := asIdentity(seedUser(t, "alice", models.RoleStudent))
	bob := asIdentity(seedUser(t, "bob", models.RoleStudent))
	tea := seedItem(t, "Tea", "10.00", true)

	order, err := orders.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 2}}})
	require.NoError(t, err)

	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: 9999, Amount: money("20.00"), Method: "CASH"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = payments.Process(bob, ProcessPaymentInput{OrderID: order.ID, Amount: money("20.00"), Method: "CASH"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: order.ID, Amount: money("19.99"), Method: "CASH"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: order.ID, Amount: money("20.00")})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: order.ID, Amount: money("20.00"), Method: "CASH"})
	require.NoError(t, err)

	// Exactly one payment per order.
	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: order.ID, Amount: money("20.00"), Method: "CASH"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	cancelled, err := orders.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	_, err = orders.Cancel(alice, cancelled.ID)
	require.NoError(t, err)

	_, err = payments.Process(alice, ProcessPaymentInput{OrderID: cancelled.ID, Amount: money("10.00"), Method: "CASH"})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
}

func TestProcessPaymentClosedOrder(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	payments := NewPaymentService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	order, err := orders.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	_, err = orders.UpdateStatus(manager, order.ID, "PICKED_UP")
	require.NoError(t, err)

	// A picked-up order is closed; no payment may be processed against it.
	_, err = payments.Process(student, ProcessPaymentInput{OrderID: order.ID, Amount: money("10.00"), Method: "CASH"})
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	mine, err := payments.MyPayments(student)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestUpdatePaymentStatus(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	payments := NewPaymentService()
	student := asIdentity(seedUser(t, "student", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	order, err := orders.Place(student, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	payment, err := payments.Process(student, ProcessPaymentInput{OrderID: order.ID, Amount: money("10.00"), Method: "CASH"})
	require.NoError(t, err)

	_, err = payments.UpdateStatus(manager, payment.ID, "SETTLED")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = payments.UpdateStatus(student, payment.ID, "REFUNDED")
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	refunded, err := payments.UpdateStatus(manager, payment.ID, "REFUNDED")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, refunded.Status)

	// REFUNDED is terminal.
	for _, target := range []string{"PENDING", "COMPLETED", "FAILED", "CANCELLED"} {
		_, err = payments.UpdateStatus(manager, payment.ID, target)
		assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err), "target %s", target)
	}

	_, err = payments.UpdateStatus(manager, 9999, "FAILED")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPaymentScoping(t *testing.T) {
	setupDB(t)
	orders := NewOrderService()
	payments := NewPaymentService()
	alice := asIdentity(seedUser(t, "alice", models.RoleStudent))
	bob := asIdentity(seedUser(t, "bob", models.RoleStudent))
	manager := asIdentity(seedUser(t, "manager", models.RoleCanteenManager))
	tea := seedItem(t, "Tea", "10.00", true)

	order, err := orders.Place(alice, PlaceOrderInput{Lines: []OrderLineInput{{FoodItemID: tea.ID, Quantity: 1}}})
	require.NoError(t, err)
	payment, err := payments.Process(alice, ProcessPaymentInput{OrderID: order.ID, Amount: money("10.00"), Method: "CASH"})
	require.NoError(t, err)

	mine, err := payments.MyPayments(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "alice", mine[0].Username)

	theirs, err := payments.MyPayments(bob)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = payments.MyPayment(bob, payment.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	all, err := payments.All(manager)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = payments.All(alice)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	got, err := payments.Get(manager, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)
}
