package models

// Role is the single capability tag carried by a user. One canonical
// definition shared by policy, routing, and persistence.
type Role string

const (
	RoleStudent        Role = "STUDENT"
	RoleCanteenManager Role = "CANTEEN_MANAGER"
	RoleAdmin          Role = "ADMIN"
	RoleNGO            Role = "NGO"
)

// ParseRole matches a role name exactly (case-sensitive).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleCanteenManager, RoleAdmin, RoleNGO:
		return Role(s), true
	}
	return "", false
}

// OrderStatus is the order lifecycle state.
// PICKED_UP and CANCELLED are terminal.
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderPickedUp       OrderStatus = "PICKED_UP"
	OrderCancelled      OrderStatus = "CANCELLED"
)

// ParseOrderStatus matches a status name exactly (case-sensitive).
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderPreparing, OrderReadyForPickup, OrderPickedUp, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == OrderPickedUp || s == OrderCancelled
}

// PaymentStatus is the payment lifecycle state.
// REFUNDED and CANCELLED are terminal.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// ParsePaymentStatus matches a status name exactly (case-sensitive).
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCancelled:
		return PaymentStatus(s), true
	}
	return "", false
}

// Terminal reports whether no further transition is permitted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentRefunded || s == PaymentCancelled
}
