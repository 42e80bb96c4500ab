package domain

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus is an independent secondary field, not gated by the order
// status machine.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// successors is the legal transition table. Delivered and cancelled are
// terminal.
var successors = map[OrderStatus][]OrderStatus{
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := successors[s]
	return ok
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// CheckTransition validates a requested status change against the current
// one. Unknown target statuses are a validation failure; known but illegal
// successors are an invalid transition.
func CheckTransition(from, to OrderStatus) error {
	if !ValidOrderStatus(to) {
		return Validationf("unknown order status %q", to)
	}
	if from == to {
		return TransitionError(from, to)
	}
	for _, next := range successors[from] {
		if next == to {
			return nil
		}
	}
	return TransitionError(from, to)
}
