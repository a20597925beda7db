package gateway

// Order is the gateway's record of a newly created payment order.
type Order struct {
	OrderID string
	Amount  float64
	Entity  string
}

// PaymentRecord is the gateway's own view of a processed payment, fetched
// back during callback verification.
type PaymentRecord struct {
	PaymentID string
	Status    string
	Method    string
}

// PaymentGateway wraps the external payment provider's order-creation and
// verification API.
type PaymentGateway interface {
	// CreateOrder registers an order for the given amount and returns the
	// gateway's reference for it.
	CreateOrder(amount float64, currency, receiptEmail string) (*Order, error)
	// FetchPayment re-fetches a payment from the gateway by its payment id.
	FetchPayment(paymentID string) (*PaymentRecord, error)
}
