package gateway

import (
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
)

// StripeGateway implements PaymentGateway against the Stripe API.
type StripeGateway struct {
	sc *client.API
}

// NewStripeGateway builds a Stripe client with a bounded request timeout so a
// stuck gateway call cannot hang the request path.
func NewStripeGateway(secretKey string) *StripeGateway {
	backends := stripe.NewBackends(&http.Client{Timeout: 15 * time.Second})
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &StripeGateway{sc: sc}
}

func (g *StripeGateway) CreateOrder(amount float64, currency, receiptEmail string) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)), // subunits
		Currency: stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	if receiptEmail != "" {
		params.ReceiptEmail = stripe.String(receiptEmail)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}

	return &Order{
		OrderID: pi.ID,
		Amount:  float64(pi.Amount) / 100,
		Entity:  string(pi.Object),
	}, nil
}

func (g *StripeGateway) FetchPayment(paymentID string) (*PaymentRecord, error) {
	pi, err := g.sc.PaymentIntents.Get(paymentID, nil)
	if err != nil {
		return nil, err
	}

	method := string(pi.Object)
	if len(pi.PaymentMethodTypes) > 0 {
		method = pi.PaymentMethodTypes[0]
	}

	return &PaymentRecord{
		PaymentID: pi.ID,
		Status:    string(pi.Status),
		Method:    method,
	}, nil
}
