package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// RazorpayGateway implements domain.PaymentGateway against the Razorpay
// Orders API. Only the key id/secret pair lives here; webhook verification
// uses a separate secret and never touches this client.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a new Razorpay gateway client
func NewRazorpayGateway(keyID, keySecret string) domain.PaymentGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

// CreateOrder implements domain.PaymentGateway. Amount is in minor units
// (paise for INR), as the Orders API expects.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: order response missing id", domain.ErrGatewayUnavailable)
	}
	return orderID, nil
}
