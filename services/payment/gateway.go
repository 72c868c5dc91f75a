package payment

import (
	"context"
	"fmt"

	"medibook/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements OrderGateway against the Razorpay orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a gateway client from API credentials.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder creates a gateway order. The receipt carries the appointment
// ID for reconciliation on the gateway side.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*models.PaymentOrder, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	id, _ := body["id"].(string)
	status, _ := body["status"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create returned no id")
	}

	return &models.PaymentOrder{
		ID:       id,
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
		Status:   status,
	}, nil
}
