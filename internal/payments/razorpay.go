package payments

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/richxcame/cab-booking/pkg/config"
)

// RazorpayClient is the production gateway client
type RazorpayClient struct {
	client *razorpay.Client
}

// NewRazorpayClient creates a gateway client from configured credentials
func NewRazorpayClient(cfg *config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
	}
}

// CreateOrder opens an order with the gateway
func (c *RazorpayClient) CreateOrder(req *OrderRequest) (*GatewayOrder, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}

	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := c.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	order := &GatewayOrder{
		ID:       stringField(body, "id"),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
	}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	return order, nil
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
