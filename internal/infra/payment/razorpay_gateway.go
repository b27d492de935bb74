package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"devlink-platform/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayGateway implements PaymentGateway using direct HTTP calls against
// the Razorpay Orders API with basic auth.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) (*RazorpayGateway, error) {
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay: key_id and key_secret are required")
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{},
	}, nil
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

// razorpayOrderResponse represents the response from the orders API.
type razorpayOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"` // created | attempted | paid
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	requestData := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if notes != nil {
		requestData["notes"] = notes
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("order request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read order response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// Razorpay error bodies carry account detail; surface only the code.
		return "", fmt.Errorf("order request rejected: status %d", resp.StatusCode)
	}

	var order razorpayOrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return "", fmt.Errorf("failed to parse order response: %w", err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("order response missing id")
	}
	return order.ID, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(key_secret, order_id + "|" + payment_id), hex-encoded.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyCheckoutSignature(g.keySecret, orderID, paymentID, signature)
}

func (g *RazorpayGateway) FetchOrderStatus(ctx context.Context, orderID string) (adapter.OrderStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/orders/"+orderID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build order status request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("order status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("order status rejected: status %d", resp.StatusCode)
	}

	var order razorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("failed to parse order status response: %w", err)
	}
	switch order.Status {
	case "paid":
		return adapter.OrderStatusPaid, nil
	case "attempted":
		return adapter.OrderStatusAttempted, nil
	default:
		return adapter.OrderStatusCreated, nil
	}
}
