package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/adapter"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Ensure the gateway satisfies the port.
var _ adapter.PaymentGateway = (*RazorpayGateway)(nil)

// RazorpayGateway implements adapter.PaymentGateway using direct HTTP calls
// against the Razorpay Orders API.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   defaultBaseURL,
		client:    &http.Client{},
	}
}

// NewRazorpayGatewayWithBaseURL points the gateway at a non-default endpoint
// (test servers).
func NewRazorpayGatewayWithBaseURL(keyID, keySecret, baseURL string) *RazorpayGateway {
	g := NewRazorpayGateway(keyID, keySecret)
	g.baseURL = baseURL
	return g
}

// razorpayOrderResponse is the Orders API response shape, limited to the
// fields this service reads.
type razorpayOrderResponse struct {
	ID       string            `json:"id"`
	Entity   string            `json:"entity"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

type razorpayErrorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder implements adapter.PaymentGateway.CreateOrder.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.Order, error) {
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
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := g.baseURL + "/orders"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr razorpayErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay error: status %d, code %s: %s", resp.StatusCode, apiErr.Error.Code, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var response razorpayOrderResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	if response.ID == "" {
		return nil, fmt.Errorf("razorpay response missing order id, body: %s", string(body))
	}

	return &model.Order{
		ID:       response.ID,
		Amount:   response.Amount,
		Currency: response.Currency,
		Receipt:  response.Receipt,
		Notes:    response.Notes,
	}, nil
}

// KeyID implements adapter.PaymentGateway.KeyID.
func (g *RazorpayGateway) KeyID() string { return g.keyID }
