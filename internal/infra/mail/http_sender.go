package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"csi-membership/internal/config"
	"csi-membership/internal/domain/ports/adapter"
)

// Ensure the sender satisfies the port.
var _ adapter.MailSender = (*HTTPSender)(nil)

// HTTPSender dispatches mail through a JSON-over-HTTP transactional mail API
// (Resend-style: bearer token, {from,to,subject,text} body).
type HTTPSender struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewHTTPSender(cfg config.MailConfig) *HTTPSender {
	return &HTTPSender{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		client: &http.Client{},
	}
}

func (s *HTTPSender) Send(ctx context.Context, to, subject, body string) error {
	requestData := map[string]interface{}{
		"from":    s.from,
		"to":      []string{to},
		"subject": subject,
		"text":    body,
	}
	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("mail api error: status %d, body: %s", resp.StatusCode, string(b))
	}
	return nil
}
