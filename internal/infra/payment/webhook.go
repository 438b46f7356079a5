package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"csi-membership/internal/domain/model"
)

// SignatureHeader is the header the gateway signs webhook deliveries with.
const SignatureHeader = "X-Razorpay-Signature"

// VerifyWebhookSignature recomputes HMAC-SHA256 over the exact body bytes and
// compares against the hex signature from the header. hmac.Equal keeps the
// comparison constant time.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hmac.Equal(h.Sum(nil), provided)
}

// webhookEnvelope is the wire shape of a gateway event delivery.
type webhookEnvelope struct {
	Entity  string `json:"entity"`
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity model.PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// DecodeEvent parses a verified webhook body into the domain event.
func DecodeEvent(body []byte) (*model.PaymentEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode webhook body: %w", err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("webhook body missing event type")
	}
	return &model.PaymentEvent{
		Type:    env.Event,
		Payment: env.Payload.Payment.Entity,
	}, nil
}
