package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"csi-membership/internal/domain"
	"csi-membership/internal/infra/logging"
	"csi-membership/internal/infra/metrics"
	"csi-membership/internal/infra/payment"
)

// Webhook bodies are small JSON envelopes; anything bigger is not ours.
const maxWebhookBody = 1 << 20

type createOrderRequest struct {
	PlanID string `json:"planId"`
	UserID string `json:"userId"`
}

type createOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	ctx = logging.WithUserID(ctx, req.UserID)
	l = logging.With(ctx, s.log)

	order, err := s.orders.Create(ctx, req.UserID, req.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid plan"})
			return
		}
		l.Error().Err(err).Str("plan_id", req.PlanID).Msg("order creation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to create order"})
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.orders.KeyID(),
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "failed to read body"})
		return
	}

	signature := r.Header.Get(payment.SignatureHeader)
	if !payment.VerifyWebhookSignature(s.webhookSecret, body, signature) {
		metrics.IncWebhookEvent("unknown", "bad_signature")
		l.Warn().
			Err(domain.ErrBadSignature).
			Str("remote", clientAddr(r)).
			Bool("signature_present", signature != "").
			Msg("webhook signature verification failed")
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid signature"})
		return
	}
	l.Debug().Msg("webhook signature verified")

	event, err := payment.DecodeEvent(body)
	if err != nil {
		// The signature matched, so this came from the gateway; redelivery of
		// the same malformed body cannot succeed either.
		l.Error().Err(err).Msg("verified webhook body failed to decode")
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed event"})
		return
	}

	if err := s.webhook.Process(ctx, event); err != nil {
		// Persistence failed: answer 500 so the gateway redelivers.
		l.Error().Err(err).Str("event", event.Type).Msg("webhook processing failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "processing failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
