// File: internal/usecase/webhook_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/repository"
	"csi-membership/internal/infra/metrics"
)

// Compile-time check
var _ WebhookUseCase = (*webhookUC)(nil)

type WebhookUseCase interface {
	// Process applies a verified gateway event. A nil error means the event
	// was handled (or deliberately ignored) and the gateway must receive a
	// success acknowledgement; a non-nil error means persistence failed and
	// the gateway should redeliver.
	Process(ctx context.Context, event *model.PaymentEvent) error
}

type webhookUC struct {
	members repository.MembershipRepository
	logs    repository.PaymentLogRepository
	catalog *model.PlanCatalog
	now     func() time.Time
	log     *zerolog.Logger
}

func NewWebhookUseCase(members repository.MembershipRepository, logs repository.PaymentLogRepository, catalog *model.PlanCatalog, logger *zerolog.Logger) *webhookUC {
	return &webhookUC{
		members: members,
		logs:    logs,
		catalog: catalog,
		now:     time.Now,
		log:     logger,
	}
}

func (u *webhookUC) Process(ctx context.Context, event *model.PaymentEvent) error {
	if event.Type != model.EventPaymentCaptured {
		metrics.IncWebhookEvent(event.Type, "ignored")
		u.log.Debug().Str("event", event.Type).Msg("webhook event ignored")
		return nil
	}

	p := event.Payment
	userID := p.Notes[model.NoteUserID]
	planID := p.Notes[model.NotePlanID]
	if userID == "" || planID == "" {
		// Acknowledge without action: redelivery cannot supply the missing
		// notes, so failing here would only make the gateway retry forever.
		metrics.IncWebhookEvent(event.Type, "missing_notes")
		u.log.Warn().
			Str("payment_id", p.ID).
			Str("order_id", p.OrderID).
			Msg("captured payment without userId/planId notes, skipping")
		return nil
	}

	start := u.now()
	membership := &model.UserMembership{
		UserID:     userID,
		Status:     model.MembershipStatusActive,
		PlanID:     planID,
		StartDate:  start,
		ExpiryDate: start.AddDate(0, 0, u.catalog.ExpiryDays(planID)),
		Role:       model.RoleMember,
	}
	if err := u.members.UpsertMerge(ctx, userID, membership.MergeFields()); err != nil {
		metrics.IncWebhookEvent(event.Type, "persist_failed")
		return fmt.Errorf("upsert membership for %s: %w", userID, err)
	}

	entry := &model.PaymentLogEntry{
		UserID:    userID,
		PaymentID: p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount / 100, // minor -> major units
		Currency:  p.Currency,
		Status:    "success",
		PlanID:    planID,
		CreatedAt: start,
	}
	if err := u.logs.Append(ctx, entry); err != nil {
		metrics.IncWebhookEvent(event.Type, "persist_failed")
		return fmt.Errorf("append payment log for %s: %w", p.ID, err)
	}

	metrics.IncWebhookEvent(event.Type, "processed")
	metrics.AddPaymentRevenue(p.Currency, entry.Amount)
	u.log.Info().
		Str("user_id", userID).
		Str("plan_id", planID).
		Str("payment_id", p.ID).
		Time("expiry", membership.ExpiryDate).
		Msg("membership activated")
	return nil
}
