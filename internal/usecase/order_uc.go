// File: internal/usecase/order_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"csi-membership/internal/domain"
	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/adapter"
	"csi-membership/internal/infra/metrics"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

type OrderUseCase interface {
	// Create validates planID against the catalog and registers a gateway
	// order carrying userID/planID/planName as opaque notes.
	Create(ctx context.Context, userID, planID string) (*model.Order, error)
	// KeyID is the gateway public key the checkout widget needs.
	KeyID() string
}

type orderUC struct {
	catalog  *model.PlanCatalog
	gateway  adapter.PaymentGateway
	currency string
	log      *zerolog.Logger
}

func NewOrderUseCase(catalog *model.PlanCatalog, gateway adapter.PaymentGateway, currency string, logger *zerolog.Logger) *orderUC {
	return &orderUC{catalog: catalog, gateway: gateway, currency: currency, log: logger}
}

func (u *orderUC) Create(ctx context.Context, userID, planID string) (*model.Order, error) {
	if userID == "" || planID == "" {
		return nil, domain.ErrInvalidArgument
	}
	plan, ok := u.catalog.Find(planID)
	if !ok {
		return nil, fmt.Errorf("plan %q: %w", planID, domain.ErrInvalidArgument)
	}

	notes := map[string]string{
		model.NoteUserID:   userID,
		model.NotePlanID:   plan.ID,
		model.NotePlanName: plan.Name,
	}
	order, err := u.gateway.CreateOrder(ctx, plan.AmountMinor(), u.currency, newReceipt(), notes)
	if err != nil {
		metrics.IncOrder("failed")
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	metrics.IncOrder("created")
	u.log.Info().
		Str("order_id", order.ID).
		Str("plan_id", plan.ID).
		Int64("amount", order.Amount).
		Msg("order created")
	return order, nil
}

func (u *orderUC) KeyID() string { return u.gateway.KeyID() }

// newReceipt labels one checkout attempt. ULIDs sort by creation time, which
// keeps gateway dashboards readable.
func newReceipt() string {
	return "rcpt_" + ulid.Make().String()
}
