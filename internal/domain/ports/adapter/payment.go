package adapter

import (
	"context"

	"csi-membership/internal/domain/model"
)

// PaymentGateway creates checkout orders with the external payment provider.
type PaymentGateway interface {
	// CreateOrder registers an order for amount (minor currency units) and
	// returns the provider's order record. Notes travel opaquely to the
	// provider and come back in webhook events.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.Order, error)
	// KeyID is the public key identifier the browser checkout widget needs.
	KeyID() string
}
