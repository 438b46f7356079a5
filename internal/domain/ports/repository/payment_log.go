package repository

import (
	"context"

	"csi-membership/internal/domain/model"
)

// PaymentLogRepository appends to the payments audit collection. Entries are
// never updated or deleted by this service.
type PaymentLogRepository interface {
	Append(ctx context.Context, entry *model.PaymentLogEntry) error
}
