package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.PaymentLogRepository = (*PaymentLogRepo)(nil)

type PaymentLogRepo struct {
	client *firestore.Client
}

func NewPaymentLogRepo(client *firestore.Client) *PaymentLogRepo {
	return &PaymentLogRepo{client: client}
}

// Append creates payments/{autoId}. Each delivery appends its own row; rows
// are never deduplicated by payment id.
func (r *PaymentLogRepo) Append(ctx context.Context, entry *model.PaymentLogEntry) error {
	_, _, err := r.client.Collection(paymentsCollection).Add(ctx, entry)
	if err != nil {
		return fmt.Errorf("append payment log: %w", err)
	}
	return nil
}
