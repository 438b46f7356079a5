package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"csi-membership/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.MembershipRepository = (*MembershipRepo)(nil)

type MembershipRepo struct {
	client *firestore.Client
}

func NewMembershipRepo(client *firestore.Client) *MembershipRepo {
	return &MembershipRepo{client: client}
}

// UpsertMerge writes only the named fields of users/{userID}, creating the
// document when absent. MergeAll gives the field-level merge contract:
// concurrent duplicate deliveries re-merge identical values, last writer
// wins per document.
func (r *MembershipRepo) UpsertMerge(ctx context.Context, userID string, fields map[string]any) error {
	_, err := r.client.Collection(usersCollection).Doc(userID).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("merge users/%s: %w", userID, err)
	}
	return nil
}
