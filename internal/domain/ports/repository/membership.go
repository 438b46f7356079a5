package repository

import "context"

// MembershipRepository is the document-store contract for user membership
// records. UpsertMerge must only overwrite the named fields and preserve the
// rest of the document, creating it when absent. Any backend honoring that
// merge contract is substitutable.
type MembershipRepository interface {
	UpsertMerge(ctx context.Context, userID string, fields map[string]any) error
}
