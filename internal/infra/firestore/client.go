// Package firestore adapts the document-store ports to Google Cloud
// Firestore. Layout: users/{userId} holds merged membership fields,
// payments/{autoId} is the append-only payment log.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"csi-membership/internal/config"
)

const (
	usersCollection    = "users"
	paymentsCollection = "payments"
)

// NewClient connects to Firestore using the configured project and optional
// service-account credentials file (ambient credentials otherwise).
func NewClient(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
