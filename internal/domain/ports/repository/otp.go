package repository

import (
	"context"

	"csi-membership/internal/domain/model"
)

// OTPRepository holds issued admin passcodes until they expire or are
// consumed. Save replaces any existing code for the same email and applies a
// TTL matching the code's expiry.
type OTPRepository interface {
	Save(ctx context.Context, otp *model.AdminOTP) error
	// Find returns domain.ErrNotFound when no live code exists for email.
	Find(ctx context.Context, email string) (*model.AdminOTP, error)
	Delete(ctx context.Context, email string) error
}
