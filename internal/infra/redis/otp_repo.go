package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"csi-membership/internal/domain"
	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo keeps issued admin passcodes in Redis. The key TTL tracks the
// code's expiry so stale codes vanish on their own.
type OTPRepo struct {
	client RedisClient
}

func NewOTPRepo(client RedisClient) *OTPRepo {
	return &OTPRepo{client: client}
}

func (r *OTPRepo) otpKey(email string) string {
	return fmt.Sprintf("admin_otp:%s", email)
}

func (r *OTPRepo) Save(ctx context.Context, otp *model.AdminOTP) error {
	data, err := json.Marshal(otp)
	if err != nil {
		return err
	}
	ttl := time.Until(otp.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return r.client.Set(ctx, r.otpKey(otp.Email), data, ttl)
}

func (r *OTPRepo) Find(ctx context.Context, email string) (*model.AdminOTP, error) {
	data, err := r.client.Get(ctx, r.otpKey(email))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var otp model.AdminOTP
	if err := json.Unmarshal([]byte(data), &otp); err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *OTPRepo) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.otpKey(email))
}
