// File: internal/usecase/admin_auth_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"csi-membership/internal/domain"
	"csi-membership/internal/domain/model"
	"csi-membership/internal/domain/ports/adapter"
	"csi-membership/internal/domain/ports/repository"
	"csi-membership/internal/infra/metrics"
)

// Compile-time check
var _ AdminAuthUseCase = (*adminAuthUC)(nil)

type AdminAuthUseCase interface {
	// SendOTP issues a fresh 6-digit code to a whitelisted address.
	// Non-whitelisted addresses get domain.ErrUnauthorized without revealing
	// anything else.
	SendOTP(ctx context.Context, email, name string) error
	// VerifyOTP consumes the stored code on success. Mismatch, expiry and
	// attempt exhaustion map to distinct domain errors.
	VerifyOTP(ctx context.Context, email, code string) error
	// ResendOTP regenerates and redispatches a code.
	ResendOTP(ctx context.Context, email string) error
	// IsWhitelisted reports whether email is an authorized admin address.
	IsWhitelisted(email string) bool
}

var otpFormat = regexp.MustCompile(`^[0-9]{6}$`)

type adminAuthUC struct {
	otps        repository.OTPRepository
	mail        adapter.MailSender
	whitelist   map[string]struct{}
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
	log         *zerolog.Logger
}

func NewAdminAuthUseCase(otps repository.OTPRepository, mail adapter.MailSender, whitelist []string, ttl time.Duration, maxAttempts int, logger *zerolog.Logger) *adminAuthUC {
	wl := make(map[string]struct{}, len(whitelist))
	for _, e := range whitelist {
		wl[normalizeEmail(e)] = struct{}{}
	}
	return &adminAuthUC{
		otps:        otps,
		mail:        mail,
		whitelist:   wl,
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
		log:         logger,
	}
}

func (u *adminAuthUC) IsWhitelisted(email string) bool {
	_, ok := u.whitelist[normalizeEmail(email)]
	return ok
}

func (u *adminAuthUC) SendOTP(ctx context.Context, email, name string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrInvalidArgument
	}
	if !u.IsWhitelisted(email) {
		metrics.IncOTP("send", "unauthorized")
		u.log.Warn().Str("email", email).Msg("otp requested for non-whitelisted address")
		return domain.ErrUnauthorized
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	otp := &model.AdminOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: u.now().Add(u.ttl),
	}
	if err := u.otps.Save(ctx, otp); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	greeting := name
	if greeting == "" {
		greeting = "Admin"
	}
	subject := "Your admin login code"
	body := fmt.Sprintf("Hi %s,\n\nYour one-time login code is %s. It expires in %d minutes.\n\nIf you did not request this, ignore this email.",
		greeting, code, int(u.ttl.Minutes()))
	if err := u.mail.Send(ctx, email, subject, body); err != nil {
		metrics.IncOTP("send", "mail_failed")
		return fmt.Errorf("dispatch otp mail: %w", err)
	}

	metrics.IncOTP("send", "ok")
	u.log.Info().Str("email", email).Msg("admin otp dispatched")
	return nil
}

func (u *adminAuthUC) VerifyOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if !otpFormat.MatchString(code) {
		return domain.ErrInvalidArgument
	}
	if !u.IsWhitelisted(email) {
		metrics.IncOTP("verify", "unauthorized")
		return domain.ErrUnauthorized
	}

	otp, err := u.otps.Find(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.IncOTP("verify", "expired")
			return domain.ErrOTPExpired
		}
		return fmt.Errorf("load otp: %w", err)
	}
	if otp.Expired(u.now()) {
		_ = u.otps.Delete(ctx, email)
		metrics.IncOTP("verify", "expired")
		return domain.ErrOTPExpired
	}
	if otp.Attempts >= u.maxAttempts {
		_ = u.otps.Delete(ctx, email)
		metrics.IncOTP("verify", "locked")
		return domain.ErrTooManyAttempts
	}
	if otp.Code != code {
		otp.Attempts++
		if err := u.otps.Save(ctx, otp); err != nil {
			u.log.Error().Err(err).Str("email", email).Msg("failed to record otp attempt")
		}
		metrics.IncOTP("verify", "mismatch")
		return domain.ErrOTPMismatch
	}

	// Consume on success: a second attempt with the same code must fail.
	if err := u.otps.Delete(ctx, email); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	metrics.IncOTP("verify", "ok")
	u.log.Info().Str("email", email).Msg("admin otp verified")
	return nil
}

func (u *adminAuthUC) ResendOTP(ctx context.Context, email string) error {
	return u.SendOTP(ctx, email, "")
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
