//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"csi-membership/internal/config"
	"csi-membership/internal/domain"
	"csi-membership/internal/domain/model"
	"csi-membership/internal/infra/redis"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           0,
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"https://app.example.org"},
		},
		Payment: config.PaymentConfig{
			Razorpay: config.RazorpayConfig{
				KeyID:         "rzp_test_key",
				KeySecret:     "secret",
				WebhookSecret: "whsec_test",
				Currency:      "INR",
			},
		},
		RateLimit: config.RateLimitConfig{
			General: config.RateLimitTier{Limit: 100, Window: 15 * time.Minute},
			Strict:  config.RateLimitTier{Limit: 5, Window: 15 * time.Minute},
		},
	}
}

// --- mock order use case ---

type mockOrderUC struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockOrderUC) Create(ctx context.Context, userID, planID string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if planID != "1year" {
		return nil, domain.ErrInvalidArgument
	}
	return &model.Order{ID: "order_1", Amount: 35800, Currency: "INR", Receipt: "rcpt_1"}, nil
}

func (m *mockOrderUC) KeyID() string { return "rzp_test_key" }

// --- mock webhook use case ---

type mockWebhookUC struct {
	mu     sync.Mutex
	events []*model.PaymentEvent
	err    error
}

func (m *mockWebhookUC) Process(ctx context.Context, event *model.PaymentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockWebhookUC) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// --- mock admin auth use case ---

type mockAdminUC struct {
	mu        sync.Mutex
	whitelist map[string]bool
	code      string
	sendErr   error
	verifyErr error
	sends     int
}

func newMockAdminUC() *mockAdminUC {
	return &mockAdminUC{
		whitelist: map[string]bool{"admin@example.org": true},
		code:      "123456",
	}
}

func (m *mockAdminUC) SendOTP(ctx context.Context, email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.whitelist[email] {
		return domain.ErrUnauthorized
	}
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sends++
	return nil
}

func (m *mockAdminUC) VerifyOTP(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.whitelist[email] {
		return domain.ErrUnauthorized
	}
	if m.verifyErr != nil {
		return m.verifyErr
	}
	if code != m.code {
		return domain.ErrOTPMismatch
	}
	return nil
}

func (m *mockAdminUC) ResendOTP(ctx context.Context, email string) error {
	return m.SendOTP(ctx, email, "")
}

func (m *mockAdminUC) IsWhitelisted(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.whitelist[email]
}

// --- in-memory rate limiter ---

type memLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

var _ RateLimiter = (*memLimiter)(nil)

func newMemLimiter() *memLimiter {
	return &memLimiter{counts: map[string]int{}}
}

func (m *memLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	m.counts[key]++
	return m.counts[key] <= limit, nil
}

// --- server under test ---

type testDeps struct {
	orders  *mockOrderUC
	webhook *mockWebhookUC
	admin   *mockAdminUC
	limiter *memLimiter
	auth    *AuthManager
	cfg     *config.Config
}

func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		orders:  &mockOrderUC{},
		webhook: &mockWebhookUC{},
		admin:   newMockAdminUC(),
		limiter: newMemLimiter(),
		auth:    NewAuthManager("test-admin-jwt-secret-please-change", false, "", 30*time.Minute),
		cfg:     testConfig(),
	}
	srv := NewServer(deps.orders, deps.webhook, deps.admin, deps.auth, deps.limiter, redis.ClientKey, deps.cfg, newTestLogger())
	return srv, deps
}
