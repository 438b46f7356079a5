//go:build !integration

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"csi-membership/internal/domain"
	"csi-membership/internal/domain/model"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func testCatalog() *model.PlanCatalog {
	return model.NewPlanCatalog([]model.MembershipPlan{
		{ID: "1year", Name: "Annual Membership", Price: 358, Duration: "1 Year", ExpiryDays: 365},
		{ID: "2year", Name: "Two Year Membership", Price: 649, Duration: "2 Years", ExpiryDays: 730},
		{ID: "3year", Name: "Three Year Membership", Price: 899, Duration: "3 Years", ExpiryDays: 1095},
	})
}

// --- Mock payment gateway ---

type MockPaymentGateway struct {
	mu        sync.Mutex
	Calls     int
	LastNotes map[string]string
	Err       error
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastNotes = notes
	if m.Err != nil {
		return nil, m.Err
	}
	return &model.Order{
		ID:       "order_test123",
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	}, nil
}

func (m *MockPaymentGateway) KeyID() string { return "rzp_test_key" }

// --- Mock membership repo ---

type mergeWrite struct {
	UserID string
	Fields map[string]any
}

type MockMembershipRepo struct {
	mu     sync.Mutex
	Writes []mergeWrite
	Err    error
}

func (m *MockMembershipRepo) UpsertMerge(ctx context.Context, userID string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Writes = append(m.Writes, mergeWrite{UserID: userID, Fields: fields})
	return nil
}

// --- Mock payment log repo ---

type MockPaymentLogRepo struct {
	mu      sync.Mutex
	Entries []*model.PaymentLogEntry
	Err     error
}

func (m *MockPaymentLogRepo) Append(ctx context.Context, entry *model.PaymentLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// --- Mock OTP repo ---

type MockOTPRepo struct {
	mu      sync.Mutex
	byEmail map[string]*model.AdminOTP
	SaveErr error
}

func NewMockOTPRepo() *MockOTPRepo {
	return &MockOTPRepo{byEmail: map[string]*model.AdminOTP{}}
}

func (m *MockOTPRepo) Save(ctx context.Context, otp *model.AdminOTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	cp := *otp
	m.byEmail[otp.Email] = &cp
	return nil
}

func (m *MockOTPRepo) Find(ctx context.Context, email string) (*model.AdminOTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	otp, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *otp
	return &cp, nil
}

func (m *MockOTPRepo) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byEmail, email)
	return nil
}

// Stored peeks at the live code for assertions.
func (m *MockOTPRepo) Stored(email string) *model.AdminOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byEmail[email]
}

// Expire backdates the stored code so expiry paths can be exercised.
func (m *MockOTPRepo) Expire(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if otp, ok := m.byEmail[email]; ok {
		otp.ExpiresAt = time.Now().Add(-time.Minute)
	}
}

// --- Mock mail sender ---

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type MockMailSender struct {
	mu   sync.Mutex
	Sent []sentMail
	Err  error
}

func (m *MockMailSender) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
