package model

import "time"

// AdminOTP is the ephemeral one-time passcode issued to a whitelisted admin
// address. Stored keyed by email, consumed on successful verification.
type AdminOTP struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

func (o *AdminOTP) Expired(now time.Time) bool { return now.After(o.ExpiresAt) }
