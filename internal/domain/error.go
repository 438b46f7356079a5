package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrOTPMismatch     = errors.New("otp code mismatch")
	ErrOTPExpired      = errors.New("otp code expired")
	ErrTooManyAttempts = errors.New("too many otp attempts")
	ErrBadSignature    = errors.New("webhook signature mismatch")
)
