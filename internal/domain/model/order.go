package model

// Order is the payment-gateway-side record authorizing a checkout session for
// a fixed amount. Created once per checkout attempt, never mutated locally.
type Order struct {
	ID       string // assigned by the gateway
	Amount   int64  // minor currency units
	Currency string
	Receipt  string
	Notes    map[string]string // opaque; carries userId, planId, planName
}
