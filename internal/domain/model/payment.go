package model

import "time"

// Gateway event types this service reacts to. Every other type is
// acknowledged without action.
const EventPaymentCaptured = "payment.captured"

// Keys of the opaque notes map attached to orders and echoed back in events.
const (
	NoteUserID   = "userId"
	NotePlanID   = "planId"
	NotePlanName = "planName"
)

// PaymentEntity is the payment object inside a gateway event envelope.
type PaymentEntity struct {
	ID       string            `json:"id"`
	OrderID  string            `json:"order_id"`
	Amount   int64             `json:"amount"` // minor currency units
	Currency string            `json:"currency"`
	Status   string            `json:"status"`
	Notes    map[string]string `json:"notes"`
}

// PaymentEvent is the gateway-delivered webhook notification. It is validated
// once and never stored verbatim; only derived fields are persisted.
type PaymentEvent struct {
	Type    string
	Payment PaymentEntity
}

// PaymentLogEntry is the append-only audit record written for every processed
// successful payment. Redelivered webhooks append separate rows; entries are
// not deduplicated by payment id.
type PaymentLogEntry struct {
	UserID    string    `firestore:"userId" json:"userId"`
	PaymentID string    `firestore:"paymentId" json:"paymentId"`
	OrderID   string    `firestore:"orderId" json:"orderId"`
	Amount    int64     `firestore:"amount" json:"amount"` // major currency units
	Currency  string    `firestore:"currency" json:"currency"`
	Status    string    `firestore:"status" json:"status"`
	PlanID    string    `firestore:"planId" json:"planId"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
