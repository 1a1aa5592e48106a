// Package queue defines message payloads exchanged over the message broker
// plus the publisher and background consumer for them.
package queue

// AccountRegisteredEvent is published after a business account is created.
// It carries enough for downstream consumers (notifications, analytics,
// KYC intake) to act without querying the primary database.
type AccountRegisteredEvent struct {
	AccountID    uint64 `json:"account_id"`
	BusinessName string `json:"business_name"`
	Email        string `json:"business_email"`
	RegisteredAt string `json:"registered_at"`
}
