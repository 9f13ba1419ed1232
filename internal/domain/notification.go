package domain

import (
	"time"
)

// Notification statuses. Sent and failed are terminal.
const (
	NotificationPending = "pending"
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
)

// Notification is one queued message owned by the dispatcher; it is outside
// the ledger consistency domain.
type Notification struct {
	ID            int64      `json:"notification_id"`
	Email         string     `json:"email"`
	Subject       string     `json:"subject"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	Attempts      int32      `json:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
