package model

import "time"

const (
	AuthActionLogin       = "login"
	AuthActionTokenReject = "token"

	AuthStatusSucceeded = "succeeded"
	AuthStatusRejected  = "rejected"
)

// AuthEvent is one entry of the authentication audit trail.
type AuthEvent struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	Identifier string    `json:"identifier,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuthEventList struct {
	Events []AuthEvent `json:"events"`
}
