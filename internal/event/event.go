package event

import (
	"time"

	"go-bookstore/internal/model"
)

type Type string

const (
	TypeLoginSucceeded Type = "auth.login.succeeded"
	TypeLoginRejected  Type = "auth.login.rejected"
	TypeTokenRejected  Type = "auth.token.rejected"
)

type Event struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Auth      model.AuthEvent `json:"auth"`
	Timestamp time.Time       `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // channel and unsubscribe function
}
