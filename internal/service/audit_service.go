package service

import (
	"context"
	"log/slog"
	"time"

	"go-bookstore/internal/event"
	"go-bookstore/internal/model"
)

const (
	activityLimit  = 50
	persistTimeout = 5 * time.Second
)

type AuditStore interface {
	Log(ctx context.Context, e model.AuthEvent) error
	ListByIdentifier(ctx context.Context, identifier string, limit int) ([]model.AuthEvent, error)
}

// AuditService persists authentication events published on the bus.
type AuditService struct {
	store       AuditStore
	events      <-chan event.Event
	unsubscribe func()
}

// NewAuditService subscribes to bus before returning, so events published
// between construction and Run are queued rather than lost.
func NewAuditService(store AuditStore, bus event.Bus) *AuditService {
	events, unsubscribe := bus.Subscribe()
	return &AuditService{store: store, events: events, unsubscribe: unsubscribe}
}

// Run consumes auth events until ctx is cancelled. Events already queued
// when ctx ends are still written. Run must be called at most once.
func (s *AuditService) Run(ctx context.Context) {
	defer s.unsubscribe()

	for {
		select {
		case <-ctx.Done():
			s.drain(s.events)
			return
		case e, ok := <-s.events:
			if !ok {
				return
			}
			s.persist(context.WithoutCancel(ctx), e)
		}
	}
}

func (s *AuditService) drain(events <-chan event.Event) {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			s.persist(context.Background(), e)
		default:
			return
		}
	}
}

func (s *AuditService) persist(ctx context.Context, e event.Event) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if e.Auth.OccurredAt.IsZero() {
		e.Auth.OccurredAt = e.Timestamp
	}

	if err := s.store.Log(ctx, e.Auth); err != nil {
		slog.Error("failed to persist auth event", "type", e.Type, "request_id", e.Auth.RequestID, "error", err)
	}
}

// ListForPrincipal returns the caller's most recent authentication events.
func (s *AuditService) ListForPrincipal(ctx context.Context, p model.Principal) ([]model.AuthEvent, error) {
	return s.store.ListByIdentifier(ctx, p.Identifier, activityLimit)
}
