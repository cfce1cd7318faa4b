package repository

import (
	"context"
	"fmt"
	"strings"

	"go-bookstore/internal/model"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Log(ctx context.Context, e model.AuthEvent) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth_events (action, identifier, status, reason, client_ip, request_id, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Action, strings.ToLower(strings.TrimSpace(e.Identifier)), e.Status, e.Reason,
		e.ClientIP, e.RequestID, e.OccurredAt)
	if err != nil {
		return fmt.Errorf("log auth event: %w", err)
	}
	return nil
}

// ListByIdentifier returns the newest events for one identifier first.
func (r *AuditRepository) ListByIdentifier(ctx context.Context, identifier string, limit int) ([]model.AuthEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, action, identifier, status, reason, client_ip, request_id, occurred_at
		 FROM auth_events
		 WHERE lower(identifier) = lower($1)
		 ORDER BY occurred_at DESC, id DESC
		 LIMIT $2`, strings.TrimSpace(identifier), limit)
	if err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	events := make([]model.AuthEvent, 0)
	for rows.Next() {
		var e model.AuthEvent
		if err := rows.Scan(&e.ID, &e.Action, &e.Identifier, &e.Status, &e.Reason,
			&e.ClientIP, &e.RequestID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
