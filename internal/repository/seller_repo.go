package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"go-bookstore/internal/model"
)

const sellerColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at`

type SellerRepository struct {
	db DBTX
}

func NewSellerRepository(db DBTX) *SellerRepository {
	return &SellerRepository{db: db}
}

// FindByIdentifier returns the password record for a login identifier
// (the seller e-mail, compared case-insensitively).
func (r *SellerRepository) FindByIdentifier(ctx context.Context, identifier string) (model.PasswordRecord, error) {
	var rec model.PasswordRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash FROM sellers WHERE lower(email) = lower($1)`,
		strings.TrimSpace(identifier)).
		Scan(&rec.SellerID, &rec.Identifier, &rec.Hash)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.PasswordRecord{}, model.ErrSellerNotFound
	}
	if err != nil {
		return model.PasswordRecord{}, fmt.Errorf("find seller by identifier: %w", err)
	}
	return rec, nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id int64) (model.Seller, error) {
	s, err := scanSeller(r.db.QueryRow(ctx,
		`SELECT `+sellerColumns+` FROM sellers WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Seller{}, model.ErrSellerNotFound
	}
	if err != nil {
		return model.Seller{}, fmt.Errorf("find seller by id: %w", err)
	}
	return s, nil
}

func (r *SellerRepository) Create(ctx context.Context, s model.Seller) (model.Seller, error) {
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx,
		`INSERT INTO sellers (first_name, last_name, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		s.FirstName, s.LastName, s.Email, s.PasswordHash, now, now).
		Scan(&s.ID)

	if isUniqueViolation(err) {
		return model.Seller{}, model.ErrEmailTaken
	}
	if err != nil {
		return model.Seller{}, fmt.Errorf("create seller: %w", err)
	}

	s.CreatedAt = now
	s.UpdatedAt = now
	return s, nil
}

func (r *SellerRepository) List(ctx context.Context) ([]model.Seller, error) {
	rows, err := r.db.Query(ctx, `SELECT `+sellerColumns+` FROM sellers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	sellers := make([]model.Seller, 0)
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

// Update changes profile fields only; the password hash is never touched.
func (r *SellerRepository) Update(ctx context.Context, s model.Seller) (model.Seller, error) {
	updated, err := scanSeller(r.db.QueryRow(ctx,
		`UPDATE sellers SET first_name = $2, last_name = $3, email = $4, updated_at = $5
		 WHERE id = $1 RETURNING `+sellerColumns,
		s.ID, s.FirstName, s.LastName, s.Email, time.Now().UTC()))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Seller{}, model.ErrSellerNotFound
	}
	if isUniqueViolation(err) {
		return model.Seller{}, model.ErrEmailTaken
	}
	if err != nil {
		return model.Seller{}, fmt.Errorf("update seller: %w", err)
	}
	return updated, nil
}

// Delete removes the seller; the books FK cascades.
func (r *SellerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSellerNotFound
	}
	return nil
}

func scanSeller(row pgx.Row) (model.Seller, error) {
	var s model.Seller
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
