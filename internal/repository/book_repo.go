package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"go-bookstore/internal/model"
)

const bookColumns = `id, title, author, year, pages, seller_id, created_at`

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	now := time.Now().UTC()
	err := r.db.QueryRow(ctx,
		`INSERT INTO books (title, author, year, pages, seller_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		b.Title, b.Author, b.Year, b.Pages, b.SellerID, now).
		Scan(&b.ID)
	if err != nil {
		return model.Book{}, fmt.Errorf("create book: %w", err)
	}

	b.CreatedAt = now
	return b, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id int64) (model.Book, error) {
	b, err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Book{}, model.ErrBookNotFound
	}
	if err != nil {
		return model.Book{}, fmt.Errorf("find book by id: %w", err)
	}
	return b, nil
}

func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
}

func (r *BookRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books WHERE seller_id = $1 ORDER BY id`, sellerID)
}

func (r *BookRepository) Update(ctx context.Context, b model.Book) (model.Book, error) {
	updated, err := scanBook(r.db.QueryRow(ctx,
		`UPDATE books SET title = $2, author = $3, year = $4, pages = $5
		 WHERE id = $1 RETURNING `+bookColumns,
		b.ID, b.Title, b.Author, b.Year, b.Pages))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Book{}, model.ErrBookNotFound
	}
	if err != nil {
		return model.Book{}, fmt.Errorf("update book: %w", err)
	}
	return updated, nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) list(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func scanBook(row pgx.Row) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Pages, &b.SellerID, &b.CreatedAt)
	return b, err
}
