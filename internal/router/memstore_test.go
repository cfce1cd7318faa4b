package router

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go-bookstore/internal/model"
)

// memDB backs the end-to-end tests in place of Postgres.
type memDB struct {
	mu         sync.Mutex
	sellers    map[int64]model.Seller
	books      map[int64]model.Book
	events     []model.AuthEvent
	nextSeller int64
	nextBook   int64
}

func newMemDB() *memDB {
	return &memDB{sellers: map[int64]model.Seller{}, books: map[int64]model.Book{}}
}

type memSellers struct{ db *memDB }

func (m memSellers) FindByIdentifier(_ context.Context, identifier string) (model.PasswordRecord, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, s := range m.db.sellers {
		if strings.EqualFold(s.Email, strings.TrimSpace(identifier)) {
			return model.PasswordRecord{SellerID: s.ID, Identifier: s.Email, Hash: s.PasswordHash}, nil
		}
	}
	return model.PasswordRecord{}, model.ErrSellerNotFound
}

func (m memSellers) Create(_ context.Context, s model.Seller) (model.Seller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, existing := range m.db.sellers {
		if strings.EqualFold(existing.Email, s.Email) {
			return model.Seller{}, model.ErrEmailTaken
		}
	}
	m.db.nextSeller++
	s.ID = m.db.nextSeller
	m.db.sellers[s.ID] = s
	return s, nil
}

func (m memSellers) List(context.Context) ([]model.Seller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]model.Seller, 0, len(m.db.sellers))
	for _, s := range m.db.sellers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memSellers) FindByID(_ context.Context, id int64) (model.Seller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	s, ok := m.db.sellers[id]
	if !ok {
		return model.Seller{}, model.ErrSellerNotFound
	}
	return s, nil
}

func (m memSellers) Update(_ context.Context, s model.Seller) (model.Seller, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	existing, ok := m.db.sellers[s.ID]
	if !ok {
		return model.Seller{}, model.ErrSellerNotFound
	}
	existing.FirstName, existing.LastName, existing.Email = s.FirstName, s.LastName, s.Email
	m.db.sellers[s.ID] = existing
	return existing, nil
}

func (m memSellers) Delete(_ context.Context, id int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.sellers[id]; !ok {
		return model.ErrSellerNotFound
	}
	delete(m.db.sellers, id)
	for bookID, b := range m.db.books {
		if b.SellerID == id {
			delete(m.db.books, bookID)
		}
	}
	return nil
}

type memBooks struct{ db *memDB }

func (m memBooks) Create(_ context.Context, b model.Book) (model.Book, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	m.db.nextBook++
	b.ID = m.db.nextBook
	m.db.books[b.ID] = b
	return b, nil
}

func (m memBooks) List(context.Context) ([]model.Book, error) {
	return m.filter(func(model.Book) bool { return true }), nil
}

func (m memBooks) ListBySeller(_ context.Context, sellerID int64) ([]model.Book, error) {
	return m.filter(func(b model.Book) bool { return b.SellerID == sellerID }), nil
}

func (m memBooks) filter(keep func(model.Book) bool) []model.Book {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]model.Book, 0)
	for _, b := range m.db.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m memBooks) FindByID(_ context.Context, id int64) (model.Book, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	b, ok := m.db.books[id]
	if !ok {
		return model.Book{}, model.ErrBookNotFound
	}
	return b, nil
}

func (m memBooks) Update(_ context.Context, b model.Book) (model.Book, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.books[b.ID]; !ok {
		return model.Book{}, model.ErrBookNotFound
	}
	m.db.books[b.ID] = b
	return b, nil
}

func (m memBooks) Delete(_ context.Context, id int64) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(m.db.books, id)
	return nil
}

type memAudit struct{ db *memDB }

func (m memAudit) Log(_ context.Context, e model.AuthEvent) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	e.ID = int64(len(m.db.events) + 1)
	m.db.events = append(m.db.events, e)
	return nil
}

func (m memAudit) ListByIdentifier(_ context.Context, identifier string, limit int) ([]model.AuthEvent, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	out := make([]model.AuthEvent, 0)
	for i := len(m.db.events) - 1; i >= 0 && len(out) < limit; i-- {
		if strings.EqualFold(m.db.events[i].Identifier, identifier) {
			out = append(out, m.db.events[i])
		}
	}
	return out, nil
}
