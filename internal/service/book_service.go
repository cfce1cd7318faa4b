package service

import (
	"context"

	"go-bookstore/internal/model"
	"go-bookstore/internal/util"
	"go-bookstore/pkg/apierror"
)

type BookStore interface {
	Create(ctx context.Context, b model.Book) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (model.Book, error)
	Update(ctx context.Context, b model.Book) (model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

func (s *BookService) Create(ctx context.Context, p model.Principal, req model.BookRequest) (model.Book, error) {
	if req.SellerID == 0 {
		req.SellerID = p.SellerID
	}

	book, err := bookFromRequest(req)
	if err != nil {
		return model.Book{}, err
	}
	if book.SellerID != p.SellerID {
		return model.Book{}, apierror.Forbidden("books can only be listed under your own seller account")
	}

	return s.books.Create(ctx, book)
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

func (s *BookService) Get(ctx context.Context, id int64) (model.Book, error) {
	return s.books.FindByID(ctx, id)
}

// Update replaces the listing's fields. The owner cannot change.
func (s *BookService) Update(ctx context.Context, p model.Principal, id int64, req model.BookRequest) (model.Book, error) {
	existing, err := s.ownedBook(ctx, p, id)
	if err != nil {
		return model.Book{}, err
	}

	if req.SellerID == 0 {
		req.SellerID = existing.SellerID
	}

	book, err := bookFromRequest(req)
	if err != nil {
		return model.Book{}, err
	}
	if book.SellerID != existing.SellerID {
		return model.Book{}, apierror.Forbidden("books cannot be moved to another seller")
	}

	book.ID = existing.ID
	return s.books.Update(ctx, book)
}

func (s *BookService) Delete(ctx context.Context, p model.Principal, id int64) error {
	if _, err := s.ownedBook(ctx, p, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, id)
}

func (s *BookService) ownedBook(ctx context.Context, p model.Principal, id int64) (model.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return model.Book{}, err
	}
	if book.SellerID != p.SellerID {
		return model.Book{}, apierror.Forbidden("only the seller who listed a book can change it")
	}
	return book, nil
}

func bookFromRequest(req model.BookRequest) (model.Book, error) {
	req.Title = util.CleanText(req.Title)
	req.Author = util.CleanText(req.Author)

	if err := validateStruct(req); err != nil {
		return model.Book{}, err
	}

	pages := req.PageCount()
	if pages <= 0 {
		return model.Book{}, apierror.Validation("pages: must be greater than 0")
	}

	return model.Book{
		Title:    req.Title,
		Author:   req.Author,
		Year:     req.Year,
		Pages:    pages,
		SellerID: req.SellerID,
	}, nil
}
