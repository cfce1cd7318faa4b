package service

import (
	"context"
	"errors"
	"fmt"

	"go-bookstore/internal/model"
	"go-bookstore/internal/util"
	"go-bookstore/pkg/apierror"
	"go-bookstore/pkg/password"
)

type SellerStore interface {
	Create(ctx context.Context, s model.Seller) (model.Seller, error)
	List(ctx context.Context) ([]model.Seller, error)
	FindByID(ctx context.Context, id int64) (model.Seller, error)
	Update(ctx context.Context, s model.Seller) (model.Seller, error)
	Delete(ctx context.Context, id int64) error
}

type SellerService struct {
	sellers SellerStore
	books   BookStore
	hasher  passwordHasher
}

func NewSellerService(sellers SellerStore, books BookStore, hasher passwordHasher) *SellerService {
	return &SellerService{sellers: sellers, books: books, hasher: hasher}
}

// Register stores a new seller; only the password hash is persisted.
func (s *SellerService) Register(ctx context.Context, req model.CreateSellerRequest) (model.Seller, error) {
	req.FirstName = util.CleanText(req.FirstName)
	req.LastName = util.CleanText(req.LastName)
	req.Email = normalizeIdentifier(req.Email)

	if err := validateStruct(req); err != nil {
		return model.Seller{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, password.ErrSecretTooLong) {
		return model.Seller{}, apierror.Validation("password: must be at most 72 bytes")
	}
	if err != nil {
		return model.Seller{}, fmt.Errorf("hash password: %w", err)
	}

	return s.sellers.Create(ctx, model.Seller{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
}

func (s *SellerService) List(ctx context.Context) ([]model.Seller, error) {
	return s.sellers.List(ctx)
}

func (s *SellerService) Get(ctx context.Context, id int64) (model.SellerWithBooks, error) {
	seller, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return model.SellerWithBooks{}, err
	}

	books, err := s.books.ListBySeller(ctx, id)
	if err != nil {
		return model.SellerWithBooks{}, err
	}

	return model.SellerWithBooks{Seller: seller, Books: books}, nil
}

func (s *SellerService) Current(ctx context.Context, p model.Principal) (model.Seller, error) {
	seller, err := s.sellers.FindByID(ctx, p.SellerID)
	if errors.Is(err, model.ErrSellerNotFound) {
		// The account was removed after the token was issued.
		return model.Seller{}, errInvalidToken()
	}
	return seller, err
}

// Update changes the seller's names and e-mail. Sellers may only edit
// their own record.
func (s *SellerService) Update(ctx context.Context, p model.Principal, id int64, req model.UpdateSellerRequest) (model.Seller, error) {
	existing, err := s.ownedSeller(ctx, p, id)
	if err != nil {
		return model.Seller{}, err
	}

	req.FirstName = util.CleanText(req.FirstName)
	req.LastName = util.CleanText(req.LastName)
	req.Email = normalizeIdentifier(req.Email)

	if err := validateStruct(req); err != nil {
		return model.Seller{}, err
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email

	return s.sellers.Update(ctx, existing)
}

// Delete removes the seller together with their books.
func (s *SellerService) Delete(ctx context.Context, p model.Principal, id int64) error {
	if _, err := s.ownedSeller(ctx, p, id); err != nil {
		return err
	}
	return s.sellers.Delete(ctx, id)
}

func (s *SellerService) ownedSeller(ctx context.Context, p model.Principal, id int64) (model.Seller, error) {
	seller, err := s.sellers.FindByID(ctx, id)
	if err != nil {
		return model.Seller{}, err
	}
	if seller.ID != p.SellerID {
		return model.Seller{}, apierror.Forbidden("sellers can only modify their own account")
	}
	return seller, nil
}
