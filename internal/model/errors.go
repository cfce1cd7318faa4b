package model

import "errors"

var (
	// Seller related errors
	ErrSellerNotFound = errors.New("seller not found")
	ErrEmailTaken     = errors.New("e-mail already registered")

	// Book related errors
	ErrBookNotFound = errors.New("book not found")

	// Raised when a guarded handler runs without a principal
	ErrUnauthorized = errors.New("unauthorized")
)
