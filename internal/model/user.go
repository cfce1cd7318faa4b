package model

import "time"

type Seller struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"e_mail"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

type SellerWithBooks struct {
	Seller
	Books []Book `json:"books"`
}

// PasswordRecord is what login needs from storage: the identifier and the
// stored hash. It never holds the plaintext secret.
type PasswordRecord struct {
	SellerID   int64
	Identifier string
	Hash       string
}

// Principal is the verified identity behind an authenticated request.
type Principal struct {
	SellerID   int64  `json:"seller_id"`
	Identifier string `json:"identifier"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
