package model

type CreateSellerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"e_mail" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
}

type UpdateSellerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"e_mail" validate:"required,email,max=255"`
}

// BookRequest accepts the page count as either "count_pages" or "pages".
// A zero SellerID means the authenticated seller.
type BookRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Author     string `json:"author" validate:"required,max=255"`
	Year       int    `json:"year" validate:"required,min=2020,max=9999"`
	Pages      *int   `json:"pages,omitempty"`
	CountPages *int   `json:"count_pages,omitempty"`
	SellerID   int64  `json:"seller_id" validate:"omitempty,gt=0"`
}

const DefaultBookPages = 150

func (r BookRequest) PageCount() int {
	switch {
	case r.CountPages != nil:
		return *r.CountPages
	case r.Pages != nil:
		return *r.Pages
	default:
		return DefaultBookPages
	}
}
