package model

import "time"

type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year"`
	Pages     int       `json:"pages"`
	SellerID  int64     `json:"seller_id"`
	CreatedAt time.Time `json:"-"`
}
