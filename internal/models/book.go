package models

import "time"

type Book struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   int       `json:"owner_id"`
}

// BookWithOwner is the detail shape for GET /books/{id}.
type BookWithOwner struct {
	Book
	Owner User `json:"owner"`
}

// BookWithVotes is the listing shape: book + vote tally + owner profile.
type BookWithVotes struct {
	Book
	Votes int  `json:"votes"`
	Owner User `json:"owner"`
}

// BookPatch carries a partial book update. Nil fields are left untouched.
type BookPatch struct {
	Title  *string
	Author *string
	Price  *float64
}

// IsEmpty reports whether the patch would change nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.Price == nil
}
