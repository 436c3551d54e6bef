package models

// Vote is a user's upvote on a book. The row's existence is the vote;
// there is no persisted neutral state. Identity is the (user, book) pair.
type Vote struct {
	UserID int `json:"user_id"`
	BookID int `json:"book_id"`
}

// Vote directions accepted by the toggle operation.
const (
	DirectionUp     = 1  // cast an upvote
	DirectionRemove = -1 // explicitly remove an existing vote
	DirectionClear  = 0  // remove if present, no-op otherwise
)
