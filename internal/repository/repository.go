package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"book_catalog/internal/models"
)

// ErrDuplicate marks a storage-level unique constraint violation. The schema's
// unique constraints (email, username, vote pair) are the authoritative arbiter
// for duplicates; application-level pre-checks are only a fast path.
var ErrDuplicate = errors.New("duplicate record")

type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)
	Update(ctx context.Context, id int, p models.UserPatch) error
	Delete(ctx context.Context, id int) error
}

// BookFilter narrows the books listing. Zero values mean "no constraint";
// Search matches as a case-sensitive substring of the title.
type BookFilter struct {
	Search string
	Limit  int
	Skip   int
}

type Books interface {
	Create(ctx context.Context, ownerID int, title, author string, price float64) (*models.Book, error)
	GetByID(ctx context.Context, id int) (*models.Book, error)
	GetWithOwner(ctx context.Context, id int) (*models.BookWithOwner, error)
	List(ctx context.Context, f BookFilter) ([]models.BookWithVotes, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Book, error)
	Update(ctx context.Context, id int, p models.BookPatch) error
	Delete(ctx context.Context, id int) error
}

type Votes interface {
	Exists(ctx context.Context, userID, bookID int) (bool, error)
	Create(ctx context.Context, userID, bookID int) error
	Delete(ctx context.Context, userID, bookID int) (bool, error)
}

type Repository struct {
	Users Users
	Books Books
	Votes Votes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Books: NewBookRepository(db),
		Votes: NewVoteRepository(db),
	}
}

// isUniqueViolation reports whether err is SQLite's unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// timeLayout is the SQLite TIMESTAMP format used for stored timestamps.
const timeLayout = "2006-01-02 15:04:05"
