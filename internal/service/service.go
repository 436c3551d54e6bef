package service

import (
	"context"

	"book_catalog/internal/config"
	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

type Authorization interface {
	// Login validates credentials by email and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
	// ParseToken verifies a token and extracts the user id claim.
	ParseToken(accessToken string) (int, error)
	// ResolveUser verifies a token and loads the acting user from storage.
	ResolveUser(ctx context.Context, accessToken string) (*models.User, error)
}

// UserUpdate is a partial user update as received from the API; nil fields are
// left untouched. Password is plaintext here and hashed before persistence.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int) (*models.UserWithBooks, error)
	Create(ctx context.Context, username, email, password string) (*models.User, error)
	Update(ctx context.Context, id int, in UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int) error
	Books(ctx context.Context, userID int) ([]models.Book, error)
}

// ListParams narrows the public books listing.
type ListParams struct {
	Search string // case-sensitive substring match on title; "" matches all
	Limit  int    // non-positive means the default page size
	Skip   int    // negative means 0
}

type Books interface {
	List(ctx context.Context, p ListParams) ([]models.BookWithVotes, error)
	Get(ctx context.Context, id int) (*models.BookWithOwner, error)
	Create(ctx context.Context, ownerID int, title, author string, price float64) (*models.Book, error)
	Update(ctx context.Context, actorID, bookID int, p models.BookPatch) (*models.Book, error)
	Delete(ctx context.Context, actorID, bookID int) error
}

type Votes interface {
	// Toggle applies a vote direction for (userID, bookID) and returns the
	// outcome message for the response body.
	Toggle(ctx context.Context, userID, bookID, direction int) (string, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Users
	Books
	Votes
}

// NewService wires the repository layer into concrete services. Config is read
// once here; nothing consults it afterwards.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.JWTSecret, cfg.TokenTTL),
		Users:         NewUserService(repos.Users, repos.Books),
		Books:         NewBookService(repos.Books),
		Votes:         NewVoteService(repos.Books, repos.Votes),
	}
}
