package service

import (
	"context"
	"errors"
	"fmt"

	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

// UserService implements user CRUD. There is no ownership check on user
// update/delete; any caller may modify any user.
type UserService struct {
	users repository.Users
	books repository.Books
}

func NewUserService(users repository.Users, books repository.Books) *UserService {
	return &UserService{users: users, books: books}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserService)(nil)

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Get returns a user together with the books they own.
func (s *UserService) Get(ctx context.Context, id int) (*models.UserWithBooks, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	books, err := s.books.ListByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserWithBooks{User: *u, Books: books}, nil
}

// Create registers a new user. The existence pre-check is a fast path; the
// storage unique constraints catch concurrent duplicates.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	taken, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	u, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Update applies a partial update. Email and username are each checked for
// collisions against other users; a changed password is re-hashed.
func (s *UserService) Update(ctx context.Context, id int, in UserUpdate) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if in.Email != nil {
		taken, err := s.users.EmailTaken(ctx, *in.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
	}
	if in.Username != nil {
		taken, err := s.users.UsernameTaken(ctx, *in.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameExists
		}
	}

	patch := models.UserPatch{Username: in.Username, Email: in.Email}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("invalid password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if err := s.users.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes a user; storage cascades deletion of their books and votes.
func (s *UserService) Delete(ctx context.Context, id int) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return s.users.Delete(ctx, id)
}

// Books returns the books owned by userID.
func (s *UserService) Books(ctx context.Context, userID int) ([]models.Book, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return s.books.ListByOwner(ctx, userID)
}
