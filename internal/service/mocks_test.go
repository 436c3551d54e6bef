package service

import (
	"context"

	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

// Lightweight func-field mocks for the repository interfaces. Unset funcs
// behave as "not found / no rows" so tests only wire what they exercise.

type mockUserRepo struct {
	CreateFn        func(username, email, passwordHash string) (*models.User, error)
	GetByIDFn       func(id int) (*models.User, error)
	GetByEmailFn    func(email string) (*models.User, error)
	ListFn          func() ([]models.User, error)
	ExistsFn        func(email, username string) (bool, error)
	EmailTakenFn    func(email string, excludeID int) (bool, error)
	UsernameTakenFn func(username string, excludeID int) (bool, error)
	UpdateFn        func(id int, p models.UserPatch) error
	DeleteFn        func(id int) error

	createCalls int
	lastPatch   models.UserPatch
	deleteCalls []int
}

var _ repository.Users = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(_ context.Context, username, email, passwordHash string) (*models.User, error) {
	m.createCalls++
	if m.CreateFn == nil {
		return &models.User{ID: 1, Username: username, Email: email, PasswordHash: passwordHash}, nil
	}
	return m.CreateFn(username, email, passwordHash)
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUserRepo) List(_ context.Context) ([]models.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn()
}

func (m *mockUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if m.ExistsFn == nil {
		return false, nil
	}
	return m.ExistsFn(email, username)
}

func (m *mockUserRepo) EmailTaken(_ context.Context, email string, excludeID int) (bool, error) {
	if m.EmailTakenFn == nil {
		return false, nil
	}
	return m.EmailTakenFn(email, excludeID)
}

func (m *mockUserRepo) UsernameTaken(_ context.Context, username string, excludeID int) (bool, error) {
	if m.UsernameTakenFn == nil {
		return false, nil
	}
	return m.UsernameTakenFn(username, excludeID)
}

func (m *mockUserRepo) Update(_ context.Context, id int, p models.UserPatch) error {
	m.lastPatch = p
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(id, p)
}

func (m *mockUserRepo) Delete(_ context.Context, id int) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(id)
}

type mockBookRepo struct {
	CreateFn       func(ownerID int, title, author string, price float64) (*models.Book, error)
	GetByIDFn      func(id int) (*models.Book, error)
	GetWithOwnerFn func(id int) (*models.BookWithOwner, error)
	ListFn         func(f repository.BookFilter) ([]models.BookWithVotes, error)
	ListByOwnerFn  func(ownerID int) ([]models.Book, error)
	UpdateFn       func(id int, p models.BookPatch) error
	DeleteFn       func(id int) error

	lastFilter  repository.BookFilter
	lastPatch   models.BookPatch
	updateCalls int
	deleteCalls []int
}

var _ repository.Books = (*mockBookRepo)(nil)

func (m *mockBookRepo) Create(_ context.Context, ownerID int, title, author string, price float64) (*models.Book, error) {
	if m.CreateFn == nil {
		return &models.Book{ID: 1, Title: title, Author: author, Price: price, OwnerID: ownerID}, nil
	}
	return m.CreateFn(ownerID, title, author, price)
}

func (m *mockBookRepo) GetByID(_ context.Context, id int) (*models.Book, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockBookRepo) GetWithOwner(_ context.Context, id int) (*models.BookWithOwner, error) {
	if m.GetWithOwnerFn == nil {
		return nil, nil
	}
	return m.GetWithOwnerFn(id)
}

func (m *mockBookRepo) List(_ context.Context, f repository.BookFilter) ([]models.BookWithVotes, error) {
	m.lastFilter = f
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(f)
}

func (m *mockBookRepo) ListByOwner(_ context.Context, ownerID int) ([]models.Book, error) {
	if m.ListByOwnerFn == nil {
		return nil, nil
	}
	return m.ListByOwnerFn(ownerID)
}

func (m *mockBookRepo) Update(_ context.Context, id int, p models.BookPatch) error {
	m.updateCalls++
	m.lastPatch = p
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(id, p)
}

func (m *mockBookRepo) Delete(_ context.Context, id int) error {
	m.deleteCalls = append(m.deleteCalls, id)
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(id)
}

type mockVoteRepo struct {
	ExistsFn func(userID, bookID int) (bool, error)
	CreateFn func(userID, bookID int) error
	DeleteFn func(userID, bookID int) (bool, error)

	createCalls int
	deleteCalls int
}

var _ repository.Votes = (*mockVoteRepo)(nil)

func (m *mockVoteRepo) Exists(_ context.Context, userID, bookID int) (bool, error) {
	if m.ExistsFn == nil {
		return false, nil
	}
	return m.ExistsFn(userID, bookID)
}

func (m *mockVoteRepo) Create(_ context.Context, userID, bookID int) error {
	m.createCalls++
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(userID, bookID)
}

func (m *mockVoteRepo) Delete(_ context.Context, userID, bookID int) (bool, error) {
	m.deleteCalls++
	if m.DeleteFn == nil {
		return false, nil
	}
	return m.DeleteFn(userID, bookID)
}
