package service

import (
	"context"

	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

const defaultPageSize = 10

type BookService struct {
	books repository.Books
}

func NewBookService(books repository.Books) *BookService {
	return &BookService{books: books}
}

// Ensure implementation of Books interface at compile time.
var _ Books = (*BookService)(nil)

// List returns books with vote tallies and owner profiles. Missing or
// non-positive paging values fall back to limit 10 / skip 0.
func (s *BookService) List(ctx context.Context, p ListParams) ([]models.BookWithVotes, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return s.books.List(ctx, repository.BookFilter{
		Search: p.Search,
		Limit:  limit,
		Skip:   skip,
	})
}

func (s *BookService) Get(ctx context.Context, id int) (*models.BookWithOwner, error) {
	b, err := s.books.GetWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	return b, nil
}

func (s *BookService) Create(ctx context.Context, ownerID int, title, author string, price float64) (*models.Book, error) {
	return s.books.Create(ctx, ownerID, title, author, price)
}

// Update applies a partial update after the ownership check. Fields absent
// from the patch keep their stored values.
func (s *BookService) Update(ctx context.Context, actorID, bookID int, p models.BookPatch) (*models.Book, error) {
	b, err := s.loadOwned(ctx, actorID, bookID)
	if err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return b, nil
	}
	if err := s.books.Update(ctx, bookID, p); err != nil {
		return nil, err
	}
	return s.books.GetByID(ctx, bookID)
}

func (s *BookService) Delete(ctx context.Context, actorID, bookID int) error {
	if _, err := s.loadOwned(ctx, actorID, bookID); err != nil {
		return err
	}
	return s.books.Delete(ctx, bookID)
}

// loadOwned fetches a book and enforces that actorID owns it.
func (s *BookService) loadOwned(ctx context.Context, actorID, bookID int) (*models.Book, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookNotFound
	}
	if b.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return b, nil
}
