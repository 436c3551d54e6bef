package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"book_catalog/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Ensure implementation of Books interface at compile time.
var _ Books = (*BookRepository)(nil)

const (
	insertBookSQL       = `INSERT INTO books (title, author, price, created_at, owner_id) VALUES (?, ?, ?, ?, ?)`
	selectBookByIDSQL   = `SELECT id, title, author, price, created_at, owner_id FROM books WHERE id = ?`
	selectBooksOwnerSQL = `SELECT id, title, author, price, created_at, owner_id FROM books WHERE owner_id = ? ORDER BY id`
	deleteBookSQL       = `DELETE FROM books WHERE id = ?`

	selectBookWithOwnerSQL = `
SELECT b.id, b.title, b.author, b.price, b.created_at, b.owner_id,
       u.id, u.username, u.email, u.created_at
FROM books b
JOIN users u ON u.id = b.owner_id
WHERE b.id = ?`

	// Left join so books with zero votes still appear with a count of 0.
	listBooksBaseSQL = `
SELECT b.id, b.title, b.author, b.price, b.created_at, b.owner_id,
       COUNT(v.user_id) AS votes,
       u.id, u.username, u.email, u.created_at
FROM books b
LEFT JOIN votes v ON v.book_id = b.id
JOIN users u ON u.id = b.owner_id`
)

// Create inserts a new book owned by ownerID and returns it with its assigned ID.
func (r *BookRepository) Create(ctx context.Context, ownerID int, title, author string, price float64) (*models.Book, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx, insertBookSQL, title, author, price, now.Format(timeLayout), ownerID)
	if err != nil {
		return nil, fmt.Errorf("insert book %q: %w", title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for book %q: %w", title, err)
	}
	return &models.Book{
		ID:        int(lastID),
		Title:     title,
		Author:    author,
		Price:     price,
		CreatedAt: now,
		OwnerID:   ownerID,
	}, nil
}

// GetByID fetches a book by id. Returns (nil, nil) if not found.
func (r *BookRepository) GetByID(ctx context.Context, id int) (*models.Book, error) {
	var b models.Book
	err := r.db.QueryRowContext(ctx, selectBookByIDSQL, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.CreatedAt, &b.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %d: %w", id, err)
	}
	return &b, nil
}

// GetWithOwner fetches a book joined with its owner's public profile.
// Returns (nil, nil) if not found.
func (r *BookRepository) GetWithOwner(ctx context.Context, id int) (*models.BookWithOwner, error) {
	var bo models.BookWithOwner
	err := r.db.QueryRowContext(ctx, selectBookWithOwnerSQL, id).Scan(
		&bo.ID, &bo.Title, &bo.Author, &bo.Price, &bo.CreatedAt, &bo.OwnerID,
		&bo.Owner.ID, &bo.Owner.Username, &bo.Owner.Email, &bo.Owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %d with owner: %w", id, err)
	}
	return &bo, nil
}

// List returns books with their vote tally and owner, filtered and paginated.
// The search filter is a case-sensitive substring match on the title; SQLite's
// LIKE is case-insensitive for ASCII, hence instr() instead.
func (r *BookRepository) List(ctx context.Context, f BookFilter) ([]models.BookWithVotes, error) {
	q := listBooksBaseSQL
	var args []any

	if f.Search != "" {
		q += "\nWHERE instr(b.title, ?) > 0"
		args = append(args, f.Search)
	}
	q += "\nGROUP BY b.id\nORDER BY b.id"
	if f.Limit > 0 {
		q += "\nLIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Skip)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := make([]models.BookWithVotes, 0, 16)
	for rows.Next() {
		var bv models.BookWithVotes
		if err := rows.Scan(
			&bv.ID, &bv.Title, &bv.Author, &bv.Price, &bv.CreatedAt, &bv.OwnerID,
			&bv.Votes,
			&bv.Owner.ID, &bv.Owner.Username, &bv.Owner.Email, &bv.Owner.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		out = append(out, bv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

// ListByOwner returns all books owned by ownerID, ordered by id.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select books of user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 8)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.CreatedAt, &b.OwnerID); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books of user %d: %w", ownerID, err)
	}
	return out, nil
}

// Update applies a partial update; nil patch fields are left untouched.
func (r *BookRepository) Update(ctx context.Context, id int, p models.BookPatch) error {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Author != nil {
		sets = append(sets, "author = ?")
		args = append(args, *p.Author)
	}
	if p.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *p.Price)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	q := "UPDATE books SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// Delete removes a book; the schema cascades deletion of its votes.
func (r *BookRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteBookSQL, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
