package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Ensure implementation of Votes interface at compile time.
var _ Votes = (*VoteRepository)(nil)

const (
	countVoteSQL  = `SELECT COUNT(1) FROM votes WHERE user_id = ? AND book_id = ?`
	insertVoteSQL = `INSERT INTO votes (user_id, book_id) VALUES (?, ?)`
	deleteVoteSQL = `DELETE FROM votes WHERE user_id = ? AND book_id = ?`
)

// Exists reports whether the (user, book) vote row is present.
func (r *VoteRepository) Exists(ctx context.Context, userID, bookID int) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countVoteSQL, userID, bookID).Scan(&n); err != nil {
		return false, fmt.Errorf("count vote (%d,%d): %w", userID, bookID, err)
	}
	return n > 0, nil
}

// Create inserts the vote row. A concurrent duplicate surfaces as ErrDuplicate
// through the primary-key constraint, the authoritative arbiter.
func (r *VoteRepository) Create(ctx context.Context, userID, bookID int) error {
	if _, err := r.db.ExecContext(ctx, insertVoteSQL, userID, bookID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert vote (%d,%d): %w", userID, bookID, ErrDuplicate)
		}
		return fmt.Errorf("insert vote (%d,%d): %w", userID, bookID, err)
	}
	return nil
}

// Delete removes the vote row, reporting whether a row was actually deleted.
func (r *VoteRepository) Delete(ctx context.Context, userID, bookID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteVoteSQL, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("delete vote (%d,%d): %w", userID, bookID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for vote (%d,%d): %w", userID, bookID, err)
	}
	return affected > 0, nil
}
