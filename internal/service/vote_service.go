package service

import (
	"context"
	"errors"

	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

// Outcome messages returned to the client by the vote toggle.
const (
	MsgVoteAdded      = "successfully added vote"
	MsgVoteDeleted    = "successfully deleted vote"
	MsgVoteRemoved    = "successfully removed vote"
	MsgNoVoteToRemove = "no vote to remove"
)

// VoteService implements the vote toggle. States per (user, book) pair are
// "no vote" and "voted"; the row's existence is the entire state.
type VoteService struct {
	books repository.Books
	votes repository.Votes
}

func NewVoteService(books repository.Books, votes repository.Votes) *VoteService {
	return &VoteService{books: books, votes: votes}
}

// Ensure implementation of Votes interface at compile time.
var _ Votes = (*VoteService)(nil)

// Toggle applies a direction:
//
//	 1: cast an upvote; fails if one already exists
//	-1: remove an existing vote; fails if there is none
//	 0: clear; removes the vote if present, succeeds either way
//
// The target book must exist before any vote state is inspected.
func (s *VoteService) Toggle(ctx context.Context, userID, bookID, direction int) (string, error) {
	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrBookNotFound
	}

	switch direction {
	case models.DirectionUp:
		voted, err := s.votes.Exists(ctx, userID, bookID)
		if err != nil {
			return "", err
		}
		if voted {
			return "", ErrVoteExists
		}
		if err := s.votes.Create(ctx, userID, bookID); err != nil {
			// Lost a race to a concurrent identical request.
			if errors.Is(err, repository.ErrDuplicate) {
				return "", ErrVoteExists
			}
			return "", err
		}
		return MsgVoteAdded, nil

	case models.DirectionRemove:
		deleted, err := s.votes.Delete(ctx, userID, bookID)
		if err != nil {
			return "", err
		}
		if !deleted {
			return "", ErrVoteNotFound
		}
		return MsgVoteDeleted, nil

	case models.DirectionClear:
		deleted, err := s.votes.Delete(ctx, userID, bookID)
		if err != nil {
			return "", err
		}
		if deleted {
			return MsgVoteRemoved, nil
		}
		return MsgNoVoteToRemove, nil

	default:
		return "", ErrBadDirection
	}
}
