package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"book_catalog/internal/models"
	"book_catalog/internal/repository"
)

func bookRepoWithBook(id int) *mockBookRepo {
	return &mockBookRepo{
		GetByIDFn: func(got int) (*models.Book, error) {
			if got == id {
				return &models.Book{ID: id, Title: "T", OwnerID: 1}, nil
			}
			return nil, nil
		},
	}
}

func TestVoteService_Toggle_MissingBook(t *testing.T) {
	svc := NewVoteService(&mockBookRepo{}, &mockVoteRepo{})

	for _, direction := range []int{1, 0, -1} {
		_, err := svc.Toggle(context.Background(), 1, 99, direction)
		if !errors.Is(err, ErrBookNotFound) {
			t.Fatalf("direction=%d: expected ErrBookNotFound, got %v", direction, err)
		}
	}
}

func TestVoteService_Toggle_Upvote(t *testing.T) {
	votes := &mockVoteRepo{}
	svc := NewVoteService(bookRepoWithBook(5), votes)

	msg, err := svc.Toggle(context.Background(), 1, 5, 1)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if msg != MsgVoteAdded {
		t.Fatalf("expected %q, got %q", MsgVoteAdded, msg)
	}
	if votes.createCalls != 1 {
		t.Fatalf("expected 1 Create call, got %d", votes.createCalls)
	}
}

func TestVoteService_Toggle_DoubleUpvoteConflicts(t *testing.T) {
	votes := &mockVoteRepo{
		ExistsFn: func(userID, bookID int) (bool, error) { return true, nil },
	}
	svc := NewVoteService(bookRepoWithBook(5), votes)

	_, err := svc.Toggle(context.Background(), 1, 5, 1)
	if !errors.Is(err, ErrVoteExists) {
		t.Fatalf("expected ErrVoteExists, got %v", err)
	}
	if votes.createCalls != 0 {
		t.Fatalf("Create must not run when a vote exists")
	}
}

func TestVoteService_Toggle_UpvoteLosesInsertRace(t *testing.T) {
	// Exists says no, but the constraint fires on insert: still a conflict.
	votes := &mockVoteRepo{
		CreateFn: func(userID, bookID int) error {
			return fmt.Errorf("insert vote (%d,%d): %w", userID, bookID, repository.ErrDuplicate)
		},
	}
	svc := NewVoteService(bookRepoWithBook(5), votes)

	_, err := svc.Toggle(context.Background(), 1, 5, 1)
	if !errors.Is(err, ErrVoteExists) {
		t.Fatalf("expected ErrVoteExists from constraint race, got %v", err)
	}
}

func TestVoteService_Toggle_RemoveExisting(t *testing.T) {
	votes := &mockVoteRepo{
		DeleteFn: func(userID, bookID int) (bool, error) { return true, nil },
	}
	svc := NewVoteService(bookRepoWithBook(5), votes)

	msg, err := svc.Toggle(context.Background(), 1, 5, -1)
	if err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if msg != MsgVoteDeleted {
		t.Fatalf("expected %q, got %q", MsgVoteDeleted, msg)
	}
}

func TestVoteService_Toggle_RemoveAbsentFails(t *testing.T) {
	svc := NewVoteService(bookRepoWithBook(5), &mockVoteRepo{}) // Delete reports nothing deleted

	_, err := svc.Toggle(context.Background(), 1, 5, -1)
	if !errors.Is(err, ErrVoteNotFound) {
		t.Fatalf("expected ErrVoteNotFound, got %v", err)
	}
}

func TestVoteService_Toggle_ClearIsIdempotent(t *testing.T) {
	// Simulate real state with a single flag: first clear deletes, later ones no-op.
	voted := true
	votes := &mockVoteRepo{
		DeleteFn: func(userID, bookID int) (bool, error) {
			was := voted
			voted = false
			return was, nil
		},
	}
	svc := NewVoteService(bookRepoWithBook(5), votes)

	msg, err := svc.Toggle(context.Background(), 1, 5, 0)
	if err != nil {
		t.Fatalf("first clear errored: %v", err)
	}
	if msg != MsgVoteRemoved {
		t.Fatalf("first clear: expected %q, got %q", MsgVoteRemoved, msg)
	}

	// The second and third clears must succeed with the distinct no-op message.
	for i := 0; i < 2; i++ {
		msg, err = svc.Toggle(context.Background(), 1, 5, 0)
		if err != nil {
			t.Fatalf("repeat clear errored: %v", err)
		}
		if msg != MsgNoVoteToRemove {
			t.Fatalf("repeat clear: expected %q, got %q", MsgNoVoteToRemove, msg)
		}
	}
}

func TestVoteService_Toggle_BadDirection(t *testing.T) {
	svc := NewVoteService(bookRepoWithBook(5), &mockVoteRepo{})

	_, err := svc.Toggle(context.Background(), 1, 5, 2)
	if !errors.Is(err, ErrBadDirection) {
		t.Fatalf("expected ErrBadDirection, got %v", err)
	}
}
