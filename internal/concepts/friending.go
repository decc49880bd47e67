package concepts

import (
	"errors"
	"fmt"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Friending manages friend requests and the friendships they become.
type Friending struct {
	friends *repositories.FriendRepository
}

// NewFriending creates a Friending concept over the given repository.
func NewFriending(friends *repositories.FriendRepository) *Friending {
	return &Friending{friends: friends}
}

// SendRequest creates a pending request from one user to another. Requests to
// oneself, duplicate pending requests in either direction, and requests
// between existing friends are rejected.
func (f *Friending) SendRequest(from, to string) (*models.FriendRequest, error) {
	if from == to {
		return nil, fmt.Errorf("cannot friend yourself: %w", shared.ErrInvalidInput)
	}

	if _, err := f.friends.FindBetween(from, to, models.RequestAccepted); err == nil {
		return nil, fmt.Errorf("already friends: %w", shared.ErrConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if _, err := f.friends.FindBetween(from, to, models.RequestPending); err == nil {
		return nil, fmt.Errorf("request already pending: %w", shared.ErrConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	request := &models.FriendRequest{From: from, To: to, Status: models.RequestPending}
	if err := f.friends.Create(request); err != nil {
		return nil, err
	}

	return request, nil
}

// AcceptRequest marks the pending request from the given sender to the caller
// as accepted, making the two users friends.
func (f *Friending) AcceptRequest(to, from string) error {
	request, err := f.friends.FindDirected(from, to, models.RequestPending)
	if err != nil {
		return err
	}
	return f.friends.SetStatus(request.ID, models.RequestAccepted)
}

// RejectRequest marks the pending request from the given sender to the caller
// as rejected.
func (f *Friending) RejectRequest(to, from string) error {
	request, err := f.friends.FindDirected(from, to, models.RequestPending)
	if err != nil {
		return err
	}
	return f.friends.SetStatus(request.ID, models.RequestRejected)
}

// CancelRequest withdraws a pending request the caller sent.
func (f *Friending) CancelRequest(from, to string) error {
	request, err := f.friends.FindDirected(from, to, models.RequestPending)
	if err != nil {
		return err
	}
	return f.friends.Delete(request.ID)
}

// RemoveFriend dissolves a friendship in either direction.
func (f *Friending) RemoveFriend(user, friend string) error {
	request, err := f.friends.FindBetween(user, friend, models.RequestAccepted)
	if err != nil {
		return err
	}
	return f.friends.Delete(request.ID)
}

// Friends returns the ids of everyone the user is friends with.
func (f *Friending) Friends(userID string) ([]string, error) {
	accepted, err := f.friends.ListForUser(userID, models.RequestAccepted)
	if err != nil {
		return nil, err
	}

	friends := make([]string, 0, len(accepted))
	for _, request := range accepted {
		if request.From == userID {
			friends = append(friends, request.To)
		} else {
			friends = append(friends, request.From)
		}
	}

	return friends, nil
}

// Requests returns the user's pending requests, sent and received.
func (f *Friending) Requests(userID string) ([]models.FriendRequest, error) {
	return f.friends.ListForUser(userID, models.RequestPending)
}
