package concepts

import (
	"fmt"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Pointing manages each user's point total and the verified-post ledger.
//
// A post id can be verified at most once across all users, and a revoke must
// name a post actually in the user's verified set. Neither an award nor a
// revoke may drive a total below zero.
type Pointing struct {
	points *repositories.PointRepository
}

// NewPointing creates a Pointing concept over the given repository.
func NewPointing(points *repositories.PointRepository) *Pointing {
	return &Pointing{points: points}
}

// Award verifies a post for the user and adds points to their total.
func (p *Pointing) Award(userID, postID string, points int) (*models.PointLedger, error) {
	if postID == "" {
		return nil, fmt.Errorf("post id is required: %w", shared.ErrInvalidInput)
	}

	verified, err := p.points.IsVerified(postID)
	if err != nil {
		return nil, err
	}
	if verified {
		return nil, fmt.Errorf("post %s already verified: %w", postID, shared.ErrConflict)
	}

	ledger, err := p.points.Get(userID)
	if err != nil {
		return nil, err
	}
	if ledger.Total+points < 0 {
		return nil, fmt.Errorf("award would drop total below zero: %w", shared.ErrInvalidInput)
	}

	if err := p.points.AddVerified(userID, postID, points); err != nil {
		return nil, err
	}

	return p.points.Get(userID)
}

// Revoke removes a verification and subtracts the points it awarded. The zero
// floor holds here too: a revoke that would drive the total negative (the
// original award was offset by later negative awards) is rejected.
func (p *Pointing) Revoke(userID, postID string) (*models.PointLedger, error) {
	ledger, err := p.points.Get(userID)
	if err != nil {
		return nil, err
	}
	if !ledger.Verified(postID) {
		return nil, fmt.Errorf("post %s not verified for user: %w", postID, shared.ErrNotFound)
	}

	points, err := p.points.VerifiedPoints(userID, postID)
	if err != nil {
		return nil, err
	}
	if ledger.Total-points < 0 {
		return nil, fmt.Errorf("revoke would drop total below zero: %w", shared.ErrInvalidInput)
	}

	if err := p.points.RemoveVerified(userID, postID); err != nil {
		return nil, err
	}

	return p.points.Get(userID)
}

// Ledger returns the user's full ledger. Unknown users have a zero ledger.
func (p *Pointing) Ledger(userID string) (*models.PointLedger, error) {
	return p.points.Get(userID)
}

// Balance returns just the user's point total.
func (p *Pointing) Balance(userID string) (int, error) {
	ledger, err := p.points.Get(userID)
	if err != nil {
		return 0, err
	}
	return ledger.Total, nil
}
