package models

import "time"

// Session is a cookie-backed login session with an expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// RequestStatus is the lifecycle state of a friend request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest records one user asking another for friendship.
// An accepted request is what constitutes a friendship.
type FriendRequest struct {
	ID        string        `json:"id"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PointLedger is a user's point total plus the post ids that have been
// verified for points. A post id can be verified at most once.
type PointLedger struct {
	UserID        string   `json:"user_id"`
	Total         int      `json:"total"`
	VerifiedPosts []string `json:"verified_posts"`
}

// Verified reports whether the given post id is already in the verified set.
func (l PointLedger) Verified(postID string) bool {
	for _, id := range l.VerifiedPosts {
		if id == postID {
			return true
		}
	}
	return false
}
