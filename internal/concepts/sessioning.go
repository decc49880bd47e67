package concepts

import (
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Sessioning manages login sessions. Tokens are opaque uuid strings carried
// in a cookie; the HTTP layer owns the cookie itself.
type Sessioning struct {
	sessions *repositories.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewSessioning creates a Sessioning concept issuing sessions with the given lifetime.
func NewSessioning(sessions *repositories.SessionRepository, ttl time.Duration) *Sessioning {
	return &Sessioning{sessions: sessions, ttl: ttl, now: time.Now}
}

// Start issues a new session for the user.
func (s *Sessioning) Start(userID string) (models.Session, error) {
	now := s.now()
	session := models.Session{
		ID:        shared.GenerateID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(session); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// Resolve maps a session token to its user id. Expired sessions are purged
// on sight and reported as [shared.ErrSessionExpired].
func (s *Sessioning) Resolve(token string) (string, error) {
	session, err := s.sessions.Get(token)
	if err != nil {
		return "", err
	}

	if session.Expired(s.now()) {
		_ = s.sessions.Delete(token)
		return "", shared.ErrSessionExpired
	}

	return session.UserID, nil
}

// End terminates a session. Ending an unknown token is a no-op.
func (s *Sessioning) End(token string) error {
	return s.sessions.Delete(token)
}

// EndAll terminates every session belonging to the user.
func (s *Sessioning) EndAll(userID string) error {
	return s.sessions.DeleteForUser(userID)
}

// PurgeExpired removes all sessions past their expiry and returns the count.
func (s *Sessioning) PurgeExpired() (int64, error) {
	return s.sessions.DeleteExpired(s.now())
}
