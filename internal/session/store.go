package session

import "context"

// Store persists per-user sessions.
//
// Update is the only safe way to do read-modify-write: it must apply fn
// atomically with respect to other updates for the same user id. Cross-user
// operations need no coordination.
type Store interface {
	// Get returns the user's session, or a fresh idle session when none is
	// stored yet.
	Get(ctx context.Context, userID int64) (*Session, error)
	// Save upserts the full session record.
	Save(ctx context.Context, s *Session) error
	// Update atomically applies fn to the user's session and persists the
	// result. An error from fn aborts the write and is returned as is.
	Update(ctx context.Context, userID int64, fn func(*Session) error) (*Session, error)
	// Close releases store resources.
	Close() error
}
