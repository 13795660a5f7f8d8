package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the cookie that carries the session id.
	CookieName = "session_id"
	// sessionIDLength is the length of a generated session id in bytes.
	sessionIDLength = 32
	// sessionTTL bounds how long idle per-visitor state is retained.
	sessionTTL = 24 * time.Hour
)

// ErrNoToken is returned when a session holds no issued form token.
var ErrNoToken = errors.New("session: no form token issued")

// Store is the server-side per-visitor session state: the one-time contact
// form token and the last successful submission marker. Implementations are
// keyed by an opaque session id carried in a cookie; no other request touches
// another visitor's state.
type Store interface {
	// IssueFormToken creates and records a fresh one-time form token for the
	// session, replacing any previous one.
	IssueFormToken(ctx context.Context, sessionID string) (token string, err error)

	// FormToken returns the currently issued token and its issuance time.
	// Returns ErrNoToken when none is held.
	FormToken(ctx context.Context, sessionID string) (token string, issuedAt time.Time, err error)

	// ClearFormToken removes the issued token so it cannot be replayed.
	ClearFormToken(ctx context.Context, sessionID string) error

	// LastSubmission returns the time of the last successful contact
	// submission in this session, if any.
	LastSubmission(ctx context.Context, sessionID string) (time.Time, bool, error)

	// SetLastSubmission overwrites the last successful submission marker.
	SetLastSubmission(ctx context.Context, sessionID string, at time.Time) error
}

// New returns a Redis-backed store when a client is available, otherwise an
// in-memory store. The in-memory fallback is per-process; fine for a single
// instance, not for a fleet.
func New(client *goredis.Client) Store {
	if client != nil {
		return newRedisStore(client)
	}
	return newMemoryStore()
}

// NewSessionID returns a cryptographically random session identifier.
func NewSessionID() (string, error) {
	b := make([]byte, sessionIDLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// newFormToken returns a cryptographically random one-time form token.
func newFormToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
