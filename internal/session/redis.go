package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// redisStore keeps session state in a Redis hash per session id. The hash
// carries its own TTL so abandoned sessions disappear on their own.
type redisStore struct {
	client *goredis.Client
}

func newRedisStore(client *goredis.Client) *redisStore {
	return &redisStore{client: client}
}

func sessionKey(sessionID string) string {
	return "sess:" + sessionID
}

func (s *redisStore) IssueFormToken(ctx context.Context, sessionID string) (string, error) {
	token, err := newFormToken()
	if err != nil {
		return "", err
	}
	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"form_token", token,
		"token_issued_at", strconv.FormatInt(time.Now().Unix(), 10),
	)
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("session: issue form token: %w", err)
	}
	return token, nil
}

func (s *redisStore) FormToken(ctx context.Context, sessionID string) (string, time.Time, error) {
	vals, err := s.client.HMGet(ctx, sessionKey(sessionID), "form_token", "token_issued_at").Result()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("session: read form token: %w", err)
	}
	token, _ := vals[0].(string)
	issuedRaw, _ := vals[1].(string)
	if token == "" || issuedRaw == "" {
		return "", time.Time{}, ErrNoToken
	}
	unix, err := strconv.ParseInt(issuedRaw, 10, 64)
	if err != nil {
		return "", time.Time{}, ErrNoToken
	}
	return token, time.Unix(unix, 0), nil
}

func (s *redisStore) ClearFormToken(ctx context.Context, sessionID string) error {
	if err := s.client.HDel(ctx, sessionKey(sessionID), "form_token", "token_issued_at").Err(); err != nil {
		return fmt.Errorf("session: clear form token: %w", err)
	}
	return nil
}

func (s *redisStore) LastSubmission(ctx context.Context, sessionID string) (time.Time, bool, error) {
	raw, err := s.client.HGet(ctx, sessionKey(sessionID), "last_submission").Result()
	if err == goredis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("session: read last submission: %w", err)
	}
	unix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.Unix(unix, 0), true, nil
}

func (s *redisStore) SetLastSubmission(ctx context.Context, sessionID string, at time.Time) error {
	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "last_submission", strconv.FormatInt(at.Unix(), 10))
	pipe.Expire(ctx, key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: set last submission: %w", err)
	}
	return nil
}
