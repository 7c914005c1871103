package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"tg-checkin-backend/internal/common/cache"
)

const sessionPrefix = "session:"

// SessionCache is the subset of cache.CacheService sessions need.
type SessionCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type Session struct {
	Username        string    `json:"username"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SessionStore keeps admin sessions in Redis. The cookie carries
// "s:<id>.<signature>" with an HMAC-SHA256 signature keyed by the session secret.
type SessionStore struct {
	cache  SessionCache
	secret []byte
	ttl    time.Duration
	cookie string
}

func NewSessionStore(c SessionCache, secret, cookieName string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{cache: c, secret: []byte(secret), ttl: ttl, cookie: cookieName}
}

func (s *SessionStore) CookieName() string {
	return s.cookie
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return "s:" + id + "." + base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// unsign returns the session id of a signed cookie value.
func (s *SessionStore) unsign(value string) (string, bool) {
	if decoded, err := url.PathUnescape(value); err == nil {
		value = decoded
	}
	if !strings.HasPrefix(value, "s:") {
		return "", false
	}
	dot := strings.LastIndex(value, ".")
	if dot < 2 {
		return "", false
	}
	id := value[2:dot]
	if subtle.ConstantTimeCompare([]byte(s.sign(id)), []byte(value)) != 1 {
		return "", false
	}
	return id, true
}

// Create stores a session and returns the signed cookie value.
func (s *SessionStore) Create(ctx context.Context, username string) (string, error) {
	id := uuid.NewString()
	session := Session{Username: username, IsAuthenticated: true, CreatedAt: time.Now().UTC()}
	if err := s.cache.Set(ctx, sessionPrefix+id, session, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return s.sign(id), nil
}

func (s *SessionStore) lookup(ctx context.Context, r *http.Request) (string, *Session, error) {
	cookie, err := r.Cookie(s.cookie)
	if err != nil {
		return "", nil, nil
	}
	id, ok := s.unsign(cookie.Value)
	if !ok {
		return "", nil, nil
	}

	var session Session
	if err := s.cache.Get(ctx, sessionPrefix+id, &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", nil, nil
		}
		return "", nil, err
	}
	return id, &session, nil
}

func (s *SessionStore) Authenticated(ctx context.Context, r *http.Request) (bool, error) {
	_, session, err := s.lookup(ctx, r)
	if err != nil {
		return false, err
	}
	return session != nil && session.IsAuthenticated, nil
}

// Destroy deletes the session named by the request cookie, if any.
func (s *SessionStore) Destroy(ctx context.Context, r *http.Request) error {
	id, session, err := s.lookup(ctx, r)
	if err != nil || session == nil {
		return err
	}
	return s.cache.Delete(ctx, sessionPrefix+id)
}
