package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tg-checkin-backend/internal/common/cache"
	"tg-checkin-backend/internal/common/logger"
)

const (
	lockPrefix     = "checkin_lock:"
	lockAttempts   = 3
	lockRetryDelay = 200 * time.Millisecond
)

var errLockBusy = errors.New("check-in already in progress")

// Locker is satisfied by *cache.CacheService.
type Locker interface {
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (string, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

type userLock struct {
	locker Locker
	ttl    time.Duration
}

// with runs fn while holding the lock of tgID. A nil locker runs fn unguarded.
func (l userLock) with(ctx context.Context, tgID string, fn func() error) error {
	if l.locker == nil {
		return fn()
	}

	key := lockPrefix + tgID
	var token string
	for attempt := 1; ; attempt++ {
		var err error
		token, err = l.locker.AcquireLock(ctx, key, l.ttl)
		if err == nil {
			break
		}
		if !errors.Is(err, cache.ErrAlreadyLocked) {
			return fmt.Errorf("acquire %s: %w", key, err)
		}
		if attempt == lockAttempts {
			return errLockBusy
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	defer func() {
		// ctx may already be done here
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		if err := l.locker.ReleaseLock(releaseCtx, key, token); err != nil {
			cl := logger.Component("checkin_lock")
			cl.Warn().Err(err).Str("key", key).Msg("Failed to release lock")
		}
	}()
	return fn()
}
