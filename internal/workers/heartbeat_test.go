package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tg-checkin-backend/internal/common/cache"
)

type countingPinger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPinger) Ping(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestHeartbeat_ReadyAfterStart(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mongo := &countingPinger{}
	w := NewHeartbeatWorker(time.Hour,
		Check{Name: "redis", Pinger: cache.NewCacheService(client)},
		Check{Name: "mongo", Pinger: mongo},
	)

	ready, status := w.Ready()
	assert.False(t, ready)
	assert.Equal(t, "unknown", status["redis"])

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })

	ready, status = w.Ready()
	assert.True(t, ready)
	assert.Equal(t, map[string]string{"redis": "ok", "mongo": "ok"}, status)
	assert.Equal(t, int32(1), mongo.calls.Load())
}

func TestHeartbeat_FailingCheck(t *testing.T) {
	down := &countingPinger{err: errors.New("connection refused")}
	w := NewHeartbeatWorker(20*time.Millisecond, Check{Name: "mongo", Pinger: down})

	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })

	ready, status := w.Ready()
	assert.False(t, ready)
	assert.Equal(t, "connection refused", status["mongo"])

	assert.Eventually(t, func() bool { return down.calls.Load() >= 3 }, 2*time.Second, 10*time.Millisecond)
}
