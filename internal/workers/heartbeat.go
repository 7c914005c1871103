package workers

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"tg-checkin-backend/internal/common/logger"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one dependency probed by the heartbeat.
type Check struct {
	Name   string
	Pinger Pinger
}

// HeartbeatWorker pings the stores on a schedule and keeps the last result
// for the readiness probe.
type HeartbeatWorker struct {
	checks    []Check
	interval  time.Duration
	scheduler gocron.Scheduler

	mu     sync.RWMutex
	status map[string]error
}

func NewHeartbeatWorker(interval time.Duration, checks ...Check) *HeartbeatWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HeartbeatWorker{checks: checks, interval: interval, status: map[string]error{}}
}

// Start probes once synchronously, then schedules the probes.
func (w *HeartbeatWorker) Start(ctx context.Context) error {
	w.probe(ctx)

	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.probe(context.WithoutCancel(ctx)) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.Start()
	w.scheduler = s
	logger.Info().Dur("interval", w.interval).Msg("Heartbeat worker started")
	return nil
}

func (w *HeartbeatWorker) Stop() error {
	if w.scheduler == nil {
		return nil
	}
	logger.Info().Msg("Stopping heartbeat worker...")
	return w.scheduler.Shutdown()
}

func (w *HeartbeatWorker) probe(ctx context.Context) {
	results := make(map[string]error, len(w.checks))
	for _, c := range w.checks {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := c.Pinger.Ping(pingCtx)
		cancel()

		if err != nil {
			logger.Warn().Err(err).Str("check", c.Name).Msg("Heartbeat failed")
		}
		results[c.Name] = err
	}

	w.mu.Lock()
	w.status = results
	w.mu.Unlock()
}

// Ready reports whether every check passed on the last run, with a per-check
// status line.
func (w *HeartbeatWorker) Ready() (bool, map[string]string) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ready := len(w.status) == len(w.checks)
	out := make(map[string]string, len(w.checks))
	for _, c := range w.checks {
		err, seen := w.status[c.Name]
		switch {
		case !seen:
			out[c.Name] = "unknown"
			ready = false
		case err != nil:
			out[c.Name] = err.Error()
			ready = false
		default:
			out[c.Name] = "ok"
		}
	}
	return ready, out
}
