package checkin

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dispatcher runs every update in its own goroutine with a per-event timeout.
type Dispatcher struct {
	handle  func(context.Context, tgbotapi.Update)
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(o *Orchestrator, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{handle: o.Handle, timeout: timeout}
}

// Dispatch returns immediately. The event context survives cancellation of
// ctx so in-flight events finish on shutdown.
func (d *Dispatcher) Dispatch(ctx context.Context, update tgbotapi.Update) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		eventCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		d.handle(eventCtx, update)
	}()
}

// Wait blocks until all dispatched events are done.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
