package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/gameontext/gameon-player/internal/model"
)

// Config holds dispatcher settings
type Config struct {
	// Topic is the stream events are published to
	Topic string

	// ShutdownGrace bounds how long Stop keeps publishing queued events
	ShutdownGrace time.Duration

	// ConnectTimeout bounds how long Start keeps retrying the publisher
	ConnectTimeout time.Duration

	// RetryBase is the first backoff interval while connecting
	RetryBase time.Duration
}

// DefaultConfig returns default dispatcher configuration
func DefaultConfig() Config {
	return Config{
		Topic:          "playerEvents",
		ShutdownGrace:  5 * time.Second,
		ConnectTimeout: 2 * time.Minute,
		RetryBase:      500 * time.Millisecond,
	}
}

// Dispatcher queues account events and publishes them from a single
// background worker. Delivery is best effort: events are dropped while the
// publisher is not connected, publish failures are logged and not retried,
// and events still queued when the shutdown grace period ends are abandoned.
type Dispatcher struct {
	publisher Publisher
	cfg       Config
	logger    *slog.Logger

	mu    sync.Mutex
	queue []model.Event

	connected atomic.Bool
	stopped   atomic.Bool

	wake   chan struct{}
	stop   chan struct{}
	done   chan struct{}
	cancel context.CancelFunc

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

// NewDispatcher creates a dispatcher. Nothing is published until Start is called.
func NewDispatcher(publisher Publisher, cfg Config, logger *slog.Logger) *Dispatcher {
	defaults := DefaultConfig()
	if cfg.Topic == "" {
		cfg.Topic = defaults.Topic
	}
	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = defaults.ShutdownGrace
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaults.ConnectTimeout
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaults.RetryBase
	}
	return &Dispatcher{
		publisher: publisher,
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "events"), slog.String("topic", cfg.Topic)),
		wake:      make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Enqueue adds an event to the queue. It never blocks. The event is dropped
// if the publisher is not connected.
func (d *Dispatcher) Enqueue(event model.Event) {
	if !d.connected.Load() || d.stopped.Load() {
		d.logger.Debug("event dropped, publisher not connected",
			slog.String("type", string(event.Type)),
			slog.String("player_id", string(event.PlayerID)))
		return
	}

	d.mu.Lock()
	d.queue = append(d.queue, event)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Connected reports whether the publisher connection has been established
func (d *Dispatcher) Connected() bool {
	return d.connected.Load() && !d.stopped.Load()
}

// Pending returns the number of queued events
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Start connects the publisher in the background and then runs the worker.
// It returns immediately. Calling Start more than once has no effect.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		if d.stopped.Load() {
			close(d.done)
			return
		}
		runCtx, cancel := context.WithCancel(ctx)
		d.cancel = cancel
		d.started.Store(true)
		go d.run(runCtx)
	})
}

// Stop signals the worker to finish. The worker keeps publishing queued
// events until the queue is empty or the grace period expires, then abandons
// the rest. Stop returns once the worker has exited or ctx is done.
func (d *Dispatcher) Stop(ctx context.Context) {
	d.stopOnce.Do(func() {
		d.stopped.Store(true)
		close(d.stop)
	})

	// Never started: make any later Start a no-op
	d.startOnce.Do(func() { close(d.done) })

	if !d.started.Load() {
		return
	}

	if !d.connected.Load() {
		d.cancel()
	}
	timer := time.AfterFunc(d.cfg.ShutdownGrace, d.cancel)
	defer timer.Stop()

	select {
	case <-d.done:
	case <-ctx.Done():
		d.cancel()
		<-d.done
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	defer close(d.done)
	defer d.cancel()

	if err := d.connect(ctx); err != nil {
		if ctx.Err() != nil {
			d.logger.Info("event dispatcher stopped before publisher connected")
			return
		}
		d.logger.Error("event publisher unavailable, events will be dropped",
			slog.String("error", err.Error()))
		return
	}
	d.connected.Store(true)
	d.logger.Info("event publisher connected")

	for {
		if event, ok := d.pop(); ok {
			d.publish(ctx, event)
			continue
		}
		select {
		case <-d.wake:
		case <-d.stop:
			d.drain(ctx)
			return
		}
	}
}

func (d *Dispatcher) connect(ctx context.Context) error {
	b := retry.NewExponential(d.cfg.RetryBase)
	b = retry.WithCappedDuration(30*time.Second, b)
	b = retry.WithMaxDuration(d.cfg.ConnectTimeout, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := d.publisher.Ping(ctx); err != nil {
			d.logger.Warn("event publisher not reachable, retrying", slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return nil
	})
}

// drain publishes what is left until the queue is empty or ctx is cancelled
func (d *Dispatcher) drain(ctx context.Context) {
	published := 0
	for {
		if ctx.Err() != nil {
			if left := d.Pending(); left > 0 {
				d.logger.Warn("shutdown grace expired, abandoning queued events",
					slog.Int("published", published),
					slog.Int("abandoned", left))
			}
			return
		}
		event, ok := d.pop()
		if !ok {
			d.logger.Info("event dispatcher stopped", slog.Int("drained", published))
			return
		}
		d.publish(ctx, event)
		published++
	}
}

func (d *Dispatcher) pop() (model.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return model.Event{}, false
	}
	event := d.queue[0]
	d.queue[0] = model.Event{}
	d.queue = d.queue[1:]
	return event, true
}

func (d *Dispatcher) publish(ctx context.Context, event model.Event) {
	payload, err := Encode(event)
	if err != nil {
		d.logger.Error("failed to encode event",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()))
		return
	}

	if err := d.publisher.Publish(ctx, d.cfg.Topic, string(event.PlayerID), payload); err != nil {
		d.logger.Error("failed to publish event",
			slog.String("event_id", event.ID),
			slog.String("type", string(event.Type)),
			slog.String("player_id", string(event.PlayerID)),
			slog.String("error", err.Error()))
		return
	}

	d.logger.Debug("event published",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.String("player_id", string(event.PlayerID)))
}
