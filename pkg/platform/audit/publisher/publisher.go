// Package publisher delivers audit events to a Store, either inline or
// through a bounded buffer drained by a single goroutine.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "selfservice/pkg/domain"
	audit "selfservice/pkg/platform/audit"
)

// ErrBufferFull is returned by Emit in async mode when the buffer cannot
// accept another event.
var ErrBufferFull = errors.New("audit buffer full")

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event audit.Event) error
	ListBySession(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error)
}

type Publisher struct {
	store  Store
	logger *slog.Logger

	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a buffer of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.buffer = make(chan audit.Event, n)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event. Missing timestamps and categories are filled in.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	if p.buffer == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.buffer <- event:
		return nil
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrBufferFull
}

// List returns the events recorded for one session.
func (p *Publisher) List(ctx context.Context, sessionID id.SessionID) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops accepting async events and waits until the buffer is drained.
func (p *Publisher) Close() {
	if p.buffer == nil {
		return
	}
	p.once.Do(func() {
		close(p.buffer)
	})
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.buffer {
		if err := p.store.Append(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
