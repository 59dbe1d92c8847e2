// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.blog

/*
Package audit records security-relevant authentication events.

Events are dispatched asynchronously through a buffered channel so the
login path never blocks on the sink. When the buffer is full, events are
dropped and counted rather than stalling a request.

Architecture:

  - Publisher: non-blocking Emit, owned by the auth service.
  - Sink: pluggable destination (slog by default, channel for tests).
  - Close: drains buffered events before shutdown.
*/
package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Event types emitted by the authentication flows.
const (
	EventLoginFailed   = "LOGIN_FAILED"
	EventLoggedIn      = "LOGGED_IN"
	EventLoggedOut     = "LOGGED_OUT"
	EventPasswordReset = "PASSWORD_RESET"
)

// defaultBufferSize bounds the number of in-flight events.
const defaultBufferSize = 256

// Event is a single security-relevant occurrence.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	UserID    int       `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
}

// Sink is the destination for dispatched events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// SlogSink writes events to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

// Emit implements [Sink].
func (s SlogSink) Emit(ctx context.Context, event Event) {
	s.Logger.InfoContext(ctx, "audit_event",
		slog.String("event_type", event.EventType),
		slog.Int("user_id", event.UserID),
		slog.String("username", event.Username),
		slog.Bool("success", event.Success),
		slog.String("detail", event.Detail),
	)
}

// Publisher dispatches events to a sink from a background goroutine.
type Publisher struct {
	sink      Sink
	ch        chan Event
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewPublisher starts the dispatch goroutine for the given sink.
func NewPublisher(sink Sink) *Publisher {
	p := &Publisher{
		sink: sink,
		ch:   make(chan Event, defaultBufferSize),
		done: make(chan struct{}),
	}

	p.wg.Add(1)
	go p.run()

	return p
}

// run delivers events until Close, then drains whatever is buffered.
func (p *Publisher) run() {
	defer p.wg.Done()

	for {
		select {
		case event := <-p.ch:
			p.sink.Emit(context.Background(), event)
		case <-p.done:
			for {
				select {
				case event := <-p.ch:
					p.sink.Emit(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// Emit queues an event without blocking. The timestamp is stamped here if
// the caller left it zero. Events are dropped when the buffer is full.
func (p *Publisher) Emit(event Event) {
	if p == nil || p.closed.Load() {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	select {
	case p.ch <- event:
	case <-p.done:
	default:
		p.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded due to a full buffer.
func (p *Publisher) Dropped() uint64 {
	if p == nil {
		return 0
	}
	return p.dropped.Load()
}

// Close stops the publisher and waits for buffered events to be delivered.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.done)
		p.wg.Wait()
	})
}
