// Package audit records profile mutations as an append-only event stream.
// Emission is best effort: a failed append must never fail the mutation that
// produced it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action identifies the mutation an event records.
type Action string

const (
	ActionServerCreated        Action = "server.created"
	ActionServerWordsFlagged   Action = "server.words_flagged"
	ActionServerWordsUnflagged Action = "server.words_unflagged"
	ActionUserCreated          Action = "user.created"
	ActionUsersBulkCreated     Action = "user.bulk_created"
	ActionUserWordsFlagged     Action = "user.words_flagged"
	ActionUserWordsUnflagged   Action = "user.words_unflagged"
	ActionUserRemoved          Action = "user.removed"
)

// Event is one recorded mutation. UserID is zero for server-scope events.
type Event struct {
	ID       string    `bson:"_id" json:"id"`
	ServerID int64     `bson:"discord_server_id" json:"discord_server_id"`
	UserID   int64     `bson:"discord_user_id,omitempty" json:"discord_user_id,omitempty"`
	Action   Action    `bson:"action" json:"action"`
	Words    []string  `bson:"words,omitempty" json:"words,omitempty"`
	At       time.Time `bson:"at" json:"at"`
}

// Store is the event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByServer(ctx context.Context, serverID int64) ([]Event, error)
}

// Publisher writes events to a Store, either synchronously or through a
// buffered channel drained by a background worker.
type Publisher struct {
	store  Store
	events chan Event
	done   chan struct{}
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous mode with the given
// channel capacity. When the buffer is full, events are dropped rather than
// blocking the mutation path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.events = make(chan Event, size)
	}
}

// NewPublisher builds a publisher over the given store.
func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, done: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.events != nil {
		go p.drain()
	} else {
		close(p.done)
	}
	return p
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.events {
		// Detached from the request context: the request may be gone by the
		// time the event is written.
		_ = p.store.Append(context.Background(), event)
	}
}

// Emit records an event, stamping ID and time when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if p.events == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.events <- event:
		return nil
	default:
		// Buffer full: drop. Auditing never backpressures mutations.
		return nil
	}
}

// List returns the recorded events for a server.
func (p *Publisher) List(ctx context.Context, serverID int64) ([]Event, error) {
	return p.store.ListByServer(ctx, serverID)
}

// Close stops the background worker and flushes buffered events.
func (p *Publisher) Close() {
	if p.events != nil {
		close(p.events)
	}
	<-p.done
}
