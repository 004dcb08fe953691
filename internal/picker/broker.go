// Package picker correlates picker requests with their results so several
// pickers can be open at once without overwriting each other's outcome.
package picker

import (
	"sync"

	"github.com/google/uuid"

	"vaultwidget/internal/apperr"
)

// Kind is what a picker selects.
type Kind int

const (
	// Folder picks a vault root.
	Folder Kind = iota
	// File picks a note for a shortcut slot.
	File
)

func (k Kind) String() string {
	switch k {
	case Folder:
		return "folder"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Token identifies one outstanding request.
type Token string

// Result is delivered exactly once per request.
type Result struct {
	Token    Token
	Kind     Kind
	Value    string
	Canceled bool
}

type request struct {
	kind Kind
	ch   chan Result
}

// Broker hands out tokens and routes each result to its requester.
// The zero value is ready to use.
type Broker struct {
	mu      sync.Mutex
	pending map[Token]request
}

// NewBroker returns an empty Broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Request opens a request of the given kind. The channel receives one Result
// and is then closed.
func (b *Broker) Request(kind Kind) (Token, <-chan Result) {
	tok := Token(uuid.NewString())
	ch := make(chan Result, 1)

	b.mu.Lock()
	if b.pending == nil {
		b.pending = make(map[Token]request)
	}
	b.pending[tok] = request{kind: kind, ch: ch}
	b.mu.Unlock()

	return tok, ch
}

// Resolve completes the request with the picked value.
func (b *Broker) Resolve(tok Token, value string) error {
	return b.finish(tok, "resolve picker", func(kind Kind) Result {
		return Result{Token: tok, Kind: kind, Value: value}
	})
}

// Cancel completes the request with no value.
func (b *Broker) Cancel(tok Token) error {
	return b.finish(tok, "cancel picker", func(kind Kind) Result {
		return Result{Token: tok, Kind: kind, Canceled: true}
	})
}

// Kind reports the kind of an outstanding request.
func (b *Broker) Kind(tok Token) (Kind, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req, ok := b.pending[tok]
	return req.kind, ok
}

// Pending is the number of outstanding requests.
func (b *Broker) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

func (b *Broker) finish(tok Token, op string, result func(Kind) Result) error {
	b.mu.Lock()
	req, ok := b.pending[tok]
	delete(b.pending, tok)
	b.mu.Unlock()

	if !ok {
		return apperr.New(apperr.ErrNotFound, op, string(tok), nil)
	}
	req.ch <- result(req.kind)
	close(req.ch)
	return nil
}
