// Package actor provides the small event-loop scaffold the CAV controllers
// run on: a single goroutine owns all mutable state, a pure reducer maps
// (state, input) to (state, effects), and a runtime interprets effects
// asynchronously and feeds resulting events back into the mailbox.
//
// Keeping every transition on one goroutine gives the client its cooperative
// single-threaded model: the account snapshot is swapped atomically, readers
// never observe a half-applied aggregate, and reducers stay deterministic and
// unit-testable without any I/O.
package actor

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned when an input is submitted to a stopped loop.
var ErrStopped = errors.New("actor stopped")

// Input is an item delivered to the mailbox: either a command from a caller
// or an event emitted by the runtime.
type Input interface {
	isActorInput()
}

// Effect is a declarative side-effect produced by a reducer. Effects are
// data, not execution; the Runtime interprets them.
type Effect interface {
	isActorEffect()
}

// ReducerFunc is a pure state transition. It must not perform I/O, spawn
// goroutines, or read the clock; timestamps and identifiers arrive via
// inputs so that a given (state, input) pair always reduces the same way.
type ReducerFunc[S any] func(state S, input Input) (next S, effects []Effect)

// Runtime interprets effects and emits follow-up inputs back to the loop.
//
// Implementations must not touch loop state; long-running work (network
// calls, timers) runs asynchronously and reports back through emit. Once the
// context is canceled, implementations must stop emitting.
type Runtime interface {
	HandleEffects(ctx context.Context, effects []Effect, emit func(Input))

	// Stop releases any background work. Safe to call multiple times.
	Stop()
}

// TransitionHook observes applied transitions, for logging and tests.
type TransitionHook[S any] func(prev S, next S, input Input)

// Loop runs a single-threaded event loop that owns state of type S.
type Loop[S any] struct {
	reduce  ReducerFunc[S]
	runtime Runtime
	onStep  TransitionHook[S]

	mu     sync.Mutex
	state  S
	inbox  chan Input
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Option configures a Loop.
type Option[S any] func(*Loop[S])

// WithTransitionHook attaches an observer called after each applied
// transition.
func WithTransitionHook[S any](hook TransitionHook[S]) Option[S] {
	return func(l *Loop[S]) { l.onStep = hook }
}

// WithMailboxSize overrides the mailbox buffer size.
func WithMailboxSize[S any](n int) Option[S] {
	return func(l *Loop[S]) {
		if n > 0 {
			l.inbox = make(chan Input, n)
		}
	}
}

// New creates a loop with initial state, reducer, and runtime. The loop does
// not process inputs until Start is called.
func New[S any](initial S, reducer ReducerFunc[S], runtime Runtime, opts ...Option[S]) *Loop[S] {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop[S]{
		reduce:  reducer,
		runtime: runtime,
		state:   initial,
		inbox:   make(chan Input, 64),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start launches the loop goroutine. Idempotent.
func (l *Loop[S]) Start() {
	l.once.Do(func() { go l.run() })
}

// Stop cancels the loop and stops the runtime. Safe to call multiple times.
func (l *Loop[S]) Stop() {
	l.cancel()
	if l.runtime != nil {
		l.runtime.Stop()
	}
}

// Done returns a channel that closes when the loop goroutine exits.
func (l *Loop[S]) Done() <-chan struct{} { return l.done }

// Submit delivers an input to the mailbox, blocking until the mailbox
// accepts it or the loop stops. User-triggered commands must not be silently
// dropped, so unlike runtime events there is no best-effort path here.
func (l *Loop[S]) Submit(input Input) error {
	if input == nil {
		return nil
	}
	select {
	case <-l.ctx.Done():
		return ErrStopped
	case l.inbox <- input:
		return nil
	}
}

// TrySubmit delivers an input without blocking. It reports false when the
// mailbox is full or the loop has stopped; runtime events use this path so a
// wedged consumer cannot deadlock a timer callback.
func (l *Loop[S]) TrySubmit(input Input) bool {
	if input == nil {
		return false
	}
	select {
	case <-l.ctx.Done():
		return false
	default:
	}
	select {
	case l.inbox <- input:
		return true
	default:
		return false
	}
}

// State returns a snapshot of the current loop state. Intended for views and
// tests; behavior should be driven by reducer outputs, not polled state.
func (l *Loop[S]) State() S {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop[S]) run() {
	defer close(l.done)

	emit := func(in Input) {
		_ = l.TrySubmit(in)
	}

	for {
		select {
		case <-l.ctx.Done():
			return
		case in := <-l.inbox:
			if in == nil {
				continue
			}

			l.mu.Lock()
			prev := l.state
			l.mu.Unlock()

			next, effects := l.reduce(prev, in)

			l.mu.Lock()
			l.state = next
			l.mu.Unlock()

			if l.onStep != nil {
				l.onStep(prev, next, in)
			}
			if l.runtime != nil && len(effects) > 0 {
				l.runtime.HandleEffects(l.ctx, effects, emit)
			}
		}
	}
}
