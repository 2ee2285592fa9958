// Package actortest provides fakes for testing reducers and loops without
// touching the network or real timers.
package actortest

import (
	"context"
	"sync"

	"github.com/cavworks/cav-cli/internal/actor"
)

// FakeRuntime records effects and can synthesize follow-up inputs.
type FakeRuntime struct {
	mu      sync.Mutex
	effects []actor.Effect

	// EmitFn, when non-nil, is invoked for each effect during HandleEffects so
	// tests can answer effects with events synchronously.
	EmitFn func(ctx context.Context, eff actor.Effect, emit func(actor.Input))
}

// HandleEffects implements actor.Runtime.
func (r *FakeRuntime) HandleEffects(ctx context.Context, effects []actor.Effect, emit func(actor.Input)) {
	r.mu.Lock()
	r.effects = append(r.effects, effects...)
	emitFn := r.EmitFn
	r.mu.Unlock()

	if emitFn != nil {
		for _, eff := range effects {
			emitFn(ctx, eff, emit)
		}
	}
}

// Stop implements actor.Runtime.
func (r *FakeRuntime) Stop() {}

// Effects returns a snapshot of recorded effects in order.
func (r *FakeRuntime) Effects() []actor.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]actor.Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Reset clears recorded effects.
func (r *FakeRuntime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = nil
}
