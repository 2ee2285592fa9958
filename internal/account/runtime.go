package account

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/internal/gateway"
)

// Runtime interprets account effects: gateway calls run on their own
// goroutines and report back as events; timers are named and single-shot.
type Runtime struct {
	gw    *gateway.Client
	addr  address.Address
	log   *logrus.Logger
	clock actor.Clock

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewRuntime creates a runtime bound to one authenticated address.
func NewRuntime(gw *gateway.Client, addr address.Address, log *logrus.Logger) *Runtime {
	return &Runtime{gw: gw, addr: addr, log: log, clock: actor.RealClock{}}
}

// HandleEffects implements actor.Runtime.
func (r *Runtime) HandleEffects(ctx context.Context, effects []actor.Effect, emit func(actor.Input)) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case effFetchAccount:
			r.fetchAccount(ctx, e, emit)
		case effRequestAllowance:
			r.requestAllowance(ctx, e, emit)
		case effAdvanceMonth:
			r.advanceMonth(ctx, emit)
		case effStartTimer:
			r.startTimer(ctx, e, emit)
		case effCancelTimer:
			r.cancelTimer(e)
		default:
			r.log.WithField("effect", eff).Warn("unhandled account effect")
		}
	}
}

// Stop implements actor.Runtime. In-flight gateway calls are abandoned; the
// loop context cancellation keeps their results from being emitted.
func (r *Runtime) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.timers {
		t.Stop()
	}
	r.timers = nil
}

func (r *Runtime) fetchAccount(ctx context.Context, eff effFetchAccount, emit func(actor.Input)) {
	go func() {
		account, err := r.gw.FetchAccount(ctx, r.addr)
		if err != nil {
			emit(evFetchFailed{Gen: eff.Gen, Reason: err.Error()})
			return
		}
		emit(evFetchSucceeded{Gen: eff.Gen, Account: account})
	}()
}

func (r *Runtime) requestAllowance(ctx context.Context, eff effRequestAllowance, emit func(actor.Input)) {
	go func() {
		message, err := r.gw.RequestAllowance(ctx, r.addr, eff.Type)
		if err != nil {
			emit(evActionFailed{Kind: ActionRequestAllowance, Reason: err.Error()})
			return
		}
		emit(evActionSucceeded{Kind: ActionRequestAllowance, Message: message})
	}()
}

func (r *Runtime) advanceMonth(ctx context.Context, emit func(actor.Input)) {
	go func() {
		month, err := r.gw.AdvanceMonth(ctx, r.addr.ServerID)
		if err != nil {
			emit(evActionFailed{Kind: ActionAdvanceMonth, Reason: err.Error()})
			return
		}
		emit(evActionSucceeded{Kind: ActionAdvanceMonth, Message: "month advanced to " + month})
	}()
}

// startTimer arms a named single-shot timer. Re-arming stops the previous
// timer first, so only the latest schedule can fire.
func (r *Runtime) startTimer(ctx context.Context, eff effStartTimer, emit func(actor.Input)) {
	if eff.Name == "" || eff.AfterMs <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timers == nil {
		r.timers = make(map[string]*time.Timer)
	}
	if prev := r.timers[eff.Name]; prev != nil {
		prev.Stop()
	}
	after := time.Duration(eff.AfterMs) * time.Millisecond
	r.timers[eff.Name] = time.AfterFunc(after, func() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		emit(evTimerFired{Name: eff.Name, NowMs: r.clock.Now().UnixMilli()})
	})
}

func (r *Runtime) cancelTimer(eff effCancelTimer) {
	if eff.Name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t := r.timers[eff.Name]; t != nil {
		t.Stop()
		delete(r.timers, eff.Name)
	}
}
