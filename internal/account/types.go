// Package account owns the authenticated account view: a reducer FSM that
// keeps one beneficiary's aggregate in sync with the server and funnels the
// user-triggered account actions through a single event loop.
package account

import (
	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/pkg/types"
)

// Phase is the sync lifecycle of the account snapshot.
type Phase string

const (
	// PhaseIdle means no fetch has been issued yet.
	PhaseIdle Phase = "Idle"
	// PhaseLoading means a fetch is in flight.
	PhaseLoading Phase = "Loading"
	// PhaseReady means the snapshot reflects the last successful fetch.
	PhaseReady Phase = "Ready"
	// PhaseFailed means the last fetch failed and the snapshot was discarded.
	PhaseFailed Phase = "Failed"
)

// ActionKind identifies a user-triggered account action.
type ActionKind string

const (
	// ActionRequestAllowance asks the server to start computing an allowance.
	ActionRequestAllowance ActionKind = "request-allowance"
	// ActionRefuseAllowance records a refusal. Local-only for now: the
	// backend exposes no refusal endpoint.
	ActionRefuseAllowance ActionKind = "refuse-allowance"
	// ActionAdvanceMonth advances the owning prefecture to the next month.
	ActionAdvanceMonth ActionKind = "advance-month"
)

// ActionStatus tracks the account action orthogonally to the sync phase: a
// fetch can be loading while an action outcome is still displayed.
type ActionStatus string

const (
	// ActionNone means no action has run since the last reset.
	ActionNone ActionStatus = "None"
	// ActionInFlight means an action is awaiting its gateway outcome.
	ActionInFlight ActionStatus = "InFlight"
	// ActionCompleted means the last action finished; see Outcome.
	ActionCompleted ActionStatus = "Completed"
)

// Outcome is the terminal result of one account action.
type Outcome struct {
	OK      bool
	Message string
}

// ActionState is the orthogonal action axis of the controller state.
//
// Kind alone identifies the action: every allowance action targets
// AllowanceTypeRSA today, so the allowance type is not tracked separately.
// If more types arrive, the type token joins Kind as the identifier.
type ActionState struct {
	Status  ActionStatus
	Kind    ActionKind
	Outcome *Outcome
}

// State is the loop-owned controller state. The Account pointer is replaced
// wholesale on every successful fetch and never mutated in place, so a
// shallow copy of State is a safe snapshot.
type State struct {
	Address address.Address

	Phase         Phase
	Account       *types.Account
	FailureReason string

	// FetchGen increments on every issued fetch. Fetch results carry the
	// generation they were issued under; a stale result is dropped so the
	// latest refresh always wins.
	FetchGen int64

	Action ActionState
}

// followUpTimer is the single named timer of this controller. Arming it
// again supersedes any pending fire.
const followUpTimer = "follow-up-refresh"

// followUpDelayMs is how long after a successful mutation the controller
// waits before re-fetching, giving the backend actors time to settle.
const followUpDelayMs = 1000

// Inputs

// Command is a marker for caller-submitted inputs.
type Command interface {
	actor.Input
	isAccountCommand()
}

// Event is a marker for runtime-emitted inputs.
type Event interface {
	actor.Input
	isAccountEvent()
}

// cmdRefresh asks for a fresh fetch of the account aggregate.
type cmdRefresh struct {
	actor.InputBase
}

func (cmdRefresh) isAccountCommand() {}

// cmdRequestAllowance starts an allowance request. Reply receives nil when
// the action was accepted, or the rejection reason.
type cmdRequestAllowance struct {
	actor.InputBase
	Type  types.AllowanceType
	Reply chan error
}

func (cmdRequestAllowance) isAccountCommand() {}

// cmdRefuseAllowance records an allowance refusal.
type cmdRefuseAllowance struct {
	actor.InputBase
	Type  types.AllowanceType
	Reply chan error
}

func (cmdRefuseAllowance) isAccountCommand() {}

// cmdAdvanceMonth triggers month advancement on the owning prefecture.
type cmdAdvanceMonth struct {
	actor.InputBase
	Reply chan error
}

func (cmdAdvanceMonth) isAccountCommand() {}

// cmdClearOutcome resets a Completed action back to None so the view stops
// displaying the old outcome.
type cmdClearOutcome struct {
	actor.InputBase
}

func (cmdClearOutcome) isAccountCommand() {}

// evFetchSucceeded delivers a fetched aggregate for generation Gen.
type evFetchSucceeded struct {
	actor.InputBase
	Gen     int64
	Account *types.Account
}

func (evFetchSucceeded) isAccountEvent() {}

// evFetchFailed reports a failed fetch issued under generation Gen.
type evFetchFailed struct {
	actor.InputBase
	Gen    int64
	Reason string
}

func (evFetchFailed) isAccountEvent() {}

// evActionSucceeded reports the gateway success of the in-flight action.
type evActionSucceeded struct {
	actor.InputBase
	Kind    ActionKind
	Message string
}

func (evActionSucceeded) isAccountEvent() {}

// evActionFailed reports the gateway failure of the in-flight action.
type evActionFailed struct {
	actor.InputBase
	Kind   ActionKind
	Reason string
}

func (evActionFailed) isAccountEvent() {}

// evTimerFired reports that a named timer elapsed.
type evTimerFired struct {
	actor.InputBase
	Name  string
	NowMs int64
}

func (evTimerFired) isAccountEvent() {}

// Effects

// effFetchAccount fetches the aggregate under the given generation.
type effFetchAccount struct {
	actor.EffectBase
	Gen int64
}

// effRequestAllowance posts an allowance request to the gateway.
type effRequestAllowance struct {
	actor.EffectBase
	Type types.AllowanceType
}

// effAdvanceMonth posts next-month to the prefecture owning the address.
type effAdvanceMonth struct {
	actor.EffectBase
}

// effStartTimer arms a named single-shot timer, superseding any pending one
// with the same name.
type effStartTimer struct {
	actor.EffectBase
	Name    string
	AfterMs int64
}

// effCancelTimer cancels a named timer if armed.
type effCancelTimer struct {
	actor.EffectBase
	Name string
}
