package account

import (
	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/pkg/types"
)

// reduce is the pure transition function of the account controller. All
// gateway calls and timers happen in the Runtime; the reducer only maps
// (state, input) to (state, effects).
func reduce(state State, input actor.Input) (State, []actor.Effect) {
	switch in := input.(type) {
	case cmdRefresh:
		return startFetch(state)

	case evFetchSucceeded:
		if in.Gen != state.FetchGen {
			// A newer refresh was issued after this fetch left; drop it.
			return state, nil
		}
		state.Phase = PhaseReady
		state.Account = in.Account
		state.FailureReason = ""
		return state, nil

	case evFetchFailed:
		if in.Gen != state.FetchGen {
			return state, nil
		}
		state.Phase = PhaseFailed
		state.Account = nil
		state.FailureReason = in.Reason
		return state, nil

	case cmdRequestAllowance:
		if err := allowanceGate(state, in.Type); err != nil {
			reply(in.Reply, err)
			return state, nil
		}
		reply(in.Reply, nil)
		state.Action = ActionState{Status: ActionInFlight, Kind: ActionRequestAllowance}
		return state, []actor.Effect{
			effCancelTimer{Name: followUpTimer},
			effRequestAllowance{Type: in.Type},
		}

	case cmdRefuseAllowance:
		if err := allowanceGate(state, in.Type); err != nil {
			reply(in.Reply, err)
			return state, nil
		}
		reply(in.Reply, nil)
		// No refusal endpoint exists; record the outcome locally and leave
		// the snapshot untouched.
		state.Action = ActionState{
			Status: ActionCompleted,
			Kind:   ActionRefuseAllowance,
			Outcome: &Outcome{
				OK:      true,
				Message: "refusal noted locally; the service does not accept refusals yet",
			},
		}
		return state, nil

	case cmdAdvanceMonth:
		if err := actionGate(state); err != nil {
			reply(in.Reply, err)
			return state, nil
		}
		reply(in.Reply, nil)
		state.Action = ActionState{Status: ActionInFlight, Kind: ActionAdvanceMonth}
		return state, []actor.Effect{
			effCancelTimer{Name: followUpTimer},
			effAdvanceMonth{},
		}

	case cmdClearOutcome:
		if state.Action.Status == ActionCompleted {
			state.Action = ActionState{Status: ActionNone}
		}
		return state, nil

	case evActionSucceeded:
		if state.Action.Status != ActionInFlight || state.Action.Kind != in.Kind {
			return state, nil
		}
		state.Action = ActionState{
			Status:  ActionCompleted,
			Kind:    in.Kind,
			Outcome: &Outcome{OK: true, Message: in.Message},
		}
		// The server mutated asynchronously; re-fetch shortly so the view
		// picks up the settled result. Arming by name supersedes any pending
		// follow-up.
		return state, []actor.Effect{
			effStartTimer{Name: followUpTimer, AfterMs: followUpDelayMs},
		}

	case evActionFailed:
		if state.Action.Status != ActionInFlight || state.Action.Kind != in.Kind {
			return state, nil
		}
		state.Action = ActionState{
			Status:  ActionCompleted,
			Kind:    in.Kind,
			Outcome: &Outcome{OK: false, Message: in.Reason},
		}
		// Nothing changed server-side; no follow-up fetch.
		return state, nil

	case evTimerFired:
		if in.Name != followUpTimer {
			return state, nil
		}
		return startFetch(state)

	default:
		return state, nil
	}
}

// startFetch moves to Loading under a fresh generation. The previous
// snapshot stays visible until the fetch resolves; a pending follow-up
// refresh would only duplicate this fetch, so it is canceled.
func startFetch(state State) (State, []actor.Effect) {
	state.FetchGen++
	state.Phase = PhaseLoading
	return state, []actor.Effect{
		effCancelTimer{Name: followUpTimer},
		effFetchAccount{Gen: state.FetchGen},
	}
}

// actionGate decides whether a new account action may start.
func actionGate(state State) error {
	if state.Phase != PhaseReady {
		return ErrNotReady
	}
	if state.Action.Status == ActionInFlight {
		return ErrActionInFlight
	}
	return nil
}

// allowanceGate additionally requires the targeted prevision to be UNWANTED
// (or absent). Once a request is PENDING or has settled UP_TO_DATE, neither
// requesting nor refusing is offered.
func allowanceGate(state State, allowanceType types.AllowanceType) error {
	if err := actionGate(state); err != nil {
		return err
	}
	prevision, ok := state.Account.AllowancePrevisions[allowanceType]
	if ok && prevision.State != types.PrevisionUnwanted {
		return ErrAllowanceNotRequestable
	}
	return nil
}

// reply completes a command's reply channel without ever blocking the loop.
func reply(ch chan error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
