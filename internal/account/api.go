package account

import (
	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/internal/actor"
	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/internal/gateway"
	"github.com/cavworks/cav-cli/pkg/types"
)

// Controller is the public face of the account sync loop. One controller
// serves one authenticated address; logout discards it and a new login
// builds a fresh one starting Idle.
type Controller struct {
	loop *actor.Loop[State]
}

// NewController builds and starts a controller for the given address.
func NewController(gw *gateway.Client, addr address.Address, log *logrus.Logger) *Controller {
	runtime := NewRuntime(gw, addr, log)
	initial := State{
		Address: addr,
		Phase:   PhaseIdle,
		Action:  ActionState{Status: ActionNone},
	}
	loop := actor.New(initial, reduce, runtime,
		actor.WithTransitionHook(func(prev, next State, input actor.Input) {
			if prev.Phase != next.Phase {
				log.WithFields(logrus.Fields{
					"from": prev.Phase,
					"to":   next.Phase,
				}).Debug("account phase transition")
			}
		}))
	loop.Start()
	return &Controller{loop: loop}
}

// newControllerForTest wires a controller onto an arbitrary runtime.
func newControllerForTest(addr address.Address, runtime actor.Runtime) *Controller {
	initial := State{
		Address: addr,
		Phase:   PhaseIdle,
		Action:  ActionState{Status: ActionNone},
	}
	loop := actor.New(initial, reduce, runtime)
	loop.Start()
	return &Controller{loop: loop}
}

// Refresh issues a fetch of the account aggregate. If a fetch is already in
// flight the newer one wins; the older result is dropped when it lands.
func (c *Controller) Refresh() error {
	return c.loop.Submit(cmdRefresh{})
}

// RequestAllowance starts an allowance request. It returns ErrNotReady
// before the first successful fetch and ErrActionInFlight while another
// action is pending; the eventual outcome lands in the snapshot.
func (c *Controller) RequestAllowance(allowanceType types.AllowanceType) error {
	replyCh := make(chan error, 1)
	if err := c.loop.Submit(cmdRequestAllowance{Type: allowanceType, Reply: replyCh}); err != nil {
		return err
	}
	return c.await(replyCh)
}

// RefuseAllowance records an allowance refusal. The service has no refusal
// endpoint, so the outcome is informational and local.
func (c *Controller) RefuseAllowance(allowanceType types.AllowanceType) error {
	replyCh := make(chan error, 1)
	if err := c.loop.Submit(cmdRefuseAllowance{Type: allowanceType, Reply: replyCh}); err != nil {
		return err
	}
	return c.await(replyCh)
}

// AdvanceMonth triggers month advancement on the prefecture owning this
// account's address.
func (c *Controller) AdvanceMonth() error {
	replyCh := make(chan error, 1)
	if err := c.loop.Submit(cmdAdvanceMonth{Reply: replyCh}); err != nil {
		return err
	}
	return c.await(replyCh)
}

// await reads the reducer's reply. A submit can race a concurrent Stop and
// never be reduced; the Done branch keeps the caller from blocking forever.
func (c *Controller) await(replyCh chan error) error {
	select {
	case err := <-replyCh:
		return err
	case <-c.loop.Done():
		return actor.ErrStopped
	}
}

// ClearOutcome dismisses a completed action outcome.
func (c *Controller) ClearOutcome() error {
	return c.loop.Submit(cmdClearOutcome{})
}

// Snapshot returns a copy of the controller state for rendering.
func (c *Controller) Snapshot() State {
	return c.loop.State()
}

// Stop shuts the loop down and cancels pending timers.
func (c *Controller) Stop() {
	c.loop.Stop()
}
