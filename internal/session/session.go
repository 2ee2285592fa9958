// Package session tracks who the client is acting as: which screen is shown
// while unauthenticated, and the beneficiary address once a login or account
// creation succeeds.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/internal/gateway"
)

// Mode is the top-level screen of the client.
type Mode string

const (
	// ModeLogin shows the address entry form.
	ModeLogin Mode = "LOGIN"
	// ModeCreate shows the account creation form.
	ModeCreate Mode = "CREATE"
	// ModeAuthenticated means an address is established and the account view
	// is active.
	ModeAuthenticated Mode = "AUTHENTICATED"
)

// loginTimeout bounds the existence check during login. It is the only
// client-side deadline in the application.
const loginTimeout = 5 * time.Second

// State is the session snapshot. Address is non-nil exactly when Mode is
// ModeAuthenticated.
type State struct {
	Mode    Mode
	Address *address.Address
}

// Authenticated reports whether the session holds an established address.
func (s State) Authenticated() bool {
	return s.Mode == ModeAuthenticated && s.Address != nil
}

// Controller owns the session state. All mutations hold the lock and always
// write Mode and Address together, so a snapshot never pairs
// ModeAuthenticated with a nil address.
type Controller struct {
	gw  *gateway.Client
	log *logrus.Logger

	mu    sync.Mutex
	state State
}

// NewController creates a session starting on the login screen.
func NewController(gw *gateway.Client, log *logrus.Logger) *Controller {
	return &Controller{
		gw:    gw,
		log:   log,
		state: State{Mode: ModeLogin},
	}
}

// Login validates the raw address and confirms the account exists before
// establishing the session. The existence check runs under a 5 second
// deadline so a dead server cannot hang the login form.
//
// Callers distinguish failure classes with errors.Is(err, gateway.ErrNotFound)
// and gateway.IsTimeout(err).
func (c *Controller) Login(ctx context.Context, raw string) (address.Address, error) {
	addr, err := address.Parse(raw)
	if err != nil {
		return address.Address{}, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	if _, err := c.gw.FetchAccount(fetchCtx, addr); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return address.Address{}, fmt.Errorf("no account at %s: %w", addr, gateway.ErrNotFound)
		}
		if gateway.IsTimeout(err) {
			return address.Address{}, fmt.Errorf("server did not answer within %s: %w", loginTimeout, err)
		}
		return address.Address{}, fmt.Errorf("login check failed: %w", err)
	}

	c.mu.Lock()
	c.state = State{Mode: ModeAuthenticated, Address: &addr}
	c.mu.Unlock()

	c.log.WithField("address", addr.String()).Info("session established")
	return addr, nil
}

// AccountCreated establishes the session with a freshly created address. The
// server just returned it, so no existence check is performed.
func (c *Controller) AccountCreated(addr address.Address) {
	c.mu.Lock()
	c.state = State{Mode: ModeAuthenticated, Address: &addr}
	c.mu.Unlock()

	c.log.WithField("address", addr.String()).Info("session established for new account")
}

// Logout clears the address and returns to the login screen. The caller is
// responsible for discarding its account controller; a later login starts a
// fresh one.
func (c *Controller) Logout() {
	c.mu.Lock()
	c.state = State{Mode: ModeLogin}
	c.mu.Unlock()
}

// ShowCreateAccount switches the unauthenticated screen to the creation
// form. No-op once authenticated.
func (c *Controller) ShowCreateAccount() {
	c.switchUnauthenticated(ModeCreate)
}

// ShowLogin switches the unauthenticated screen back to the login form.
// No-op once authenticated.
func (c *Controller) ShowLogin() {
	c.switchUnauthenticated(ModeLogin)
}

func (c *Controller) switchUnauthenticated(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Mode == ModeAuthenticated {
		return
	}
	c.state = State{Mode: mode}
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.state
	if c.state.Address != nil {
		addr := *c.state.Address
		snap.Address = &addr
	}
	return snap
}
