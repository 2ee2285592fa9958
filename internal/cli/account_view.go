package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/cavworks/cav-cli/internal/account"
	"github.com/cavworks/cav-cli/pkg/types"
)

// AccountView runs the interactive loop over the authenticated account. It
// returns when the user quits; logout loops back into LoginCommand's flow by
// returning to the caller with an unauthenticated session.
func (a *App) AccountView(ctx context.Context) error {
	snap := a.Session.Snapshot()
	if !snap.Authenticated() {
		return fmt.Errorf("account view requires an authenticated session")
	}
	addr := *snap.Address

	controller := account.NewController(a.Gateway, addr, a.Log)
	defer controller.Stop()

	if err := controller.Refresh(); err != nil {
		return err
	}
	waitWhileLoading(controller)

	for {
		snap := controller.Snapshot()
		renderAccount(snap, a.Config.Debug)

		answer, err := a.prompt("action ("+strings.Join(availableActions(snap), "/")+")", "refresh")
		if err != nil {
			return err
		}

		switch strings.ToLower(answer) {
		case "refresh", "r":
			if err := controller.Refresh(); err != nil {
				return err
			}
			waitWhileLoading(controller)
		case "request":
			a.submitAction(controller, func() error {
				return controller.RequestAllowance(types.AllowanceTypeRSA)
			})
		case "refuse":
			a.submitAction(controller, func() error {
				return controller.RefuseAllowance(types.AllowanceTypeRSA)
			})
		case "advance":
			a.submitAction(controller, func() error {
				return controller.AdvanceMonth()
			})
		case "qr":
			if err := PrintAddressQR(addr); err != nil {
				fmt.Printf("Could not render QR code: %v\n", err)
			}
		case "logout":
			a.Session.Logout()
			return nil
		case "quit", "q", "exit":
			return nil
		default:
			fmt.Printf("Unknown action %q.\n", answer)
		}
	}
}

// submitAction runs one account action and waits for its outcome plus the
// follow-up refresh, so the next render shows settled state.
func (a *App) submitAction(controller *account.Controller, submit func() error) {
	if err := submit(); err != nil {
		fmt.Printf("Action rejected: %v\n", err)
		return
	}

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		snap := controller.Snapshot()
		if snap.Action.Status == account.ActionCompleted && snap.Phase != account.PhaseLoading {
			if snap.Action.Outcome != nil {
				fmt.Println(snap.Action.Outcome.Message)
			}
			// Give the delayed re-fetch a chance to land before rendering.
			time.Sleep(1500 * time.Millisecond)
			waitWhileLoading(controller)
			_ = controller.ClearOutcome()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	fmt.Println("The action is still pending; refresh to see its outcome.")
}

// availableActions lists the menu entries valid for the snapshot. Request
// and refuse only appear while the RSA prevision is UNWANTED (or absent);
// a PENDING or settled prevision offers neither.
func availableActions(snap account.State) []string {
	actions := []string{"refresh"}
	if allowanceRequestable(snap) {
		actions = append(actions, "request", "refuse")
	}
	return append(actions, "advance", "qr", "logout", "quit")
}

func allowanceRequestable(snap account.State) bool {
	if snap.Phase != account.PhaseReady {
		return false
	}
	prevision, ok := snap.Account.AllowancePrevisions[types.AllowanceTypeRSA]
	return !ok || prevision.State == types.PrevisionUnwanted
}

func waitWhileLoading(controller *account.Controller) {
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		if controller.Snapshot().Phase != account.PhaseLoading {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func renderAccount(snap account.State, debug bool) {
	fmt.Println()
	fmt.Printf("=== Account %s ===\n", snap.Address)

	switch snap.Phase {
	case account.PhaseFailed:
		fmt.Printf("Could not load the account: %s\n", snap.FailureReason)
		fmt.Println("Use 'refresh' to retry.")
		return
	case account.PhaseIdle, account.PhaseLoading:
		fmt.Println("Loading...")
		return
	}

	acc := snap.Account
	fmt.Printf("%s %s <%s>\n", acc.Profile.FirstName, acc.Profile.LastName, acc.Profile.Email)
	if acc.CurrentMonth != "" {
		fmt.Printf("Current month: %s\n", acc.CurrentMonth)
	}

	if len(acc.AllowancePrevisions) == 0 {
		fmt.Println("No allowance previsions.")
	}
	for allowanceType, prevision := range acc.AllowancePrevisions {
		line := fmt.Sprintf("%s: %s", allowanceType, prevision.State)
		if prevision.LastAmount != nil {
			line += fmt.Sprintf(" (last amount %s)", prevision.LastAmount)
		}
		if prevision.LastMessage != nil {
			line += ": " + *prevision.LastMessage
		}
		fmt.Println(line)
	}

	if len(acc.Payments) == 0 {
		fmt.Println("No payments yet.")
	} else {
		fmt.Println("Payments:")
		for _, payment := range acc.Payments {
			fmt.Printf("  %-30s %10s\n", payment.Label, payment.Amount)
		}
	}

	if debug {
		spew.Dump(snap)
	}
}
