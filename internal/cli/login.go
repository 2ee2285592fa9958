package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/internal/gateway"
	"github.com/cavworks/cav-cli/internal/session"
	"github.com/cavworks/cav-cli/internal/storage"
)

// LoginCommand runs the login prompt until a session is established or the
// user switches to account creation, then enters the account view.
func (a *App) LoginCommand(ctx context.Context) error {
	for {
		switch a.Session.Snapshot().Mode {
		case session.ModeCreate:
			created, err := a.runCreateForm(ctx)
			if err != nil {
				return err
			}
			if !created {
				a.Session.ShowLogin()
				continue
			}
		default:
			if err := a.runLoginForm(ctx); err != nil {
				return err
			}
		}

		if a.Session.Snapshot().Authenticated() {
			return a.AccountView(ctx)
		}
	}
}

// runLoginForm asks for an address and attempts login. Returning with an
// unauthenticated session means the user asked for the creation form.
func (a *App) runLoginForm(ctx context.Context) error {
	defaultAddr := ""
	if record, ok, err := storage.LoadLastLogin(a.Config.CavHome); err != nil {
		a.Log.WithError(err).Warn("could not read last login")
	} else if ok {
		defaultAddr = record.Address
	}

	fmt.Println("Enter your beneficiary address, or 'new' to create an account.")
	for {
		raw, err := a.prompt("address", defaultAddr)
		if err != nil {
			return err
		}
		if raw == "new" {
			a.Session.ShowCreateAccount()
			return nil
		}

		addr, err := a.Session.Login(ctx, raw)
		if err != nil {
			printLoginFailure(raw, err)
			continue
		}

		a.rememberLogin(addr)
		fmt.Printf("Logged in as %s\n", addr)
		return nil
	}
}

func printLoginFailure(raw string, err error) {
	var verr *address.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Printf("%q is not a valid address: expected serverId:actorNumber in lowercase hex.\n", raw)
	case errors.Is(err, gateway.ErrNotFound):
		fmt.Printf("No account exists at %s. Check the address or create an account with 'new'.\n", raw)
	case gateway.IsTimeout(err):
		fmt.Println("The server did not answer in time. Is it running? Try again.")
	default:
		fmt.Printf("Login failed: %v\n", err)
	}
}

func (a *App) rememberLogin(addr address.Address) {
	err := storage.SaveLastLogin(a.Config.CavHome, storage.LastLogin{
		Address:   addr.String(),
		ServerURL: a.Config.ServerURL,
	})
	if err != nil {
		a.Log.WithError(err).Warn("could not persist last login")
	}
}
