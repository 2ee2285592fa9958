package cli

import (
	"context"
	"fmt"

	"github.com/cavworks/cav-cli/internal/gateway"
)

// CreateAccountCommand runs the creation form directly (the `create-account`
// subcommand), then enters the account view.
func (a *App) CreateAccountCommand(ctx context.Context) error {
	a.Session.ShowCreateAccount()
	created, err := a.runCreateForm(ctx)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	return a.AccountView(ctx)
}

// runCreateForm collects a profile draft and submits it. It reports whether
// an account was created; false means the user backed out to login.
func (a *App) runCreateForm(ctx context.Context) (bool, error) {
	fmt.Println("Create a beneficiary account. Leave the first name empty to go back.")

	draft := gateway.ProfileDraft{}
	var err error

	if draft.FirstName, err = a.prompt("first name", ""); err != nil {
		return false, err
	}
	if draft.FirstName == "" {
		return false, nil
	}
	if draft.LastName, err = a.prompt("last name", ""); err != nil {
		return false, err
	}
	if draft.BirthDate, err = a.prompt("birth date (YYYY-MM-DD)", ""); err != nil {
		return false, err
	}
	if draft.Email, err = a.prompt("email", ""); err != nil {
		return false, err
	}
	if draft.PhoneNumber, err = a.prompt("phone number", ""); err != nil {
		return false, err
	}
	if draft.Address, err = a.prompt("postal address", ""); err != nil {
		return false, err
	}
	if draft.InCouple, err = a.promptBool("living in a couple", false); err != nil {
		return false, err
	}
	if draft.NumberOfDependents, err = a.prompt("number of dependents", "0"); err != nil {
		return false, err
	}
	if draft.MonthlyIncome, err = a.prompt("monthly income", "0"); err != nil {
		return false, err
	}
	if draft.HasHousing, err = a.promptBool("has housing", false); err != nil {
		return false, err
	}
	if draft.IBAN, err = a.prompt("IBAN", ""); err != nil {
		return false, err
	}

	addr, err := a.Gateway.CreateAccount(ctx, draft)
	if err != nil {
		fmt.Printf("Account creation failed: %v\n", err)
		return false, nil
	}

	a.Session.AccountCreated(addr)
	a.rememberLogin(addr)
	fmt.Printf("Account created. Your beneficiary address is %s. Keep it safe: it is your only credential.\n", addr)
	return true, nil
}
