package account

import "errors"

// ErrNotReady is returned when an account action is submitted before the
// snapshot reached Ready.
var ErrNotReady = errors.New("account not loaded yet")

// ErrActionInFlight is returned when an account action is submitted while
// another one is still awaiting its outcome.
var ErrActionInFlight = errors.New("another action is in flight")

// ErrAllowanceNotRequestable is returned when a request or refusal targets a
// prevision that is not UNWANTED: a PENDING or UP_TO_DATE prevision offers
// neither action.
var ErrAllowanceNotRequestable = errors.New("allowance is already requested or settled")
