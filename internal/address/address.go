// Package address implements the actor address codec.
//
// An actor address locates a beneficiary's backing entity on a specific
// server instance. Its wire form is "serverId:actorNumber" where both tokens
// are lowercase hexadecimal. This package is the single normalization point:
// raw address strings are parsed here and nowhere else, so the rest of the
// client only ever sees the structured form.
package address

import (
	"fmt"
	"regexp"
)

// wirePattern is the strict lexical shape of a wire-form address. No
// surrounding whitespace, no uppercase hex, exactly two tokens.
var wirePattern = regexp.MustCompile(`^[0-9a-f]+:[0-9a-f]+$`)

// Address is the structured form of an actor address.
type Address struct {
	ServerID    string
	ActorNumber string
}

// ValidationError reports a malformed wire-form address.
type ValidationError struct {
	Input string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid actor address %q: want serverId:actorNumber with lowercase hex tokens", e.Input)
}

// Parse converts a wire-form string into an Address.
//
// It fails with *ValidationError unless the input matches the two-token
// pattern exactly; it never coerces near-misses.
func Parse(input string) (Address, error) {
	if !wirePattern.MatchString(input) {
		return Address{}, &ValidationError{Input: input}
	}
	for i := 0; i < len(input); i++ {
		if input[i] == ':' {
			return Address{ServerID: input[:i], ActorNumber: input[i+1:]}, nil
		}
	}
	// Unreachable: the pattern guarantees a colon.
	return Address{}, &ValidationError{Input: input}
}

// String returns the canonical wire form. It is the inverse of Parse on
// valid input: Parse(a.String()) == a.
func (a Address) String() string {
	return a.ServerID + ":" + a.ActorNumber
}

// IsZero reports whether the address is the zero value.
func (a Address) IsZero() bool {
	return a.ServerID == "" && a.ActorNumber == ""
}
