// Package types defines the wire/domain types exchanged with the CAV
// service: beneficiary accounts, allowance previsions, payments, and the
// server descriptors used for network discovery.
//
// All of these are client-side views. The server is authoritative; the
// client never mutates an Account field in place and instead replaces the
// whole aggregate with the next fetch result.
package types

import (
	"github.com/shopspring/decimal"
)

// AllowanceType identifies a benefit type managed by the service.
//
// The model is open-ended (previsions are keyed by type), but the backend
// currently manages a single type.
type AllowanceType string

// AllowanceTypeRSA is the only allowance type the backend computes today.
const AllowanceTypeRSA AllowanceType = "RSA"

// PrevisionState is the lifecycle state of an allowance prevision.
//
// The client only ever requests the UNWANTED -> PENDING transition; the
// server decides whether and when PENDING settles to UP_TO_DATE (or reverts).
type PrevisionState string

const (
	// PrevisionUnwanted means the beneficiary has not requested this allowance.
	PrevisionUnwanted PrevisionState = "UNWANTED"
	// PrevisionPending means a calculation request is in flight server-side.
	PrevisionPending PrevisionState = "PENDING"
	// PrevisionUpToDate means the latest calculator result has been applied.
	PrevisionUpToDate PrevisionState = "UP_TO_DATE"
)

// AllowancePrevision is the client's current view of one allowance type.
type AllowancePrevision struct {
	State       PrevisionState   `json:"state"`
	LastAmount  *decimal.Decimal `json:"lastAmount"`
	LastMessage *string          `json:"lastMessage"`
}

// Payment is one historical allowance payment. Records are append-only and
// immutable once returned by the server.
type Payment struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Profile is the beneficiary profile created at account creation.
//
// The client renders it but never mutates it directly.
type Profile struct {
	BeneficiaryNumber  string          `json:"beneficiaryNumber,omitempty"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	BirthDate          string          `json:"birthDate,omitempty"`
	Email              string          `json:"email"`
	PhoneNumber        string          `json:"phoneNumber,omitempty"`
	Address            string          `json:"address,omitempty"`
	InCouple           bool            `json:"inCouple"`
	NumberOfDependents int             `json:"numberOfDependents"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	HasHousing         bool            `json:"hasHousing"`
	IBAN               string          `json:"iban,omitempty"`
	RegistrationDate   string          `json:"registrationDate,omitempty"`
}

// Account is the aggregate root returned by GET /api/accounts/{address}.
type Account struct {
	Profile             Profile                              `json:"profile"`
	Payments            []Payment                            `json:"payments"`
	AllowancePrevisions map[AllowanceType]AllowancePrevision `json:"allowancePrevisions"`
	CurrentMonth        string                               `json:"currentMonth,omitempty"`
}

// ServerDescriptor describes one backend node for discovery display.
type ServerDescriptor struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// Prefecture is one entry of the prefecture listing.
type Prefecture struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PrefectureState is the administrative state of one prefecture server.
type PrefectureState struct {
	Status       string `json:"status"`
	CurrentMonth string `json:"currentMonth"`
}
