// Package gateway is the thin request layer for the four account operations
// of the CAV client API. Every failure is normalized into ErrNotFound,
// *ValidationError, or *TransportError before it crosses the package
// boundary; raw transport errors never reach the controllers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/pkg/types"
)

// Client issues account operations against one CAV client node.
//
// The underlying http.Client carries no global timeout: only the login-path
// fetch enforces a deadline, via its caller's context. This asymmetry
// mirrors the backend contract and is deliberate.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// ProfileDraft carries the raw create-account form values. Numeric fields
// arrive as the strings the user typed and are coerced before transmission.
type ProfileDraft struct {
	FirstName          string
	LastName           string
	BirthDate          string
	Email              string
	PhoneNumber        string
	Address            string
	InCouple           bool
	NumberOfDependents string
	MonthlyIncome      string
	HasHousing         bool
	IBAN               string
}

// payload converts the draft into the wire shape. Unparsable numerics
// default to 0, matching what the account form has always sent.
func (d ProfileDraft) payload() map[string]any {
	dependents, err := strconv.Atoi(strings.TrimSpace(d.NumberOfDependents))
	if err != nil || dependents < 0 {
		dependents = 0
	}
	income, err := decimal.NewFromString(strings.TrimSpace(d.MonthlyIncome))
	if err != nil {
		income = decimal.Zero
	}
	return map[string]any{
		"firstName":          d.FirstName,
		"lastName":           d.LastName,
		"birthDate":          d.BirthDate,
		"email":              d.Email,
		"phoneNumber":        d.PhoneNumber,
		"address":            d.Address,
		"inCouple":           d.InCouple,
		"numberOfDependents": dependents,
		"monthlyIncome":      income,
		"hasHousing":         d.HasHousing,
		"iban":               d.IBAN,
	}
}

// FetchAccount retrieves the account aggregate for the given address.
//
// HTTP 404 maps to ErrNotFound; any other non-2xx becomes a
// *ValidationError carrying the server body when present. A context
// deadline surfaces as *TransportError{Timeout: true} so the login flow can
// distinguish a dead server from a missing account.
func (c *Client) FetchAccount(ctx context.Context, addr address.Address) (*types.Account, error) {
	path := "/api/accounts/" + url.PathEscape(addr.String())
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var account types.Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, &TransportError{Cause: fmt.Errorf("decode account: %w", err)}
	}
	return &account, nil
}

// CreateAccount submits a profile draft and returns the newly assigned
// actor address.
func (c *Client) CreateAccount(ctx context.Context, draft ProfileDraft) (address.Address, error) {
	payload, err := json.Marshal(draft.payload())
	if err != nil {
		return address.Address{}, &TransportError{Cause: fmt.Errorf("encode profile: %w", err)}
	}

	body, err := c.do(ctx, http.MethodPost, "/api/accounts", payload)
	if err != nil {
		return address.Address{}, err
	}

	var resp struct {
		BeneficiaryAddress string `json:"beneficiaryAddress"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return address.Address{}, &TransportError{Cause: fmt.Errorf("decode create response: %w", err)}
	}
	addr, err := address.Parse(resp.BeneficiaryAddress)
	if err != nil {
		return address.Address{}, &TransportError{Cause: fmt.Errorf("server returned malformed address %q", resp.BeneficiaryAddress)}
	}
	return addr, nil
}

// RequestAllowance posts an allowance request of the given type and returns
// the server's message on success.
func (c *Client) RequestAllowance(ctx context.Context, addr address.Address, allowanceType types.AllowanceType) (string, error) {
	path := fmt.Sprintf("/api/accounts/%s/requests/%s",
		url.PathEscape(addr.String()), url.PathEscape(string(allowanceType)))
	body, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &TransportError{Cause: fmt.Errorf("decode allowance response: %w", err)}
	}
	return resp.Message, nil
}

// AdvanceMonth triggers month advancement on the prefecture owning the
// given server and returns the new current-month label.
func (c *Client) AdvanceMonth(ctx context.Context, serverID string) (string, error) {
	path := fmt.Sprintf("/api/prefectures/%s/next-month", url.PathEscape(serverID))
	body, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Month string `json:"month"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &TransportError{Cause: fmt.Errorf("decode next-month response: %w", err)}
	}
	return resp.Month, nil
}

// do performs one HTTP exchange and normalizes the outcome.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{
		"requestId": requestID,
		"method":    method,
		"path":      path,
	}).Debug("gateway request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransportError{Cause: err, Timeout: true}
		}
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	c.log.WithFields(logrus.Fields{
		"requestId": requestID,
		"status":    resp.StatusCode,
	}).Debug("gateway response")

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		message := serverMessage(respBody)
		if message == "" {
			message = resp.Status
		}
		return nil, &ValidationError{Message: message}
	}
	return respBody, nil
}

// serverMessage extracts a usable error text from a non-2xx body: the
// {"message": ...} field when the body parses, else the raw body verbatim.
func serverMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}
	var shaped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &shaped); err == nil && shaped.Message != "" {
		return shaped.Message
	}
	return trimmed
}
