package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/cavworks/cav-cli/internal/address"
	"github.com/cavworks/cav-cli/internal/gateway"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// accountServer knows exactly one account address.
func accountServer(known string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/accounts/"+known {
			_, _ = w.Write([]byte(`{"profile": {"firstName": "Ana", "lastName": "Dupont", "email": "a@b.com"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func newController(t *testing.T, serverURL string) *Controller {
	t.Helper()
	return NewController(gateway.NewClient(serverURL, testLogger()), testLogger())
}

func TestLoginEstablishesSession(t *testing.T) {
	t.Parallel()

	srv := accountServer("1:100")
	defer srv.Close()

	c := newController(t, srv.URL)
	require.Equal(t, ModeLogin, c.Snapshot().Mode)

	addr, err := c.Login(context.Background(), "1:100")
	require.NoError(t, err)
	require.Equal(t, "1:100", addr.String())

	snap := c.Snapshot()
	require.True(t, snap.Authenticated())
	require.Equal(t, "1:100", snap.Address.String())
}

func TestLoginUnknownAccountStaysOnLoginScreen(t *testing.T) {
	t.Parallel()

	srv := accountServer("1:100")
	defer srv.Close()

	c := newController(t, srv.URL)
	_, err := c.Login(context.Background(), "1:2")
	require.ErrorIs(t, err, gateway.ErrNotFound)

	snap := c.Snapshot()
	require.Equal(t, ModeLogin, snap.Mode)
	require.Nil(t, snap.Address)
}

func TestLoginRejectsMalformedAddressWithoutNetwork(t *testing.T) {
	t.Parallel()

	c := newController(t, "http://127.0.0.1:1")

	tests := []string{"", "1:100 ", "1:ABC", "one:hundred", "1:2:3"}
	for _, raw := range tests {
		_, err := c.Login(context.Background(), raw)
		var verr *address.ValidationError
		require.ErrorAs(t, err, &verr, "input %q", raw)
	}
	require.Equal(t, ModeLogin, c.Snapshot().Mode)
}

func TestLoginTimeoutIsDistinguishable(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c := newController(t, srv.URL)
	// Shrink the window through the parent context; Login applies
	// min(parent, 5s).
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Login(ctx, "1:100")
	require.Error(t, err)
	require.True(t, gateway.IsTimeout(err))
	require.False(t, errors.Is(err, gateway.ErrNotFound))
}

func TestAccountCreatedSkipsExistenceCheck(t *testing.T) {
	t.Parallel()

	// Unreachable server: AccountCreated must not touch the network.
	c := newController(t, "http://127.0.0.1:1")

	addr, err := address.Parse("2:55")
	require.NoError(t, err)
	c.AccountCreated(addr)

	snap := c.Snapshot()
	require.True(t, snap.Authenticated())
	require.Equal(t, "2:55", snap.Address.String())
}

func TestLogoutReturnsToLogin(t *testing.T) {
	t.Parallel()

	c := newController(t, "http://127.0.0.1:1")
	addr, err := address.Parse("1:100")
	require.NoError(t, err)
	c.AccountCreated(addr)

	c.Logout()
	snap := c.Snapshot()
	require.Equal(t, ModeLogin, snap.Mode)
	require.Nil(t, snap.Address)
}

func TestScreenTogglesOnlyWhileUnauthenticated(t *testing.T) {
	t.Parallel()

	c := newController(t, "http://127.0.0.1:1")

	c.ShowCreateAccount()
	require.Equal(t, ModeCreate, c.Snapshot().Mode)
	c.ShowLogin()
	require.Equal(t, ModeLogin, c.Snapshot().Mode)

	addr, err := address.Parse("1:100")
	require.NoError(t, err)
	c.AccountCreated(addr)

	c.ShowCreateAccount()
	snap := c.Snapshot()
	require.Equal(t, ModeAuthenticated, snap.Mode)
	require.NotNil(t, snap.Address)
}
