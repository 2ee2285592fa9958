package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func discoveryHandler(failPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == failPath {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("peer unreachable"))
			return
		}
		switch r.URL.Path {
		case "/api/servers/local":
			_, _ = w.Write([]byte(`{"id": "1", "name": "paris", "url": "http://paris:4444"}`))
		case "/api/servers":
			_, _ = w.Write([]byte(`[
				{"id": "1", "name": "paris", "url": "http://paris:4444"},
				{"id": "2", "name": "lyon", "url": "http://lyon:4444"}
			]`))
		case "/api/prefectures":
			_, _ = w.Write([]byte(`[{"id": "1", "label": "Paris"}, {"id": "2", "label": "Lyon"}]`))
		case "/api/prefectures/2/state":
			_, _ = w.Write([]byte(`{"status": "RUNNING", "currentMonth": "2025-02-01"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestLoadReturnsCompleteNetwork(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(discoveryHandler(""))
	defer srv.Close()

	network, err := NewClient(srv.URL, testLogger()).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "paris", network.Local.Name)
	require.Len(t, network.Servers, 2)
	require.Len(t, network.Prefectures, 2)
}

func TestLoadFailsAsAUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		failPath string
	}{
		{name: "localDown", failPath: "/api/servers/local"},
		{name: "listingDown", failPath: "/api/servers"},
		{name: "prefecturesDown", failPath: "/api/prefectures"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(discoveryHandler(tc.failPath))
			defer srv.Close()

			network, err := NewClient(srv.URL, testLogger()).Load(context.Background())
			require.Error(t, err)
			require.Nil(t, network)
			require.Contains(t, err.Error(), "peer unreachable")
		})
	}
}

func TestPrefectureState(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(discoveryHandler(""))
	defer srv.Close()

	state, err := NewClient(srv.URL, testLogger()).PrefectureState(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, "RUNNING", state.Status)
	require.Equal(t, "2025-02-01", state.CurrentMonth)
}
