package network

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"options-observer/src/helpers"
	"options-observer/src/logger"
	"options-observer/src/models"
)

func newTestManager(token string) *AuthNetworkManager {
	cfg := &models.MConfig{
		APIToken: token,
		Network: models.MNetworkConfig{
			RequestTimeout: 5,
			UserAgent:      "observer-test/1.0",
		},
	}
	return NewAuthNetworkManager(cfg, logger.NewLogger("ERROR", "test"))
}

// -----------------------------------------------------------------------------

func TestGet_SendsBearerTokenAndParams(t *testing.T) {
	var gotAuth, gotAccept, gotAgent, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("symbols")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	nm := newTestManager("test-token")
	body, err := nm.Get(srv.URL+"/markets/quotes", map[string]string{"symbols": "SPY"})

	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
	require.Equal(t, "Bearer test-token", gotAuth)
	require.Equal(t, "application/json", gotAccept)
	require.Equal(t, "observer-test/1.0", gotAgent)
	require.Equal(t, "SPY", gotQuery)
}

func TestGet_MissingTokenFailsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	nm := newTestManager("")
	_, err := nm.Get(srv.URL, nil)

	require.Error(t, err)
	require.False(t, called, "request must not reach the upstream without a token")
}

func TestGet_UnauthorizedBecomesAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	nm := newTestManager("expired-token")
	_, err := nm.Get(srv.URL, nil)

	require.Error(t, err)
	require.True(t, helpers.IsAuthError(err))
}

func TestGet_BadStatusBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	nm := newTestManager("test-token")
	_, err := nm.Get(srv.URL, nil)

	require.Error(t, err)
	require.True(t, helpers.IsTransportError(err))
}

func TestGet_ConnectionRefusedBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before calling

	nm := newTestManager("test-token")
	_, err := nm.Get(srv.URL, nil)

	require.Error(t, err)
	require.True(t, helpers.IsTransportError(err))
}
