package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/repository"
	"github.com/OliveiraNt/kafkalens/internal/testutil"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/OliveiraNt/kafkalens/internal/views"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server    *Server
	handler   http.Handler
	connector *testutil.FakeConnector
	store     *testutil.MemoryStore
	sessions  *application.SessionManager
	cache     *application.ViewCache
}

// buildServer wires a Server over in-memory storage and a fake connector.
func buildServer(t *testing.T) testEnv {
	t.Helper()
	utils.InitLogger()
	config.InitI18n()

	store := testutil.NewMemoryStore()
	repo, err := repository.NewProfileRepository(store)
	require.NoError(t, err)

	connector := testutil.NewFakeConnector()
	opts := application.ConnectOptions{Timeout: time.Second, InitialInterval: time.Millisecond}
	cache := application.NewViewCache()
	sessions := application.NewSessionManager(repo, connector, cache, opts)

	s := New(
		application.NewProfileService(repo),
		application.NewConnectionTester(connector, opts),
		sessions,
		views.NewNavigator(sessions, cache),
		store,
	)
	t.Cleanup(s.Close)

	return testEnv{
		server:    s,
		handler:   s.Routes(),
		connector: connector,
		store:     store,
		sessions:  sessions,
		cache:     cache,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
