package application

import (
	"context"
	"testing"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/repository"
	"github.com/OliveiraNt/kafkalens/internal/testutil"
	"github.com/stretchr/testify/require"
)

func init() {
	config.InitI18n()
}

type stubView struct {
	inits int
}

func (v *stubView) Init(_ context.Context, _ domain.KafkaClient) error {
	v.inits++
	return nil
}

func fastOptions() ConnectOptions {
	return ConnectOptions{Timeout: 2 * time.Second, Retries: 0, InitialInterval: time.Millisecond}
}

type sessionFixture struct {
	repo      *repository.ProfileRepository
	connector *testutil.FakeConnector
	cache     *ViewCache
	mgr       *SessionManager
}

func newSessionFixture(t *testing.T, profiles ...domain.ConnectionProfile) sessionFixture {
	t.Helper()
	repo, err := repository.NewProfileRepository(testutil.NewMemoryStore())
	require.NoError(t, err)
	for _, p := range profiles {
		require.NoError(t, repo.Upsert(p))
	}
	connector := testutil.NewFakeConnector()
	cache := NewViewCache()
	return sessionFixture{
		repo:      repo,
		connector: connector,
		cache:     cache,
		mgr:       NewSessionManager(repo, connector, cache, fastOptions()),
	}
}

func profile(name string, servers ...string) domain.ConnectionProfile {
	return domain.ConnectionProfile{Name: name, BootstrapServers: servers}
}
