package application

import (
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/repository"
	"github.com/OliveiraNt/kafkalens/internal/testutil"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	repo, err := repository.NewProfileRepository(testutil.NewMemoryStore())
	require.NoError(t, err)
	return NewProfileService(repo)
}

func TestProfileInput_ParsesServers(t *testing.T) {
	t.Parallel()
	p, err := ProfileInput{Name: " dev ", Servers: " a:9092, ,b:9092 ,"}.Profile()
	require.NoError(t, err)
	require.Equal(t, "dev", p.Name)
	require.Equal(t, []string{"a:9092", "b:9092"}, p.BootstrapServers)

	_, err = ProfileInput{Name: "dev", Servers: " , "}.Profile()
	require.ErrorIs(t, err, domain.ErrEmptyServers)
}

func TestProfileService_SaveGetList(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)

	_, err := s.SaveProfile("", ProfileInput{Name: "b", Servers: "b:9092"})
	require.NoError(t, err)
	_, err = s.SaveProfile("", ProfileInput{Name: "a", Servers: "a:9092", SASLUsername: "u", SASLPassword: "p"})
	require.NoError(t, err)

	list := s.ListProfiles()
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].Name)

	got, err := s.GetProfile("a")
	require.NoError(t, err)
	require.Equal(t, "SASL/PLAIN", got.AuthType())

	_, err = s.GetProfile("zzz")
	require.ErrorIs(t, err, domain.ErrNotFound)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "zzz", nf.Name)
}

func TestProfileService_SaveValidation(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)

	_, err := s.SaveProfile("", ProfileInput{Name: "a", Servers: "a:9092", SASLUsername: "u"})
	require.ErrorIs(t, err, domain.ErrMalformedCredentials)
	_, err = s.SaveProfile("", ProfileInput{Servers: "a:9092"})
	require.ErrorIs(t, err, domain.ErrEmptyName)
	require.Empty(t, s.ListProfiles())
}

func TestProfileService_Rename(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	_, err := s.SaveProfile("", ProfileInput{Name: "old", Servers: "a:9092"})
	require.NoError(t, err)

	_, err = s.SaveProfile("old", ProfileInput{Name: "new", Servers: "a:9092"})
	require.NoError(t, err)

	list := s.ListProfiles()
	require.Len(t, list, 1)
	require.Equal(t, "new", list[0].Name)

	_, err = s.SaveProfile("missing", ProfileInput{Name: "x", Servers: "a:9092"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_Delete(t *testing.T) {
	t.Parallel()
	s := newProfileService(t)
	_, err := s.SaveProfile("", ProfileInput{Name: "a", Servers: "a:9092"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProfile("a"))
	require.NoError(t, s.DeleteProfile("a"))
	require.Empty(t, s.ListProfiles())
}
