package application

import (
	"errors"
	"strings"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

// ProfileInput is raw profile form input. Servers is comma separated.
type ProfileInput struct {
	Name         string
	Servers      string
	SASLUsername string
	SASLPassword string
}

// Profile builds a validated ConnectionProfile from the input.
func (in ProfileInput) Profile() (domain.ConnectionProfile, error) {
	p := domain.ConnectionProfile{
		Name:             strings.TrimSpace(in.Name),
		BootstrapServers: domain.ParseBootstrapServers(in.Servers),
		SASLUsername:     in.SASLUsername,
		SASLPassword:     in.SASLPassword,
	}
	return p, p.Validate()
}

// ProfileService provides operations related to connection profile management.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// ListProfiles lists all profiles sorted by name.
func (s *ProfileService) ListProfiles() []domain.ConnectionProfile {
	return s.repo.List()
}

// GetProfile retrieves a profile by name.
func (s *ProfileService) GetProfile(name string) (domain.ConnectionProfile, error) {
	p, err := s.repo.Get(name)
	if errors.Is(err, domain.ErrNotFound) {
		return p, &NotFoundError{Name: name}
	}
	return p, err
}

// SaveProfile validates in and upserts it. When previous names a different
// existing profile the entry is renamed in a single write.
func (s *ProfileService) SaveProfile(previous string, in ProfileInput) (domain.ConnectionProfile, error) {
	p, err := in.Profile()
	if err != nil {
		return p, err
	}
	if previous == "" || previous == p.Name {
		return p, s.repo.Upsert(p)
	}
	if _, err := s.repo.Get(previous); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return p, &NotFoundError{Name: previous}
		}
		return p, err
	}
	utils.Logger.Info("renaming profile", "from", previous, "to", p.Name)
	return p, s.repo.Replace(previous, p)
}

// DeleteProfile removes a profile. The active session, if it uses this
// profile, stays open.
func (s *ProfileService) DeleteProfile(name string) error {
	return s.repo.Delete(name)
}
