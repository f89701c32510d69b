// Package repository persists connection profiles on top of a domain.KVStore.
package repository

import (
	"sort"
	"sync"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

// ProfileRepository owns the ProfileSet. Every mutation persists the full set
// before it becomes visible; readers only ever receive copies.
type ProfileRepository struct {
	mu       sync.RWMutex
	store    domain.KVStore
	profiles map[string]domain.ConnectionProfile
}

// NewProfileRepository loads the persisted profiles from store.
func NewProfileRepository(store domain.KVStore) (*ProfileRepository, error) {
	r := &ProfileRepository{
		store:    store,
		profiles: make(map[string]domain.ConnectionProfile),
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the ProfileSet from the store, replacing the in-memory copy.
// The lock is held across the read so a concurrent write cannot be
// overwritten by an older snapshot.
func (r *ProfileRepository) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var set profileSet
	found, err := r.store.Get(connectionsKey, &set)
	if err != nil {
		return err
	}

	profiles := make(map[string]domain.ConnectionProfile)
	if found {
		var rejected map[string]error
		profiles, rejected = set.decode()
		for name, err := range rejected {
			utils.Logger.Warn("skipping invalid stored profile", "profile", name, "err", err)
		}
		if set.Version < profileSchemaVersion {
			utils.Logger.Info("migrating stored profiles", "from", set.Version, "to", profileSchemaVersion)
			if err := r.store.Set(connectionsKey, encodeProfiles(profiles)); err != nil {
				return err
			}
		}
	}

	r.profiles = profiles
	utils.Logger.Debug("profiles loaded", "count", len(profiles))
	return nil
}

// Upsert inserts or replaces the profile keyed by p.Name.
func (r *ProfileRepository) Upsert(p domain.ConnectionProfile) error {
	return r.Replace(p.Name, p)
}

// Replace stores p and removes the entry named previous in a single write,
// so a rename never leaves both or neither entry behind.
func (r *ProfileRepository) Replace(previous string, p domain.ConnectionProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.copyLocked()
	if previous != "" {
		delete(next, previous)
	}
	next[p.Name] = p.Clone()
	if err := r.persistLocked(next); err != nil {
		return err
	}
	utils.Logger.Info("profile saved", "profile", p.Name, "previous", previous, "auth", p.AuthType())
	return nil
}

// Delete removes the profile if present. Deleting an unknown name is a no-op.
func (r *ProfileRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.copyLocked()
	if _, ok := next[name]; !ok {
		utils.Logger.Debug("delete of unknown profile ignored", "profile", name)
	}
	delete(next, name)
	if err := r.persistLocked(next); err != nil {
		return err
	}
	utils.Logger.Info("profile deleted", "profile", name)
	return nil
}

// List returns a snapshot of all profiles sorted by name.
func (r *ProfileRepository) List() []domain.ConnectionProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ConnectionProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get retrieves a profile by name.
func (r *ProfileRepository) Get(name string) (domain.ConnectionProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return domain.ConnectionProfile{}, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *ProfileRepository) copyLocked() map[string]domain.ConnectionProfile {
	next := make(map[string]domain.ConnectionProfile, len(r.profiles)+1)
	for k, v := range r.profiles {
		next[k] = v
	}
	return next
}

func (r *ProfileRepository) persistLocked(next map[string]domain.ConnectionProfile) error {
	if err := r.store.Set(connectionsKey, encodeProfiles(next)); err != nil {
		utils.Logger.Error("persist profiles failed", "err", err)
		return err
	}
	r.profiles = next
	return nil
}
