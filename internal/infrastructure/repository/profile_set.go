package repository

import (
	"fmt"
	"strings"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	connectionsKey = "connections"

	// profileSchemaVersion is written with every ProfileSet. Version 0 is the
	// legacy un-versioned mapping of name -> [servers, user, pass].
	profileSchemaVersion = 1
)

// profileTuple is the on-disk form of a profile:
// [bootstrapServersJoinedByComma, saslUsername|null, saslPassword|null].
type profileTuple []*string

// profileSet is the persisted record under connectionsKey.
type profileSet struct {
	Version  int                     `yaml:"version"`
	Profiles map[string]profileTuple `yaml:"profiles"`
}

// UnmarshalYAML accepts both the versioned layout and the legacy mapping.
func (s *profileSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("connections: expected mapping, got kind %d", value.Kind)
	}
	versioned := false
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "version" && value.Content[i+1].Kind == yaml.ScalarNode {
			versioned = true
			break
		}
	}
	if !versioned {
		legacy := map[string]profileTuple{}
		if err := value.Decode(&legacy); err != nil {
			return fmt.Errorf("connections: legacy layout: %w", err)
		}
		s.Version = 0
		s.Profiles = legacy
		return nil
	}

	type plain profileSet
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Version > profileSchemaVersion {
		return fmt.Errorf("connections: schema version %d is newer than supported %d", p.Version, profileSchemaVersion)
	}
	*s = profileSet(p)
	return nil
}

func encodeProfiles(profiles map[string]domain.ConnectionProfile) profileSet {
	out := profileSet{
		Version:  profileSchemaVersion,
		Profiles: make(map[string]profileTuple, len(profiles)),
	}
	for name, p := range profiles {
		servers := strings.Join(p.BootstrapServers, ",")
		out.Profiles[name] = profileTuple{&servers, optional(p.SASLUsername), optional(p.SASLPassword)}
	}
	return out
}

// decode converts the persisted tuples back into profiles. Entries that do
// not satisfy the stored-profile invariants are returned in rejected.
func (s profileSet) decode() (profiles map[string]domain.ConnectionProfile, rejected map[string]error) {
	profiles = make(map[string]domain.ConnectionProfile, len(s.Profiles))
	rejected = make(map[string]error)
	for name, t := range s.Profiles {
		p := domain.ConnectionProfile{
			Name:             name,
			BootstrapServers: domain.ParseBootstrapServers(t.at(0)),
			SASLUsername:     t.at(1),
			SASLPassword:     t.at(2),
		}
		if err := p.Validate(); err != nil {
			rejected[name] = err
			continue
		}
		profiles[name] = p
	}
	return profiles, rejected
}

func (t profileTuple) at(i int) string {
	if i >= len(t) || t[i] == nil {
		return ""
	}
	return *t[i]
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
