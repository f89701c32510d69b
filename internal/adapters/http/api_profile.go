package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/utils"

	"github.com/go-chi/chi/v5"
)

// serverList accepts either a JSON list or a comma-separated string.
type serverList []string

func (l *serverList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = domain.ParseBootstrapServers(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return fmt.Errorf("bootstrap_servers: want a string or a list of strings")
	}
	*l = domain.ParseBootstrapServers(strings.Join(items, ","))
	return nil
}

type profileRequest struct {
	PreviousName     string     `json:"previous_name"`
	BootstrapServers serverList `json:"bootstrap_servers"`
	SASLUsername     string     `json:"sasl_username"`
	SASLPassword     string     `json:"sasl_password"`
}

type testRequest struct {
	BootstrapServers serverList `json:"bootstrap_servers"`
	SASLUsername     string     `json:"sasl_username"`
	SASLPassword     string     `json:"sasl_password"`
}

// profileView is the API shape of a profile. The password is never returned.
type profileView struct {
	Name             string   `json:"name"`
	BootstrapServers []string `json:"bootstrap_servers"`
	SASLUsername     string   `json:"sasl_username,omitempty"`
	AuthType         string   `json:"auth_type"`
	Active           bool     `json:"active"`
}

func (s *Server) toView(p domain.ConnectionProfile) profileView {
	active := false
	if cur, ok := s.sessions.Current(); ok {
		active = cur.ProfileName == p.Name
	}
	return profileView{
		Name:             p.Name,
		BootstrapServers: p.BootstrapServers,
		SASLUsername:     p.SASLUsername,
		AuthType:         p.AuthType(),
		Active:           active,
	}
}

func (s *Server) apiListProfiles(w http.ResponseWriter, _ *http.Request) {
	profiles := s.profiles.ListProfiles()
	utils.Logger.Debug("api list profiles", "count", len(profiles))
	out := make([]profileView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, s.toView(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiGetProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profileName")
	p, err := s.profiles.GetProfile(name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toView(p))
}

func (s *Server) apiSaveProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profileName")
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	p, err := s.profiles.SaveProfile(req.PreviousName, application.ProfileInput{
		Name:         name,
		Servers:      strings.Join(req.BootstrapServers, ","),
		SASLUsername: req.SASLUsername,
		SASLPassword: req.SASLPassword,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.toView(p))
}

func (s *Server) apiDeleteProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profileName")
	if err := s.profiles.DeleteProfile(name); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiTestConnection(w http.ResponseWriter, r *http.Request) {
	var req testRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	res := s.tester.Test(r.Context(), req.BootstrapServers, req.SASLUsername, req.SASLPassword)
	out := res.Result(r.Context())
	writeJSON(w, statusFor(out.Kind), out)
}
