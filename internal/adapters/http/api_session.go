package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/go-chi/chi/v5"
)

type sessionResponse struct {
	Result application.Result `json:"result"`
	Status application.Status `json:"status"`
}

func (s *Server) apiSessionStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.Status())
}

func (s *Server) apiActivateSession(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "profileName")
	err := s.sessions.Activate(r.Context(), name)
	res := application.ResultOf(r.Context(), err)
	writeJSON(w, statusFor(res.Kind), sessionResponse{Result: res, Status: s.sessions.Status()})
}

func (s *Server) apiTeardownSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Teardown()
	writeJSON(w, http.StatusOK, sessionResponse{
		Result: application.ResultOf(r.Context(), nil),
		Status: s.sessions.Status(),
	})
}
