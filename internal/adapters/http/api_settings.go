package httpserver

import (
	"net/http"

	"github.com/OliveiraNt/kafkalens/internal/config"
)

func (s *Server) apiSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := config.LoadAppSettings(s.state)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
