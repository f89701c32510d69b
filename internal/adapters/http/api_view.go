package httpserver

import (
	"net/http"
	"strconv"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/views"
	"github.com/go-chi/chi/v5"
)

type viewResponse struct {
	Slot int              `json:"slot"`
	Name string           `json:"name"`
	View application.View `json:"view"`
}

// parseSlot accepts a slot number or its name.
func parseSlot(s string) (application.Slot, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return application.Slot(n), nil
	}
	for _, slot := range []application.Slot{views.SlotOverview, views.SlotTopics, views.SlotGroups} {
		if views.Name(slot) == s {
			return slot, nil
		}
	}
	return 0, views.ErrUnknownSlot
}

func (s *Server) apiOpenView(w http.ResponseWriter, r *http.Request) {
	slot, err := parseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := s.navigator.Open(r.Context(), slot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{Slot: int(slot), Name: views.Name(slot), View: v})
}
