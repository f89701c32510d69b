package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

func statusFor(kind application.ResultKind) int {
	switch kind {
	case application.KindOK:
		return http.StatusOK
	case application.KindValidation:
		return http.StatusBadRequest
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindNoSession:
		return http.StatusConflict
	case application.KindConnect, application.KindInit:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Error("encode response failed", "err", err)
	}
}

// writeError converts err to a localized Result and writes it with the
// matching status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := application.ResultOf(r.Context(), err)
	status := statusFor(res.Kind)
	if status >= http.StatusInternalServerError {
		utils.Logger.Error("api request failed", "path", r.URL.Path, "kind", res.Kind, "err", err)
	} else {
		utils.Logger.Warn("api request rejected", "path", r.URL.Path, "kind", res.Kind, "err", err)
	}
	writeJSON(w, status, res)
}
