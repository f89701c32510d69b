package mid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
	"github.com/stretchr/testify/require"
)

func TestI18n_SetsLocale(t *testing.T) {
	t.Parallel()
	config.InitI18n()

	tests := []struct {
		name   string
		target string
		header string
	}{
		{"default", "/", ""},
		{"query", "/?lang=en", ""},
		{"header", "/", "en-US,en;q=0.9"},
		{"unsupported", "/?lang=xx", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var msg string
			var code string
			h := I18n(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				code = ctxi18n.Locale(r.Context()).Code().String()
				msg = i18n.T(r.Context(), "result.ok")
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			require.Equal(t, "en", code)
			require.Equal(t, "Done", msg)
		})
	}
}
