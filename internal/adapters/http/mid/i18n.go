// Package mid provides HTTP middleware for request processing.
package mid

import (
	"net/http"

	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/invopop/ctxi18n"
)

const defaultLang = "en"

// I18n attaches the message catalog locale to the request context, taken from
// the "lang" query parameter or the Accept-Language header. Unknown locales
// fall back to the default catalog.
func I18n(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = r.Header.Get("Accept-Language")
		}

		ctx, err := ctxi18n.WithLocale(r.Context(), lang)
		if err != nil || ctxi18n.Locale(ctx) == nil {
			utils.Logger.Debug("locale unavailable, using default", "lang", lang)
			if ctx, err = ctxi18n.WithLocale(r.Context(), defaultLang); err != nil {
				utils.Logger.Error("failed to set default locale", "err", err)
				ctx = r.Context()
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
