package config

import (
	"sync"

	"github.com/OliveiraNt/kafkalens/locales"
	"github.com/invopop/ctxi18n"
)

var i18nOnce sync.Once

// InitI18n loads the embedded message catalog with "en" as the default locale.
func InitI18n() {
	i18nOnce.Do(func() {
		if err := ctxi18n.LoadWithDefault(locales.Content, "en"); err != nil {
			panic(err)
		}
	})
}
