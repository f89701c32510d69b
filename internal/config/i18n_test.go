package config_test

import (
	"context"
	"testing"

	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/invopop/ctxi18n"
	"github.com/invopop/ctxi18n/i18n"
	"github.com/stretchr/testify/require"
)

func TestInitI18n_LoadsCatalog(t *testing.T) {
	t.Parallel()
	config.InitI18n()
	config.InitI18n()

	ctx, err := ctxi18n.WithLocale(context.Background(), "en")
	require.NoError(t, err)
	require.Equal(t, "Done", i18n.T(ctx, "result.ok"))
	require.Equal(t, "Connection dev does not exist", i18n.T(ctx, "result.not_found", i18n.M{"detail": "dev"}))
}
