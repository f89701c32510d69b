package cmd

import (
	"context"

	httpserver "github.com/OliveiraNt/kafkalens/internal/adapters/http"
	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/config"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/kafka"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/repository"
	"github.com/OliveiraNt/kafkalens/internal/infrastructure/storage"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/OliveiraNt/kafkalens/internal/views"
)

// App holds the wired components for one process lifetime.
type App struct {
	Store    *storage.FileStore
	Profiles *repository.ProfileRepository
	Sessions *application.SessionManager
	Server   *httpserver.Server
}

// NewApp builds the application from the launch configuration using the
// connector selected by rt.Client.
func NewApp(rt config.Runtime) (*App, error) {
	connector, err := kafka.NewConnector(rt.Client)
	if err != nil {
		return nil, err
	}
	return newApp(rt, connector)
}

func newApp(rt config.Runtime, connector domain.Connector) (*App, error) {
	utils.InitLogger()
	config.InitI18n()

	store := storage.NewFileStore(rt.StatePath)
	if err := store.Load(); err != nil {
		return nil, err
	}
	utils.Logger.Info("state loaded", "path", store.Path())

	settings, err := config.LoadAppSettings(store)
	if err != nil {
		utils.Logger.Warn("failed to initialise settings", "err", err)
	} else {
		utils.Logger.Debug("settings", "language", settings.Language, "width", settings.DefaultWidth, "height", settings.DefaultHeight)
	}

	profiles, err := repository.NewProfileRepository(store)
	if err != nil {
		return nil, err
	}
	if err := store.Watch(func() {
		if err := profiles.Reload(); err != nil {
			utils.Logger.Error("failed to reload profiles", "err", err)
		}
	}); err != nil {
		utils.Logger.Warn("state file watcher disabled", "err", err)
	}

	opts := application.ConnectOptions{
		Timeout:         rt.ConnectTimeout,
		Retries:         rt.ConnectRetries,
		InitialInterval: application.DefaultConnectOptions().InitialInterval,
	}
	cache := application.NewViewCache()
	sessions := application.NewSessionManager(profiles, connector, cache, opts)
	server := httpserver.New(
		application.NewProfileService(profiles),
		application.NewConnectionTester(connector, opts),
		sessions,
		views.NewNavigator(sessions, cache),
		store,
	)
	utils.Logger.Info("application layer initialized", "client", rt.Client, "profiles", len(profiles.List()))

	return &App{Store: store, Profiles: profiles, Sessions: sessions, Server: server}, nil
}

// Close tears down the active session and stops background work.
func (a *App) Close() {
	a.Sessions.Teardown()
	a.Server.Close()
	if err := a.Store.Close(); err != nil {
		utils.Logger.Warn("closing state watcher", "err", err)
	}
}

// StartWeb serves the HTTP API until ctx is cancelled.
func StartWeb(ctx context.Context, rt config.Runtime) error {
	app, err := NewApp(rt)
	if err != nil {
		return err
	}
	defer app.Close()

	utils.Logger.Info("HTTP UI starting", "addr", rt.HTTPAddr)
	return app.Server.Run(ctx, rt.HTTPAddr)
}
