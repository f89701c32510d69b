package views

import (
	"context"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/metrics"
	"github.com/OliveiraNt/kafkalens/internal/utils"
)

// SessionSource exposes the active session.
type SessionSource interface {
	Current() (application.Session, bool)
}

// Navigator opens views, reusing cached instances until the session changes.
type Navigator struct {
	sessions SessionSource
	cache    *application.ViewCache
	build    func(application.Slot) (application.View, error)
}

func NewNavigator(sessions SessionSource, cache *application.ViewCache) *Navigator {
	return &Navigator{sessions: sessions, cache: cache, build: New}
}

// Open returns the view for slot. On a cache miss a fresh view is built and
// initialized against the current session; it is cached only if the session
// did not change meanwhile. A failed Init returns *domain.InitError and
// caches nothing.
func (n *Navigator) Open(ctx context.Context, slot application.Slot) (application.View, error) {
	// The generation must be read before the session.
	gen := n.cache.Generation()
	sess, ok := n.sessions.Current()
	if !ok {
		return nil, domain.ErrNoSession
	}

	if v, ok := n.cache.Get(slot); ok {
		return v, nil
	}

	v, err := n.build(slot)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := v.Init(ctx, sess.Client); err != nil {
		metrics.ViewInitDuration.WithLabelValues(Name(slot), metrics.ResultFailure).Observe(time.Since(start).Seconds())
		utils.Logger.Warn("view init failed", "view", Name(slot), "profile", sess.ProfileName, "err", err)
		return nil, &domain.InitError{Slot: int(slot), Err: err}
	}
	metrics.ViewInitDuration.WithLabelValues(Name(slot), metrics.ResultSuccess).Observe(time.Since(start).Seconds())

	if !n.cache.PutAt(gen, slot, v) {
		utils.Logger.Debug("session changed during view init, not caching", "view", Name(slot))
	}
	return v, nil
}
