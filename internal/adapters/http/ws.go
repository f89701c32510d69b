package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/application"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/gorilla/websocket"
	"github.com/invopop/ctxi18n/i18n"
)

const (
	eventBuffer = 16
	writeWait   = 5 * time.Second

	// eventStatus is sent once on connect with the current status.
	eventStatus application.EventKind = "status"
)

var wsUpgrader = websocket.Upgrader{
	// TODO: restrict origins once the UI is served from a fixed host.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// eventHub fans session events out to websocket subscribers. Slow
// subscribers drop events rather than block the activating goroutine.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan application.SessionEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan application.SessionEvent]struct{})}
}

func (h *eventHub) subscribe() (<-chan application.SessionEvent, func()) {
	ch := make(chan application.SessionEvent, eventBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
}

func (h *eventHub) publish(ev application.SessionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			utils.Logger.Warn("dropping session event for slow subscriber", "kind", ev.Kind)
		}
	}
}

func (h *eventHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *eventHub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// wsSessionEvents upgrades to WebSocket and streams session events, starting
// with the current status. On client disconnect the subscription is dropped.
func (s *Server) wsSessionEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	conn.SetCloseHandler(func(code int, text string) error {
		utils.Logger.Info("websocket close handler triggered", "code", code)
		cancel()
		return nil
	})

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.Logger.Info("websocket client disconnected", "err", err)
				return
			}
		}
	}()

	initial := application.SessionEvent{Kind: eventStatus, Status: s.sessions.Status(), At: time.Now()}
	if err := writeEvent(ctx, conn, initial); err != nil {
		utils.Logger.Info("websocket write failed", "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}
			if err := writeEvent(ctx, conn, ev); err != nil {
				utils.Logger.Info("websocket write failed, stopping stream", "err", err)
				return
			}
		}
	}
}

// wsEvent is a session event with a message localized for the subscriber.
type wsEvent struct {
	application.SessionEvent
	Message string `json:"message,omitempty"`
}

func eventMessage(ctx context.Context, ev application.SessionEvent) string {
	switch ev.Kind {
	case application.EventActivated:
		return i18n.T(ctx, "session.activated", i18n.M{"detail": ev.Profile})
	case application.EventFailed:
		return i18n.T(ctx, "session.failed", i18n.M{"detail": ev.Profile})
	case application.EventTeardown:
		return i18n.T(ctx, "session.teardown")
	default:
		return ""
	}
}

func writeEvent(ctx context.Context, conn *websocket.Conn, ev application.SessionEvent) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEvent{SessionEvent: ev, Message: eventMessage(ctx, ev)})
}
