package feed

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/loop/server"
)

// Handler upgrades HTTP requests to websocket subscriptions of a server's
// outcome stream. The format comes from the "format" query parameter.
type Handler struct {
	server       server.GameServer
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	log          *log.Logger
}

// NewHandler creates a feed over gs. A nil logger discards diagnostics.
func NewHandler(gs server.GameServer, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		server: gs,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingInterval: config.FeedPingInterval,
		log:          logger.WithPrefix("feed"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	out := NewWriter(conn, format, config.FeedWriteTimeout)
	defer out.Close()

	handle := h.server.RegisterClient("feed@" + r.RemoteAddr)
	defer h.server.UnregisterClient(handle.ID)
	logger := h.log.With("id", handle.ID, "remote", r.RemoteAddr, "format", format)
	logger.Info("subscribed")

	if err := out.WriteFrame(HelloFrame(h.server.GetSnapshot())); err != nil {
		logger.Warn("hello failed", "err", err)
		return
	}

	// Subscribers only listen; reading still processes pongs and notices
	// the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			logger.Info("unsubscribed", "dropped", handle.Dropped())
			return
		case <-ping.C:
			if err := out.Ping(); err != nil {
				logger.Debug("ping failed", "err", err)
				return
			}
		case ev, ok := <-handle.EventsCh:
			if !ok {
				return
			}
			fr := Frame{Tick: ev.Tick}
			switch ev.Type {
			case server.EventServerShutdown:
				fr.Type = TypeShutdown
			default:
				fr.Type = ev.Event.Type().String()
				fr.Data = ev.Event
			}
			if err := out.WriteFrame(fr); err != nil {
				logger.Debug("write failed", "err", err)
				return
			}
			if fr.Type == TypeShutdown {
				return
			}
		}
	}
}
