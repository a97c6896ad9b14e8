package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/dayan/internal/api/handlers"
	"github.com/wonny/dayan/pkg/logger"
)

const (
	// Ping/Pong settings
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// StreamHandler pushes the current report to websocket clients
// ⭐ SSOT: 실시간 리포트 스트림은 여기서만
type StreamHandler struct {
	engine   handlers.Computer
	interval time.Duration
	upgrader websocket.Upgrader
	metrics  *Metrics
	logger   *logger.Logger
}

// NewStreamHandler creates a stream sending one report per interval
func NewStreamHandler(engine handlers.Computer, interval time.Duration, metrics *Metrics, log *logger.Logger) *StreamHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &StreamHandler{
		engine:   engine,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		metrics: metrics,
		logger:  log.WithComponent("stream"),
	}
}

// ServeHTTP handles GET /ws/stream
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		h.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	log := h.logger.WithField("client", clientKey(r))
	log.Info("Stream client connected")

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	if err := h.send(conn); err != nil {
		log.WithError(err).Debug("Stream write failed")
		return
	}

	for {
		select {
		case <-done:
			log.Info("Stream client disconnected")
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := h.send(conn); err != nil {
				log.WithError(err).Debug("Stream write failed")
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("Failed to send ping")
				return
			}
		}
	}
}

func (h *StreamHandler) send(conn *websocket.Conn) error {
	report := h.engine.Compute(time.Now().Truncate(time.Second))
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(report)
}

// readLoop drains client frames so control frames are processed;
// it closes done when the client goes away.
func (h *StreamHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
