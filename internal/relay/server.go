package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iayeshaabid-21/productivity-app/internal/config"
	"github.com/iayeshaabid-21/productivity-app/internal/observability"
)

const (
	eventJoinRoom       = "join_room"
	eventSendMessage    = "send_message"
	eventReceiveMessage = "receive_message"
)

// frame is the wire envelope for relay events.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// sendEnvelope carries the fields the relay needs from a send event; the
// full payload is forwarded verbatim.
type sendEnvelope struct {
	ReceiverID string `json:"receiverId"`
}

// Server accepts websocket connections and relays message events between
// them. It does not persist anything and is fully decoupled from the REST
// message store; clients call both paths.
type Server struct {
	hub     *Hub
	logger  *zap.Logger
	metrics *observability.Metrics
	httpSrv *http.Server
}

// NewServer builds a relay server bound per configuration.
func NewServer(cfg config.RelayConfig, hub *Hub, logger *zap.Logger, metrics *observability.Metrics) *Server {
	s := &Server{hub: hub, logger: logger, metrics: metrics}

	mux := http.NewServeMux()
	mux.HandleFunc("/socket", s.handleSocket)
	s.httpSrv = &http.Server{
		Addr:    cfg.Addr(),
		Handler: mux,
	}
	return s
}

// ListenAndServe blocks serving relay connections.
func (s *Server) ListenAndServe() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown closes the relay listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// browser clients connect from the SPA origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.NewString(), conn, s.logger)
	s.logger.Info("user connected", zap.String("connection_id", client.ID()))

	joinedAs := ""
	defer func() {
		if joinedAs != "" {
			s.hub.Leave(joinedAs, client)
		}
		client.Close()
		s.logger.Info("user disconnected", zap.String("connection_id", client.ID()))
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			// malformed events are dropped without an error channel
			s.logger.Debug("dropping malformed frame", zap.String("connection_id", client.ID()))
			continue
		}

		switch f.Event {
		case eventJoinRoom:
			var userID string
			if err := json.Unmarshal(f.Data, &userID); err != nil || userID == "" {
				s.logger.Debug("dropping malformed join", zap.String("connection_id", client.ID()))
				continue
			}
			if joinedAs != "" {
				s.hub.Leave(joinedAs, client)
			}
			joinedAs = userID
			s.hub.Join(userID, client)
			s.metrics.RecordRelayEvent(eventJoinRoom)

		case eventSendMessage:
			var env sendEnvelope
			if err := json.Unmarshal(f.Data, &env); err != nil || env.ReceiverID == "" {
				s.logger.Debug("dropping malformed send", zap.String("connection_id", client.ID()))
				continue
			}
			out, err := json.Marshal(frame{Event: eventReceiveMessage, Data: f.Data})
			if err != nil {
				continue
			}
			s.hub.Emit(env.ReceiverID, out)
			s.metrics.RecordRelayEvent(eventSendMessage)

		default:
			s.logger.Debug("dropping unknown event",
				zap.String("connection_id", client.ID()),
				zap.String("event", f.Event))
		}
	}
}

// ShutdownTimeout is how long in-flight relay connections get to drain.
const ShutdownTimeout = 5 * time.Second
