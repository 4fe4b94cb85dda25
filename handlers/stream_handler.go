package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/match-predictor/services"
	"github.com/gorilla/websocket"
)

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the CORS layer in front of
		// the API; the socket carries no credentials.
		return true
	},
}

// StreamMessage is the envelope for every frame pushed to a client.
type StreamMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

const (
	messageTypeMatch    = "MATCH_ENRICHED"
	messageTypeComplete = "STREAM_COMPLETE"
	messageTypeError    = "STREAM_ERROR"
)

type StreamHandler struct {
	fixtureService services.FixtureService
	logger         *slog.Logger
}

func NewStreamHandler(fixtureService services.FixtureService, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		fixtureService: fixtureService,
		logger:         logger,
	}
}

// ServeFixtureStream handles GET /ws/matches?from=&to=. Each fixture is
// pushed as soon as its enrichment completes, so slow aggregations for
// one fixture never hold back the others.
func (h *StreamHandler) ServeFixtureStream(w http.ResponseWriter, r *http.Request) {
	from, err := getDateParam(r, "from")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	to, err := getDateParam(r, "to")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade fixture stream connection", slog.Any("error", err))
		return
	}
	defer conn.Close()

	start, end := services.DayBounds(from, to)
	stream, err := h.fixtureService.StreamByDateRange(r.Context(), start, end)
	if err != nil {
		h.writeMessage(conn, StreamMessage{Type: messageTypeError, Error: err.Error()})
		return
	}

	for enriched := range stream {
		if err := h.writeMessage(conn, StreamMessage{Type: messageTypeMatch, Payload: enriched}); err != nil {
			h.logger.Info("fixture stream client gone", slog.Any("error", err))
			return
		}
	}
	h.writeMessage(conn, StreamMessage{Type: messageTypeComplete})
}

func (h *StreamHandler) writeMessage(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	return conn.WriteJSON(msg)
}
