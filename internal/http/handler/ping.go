package handler

import (
	"encoding/json"
	"net/http"

	"pingreport/internal/http/handler/middleware"

	"go.uber.org/zap"
)

var Ping = "GET /ping"

// PingHandler answers liveness pings the way the report command expects its
// upstream to.
type PingHandler struct {
	logs *zap.SugaredLogger
}

func NewPingHandler(logger *zap.SugaredLogger) *PingHandler {
	return &PingHandler{
		logs: logger,
	}
}

func (h *PingHandler) HandlePing(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.RequestIDFrom(r.Context())

	h.logs.Debugw("ping received",
		"handler", Ping,
		"request_id", requestId)

	h.respond(w, Response{Message: pongMessage}, http.StatusOK, requestId)
}

func (h *PingHandler) respond(w http.ResponseWriter, resp any, code int, requestId string) {
	body, err := json.Marshal(resp)
	if err != nil {
		h.logs.Errorw("failed to encode response",
			"error", err,
			"request_id", requestId)
		body, _ = json.Marshal(Response{Error: oopsErr})
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		h.logs.Errorw("failed to write response",
			"error", err,
			"request_id", requestId)
	}
}
