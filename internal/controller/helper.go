package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/service/player"
	"github.com/tubebridge/server/pkg/validator"
)

func (c controller) detach(ctx context.Context, conn *websocket.Conn) {
	if _, err := c.playerService.DetachConn(ctx, &player.DetachConnParams{Conn: conn}); err != nil {
		c.logger.DebugContext(ctx, "failed to detach connection", "error", err)
	}
}

func (c controller) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func (c controller) respondError(w http.ResponseWriter, status int, message string) {
	c.respondJSON(w, status, map[string]string{"error": message})
}

func (c controller) respondValidationErrors(w http.ResponseWriter, errs []validator.ValidationError) {
	c.respondJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func (c controller) decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
