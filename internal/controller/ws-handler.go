package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tubebridge/server/internal/service/player"
	"github.com/tubebridge/server/pkg/wsrouter"
)

// attachView upgrades the wrapper page's connection. The page authenticates
// with the token minted when the player was created.
func (c controller) attachView(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		c.logger.DebugContext(r.Context(), "empty view token")
		http.Error(w, "token is required", http.StatusUnauthorized)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	attachViewResponse, err := c.playerService.AttachView(r.Context(), &player.AttachViewParams{
		Conn:  conn,
		Token: token,
	})
	if err != nil {
		c.logger.DebugContext(r.Context(), "failed to attach view", "error", err)
		return
	}
	defer c.detach(r.Context(), conn)

	ctx := context.WithValue(r.Context(), playerIDCtxKey, attachViewResponse.PlayerID)
	if err := c.viewMux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(r.Context(), "view connection closed", "player_id", attachViewResponse.PlayerID, "error", err)
	}
}

func (c controller) attachApp(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "player-id")
	if playerID == "" {
		c.logger.DebugContext(r.Context(), "empty player id")
		http.Error(w, "player id is required", http.StatusBadRequest)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	attachAppResponse, err := c.playerService.AttachApp(r.Context(), &player.AttachAppParams{
		Conn:     conn,
		PlayerID: playerID,
	})
	if err != nil {
		c.logger.DebugContext(r.Context(), "failed to attach app", "error", err)
		return
	}
	defer c.detach(r.Context(), conn)

	if err := conn.WriteJSON(&wsrouter.Output{
		Type:    "PLAYER_STATE",
		Payload: attachAppResponse.State,
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write json", "error", err)
		return
	}

	ctx := context.WithValue(r.Context(), playerIDCtxKey, playerID)
	if err := c.appMux.ServeConn(ctx, conn); err != nil {
		c.logger.InfoContext(r.Context(), "app connection closed", "player_id", playerID, "error", err)
	}
}
