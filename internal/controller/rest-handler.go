package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tubebridge/server/internal/service/player"
)

type CreatePlayerInput struct {
	VideoURL string `json:"video_url" validate:"required"`
	Autoplay bool   `json:"autoplay"`
}

func (c controller) createPlayer(w http.ResponseWriter, r *http.Request) {
	var input CreatePlayerInput
	if err := c.decodeBody(r, &input); err != nil {
		c.logger.DebugContext(r.Context(), "failed to decode body", "error", err)
		c.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors, ok := c.validate.Validate(&input); !ok {
		c.respondValidationErrors(w, validationErrors)
		return
	}

	createPlayerResponse, err := c.playerService.CreatePlayer(r.Context(), &player.CreatePlayerParams{
		VideoURL: input.VideoURL,
		Autoplay: input.Autoplay,
	})
	if err != nil {
		if errors.Is(err, player.ErrInvalidVideoURL) {
			c.respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		c.logger.WarnContext(r.Context(), "failed to create player", "error", err)
		c.respondError(w, http.StatusInternalServerError, "failed to create player")
		return
	}

	c.respondJSON(w, http.StatusCreated, map[string]any{
		"player_id":  createPlayerResponse.PlayerID,
		"view_token": createPlayerResponse.ViewToken,
		"state":      createPlayerResponse.State,
	})
}

func (c controller) getPlayerState(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "player-id")

	state, err := c.playerService.GetState(r.Context(), &player.GetStateParams{PlayerID: playerID})
	if err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			c.respondError(w, http.StatusNotFound, err.Error())
			return
		}

		c.logger.WarnContext(r.Context(), "failed to get player state", "error", err)
		c.respondError(w, http.StatusInternalServerError, "failed to get player state")
		return
	}

	c.respondJSON(w, http.StatusOK, state)
}

func (c controller) removePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "player-id")

	if err := c.playerService.RemovePlayer(r.Context(), &player.RemovePlayerParams{PlayerID: playerID}); err != nil {
		if errors.Is(err, player.ErrPlayerNotFound) {
			c.respondError(w, http.StatusNotFound, err.Error())
			return
		}

		c.logger.WarnContext(r.Context(), "failed to remove player", "error", err)
		c.respondError(w, http.StatusInternalServerError, "failed to remove player")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
