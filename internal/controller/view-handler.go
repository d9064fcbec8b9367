package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/service/player"
)

func (c controller) handleReady(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.HandleReady(ctx, &player.HandleReadyParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to handle ready: %w", err)
	}

	return nil
}

func (c controller) handleStateChanged(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	if _, err := c.playerService.HandleStateChange(ctx, &player.HandleStateChangeParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	}); err != nil {
		return fmt.Errorf("failed to handle state change: %w", err)
	}

	return nil
}

func (c controller) handleQualityChanged(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	c.playerService.HandleQualityChange(ctx, &player.HandleQualityChangeParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	})

	return nil
}

func (c controller) handleRateChanged(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	c.playerService.HandleRateChange(ctx, &player.HandleRateChangeParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	})

	return nil
}

func (c controller) handleError(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	if _, err := c.playerService.HandleError(ctx, &player.HandleErrorParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	}); err != nil {
		return fmt.Errorf("failed to handle error: %w", err)
	}

	return nil
}

func (c controller) handleVideoData(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	if _, err := c.playerService.HandleVideoData(ctx, &player.HandleVideoDataParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Payload:  payload,
	}); err != nil {
		return fmt.Errorf("failed to handle video data: %w", err)
	}

	return nil
}

func (c controller) handleCurrentTime(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	if _, err := c.playerService.HandleCurrentTime(ctx, &player.HandleCurrentTimeParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	}); err != nil {
		return fmt.Errorf("failed to handle current time: %w", err)
	}

	return nil
}

func (c controller) handleLoadedFraction(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	if _, err := c.playerService.HandleLoadedFraction(ctx, &player.HandleLoadedFractionParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Data:     stringPayload(payload),
	}); err != nil {
		return fmt.Errorf("failed to handle loaded fraction: %w", err)
	}

	return nil
}
