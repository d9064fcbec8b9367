package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/service/player"
)

func (c controller) handlePlay(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.Play(ctx, &player.PlayParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	return nil
}

func (c controller) handlePause(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.Pause(ctx, &player.PauseParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	return nil
}

type LoadVideoInput struct {
	VideoURL string `json:"video_url" validate:"required"`
	StartAt  int    `json:"start_at" validate:"gte=0"`
}

func (c controller) handleLoadVideo(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input LoadVideoInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if _, err := c.playerService.LoadVideo(ctx, &player.LoadVideoParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		VideoURL: input.VideoURL,
		StartAt:  input.StartAt,
	}); err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}

	return nil
}

type CueVideoInput struct {
	VideoURL string `json:"video_url" validate:"required"`
	StartAt  int    `json:"start_at" validate:"gte=0"`
}

func (c controller) handleCueVideo(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input CueVideoInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if _, err := c.playerService.CueVideo(ctx, &player.CueVideoParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		VideoURL: input.VideoURL,
		StartAt:  input.StartAt,
	}); err != nil {
		return fmt.Errorf("failed to cue video: %w", err)
	}

	return nil
}

func (c controller) handleMute(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.Mute(ctx, &player.MuteParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to mute: %w", err)
	}

	return nil
}

func (c controller) handleUnMute(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.UnMute(ctx, &player.UnMuteParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to unmute: %w", err)
	}

	return nil
}

type SetVolumeInput struct {
	Volume int `json:"volume" validate:"gte=0,lte=100"`
}

func (c controller) handleSetVolume(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input SetVolumeInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if _, err := c.playerService.SetVolume(ctx, &player.SetVolumeParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
		Volume:   input.Volume,
	}); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}

	return nil
}

type SeekInput struct {
	Seconds        float64 `json:"seconds" validate:"gte=0"`
	AllowSeekAhead bool    `json:"allow_seek_ahead"`
}

func (c controller) handleSeek(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input SeekInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if _, err := c.playerService.Seek(ctx, &player.SeekParams{
		PlayerID:       c.getPlayerIDFromCtx(ctx),
		Seconds:        input.Seconds,
		AllowSeekAhead: input.AllowSeekAhead,
	}); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}

type SetFullscreenInput struct {
	Fullscreen bool `json:"fullscreen"`
}

func (c controller) handleSetFullscreen(ctx context.Context, _ *websocket.Conn, payload json.RawMessage) error {
	var input SetFullscreenInput
	if err := c.unmarshalAndValidate(payload, &input); err != nil {
		return err
	}

	if _, err := c.playerService.SetFullscreen(ctx, &player.SetFullscreenParams{
		PlayerID:   c.getPlayerIDFromCtx(ctx),
		Fullscreen: input.Fullscreen,
	}); err != nil {
		return fmt.Errorf("failed to set fullscreen: %w", err)
	}

	return nil
}

func (c controller) handleShowControls(ctx context.Context, _ *websocket.Conn, _ json.RawMessage) error {
	if _, err := c.playerService.ShowControls(ctx, &player.ShowControlsParams{
		PlayerID: c.getPlayerIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to show controls: %w", err)
	}

	return nil
}

func (c controller) unmarshalAndValidate(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	if validationErrors, ok := c.validate.Validate(v); !ok {
		return errors.New(validationErrors[0].Message)
	}

	return nil
}
