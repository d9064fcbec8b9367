package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/pkg/iframe"
	"github.com/tubebridge/server/pkg/ytvideoid"
)

type CreatePlayerParams struct {
	VideoURL string
	Autoplay bool
}

type CreatePlayerResponse struct {
	PlayerID  string
	ViewToken string
	State     State
}

func (s *service) CreatePlayer(ctx context.Context, params *CreatePlayerParams) (CreatePlayerResponse, error) {
	videoID, ok := ytvideoid.Parse(params.VideoURL)
	if !ok {
		return CreatePlayerResponse{}, ErrInvalidVideoURL
	}

	playerID := uuid.NewString()
	viewToken := s.generator.GenerateRandomString(32)

	st := State{
		PlayerID:        playerID,
		VideoID:         videoID,
		Volume:          100,
		Status:          iframe.StatusUnknown,
		ControlsVisible: true,
		Video:           s.fetchVideoData(ctx, videoID),
	}

	if err := s.sessionRepo.SetPlayer(ctx, &session.SetPlayerParams{
		PlayerID: playerID,
		Player:   sessionFromState(st),
	}); err != nil {
		return CreatePlayerResponse{}, fmt.Errorf("failed to set player: %w", err)
	}

	if err := s.sessionRepo.SetViewToken(ctx, &session.SetViewTokenParams{
		Token:    viewToken,
		PlayerID: playerID,
	}); err != nil {
		return CreatePlayerResponse{}, fmt.Errorf("failed to set view token: %w", err)
	}

	// the view has not attached yet, so the initial command sits in the
	// queue until the page reports READY
	if params.Autoplay {
		s.eval(st, iframe.Load{VideoID: videoID})
	} else {
		s.eval(st, iframe.Cue{VideoID: videoID})
	}

	s.scheduleControlsHide(playerID)

	return CreatePlayerResponse{
		PlayerID:  playerID,
		ViewToken: viewToken,
		State:     st,
	}, nil
}

type AttachViewParams struct {
	Conn  *websocket.Conn
	Token string
}

type AttachViewResponse struct {
	PlayerID string
	State    State
}

func (s *service) AttachView(ctx context.Context, params *AttachViewParams) (AttachViewResponse, error) {
	playerID, err := s.sessionRepo.GetPlayerIDByViewToken(ctx, params.Token)
	if err != nil {
		return AttachViewResponse{}, fmt.Errorf("failed to get player id by view token: %w", err)
	}

	st, err := s.getState(ctx, playerID)
	if err != nil {
		return AttachViewResponse{}, err
	}

	if err := s.connRepo.AddView(params.Conn, playerID); err != nil {
		return AttachViewResponse{}, fmt.Errorf("failed to add view connection: %w", err)
	}

	return AttachViewResponse{PlayerID: playerID, State: st}, nil
}

type AttachAppParams struct {
	Conn     *websocket.Conn
	PlayerID string
}

type AttachAppResponse struct {
	State State
}

func (s *service) AttachApp(ctx context.Context, params *AttachAppParams) (AttachAppResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return AttachAppResponse{}, err
	}

	if err := s.connRepo.AddApp(params.Conn, params.PlayerID); err != nil {
		return AttachAppResponse{}, fmt.Errorf("failed to add app connection: %w", err)
	}

	return AttachAppResponse{State: st}, nil
}

type DetachConnParams struct {
	Conn *websocket.Conn
}

type DetachConnResponse struct {
	PlayerID string
	WasView  bool
}

// DetachConn forgets a closed connection. Losing the view clears the ready
// flag so later commands queue for the next view; losing the last app
// observer cancels the controls auto-hide countdown.
func (s *service) DetachConn(ctx context.Context, params *DetachConnParams) (DetachConnResponse, error) {
	playerID, wasView, err := s.connRepo.RemoveByConn(params.Conn)
	if err != nil {
		return DetachConnResponse{}, fmt.Errorf("failed to remove connection: %w", err)
	}

	if wasView {
		ready := false
		st, err := s.applyUpdate(ctx, playerID, StateUpdate{Ready: &ready})
		if err != nil {
			return DetachConnResponse{}, err
		}
		s.broadcastState(st)
	} else if len(s.connRepo.GetApps(playerID)) == 0 {
		s.cancelControlsHide(playerID)
	}

	return DetachConnResponse{PlayerID: playerID, WasView: wasView}, nil
}

type RemovePlayerParams struct {
	PlayerID string
}

func (s *service) RemovePlayer(ctx context.Context, params *RemovePlayerParams) error {
	s.cancelControlsHide(params.PlayerID)
	s.cancelFullscreenSwitch(params.PlayerID)
	s.connRepo.DrainJS(params.PlayerID)

	s.mu.Lock()
	delete(s.playerLocks, params.PlayerID)
	s.mu.Unlock()

	if err := s.sessionRepo.RemovePlayer(ctx, params.PlayerID); err != nil {
		if errors.Is(err, session.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}

		return fmt.Errorf("failed to remove player: %w", err)
	}

	return nil
}

type GetStateParams struct {
	PlayerID string
}

func (s *service) GetState(ctx context.Context, params *GetStateParams) (State, error) {
	return s.getState(ctx, params.PlayerID)
}

type PlayParams struct {
	PlayerID string
}

type CommandResponse struct {
	State State
}

func (s *service) Play(ctx context.Context, params *PlayParams) (CommandResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st, iframe.Play{})

	return CommandResponse{State: st}, nil
}

type PauseParams struct {
	PlayerID string
}

func (s *service) Pause(ctx context.Context, params *PauseParams) (CommandResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st, iframe.Pause{})

	return CommandResponse{State: st}, nil
}

type LoadVideoParams struct {
	PlayerID string
	VideoURL string
	StartAt  int
}

func (s *service) LoadVideo(ctx context.Context, params *LoadVideoParams) (CommandResponse, error) {
	return s.switchVideo(ctx, params.PlayerID, params.VideoURL, params.StartAt, true)
}

type CueVideoParams struct {
	PlayerID string
	VideoURL string
	StartAt  int
}

func (s *service) CueVideo(ctx context.Context, params *CueVideoParams) (CommandResponse, error) {
	return s.switchVideo(ctx, params.PlayerID, params.VideoURL, params.StartAt, false)
}

func (s *service) switchVideo(ctx context.Context, playerID, videoURL string, startAt int, autoplay bool) (CommandResponse, error) {
	videoID, ok := ytvideoid.Parse(videoURL)
	if !ok {
		return CommandResponse{}, ErrInvalidVideoURL
	}

	video := s.fetchVideoData(ctx, videoID)
	position := float64(startAt)
	duration := 0.0
	buffered := 0.0
	errorCode := 0
	loaded := false

	st, err := s.applyUpdate(ctx, playerID, StateUpdate{
		VideoID:   &videoID,
		Position:  &position,
		Duration:  &duration,
		Buffered:  &buffered,
		ErrorCode: &errorCode,
		Loaded:    &loaded,
		IsPlaying: &autoplay,
		Video:     &video,
	})
	if err != nil {
		return CommandResponse{}, err
	}

	if autoplay {
		s.eval(st, iframe.Load{VideoID: videoID, StartAt: startAt})
	} else {
		s.eval(st, iframe.Cue{VideoID: videoID, StartAt: startAt})
	}
	s.broadcastState(st)

	return CommandResponse{State: st}, nil
}

type MuteParams struct {
	PlayerID string
}

func (s *service) Mute(ctx context.Context, params *MuteParams) (CommandResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st, iframe.Mute{})

	return CommandResponse{State: st}, nil
}

type UnMuteParams struct {
	PlayerID string
}

func (s *service) UnMute(ctx context.Context, params *UnMuteParams) (CommandResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st, iframe.UnMute{})

	return CommandResponse{State: st}, nil
}

type SetVolumeParams struct {
	PlayerID string
	Volume   int
}

func (s *service) SetVolume(ctx context.Context, params *SetVolumeParams) (CommandResponse, error) {
	if params.Volume < 0 || params.Volume > 100 {
		return CommandResponse{}, ErrVolumeOutOfRange
	}

	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{Volume: &params.Volume})
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st, iframe.SetVolume{Volume: params.Volume})
	s.broadcastState(st)

	return CommandResponse{State: st}, nil
}

type SeekParams struct {
	PlayerID       string
	Seconds        float64
	AllowSeekAhead bool
}

// Seek updates the position optimistically, ahead of the player's own
// confirmation, and always resumes playback.
func (s *service) Seek(ctx context.Context, params *SeekParams) (CommandResponse, error) {
	playing := true
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{
		Position:  &params.Seconds,
		IsPlaying: &playing,
	})
	if err != nil {
		return CommandResponse{}, err
	}

	s.eval(st,
		iframe.Seek{Seconds: params.Seconds, AllowSeekAhead: params.AllowSeekAhead},
		iframe.Play{},
	)
	s.broadcastState(st)

	return CommandResponse{State: st}, nil
}

func (s *service) fetchVideoData(ctx context.Context, videoID string) VideoData {
	if s.videoData == nil {
		return VideoData{}
	}

	data, err := s.videoData.Get(ctx, videoID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch video data", "video_id", videoID, "error", err)
		return VideoData{}
	}

	return VideoData{
		Title:        data.Title,
		Author:       data.AuthorName,
		ThumbnailURL: data.ThumbnailURL,
	}
}
