package player

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tubebridge/server/pkg/iframe"
	"github.com/tubebridge/server/pkg/wsrouter"
)

type HandleReadyParams struct {
	PlayerID string
}

type EventResponse struct {
	State State
}

// HandleReady marks the view ready and flushes the JavaScript queued while
// no view could execute it.
func (s *service) HandleReady(ctx context.Context, params *HandleReadyParams) (EventResponse, error) {
	ready := true
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{Ready: &ready})
	if err != nil {
		return EventResponse{}, err
	}

	if conn, err := s.connRepo.GetView(params.PlayerID); err == nil {
		for _, js := range s.connRepo.DrainJS(params.PlayerID) {
			s.sendToConn(conn, &wsrouter.Output{Type: "EVAL", Payload: map[string]string{"js": js}})
		}
	}

	s.eval(st, iframe.HideAnnotations{})
	s.broadcastState(st)

	return EventResponse{State: st}, nil
}

type HandleStateChangeParams struct {
	PlayerID string
	Data     string
}

// HandleStateChange maps the numeric state code posted by the page onto
// the playback status. Unrecognized codes degrade to StatusUnknown.
func (s *service) HandleStateChange(ctx context.Context, params *HandleStateChangeParams) (EventResponse, error) {
	status := iframe.StatusUnknown
	code, err := strconv.Atoi(strings.TrimSpace(params.Data))
	if err != nil {
		s.logger.WarnContext(ctx, "malformed state code", "player_id", params.PlayerID, "data", params.Data)
	} else {
		status = iframe.StatusFromCode(code)
		if status == iframe.StatusUnknown {
			s.logger.WarnContext(ctx, "unrecognized state code", "player_id", params.PlayerID, "code", code)
		}
	}

	update := StateUpdate{Status: &status}
	switch status {
	case iframe.StatusPlaying:
		playing, played, loaded, errorCode := true, true, true, 0
		update.IsPlaying = &playing
		update.HasPlayed = &played
		update.Loaded = &loaded
		update.ErrorCode = &errorCode
	case iframe.StatusPaused, iframe.StatusEnded, iframe.StatusUnstarted:
		playing := false
		update.IsPlaying = &playing
	case iframe.StatusCued:
		playing, loaded := false, true
		update.IsPlaying = &playing
		update.Loaded = &loaded
	}

	st, err := s.applyUpdate(ctx, params.PlayerID, update)
	if err != nil {
		return EventResponse{}, err
	}

	s.broadcastState(st)

	return EventResponse{State: st}, nil
}

type HandleQualityChangeParams struct {
	PlayerID string
	Data     string
}

func (s *service) HandleQualityChange(ctx context.Context, params *HandleQualityChangeParams) {
	s.logger.InfoContext(ctx, "playback quality changed", "player_id", params.PlayerID, "quality", params.Data)
}

type HandleRateChangeParams struct {
	PlayerID string
	Data     string
}

func (s *service) HandleRateChange(ctx context.Context, params *HandleRateChangeParams) {
	s.logger.InfoContext(ctx, "playback rate changed", "player_id", params.PlayerID, "rate", params.Data)
}

type HandleErrorParams struct {
	PlayerID string
	Data     string
}

// HandleError surfaces the upstream error code verbatim; 0 means no error.
func (s *service) HandleError(ctx context.Context, params *HandleErrorParams) (EventResponse, error) {
	errorCode := parseInt(params.Data)
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{ErrorCode: &errorCode})
	if err != nil {
		return EventResponse{}, err
	}

	s.broadcastState(st)

	return EventResponse{State: st}, nil
}

type HandleVideoDataParams struct {
	PlayerID string
	Payload  json.RawMessage
}

func (s *service) HandleVideoData(ctx context.Context, params *HandleVideoDataParams) (EventResponse, error) {
	var data struct {
		Duration float64 `json:"duration"`
		Title    string  `json:"title"`
		Author   string  `json:"author"`
		VideoID  string  `json:"video_id"`
	}
	if err := json.Unmarshal(params.Payload, &data); err != nil {
		s.logger.DebugContext(ctx, "malformed video data payload", "player_id", params.PlayerID, "error", err)
	}

	loaded := true
	update := StateUpdate{
		Duration: &data.Duration,
		Loaded:   &loaded,
	}
	if data.VideoID != "" {
		update.VideoID = &data.VideoID
	}
	if data.Title != "" || data.Author != "" {
		st, err := s.getState(ctx, params.PlayerID)
		if err != nil {
			return EventResponse{}, err
		}
		video := st.Video
		if data.Title != "" {
			video.Title = data.Title
		}
		if data.Author != "" {
			video.Author = data.Author
		}
		update.Video = &video
	}

	st, err := s.applyUpdate(ctx, params.PlayerID, update)
	if err != nil {
		return EventResponse{}, err
	}

	s.broadcastState(st)

	return EventResponse{State: st}, nil
}

type HandleCurrentTimeParams struct {
	PlayerID string
	Data     string
}

// HandleCurrentTime records the position reported by the page. Reports
// arriving while a fullscreen switch is in flight come from the view being
// torn down and are dropped.
func (s *service) HandleCurrentTime(ctx context.Context, params *HandleCurrentTimeParams) (EventResponse, error) {
	if s.isSwitching(params.PlayerID) {
		s.logger.DebugContext(ctx, "dropping stale time report during fullscreen switch", "player_id", params.PlayerID)
		st, err := s.getState(ctx, params.PlayerID)
		if err != nil {
			return EventResponse{}, err
		}

		return EventResponse{State: st}, nil
	}

	position := parseFloat(params.Data)
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{Position: &position})
	if err != nil {
		return EventResponse{}, err
	}

	s.broadcastState(st)

	return EventResponse{State: st}, nil
}

type HandleLoadedFractionParams struct {
	PlayerID string
	Data     string
}

func (s *service) HandleLoadedFraction(ctx context.Context, params *HandleLoadedFractionParams) (EventResponse, error) {
	buffered := parseFloat(params.Data)
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{Buffered: &buffered})
	if err != nil {
		return EventResponse{}, err
	}

	s.broadcastState(st)

	return EventResponse{State: st}, nil
}
