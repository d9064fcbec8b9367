package player

import (
	"context"
	"time"

	"github.com/tubebridge/server/pkg/iframe"
)

type SetFullscreenParams struct {
	PlayerID   string
	Fullscreen bool
}

// SetFullscreen flips the fullscreen flag. The embedded view is torn down
// and recreated across the transition, so the current position is captured
// here and replayed with a compensating seek once the configured delay has
// passed; position reports in between are ignored.
func (s *service) SetFullscreen(ctx context.Context, params *SetFullscreenParams) (CommandResponse, error) {
	st, err := s.getState(ctx, params.PlayerID)
	if err != nil {
		return CommandResponse{}, err
	}

	if st.IsFullscreen == params.Fullscreen {
		return CommandResponse{State: st}, nil
	}

	st, err = s.applyUpdate(ctx, params.PlayerID, StateUpdate{IsFullscreen: &params.Fullscreen})
	if err != nil {
		return CommandResponse{}, err
	}

	s.beginFullscreenSwitch(params.PlayerID, st.Position)
	s.broadcastState(st)

	return CommandResponse{State: st}, nil
}

func (s *service) beginFullscreenSwitch(playerID string, position float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carried[playerID] = position
	if t := s.reseekTimers[playerID]; t != nil {
		t.Stop()
	}
	s.reseekTimers[playerID] = time.AfterFunc(s.fullscreenReseekDelay, func() {
		s.completeFullscreenSwitch(playerID)
	})
}

func (s *service) isSwitching(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.carried[playerID]
	return ok
}

func (s *service) cancelFullscreenSwitch(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.reseekTimers[playerID]; t != nil {
		t.Stop()
	}
	delete(s.reseekTimers, playerID)
	delete(s.carried, playerID)
}

// completeFullscreenSwitch re-seeks to the position captured before the
// view was torn down and stops dropping time reports.
func (s *service) completeFullscreenSwitch(playerID string) {
	s.mu.Lock()
	position, ok := s.carried[playerID]
	delete(s.carried, playerID)
	delete(s.reseekTimers, playerID)
	s.mu.Unlock()

	if !ok {
		return
	}

	ctx := context.Background()
	playing := true
	st, err := s.applyUpdate(ctx, playerID, StateUpdate{
		Position:  &position,
		IsPlaying: &playing,
	})
	if err != nil {
		s.logger.Warn("failed to re-seek after fullscreen switch", "player_id", playerID, "error", err)
		return
	}

	s.eval(st,
		iframe.Seek{Seconds: position, AllowSeekAhead: true},
		iframe.Play{},
	)
	s.broadcastState(st)
}
