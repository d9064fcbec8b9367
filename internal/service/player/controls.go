package player

import (
	"context"
	"time"
)

type ShowControlsParams struct {
	PlayerID string
}

// ShowControls makes the controls visible and restarts the auto-hide
// countdown.
func (s *service) ShowControls(ctx context.Context, params *ShowControlsParams) (CommandResponse, error) {
	visible := true
	st, err := s.applyUpdate(ctx, params.PlayerID, StateUpdate{ControlsVisible: &visible})
	if err != nil {
		return CommandResponse{}, err
	}

	s.scheduleControlsHide(params.PlayerID)
	s.broadcastState(st)

	return CommandResponse{State: st}, nil
}

func (s *service) scheduleControlsHide(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.controlsTimers[playerID]; t != nil {
		t.Stop()
	}
	s.controlsTimers[playerID] = time.AfterFunc(s.controlsHideTimeout, func() {
		s.hideControls(playerID)
	})
}

func (s *service) cancelControlsHide(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := s.controlsTimers[playerID]; t != nil {
		t.Stop()
		delete(s.controlsTimers, playerID)
	}
}

func (s *service) hideControls(playerID string) {
	s.mu.Lock()
	delete(s.controlsTimers, playerID)
	s.mu.Unlock()

	visible := false
	st, err := s.applyUpdate(context.Background(), playerID, StateUpdate{ControlsVisible: &visible})
	if err != nil {
		s.logger.Warn("failed to hide controls", "player_id", playerID, "error", err)
		return
	}

	s.broadcastState(st)
}
