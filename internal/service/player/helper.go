package player

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/pkg/iframe"
)

func stateFromSession(playerID string, p session.Player) State {
	return State{
		PlayerID:        playerID,
		VideoID:         p.VideoID,
		Ready:           p.Ready,
		Loaded:          p.Loaded,
		HasPlayed:       p.HasPlayed,
		Duration:        p.Duration,
		Position:        p.Position,
		Buffered:        p.Buffered,
		IsPlaying:       p.IsPlaying,
		IsFullscreen:    p.IsFullscreen,
		Volume:          p.Volume,
		Status:          iframe.PlaybackStatus(p.StatusCode),
		ErrorCode:       p.ErrorCode,
		ControlsVisible: p.ControlsShown,
		Video: VideoData{
			Title:        p.VideoTitle,
			Author:       p.VideoAuthor,
			ThumbnailURL: p.VideoThumbnail,
		},
	}
}

func sessionFromState(st State) session.Player {
	return session.Player{
		VideoID:        st.VideoID,
		Ready:          st.Ready,
		Loaded:         st.Loaded,
		HasPlayed:      st.HasPlayed,
		Duration:       st.Duration,
		Position:       st.Position,
		Buffered:       st.Buffered,
		IsPlaying:      st.IsPlaying,
		IsFullscreen:   st.IsFullscreen,
		Volume:         st.Volume,
		StatusCode:     int(st.Status),
		ErrorCode:      st.ErrorCode,
		ControlsShown:  st.ControlsVisible,
		VideoTitle:     st.Video.Title,
		VideoAuthor:    st.Video.Author,
		VideoThumbnail: st.Video.ThumbnailURL,
	}
}

func (s *service) getState(ctx context.Context, playerID string) (State, error) {
	p, err := s.sessionRepo.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, session.ErrPlayerNotFound) {
			return State{}, ErrPlayerNotFound
		}

		return State{}, fmt.Errorf("failed to get player: %w", err)
	}

	return stateFromSession(playerID, p), nil
}

func (s *service) lockPlayer(playerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.playerLocks[playerID]
	if !ok {
		mu = &sync.Mutex{}
		s.playerLocks[playerID] = mu
	}

	return mu
}

// applyUpdate replaces the stored snapshot with a new one derived from the
// previous snapshot and the given overrides. Updates to the same player are
// serialized; the view's event stream, app commands and the timers all land
// here concurrently and an interleaved read-modify-write would drop fields.
func (s *service) applyUpdate(ctx context.Context, playerID string, update StateUpdate) (State, error) {
	mu := s.lockPlayer(playerID)
	mu.Lock()
	defer mu.Unlock()

	st, err := s.getState(ctx, playerID)
	if err != nil {
		return State{}, err
	}

	next := st.With(update)
	if err := s.sessionRepo.UpdatePlayer(ctx, &session.UpdatePlayerParams{
		PlayerID: playerID,
		Player:   sessionFromState(next),
	}); err != nil {
		return State{}, fmt.Errorf("failed to update player: %w", err)
	}

	return next, nil
}

// parseFloat treats malformed numeric payloads as 0.
func parseFloat(payload string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(payload), 64)
	if err != nil {
		return 0
	}

	return f
}

// parseInt treats malformed numeric payloads as 0.
func parseInt(payload string) int {
	i, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		return 0
	}

	return i
}
