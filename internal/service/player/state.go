package player

import "github.com/tubebridge/server/pkg/iframe"

// StateUpdate overrides snapshot fields; nil keeps the previous value.
type StateUpdate struct {
	VideoID         *string
	Ready           *bool
	Loaded          *bool
	HasPlayed       *bool
	Duration        *float64
	Position        *float64
	Buffered        *float64
	IsPlaying       *bool
	IsFullscreen    *bool
	Volume          *int
	Status          *iframe.PlaybackStatus
	ErrorCode       *int
	ControlsVisible *bool
	Video           *VideoData
}

// With returns a new snapshot with the set fields replaced and everything
// else carried over. Buffered is clamped to [0,1] and Position to
// [0,Duration] once the duration is known.
func (s State) With(u StateUpdate) State {
	next := s

	if u.VideoID != nil {
		next.VideoID = *u.VideoID
	}
	if u.Ready != nil {
		next.Ready = *u.Ready
	}
	if u.Loaded != nil {
		next.Loaded = *u.Loaded
	}
	if u.HasPlayed != nil {
		next.HasPlayed = *u.HasPlayed
	}
	if u.Duration != nil {
		next.Duration = *u.Duration
	}
	if u.Position != nil {
		next.Position = *u.Position
	}
	if u.Buffered != nil {
		next.Buffered = *u.Buffered
	}
	if u.IsPlaying != nil {
		next.IsPlaying = *u.IsPlaying
	}
	if u.IsFullscreen != nil {
		next.IsFullscreen = *u.IsFullscreen
	}
	if u.Volume != nil {
		next.Volume = *u.Volume
	}
	if u.Status != nil {
		next.Status = *u.Status
	}
	if u.ErrorCode != nil {
		next.ErrorCode = *u.ErrorCode
	}
	if u.ControlsVisible != nil {
		next.ControlsVisible = *u.ControlsVisible
	}
	if u.Video != nil {
		next.Video = *u.Video
	}

	if next.Buffered < 0 {
		next.Buffered = 0
	}
	if next.Buffered > 1 {
		next.Buffered = 1
	}
	if next.Position < 0 {
		next.Position = 0
	}
	if next.Duration > 0 && next.Position > next.Duration {
		next.Position = next.Duration
	}

	return next
}
