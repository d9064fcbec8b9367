package player

import "github.com/tubebridge/server/pkg/iframe"

type VideoData struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// State is the immutable snapshot of everything observable about a player
// session. Updates go through With; the previous snapshot is discarded
// wholesale.
type State struct {
	PlayerID        string                `json:"player_id"`
	VideoID         string                `json:"video_id"`
	Ready           bool                  `json:"ready"`
	Loaded          bool                  `json:"loaded"`
	HasPlayed       bool                  `json:"has_played"`
	Duration        float64               `json:"duration"`
	Position        float64               `json:"position"`
	Buffered        float64               `json:"buffered"`
	IsPlaying       bool                  `json:"is_playing"`
	IsFullscreen    bool                  `json:"is_fullscreen"`
	Volume          int                   `json:"volume"`
	Status          iframe.PlaybackStatus `json:"status"`
	ErrorCode       int                   `json:"error_code"`
	ControlsVisible bool                  `json:"controls_visible"`
	Video           VideoData             `json:"video"`
}
