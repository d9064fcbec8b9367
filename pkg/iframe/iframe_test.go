package iframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandJS(t *testing.T) {
	tests := []struct {
		command  Command
		expected string
	}{
		{Play{}, "play()"},
		{Pause{}, "pause()"},
		{Load{VideoID: "dQw4w9WgXcQ", StartAt: 0}, `loadById("dQw4w9WgXcQ", 0)`},
		{Cue{VideoID: "dQw4w9WgXcQ", StartAt: 42}, `cueById("dQw4w9WgXcQ", 42)`},
		{Mute{}, "mute()"},
		{UnMute{}, "unMute()"},
		{SetVolume{Volume: 50}, "setVolume(50)"},
		{Seek{Seconds: 12.5, AllowSeekAhead: true}, "seekTo(12.5, true)"},
		{Seek{Seconds: 0, AllowSeekAhead: false}, "seekTo(0, false)"},
		{HideAnnotations{}, "hideAnnotations()"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.command.JS())
	}
}

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		code     int
		expected PlaybackStatus
	}{
		{-1, StatusUnstarted},
		{0, StatusEnded},
		{1, StatusPlaying},
		{2, StatusPaused},
		{3, StatusBuffering},
		{5, StatusCued},
		{4, StatusUnknown},
		{99, StatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusFromCode(tt.code), "code %d", tt.code)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "playing", StatusPlaying.String())
	assert.Equal(t, "unknown", PlaybackStatus(-42).String())
}
