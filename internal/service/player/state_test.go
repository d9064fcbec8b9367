package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubebridge/server/pkg/iframe"
)

func TestStateWithKeepsUnsetFields(t *testing.T) {
	prev := State{
		PlayerID:        "p1",
		VideoID:         "dQw4w9WgXcQ",
		Ready:           true,
		HasPlayed:       true,
		Duration:        300,
		Position:        42,
		Buffered:        0.5,
		Volume:          80,
		Status:          iframe.StatusPlaying,
		ControlsVisible: true,
	}

	position := 100.0
	next := prev.With(StateUpdate{Position: &position})

	assert.Equal(t, 100.0, next.Position)
	assert.Equal(t, prev.VideoID, next.VideoID)
	assert.Equal(t, prev.Ready, next.Ready)
	assert.Equal(t, prev.HasPlayed, next.HasPlayed)
	assert.Equal(t, prev.Duration, next.Duration)
	assert.Equal(t, prev.Buffered, next.Buffered)
	assert.Equal(t, prev.Volume, next.Volume)
	assert.Equal(t, prev.Status, next.Status)
	assert.Equal(t, prev.ControlsVisible, next.ControlsVisible)
}

func TestStateWithClampsBuffered(t *testing.T) {
	tests := []struct {
		buffered float64
		expected float64
	}{
		{1.4, 1},
		{-0.1, 0},
		{0.7, 0.7},
		{0, 0},
		{1, 1},
	}

	for _, tt := range tests {
		next := State{}.With(StateUpdate{Buffered: &tt.buffered})
		assert.Equal(t, tt.expected, next.Buffered, "buffered %f", tt.buffered)
	}
}

func TestStateWithClampsPosition(t *testing.T) {
	duration := 100.0
	position := 250.0
	next := State{}.With(StateUpdate{Duration: &duration, Position: &position})
	assert.Equal(t, 100.0, next.Position)

	negative := -5.0
	next = State{Duration: 100}.With(StateUpdate{Position: &negative})
	assert.Equal(t, 0.0, next.Position)

	// position is not clamped while the duration is unknown
	unknown := 0.0
	late := 250.0
	next = State{}.With(StateUpdate{Duration: &unknown, Position: &late})
	assert.Equal(t, 250.0, next.Position)
}

func TestParseNumericDefaults(t *testing.T) {
	assert.Equal(t, 0.0, parseFloat("not a number"))
	assert.Equal(t, 0.0, parseFloat(""))
	assert.Equal(t, 12.5, parseFloat("12.5"))
	assert.Equal(t, 3.0, parseFloat(" 3 "))
	assert.Equal(t, 0, parseInt("garbage"))
	assert.Equal(t, 101, parseInt("101"))
}
