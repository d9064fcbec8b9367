package iframe

// PlaybackStatus is the playback state the IFrame API reports on the
// STATE_CHANGED channel.
type PlaybackStatus int

const (
	StatusUnknown PlaybackStatus = iota
	StatusUnstarted
	StatusEnded
	StatusPlaying
	StatusPaused
	StatusBuffering
	StatusCued
)

var statusNames = map[PlaybackStatus]string{
	StatusUnknown:   "unknown",
	StatusUnstarted: "unstarted",
	StatusEnded:     "ended",
	StatusPlaying:   "playing",
	StatusPaused:    "paused",
	StatusBuffering: "buffering",
	StatusCued:      "cued",
}

// StatusFromCode maps the numeric state codes of the IFrame API. Codes the
// API never documented map to StatusUnknown so a misbehaving page cannot
// take the bridge down.
func StatusFromCode(code int) PlaybackStatus {
	switch code {
	case -1:
		return StatusUnstarted
	case 0:
		return StatusEnded
	case 1:
		return StatusPlaying
	case 2:
		return StatusPaused
	case 3:
		return StatusBuffering
	case 5:
		return StatusCued
	default:
		return StatusUnknown
	}
}

func (s PlaybackStatus) String() string {
	name, ok := statusNames[s]
	if !ok {
		return statusNames[StatusUnknown]
	}

	return name
}

func (s PlaybackStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PlaybackStatus) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}

	*s = StatusUnknown
	return nil
}
