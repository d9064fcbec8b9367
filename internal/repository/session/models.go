package session

// Player is the persisted snapshot of one player session. It is written
// wholesale on every update; field-level merging happens in the service
// layer before the write.
type Player struct {
	VideoID        string  `redis:"video_id"`
	Ready          bool    `redis:"ready"`
	Loaded         bool    `redis:"loaded"`
	HasPlayed      bool    `redis:"has_played"`
	Duration       float64 `redis:"duration"`
	Position       float64 `redis:"position"`
	Buffered       float64 `redis:"buffered"`
	IsPlaying      bool    `redis:"is_playing"`
	IsFullscreen   bool    `redis:"is_fullscreen"`
	Volume         int     `redis:"volume"`
	StatusCode     int     `redis:"status_code"`
	ErrorCode      int     `redis:"error_code"`
	ControlsShown  bool    `redis:"controls_shown"`
	VideoTitle     string  `redis:"video_title"`
	VideoAuthor    string  `redis:"video_author"`
	VideoThumbnail string  `redis:"video_thumbnail"`
}
