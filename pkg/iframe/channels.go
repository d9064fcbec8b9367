package iframe

// Event channels the wrapper page posts to the host. Payloads are strings;
// CURRENT_TIME and LOADED_FRACTION carry numbers serialized as strings,
// VIDEO_DATA carries a JSON object.
const (
	ChannelReady          = "READY"
	ChannelStateChanged   = "STATE_CHANGED"
	ChannelQualityChanged = "QUALITY_CHANGED"
	ChannelRateChanged    = "RATE_CHANGED"
	ChannelError          = "ERROR"
	ChannelVideoData      = "VIDEO_DATA"
	ChannelCurrentTime    = "CURRENT_TIME"
	ChannelLoadedFraction = "LOADED_FRACTION"
)
