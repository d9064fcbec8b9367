package controller

import (
	"github.com/tubebridge/server/pkg/iframe"
	"github.com/tubebridge/server/pkg/wsrouter"
)

// getViewWSRouter routes the named event channels posted by the wrapper
// page.
func (c controller) getViewWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Handle(iframe.ChannelReady, c.handleReady)
	mux.Handle(iframe.ChannelStateChanged, c.handleStateChanged)
	mux.Handle(iframe.ChannelQualityChanged, c.handleQualityChanged)
	mux.Handle(iframe.ChannelRateChanged, c.handleRateChanged)
	mux.Handle(iframe.ChannelError, c.handleError)
	mux.Handle(iframe.ChannelVideoData, c.handleVideoData)
	mux.Handle(iframe.ChannelCurrentTime, c.handleCurrentTime)
	mux.Handle(iframe.ChannelLoadedFraction, c.handleLoadedFraction)

	return mux
}

// getAppWSRouter routes the typed commands issued by the host application.
func (c controller) getAppWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Handle("PLAY", c.handlePlay)
	mux.Handle("PAUSE", c.handlePause)
	mux.Handle("LOAD_VIDEO", c.handleLoadVideo)
	mux.Handle("CUE_VIDEO", c.handleCueVideo)
	mux.Handle("MUTE", c.handleMute)
	mux.Handle("UNMUTE", c.handleUnMute)
	mux.Handle("SET_VOLUME", c.handleSetVolume)
	mux.Handle("SEEK", c.handleSeek)
	mux.Handle("SET_FULLSCREEN", c.handleSetFullscreen)
	mux.Handle("SHOW_CONTROLS", c.handleShowControls)

	return mux
}
