package controller

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/service/player"
	"github.com/tubebridge/server/pkg/validator"
	"github.com/tubebridge/server/pkg/wsrouter"
)

type iPlayerService interface {
	CreatePlayer(context.Context, *player.CreatePlayerParams) (player.CreatePlayerResponse, error)
	AttachView(context.Context, *player.AttachViewParams) (player.AttachViewResponse, error)
	AttachApp(context.Context, *player.AttachAppParams) (player.AttachAppResponse, error)
	DetachConn(context.Context, *player.DetachConnParams) (player.DetachConnResponse, error)
	RemovePlayer(context.Context, *player.RemovePlayerParams) error
	GetState(context.Context, *player.GetStateParams) (player.State, error)

	Play(context.Context, *player.PlayParams) (player.CommandResponse, error)
	Pause(context.Context, *player.PauseParams) (player.CommandResponse, error)
	LoadVideo(context.Context, *player.LoadVideoParams) (player.CommandResponse, error)
	CueVideo(context.Context, *player.CueVideoParams) (player.CommandResponse, error)
	Mute(context.Context, *player.MuteParams) (player.CommandResponse, error)
	UnMute(context.Context, *player.UnMuteParams) (player.CommandResponse, error)
	SetVolume(context.Context, *player.SetVolumeParams) (player.CommandResponse, error)
	Seek(context.Context, *player.SeekParams) (player.CommandResponse, error)
	SetFullscreen(context.Context, *player.SetFullscreenParams) (player.CommandResponse, error)
	ShowControls(context.Context, *player.ShowControlsParams) (player.CommandResponse, error)

	HandleReady(context.Context, *player.HandleReadyParams) (player.EventResponse, error)
	HandleStateChange(context.Context, *player.HandleStateChangeParams) (player.EventResponse, error)
	HandleQualityChange(context.Context, *player.HandleQualityChangeParams)
	HandleRateChange(context.Context, *player.HandleRateChangeParams)
	HandleError(context.Context, *player.HandleErrorParams) (player.EventResponse, error)
	HandleVideoData(context.Context, *player.HandleVideoDataParams) (player.EventResponse, error)
	HandleCurrentTime(context.Context, *player.HandleCurrentTimeParams) (player.EventResponse, error)
	HandleLoadedFraction(context.Context, *player.HandleLoadedFractionParams) (player.EventResponse, error)
}

type controller struct {
	playerService iPlayerService
	upgrader      websocket.Upgrader
	validate      *validator.Validator
	logger        *slog.Logger
	viewMux       *wsrouter.WSRouter
	appMux        *wsrouter.WSRouter
}

func NewController(playerService iPlayerService, logger *slog.Logger) *controller {
	c := controller{
		playerService: playerService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}

	c.viewMux = c.getViewWSRouter()
	c.appMux = c.getAppWSRouter()

	return &c
}

// stringPayload decodes the string carried on the page's event channels.
// A payload that is not a JSON string decodes to "", which the service
// layer coalesces to 0.
func stringPayload(payload json.RawMessage) string {
	var data string
	if err := json.Unmarshal(payload, &data); err != nil {
		return ""
	}

	return data
}
