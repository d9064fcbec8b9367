// Package player holds the bridge's core logic: one state snapshot per
// player session, a typed command surface that renders to JavaScript at
// the view boundary, and the event bridge fed by the wrapper page's named
// channels.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tubebridge/server/internal/repository/session"
	"github.com/tubebridge/server/pkg/randstr"
	"github.com/tubebridge/server/pkg/ytvideodata"
)

const tokenLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

const (
	defaultControlsHideTimeout   = 3 * time.Second
	defaultFullscreenReseekDelay = 500 * time.Millisecond
)

var (
	ErrVolumeOutOfRange = errors.New("volume out of range")
	ErrInvalidVideoURL  = errors.New("invalid video url")
	ErrPlayerNotFound   = errors.New("player not found")
)

type iSessionRepo interface {
	SetPlayer(context.Context, *session.SetPlayerParams) error
	GetPlayer(context.Context, string) (session.Player, error)
	UpdatePlayer(context.Context, *session.UpdatePlayerParams) error
	RemovePlayer(context.Context, string) error
	SetViewToken(context.Context, *session.SetViewTokenParams) error
	GetPlayerIDByViewToken(context.Context, string) (string, error)
}

type iConnRepo interface {
	AddView(*websocket.Conn, string) error
	AddApp(*websocket.Conn, string) error
	RemoveByConn(*websocket.Conn) (string, bool, error)
	GetView(string) (*websocket.Conn, error)
	GetApps(string) []*websocket.Conn
	GetPlayerID(*websocket.Conn) (string, error)
	EnqueueJS(string, string)
	DrainJS(string) []string
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type iVideoDataFetcher interface {
	Get(ctx context.Context, videoID string) (*ytvideodata.VideoData, error)
}

type Config struct {
	ControlsHideTimeout   time.Duration
	FullscreenReseekDelay time.Duration
}

type service struct {
	sessionRepo iSessionRepo
	connRepo    iConnRepo
	generator   iGenerator
	videoData   iVideoDataFetcher
	logger      *slog.Logger

	controlsHideTimeout   time.Duration
	fullscreenReseekDelay time.Duration

	mu             sync.Mutex
	controlsTimers map[string]*time.Timer
	reseekTimers   map[string]*time.Timer
	// positions captured before a fullscreen switch tears the view down,
	// keyed by player id; presence means stale time reports are ignored
	carried map[string]float64
	// snapshot updates are read-modify-write against the session repo and
	// must not interleave for the same player
	playerLocks map[string]*sync.Mutex
}

func NewService(sessionRepo iSessionRepo, connRepo iConnRepo, videoData iVideoDataFetcher, logger *slog.Logger, cfg *Config) *service {
	s := service{
		sessionRepo:           sessionRepo,
		connRepo:              connRepo,
		generator:             randstr.New(tokenLetters),
		videoData:             videoData,
		logger:                logger,
		controlsHideTimeout:   cfg.ControlsHideTimeout,
		fullscreenReseekDelay: cfg.FullscreenReseekDelay,
		controlsTimers:        make(map[string]*time.Timer),
		reseekTimers:          make(map[string]*time.Timer),
		carried:               make(map[string]float64),
		playerLocks:           make(map[string]*sync.Mutex),
	}

	if s.controlsHideTimeout <= 0 {
		s.controlsHideTimeout = defaultControlsHideTimeout
	}
	if s.fullscreenReseekDelay <= 0 {
		s.fullscreenReseekDelay = defaultFullscreenReseekDelay
	}

	return &s
}
