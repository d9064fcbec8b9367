package player

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubebridge/server/internal/repository/connection/inmemory"
	sessionredis "github.com/tubebridge/server/internal/repository/session/redis"
	"github.com/tubebridge/server/pkg/iframe"
)

func newTestService(t *testing.T, cfg *Config) (*service, func(string) []string) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rc.Close() })

	sessionRepo := sessionredis.NewRepo(rc, time.Hour)
	connRepo := inmemory.NewRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(sessionRepo, connRepo, nil, logger, cfg)

	return svc, connRepo.DrainJS
}

func quietConfig() *Config {
	return &Config{
		ControlsHideTimeout:   time.Minute,
		FullscreenReseekDelay: time.Minute,
	}
}

func TestCreatePlayer(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())
	ctx := context.Background()

	resp, err := svc.CreatePlayer(ctx, &CreatePlayerParams{
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.PlayerID, "player id is empty")
	assert.NotEmpty(t, resp.ViewToken, "view token is empty")
	assert.Equal(t, "dQw4w9WgXcQ", resp.State.VideoID)
	assert.Equal(t, 100, resp.State.Volume)
	assert.Equal(t, iframe.StatusUnknown, resp.State.Status)
	assert.True(t, resp.State.ControlsVisible)
	assert.False(t, resp.State.Ready)
	assert.Equal(t, 0, resp.State.ErrorCode)

	// the initial cue waits in the queue until a view reports READY
	assert.Equal(t, []string{`cueById("dQw4w9WgXcQ", 0)`}, drain(resp.PlayerID))

	st, err := svc.GetState(ctx, &GetStateParams{PlayerID: resp.PlayerID})
	require.NoError(t, err)
	assert.Equal(t, resp.State, st)
}

func TestCreatePlayerAutoplay(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())

	resp, err := svc.CreatePlayer(context.Background(), &CreatePlayerParams{
		VideoURL: "dQw4w9WgXcQ",
		Autoplay: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{`loadById("dQw4w9WgXcQ", 0)`}, drain(resp.PlayerID))
}

func TestCreatePlayerInvalidURL(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())

	_, err := svc.CreatePlayer(context.Background(), &CreatePlayerParams{VideoURL: "not a url"})
	assert.ErrorIs(t, err, ErrInvalidVideoURL)
}

func TestSetVolume(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	drain(created.PlayerID)

	for _, volume := range []int{-1, 101, 1000} {
		_, err := svc.SetVolume(ctx, &SetVolumeParams{PlayerID: created.PlayerID, Volume: volume})
		assert.ErrorIs(t, err, ErrVolumeOutOfRange, "volume %d must be rejected", volume)
	}

	for _, volume := range []int{0, 100, 35} {
		resp, err := svc.SetVolume(ctx, &SetVolumeParams{PlayerID: created.PlayerID, Volume: volume})
		require.NoError(t, err, "volume %d must be accepted", volume)
		assert.Equal(t, volume, resp.State.Volume)
	}

	assert.Equal(t, []string{"setVolume(0)", "setVolume(100)", "setVolume(35)"}, drain(created.PlayerID))
}

func TestSeekIsOptimistic(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	drain(created.PlayerID)

	// no confirmation from the page has arrived, the snapshot moves anyway
	resp, err := svc.Seek(ctx, &SeekParams{PlayerID: created.PlayerID, Seconds: 42.5, AllowSeekAhead: true})
	require.NoError(t, err)
	assert.Equal(t, 42.5, resp.State.Position)
	assert.True(t, resp.State.IsPlaying, "seek must resume playback")

	assert.Equal(t, []string{"seekTo(42.5, true)", "play()"}, drain(created.PlayerID))
}

func TestHandleStateChange(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	resp, err := svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "1"})
	require.NoError(t, err)
	assert.Equal(t, iframe.StatusPlaying, resp.State.Status)
	assert.True(t, resp.State.IsPlaying)
	assert.True(t, resp.State.HasPlayed)
	assert.True(t, resp.State.Loaded)

	resp, err = svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "2"})
	require.NoError(t, err)
	assert.Equal(t, iframe.StatusPaused, resp.State.Status)
	assert.False(t, resp.State.IsPlaying)
	assert.True(t, resp.State.HasPlayed, "has played survives a pause")

	// unrecognized and malformed codes degrade instead of failing
	resp, err = svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "4"})
	require.NoError(t, err)
	assert.Equal(t, iframe.StatusUnknown, resp.State.Status)

	resp, err = svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, iframe.StatusUnknown, resp.State.Status)
}

func TestHandleError(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	resp, err := svc.HandleError(ctx, &HandleErrorParams{PlayerID: created.PlayerID, Data: "101"})
	require.NoError(t, err)
	assert.Equal(t, 101, resp.State.ErrorCode)

	// a later successful playback clears the error
	resp, err = svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.State.ErrorCode)

	resp, err = svc.HandleError(ctx, &HandleErrorParams{PlayerID: created.PlayerID, Data: "malformed"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.State.ErrorCode)
}

func TestHandleVideoDataAndTime(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	resp, err := svc.HandleVideoData(ctx, &HandleVideoDataParams{
		PlayerID: created.PlayerID,
		Payload:  json.RawMessage(`{"duration": 300.5, "title": "Some Title", "author": "Some Author"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 300.5, resp.State.Duration)
	assert.True(t, resp.State.Loaded)
	assert.Equal(t, "Some Title", resp.State.Video.Title)
	assert.Equal(t, "Some Author", resp.State.Video.Author)

	resp, err = svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "42.25"})
	require.NoError(t, err)
	assert.Equal(t, 42.25, resp.State.Position)

	// a position beyond the duration is clamped
	resp, err = svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "9999"})
	require.NoError(t, err)
	assert.Equal(t, 300.5, resp.State.Position)

	resp, err = svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "not a number"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.State.Position)
}

func TestHandleLoadedFractionClamped(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	resp, err := svc.HandleLoadedFraction(ctx, &HandleLoadedFractionParams{PlayerID: created.PlayerID, Data: "1.4"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, resp.State.Buffered)

	resp, err = svc.HandleLoadedFraction(ctx, &HandleLoadedFractionParams{PlayerID: created.PlayerID, Data: "0.6"})
	require.NoError(t, err)
	assert.Equal(t, 0.6, resp.State.Buffered)

	resp, err = svc.HandleLoadedFraction(ctx, &HandleLoadedFractionParams{PlayerID: created.PlayerID, Data: "garbage"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.State.Buffered)
}

func TestCommandsQueueUntilReady(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	_, err = svc.Play(ctx, &PlayParams{PlayerID: created.PlayerID})
	require.NoError(t, err)
	_, err = svc.Mute(ctx, &MuteParams{PlayerID: created.PlayerID})
	require.NoError(t, err)
	_, err = svc.Pause(ctx, &PauseParams{PlayerID: created.PlayerID})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`cueById("dQw4w9WgXcQ", 0)`,
		"play()",
		"mute()",
		"pause()",
	}, drain(created.PlayerID))
}

func TestFullscreenSwitchCarriesPosition(t *testing.T) {
	svc, drain := newTestService(t, &Config{
		ControlsHideTimeout:   time.Minute,
		FullscreenReseekDelay: 20 * time.Millisecond,
	})
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	drain(created.PlayerID)

	_, err = svc.HandleVideoData(ctx, &HandleVideoDataParams{
		PlayerID: created.PlayerID,
		Payload:  json.RawMessage(`{"duration": 300}`),
	})
	require.NoError(t, err)
	_, err = svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "100"})
	require.NoError(t, err)

	resp, err := svc.SetFullscreen(ctx, &SetFullscreenParams{PlayerID: created.PlayerID, Fullscreen: true})
	require.NoError(t, err)
	assert.True(t, resp.State.IsFullscreen)

	// the recreated view's first reports are stale and must not move the position
	resp2, err := svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "0"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp2.State.Position)

	require.Eventually(t, func() bool {
		st, err := svc.GetState(ctx, &GetStateParams{PlayerID: created.PlayerID})
		return err == nil && st.IsPlaying && st.Position == 100
	}, time.Second, 10*time.Millisecond, "compensating seek did not happen")

	assert.Equal(t, []string{"seekTo(100, true)", "play()"}, drain(created.PlayerID))

	// once the switch completed, time reports flow again
	resp3, err := svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{PlayerID: created.PlayerID, Data: "101"})
	require.NoError(t, err)
	assert.Equal(t, 101.0, resp3.State.Position)
}

func TestSetFullscreenSameValueIsNoop(t *testing.T) {
	svc, drain := newTestService(t, &Config{
		ControlsHideTimeout:   time.Minute,
		FullscreenReseekDelay: 20 * time.Millisecond,
	})
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	drain(created.PlayerID)

	resp, err := svc.SetFullscreen(ctx, &SetFullscreenParams{PlayerID: created.PlayerID, Fullscreen: false})
	require.NoError(t, err)
	assert.False(t, resp.State.IsFullscreen)
	assert.False(t, svc.isSwitching(created.PlayerID))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, drain(created.PlayerID))
}

func TestControlsAutoHide(t *testing.T) {
	svc, _ := newTestService(t, &Config{
		ControlsHideTimeout:   20 * time.Millisecond,
		FullscreenReseekDelay: time.Minute,
	})
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.True(t, created.State.ControlsVisible)

	require.Eventually(t, func() bool {
		st, err := svc.GetState(ctx, &GetStateParams{PlayerID: created.PlayerID})
		return err == nil && !st.ControlsVisible
	}, time.Second, 10*time.Millisecond, "controls did not auto-hide")

	resp, err := svc.ShowControls(ctx, &ShowControlsParams{PlayerID: created.PlayerID})
	require.NoError(t, err)
	assert.True(t, resp.State.ControlsVisible)

	require.Eventually(t, func() bool {
		st, err := svc.GetState(ctx, &GetStateParams{PlayerID: created.PlayerID})
		return err == nil && !st.ControlsVisible
	}, time.Second, 10*time.Millisecond, "controls did not auto-hide after show")
}

func TestLoadVideoResetsPlaybackFields(t *testing.T) {
	svc, drain := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)
	drain(created.PlayerID)

	_, err = svc.HandleVideoData(ctx, &HandleVideoDataParams{
		PlayerID: created.PlayerID,
		Payload:  json.RawMessage(`{"duration": 300}`),
	})
	require.NoError(t, err)
	_, err = svc.HandleStateChange(ctx, &HandleStateChangeParams{PlayerID: created.PlayerID, Data: "1"})
	require.NoError(t, err)
	_, err = svc.HandleError(ctx, &HandleErrorParams{PlayerID: created.PlayerID, Data: "150"})
	require.NoError(t, err)

	resp, err := svc.LoadVideo(ctx, &LoadVideoParams{
		PlayerID: created.PlayerID,
		VideoURL: "https://youtu.be/9bZkp7q19f0",
		StartAt:  30,
	})
	require.NoError(t, err)
	assert.Equal(t, "9bZkp7q19f0", resp.State.VideoID)
	assert.Equal(t, 30.0, resp.State.Position)
	assert.Equal(t, 0.0, resp.State.Duration)
	assert.Equal(t, 0.0, resp.State.Buffered)
	assert.Equal(t, 0, resp.State.ErrorCode)
	assert.False(t, resp.State.Loaded)
	assert.True(t, resp.State.IsPlaying)
	assert.True(t, resp.State.HasPlayed, "has played survives a video switch")

	assert.Equal(t, []string{`loadById("9bZkp7q19f0", 30)`}, drain(created.PlayerID))
}

func TestConcurrentUpdatesKeepAllFields(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	// the view reports positions continuously while the app changes the
	// volume; neither write may clobber the other
	for i := 1; i <= 25; i++ {
		value := i
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.HandleCurrentTime(ctx, &HandleCurrentTimeParams{
				PlayerID: created.PlayerID,
				Data:     strconv.Itoa(value),
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := svc.SetVolume(ctx, &SetVolumeParams{PlayerID: created.PlayerID, Volume: value})
			assert.NoError(t, err)
		}()
		wg.Wait()

		st, err := svc.GetState(ctx, &GetStateParams{PlayerID: created.PlayerID})
		require.NoError(t, err)
		assert.Equal(t, value, st.Volume, "volume lost on iteration %d", i)
		assert.Equal(t, float64(value), st.Position, "position lost on iteration %d", i)
	}
}

func TestGetStateUnknownPlayer(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())

	_, err := svc.GetState(context.Background(), &GetStateParams{PlayerID: "missing"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestRemovePlayer(t *testing.T) {
	svc, _ := newTestService(t, quietConfig())
	ctx := context.Background()

	created, err := svc.CreatePlayer(ctx, &CreatePlayerParams{VideoURL: "dQw4w9WgXcQ"})
	require.NoError(t, err)

	require.NoError(t, svc.RemovePlayer(ctx, &RemovePlayerParams{PlayerID: created.PlayerID}))

	_, err = svc.GetState(ctx, &GetStateParams{PlayerID: created.PlayerID})
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	assert.ErrorIs(t, svc.RemovePlayer(ctx, &RemovePlayerParams{PlayerID: created.PlayerID}), ErrPlayerNotFound)
}
