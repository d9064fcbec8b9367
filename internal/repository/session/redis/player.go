package redis

import (
	"context"
	"fmt"

	"github.com/tubebridge/server/internal/repository/session"
)

func (r repo) SetPlayer(ctx context.Context, params *session.SetPlayerParams) error {
	playerKey := r.getPlayerKey(params.PlayerID)
	if err := r.rc.HSet(ctx, playerKey, params.Player).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	r.rc.Expire(ctx, playerKey, r.expireDuration)

	return nil
}

func (r repo) GetPlayer(ctx context.Context, playerID string) (session.Player, error) {
	playerKey := r.getPlayerKey(playerID)
	res, err := r.rc.Exists(ctx, playerKey).Result()
	if err != nil {
		return session.Player{}, fmt.Errorf("failed to check if player exists: %w", err)
	}
	if res == 0 {
		return session.Player{}, session.ErrPlayerNotFound
	}

	var player session.Player
	if err := r.rc.HGetAll(ctx, playerKey).Scan(&player); err != nil {
		return session.Player{}, fmt.Errorf("failed to get player: %w", err)
	}

	r.rc.Expire(ctx, playerKey, r.expireDuration)

	return player, nil
}

func (r repo) UpdatePlayer(ctx context.Context, params *session.UpdatePlayerParams) error {
	playerKey := r.getPlayerKey(params.PlayerID)
	res, err := r.rc.Exists(ctx, playerKey).Result()
	if err != nil {
		return fmt.Errorf("failed to check if player exists: %w", err)
	}
	if res == 0 {
		return session.ErrPlayerNotFound
	}

	if err := r.rc.HSet(ctx, playerKey, params.Player).Err(); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	r.rc.Expire(ctx, playerKey, r.expireDuration)

	return nil
}

func (r repo) RemovePlayer(ctx context.Context, playerID string) error {
	res, err := r.rc.Del(ctx, r.getPlayerKey(playerID)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}
	if res == 0 {
		return session.ErrPlayerNotFound
	}

	return nil
}
