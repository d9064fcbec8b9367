package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/tubebridge/server/internal/repository/session"
)

func (r repo) SetViewToken(ctx context.Context, params *session.SetViewTokenParams) error {
	tokenKey := r.getViewTokenKey(params.Token)
	if err := r.rc.Set(ctx, tokenKey, params.PlayerID, r.expireDuration).Err(); err != nil {
		return fmt.Errorf("failed to set view token: %w", err)
	}

	return nil
}

func (r repo) GetPlayerIDByViewToken(ctx context.Context, token string) (string, error) {
	playerID, err := r.rc.Get(ctx, r.getViewTokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", session.ErrTokenNotFound
		}

		return "", fmt.Errorf("failed to get view token: %w", err)
	}

	return playerID, nil
}
