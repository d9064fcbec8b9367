// Package redis persists player sessions as redis hashes with a sliding
// TTL.
package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

type repo struct {
	rc             *redis.Client
	expireDuration time.Duration
}

func NewRepo(rc *redis.Client, expireDuration time.Duration) *repo {
	return &repo{
		rc:             rc,
		expireDuration: expireDuration,
	}
}

func (r repo) getPlayerKey(playerID string) string {
	return "player:" + playerID
}

func (r repo) getViewTokenKey(token string) string {
	return "view-token:" + token
}
