package controller

import "context"

type contextKey int

const playerIDCtxKey contextKey = iota

func (c controller) getPlayerIDFromCtx(ctx context.Context) string {
	playerID, ok := ctx.Value(playerIDCtxKey).(string)
	if !ok {
		return ""
	}

	return playerID
}
