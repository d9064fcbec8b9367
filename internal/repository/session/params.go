package session

type SetPlayerParams struct {
	PlayerID string
	Player   Player
}

type UpdatePlayerParams struct {
	PlayerID string
	Player   Player
}

type SetViewTokenParams struct {
	Token    string
	PlayerID string
}
