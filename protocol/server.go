package protocol

import "sumo/game"

// Payloads pushed to clients.

type Connection struct {
	Type    string       `json:"type"`
	ID      string       `json:"id"`
	Message string       `json:"message,omitempty"`
	Server  *ServerState `json:"serverState,omitempty"`
}

// GameState is the full-snapshot push: every broadcast carries the whole
// authoritative state so a client can rebuild from any single message.
type GameState struct {
	Type string    `json:"type"`
	Data StateData `json:"data"`
}

type StateData struct {
	Players     []game.Player  `json:"players"`
	Powerups    []game.Powerup `json:"powerups"`
	GameRunning bool           `json:"gameRunning"`
	GamePhase   game.Phase     `json:"gamePhase"`
	PrizePool   float64        `json:"prizePool"`
	Countdown   int            `json:"countdown"`
	GameTime    int            `json:"gameTime"`
}

// ServerStateUpdate is the light summary variant: aggregate counts and
// flags only, no per-player state.
type ServerStateUpdate struct {
	Type   string      `json:"type"`
	Server ServerState `json:"server"`
}

type ServerState struct {
	ConnectedClients int        `json:"connectedClients"`
	GamePhase        game.Phase `json:"gamePhase"`
	ChainConnected   bool       `json:"blockchainConnected"`
	LastSync         int64      `json:"lastSync,omitempty"` // unix millis, 0 = never
}

type ChainStateResult struct {
	Type      string     `json:"type"`
	IsInGame  bool       `json:"isInGame"`
	Address   string     `json:"address"`
	GamePhase game.Phase `json:"gamePhase,omitempty"`
}

type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
