package protocol

// Payloads coming in from the client.

type JoinGame struct {
	Type    string  `json:"type"`
	Bet     float64 `json:"bet"`
	Address string  `json:"address"`
	Color   string  `json:"color,omitempty"`
}

type StartGame struct {
	Type string `json:"type"`
}

type PlayerInput struct {
	Type string          `json:"type"`
	Keys map[string]bool `json:"keys"`
}

// RegisterPlayer is the lightweight registration used by wallets that are
// on-chain but not driving a live player yet.
type RegisterPlayer struct {
	Type    string  `json:"type"`
	Address string  `json:"address"`
	Bet     float64 `json:"bet"`
}

type CheckChainState struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

type RequestGameState struct {
	Type string `json:"type"`
}

type Heartbeat struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}
