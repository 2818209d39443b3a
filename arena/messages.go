package arena

import "sumo/chain"

// Conn is the write side of a client connection. The network layer hands
// the arena real websockets; tests hand it fakes.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Commands posted to the arena inbox. One goroutine consumes them, so
// handlers never interleave.

// Connect announces a fresh session before any join.
type Connect struct {
	ID   string
	Conn Conn
}

// Disconnect is posted when the socket drops.
type Disconnect struct {
	ID string
}

// Join registers a betting player for the session.
type Join struct {
	ID      string
	Address string
	Color   string
	Bet     float64
}

// Start asks for the countdown if enough players are present.
type Start struct {
	ID string
}

// Input replaces the stored key state for the session's player.
type Input struct {
	ID   string
	Keys map[string]bool
}

// Register is the lightweight wallet registration without a live player.
type Register struct {
	ID      string
	Address string
	Bet     float64
}

// CheckChain asks whether an address is in the on-chain game. Answered
// from the last mirrored snapshot, never from a live RPC call.
type CheckChain struct {
	ID      string
	Address string
}

// StateRequest asks for a full snapshot push to the requester.
type StateRequest struct {
	ID string
}

// Heartbeat refreshes session liveness.
type Heartbeat struct {
	ID        string
	Timestamp int64
}

// chainSync re-enters the loop with the result of an async mirror poll.
type chainSync struct {
	snap chain.Snapshot
	err  error
}
