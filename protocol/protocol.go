package protocol

// Wire messages are flat JSON objects discriminated by a "type" field,
// e.g. {"type":"joinGame","bet":0.01,...}. That is the format the browser
// client already speaks, so there is no nested envelope.

// Client to server.
const (
	MsgJoinGame        = "joinGame"
	MsgStartGame       = "startGame"
	MsgPlayerInput     = "playerInput"
	MsgRegisterPlayer  = "registerPlayer"
	MsgCheckChainState = "checkBlockchainState"
	MsgRequestState    = "requestGameState"
	MsgHeartbeat       = "heartbeat"
)

// Server to client.
const (
	MsgConnection        = "connection"
	MsgGameState         = "gameState"
	MsgServerStateUpdate = "serverStateUpdate"
	MsgChainStateResult  = "blockchainStateResult"
	MsgError             = "error"
)
