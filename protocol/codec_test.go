package protocol

import (
	"encoding/json"
	"testing"

	"sumo/game"
)

func TestDecodeType(t *testing.T) {
	typ, err := DecodeType([]byte(`{"type":"joinGame","bet":0.01,"address":"0xabc"}`))
	if err != nil {
		t.Fatalf("decode type: %v", err)
	}
	if typ != MsgJoinGame {
		t.Fatalf("type = %q, want %q", typ, MsgJoinGame)
	}
}

func TestDecodeTypeErrors(t *testing.T) {
	cases := map[string][]byte{
		"empty":        nil,
		"not json":     []byte("nope"),
		"missing type": []byte(`{"bet":0.01}`),
	}
	for name, b := range cases {
		if _, err := DecodeType(b); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDecodePayloadJoinGame(t *testing.T) {
	m, err := DecodePayload[JoinGame]([]byte(`{"type":"joinGame","bet":0.01,"address":"0xabc","color":"#ff0000"}`))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if m.Bet != 0.01 || m.Address != "0xabc" || m.Color != "#ff0000" {
		t.Fatalf("unexpected payload: %+v", m)
	}
}

func TestDecodePayloadPlayerInput(t *testing.T) {
	m, err := DecodePayload[PlayerInput]([]byte(`{"type":"playerInput","keys":{"w":true,"ArrowLeft":true,"x":false}}`))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !m.Keys["w"] || !m.Keys["ArrowLeft"] || m.Keys["x"] {
		t.Fatalf("unexpected keys: %v", m.Keys)
	}
}

// The browser client reads these exact field names; pin them.
func TestGameStateSnapshotFieldNames(t *testing.T) {
	msg := GameState{
		Type: MsgGameState,
		Data: StateData{
			Players:   []game.Player{{ID: "p1", Alive: true, Keys: map[string]bool{}}},
			Powerups:  []game.Powerup{{Type: game.PowerupSpeed}},
			GamePhase: game.PhasePlaying,
		},
	}
	b, err := Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["type"]; !ok {
		t.Fatal("missing top-level type tag")
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw["data"], &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	for _, field := range []string{"players", "powerups", "gameRunning", "gamePhase", "prizePool", "countdown", "gameTime"} {
		if _, ok := data[field]; !ok {
			t.Errorf("snapshot missing field %q", field)
		}
	}

	var players []map[string]json.RawMessage
	if err := json.Unmarshal(data["players"], &players); err != nil {
		t.Fatalf("unmarshal players: %v", err)
	}
	for _, field := range []string{"id", "address", "bet", "x", "y", "vx", "vy", "radius", "color",
		"alive", "powerup", "powerupEndTime", "keys", "rotation", "rotationSpeed", "characterIndex"} {
		if _, ok := players[0][field]; !ok {
			t.Errorf("player snapshot missing field %q", field)
		}
	}
}

func TestEncodeNil(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Fatal("encoding nil must fail")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := GameState{
		Type: MsgGameState,
		Data: StateData{
			Players:     []game.Player{{ID: "p1", Bet: 0.02, Radius: 40, Alive: true}},
			GameRunning: true,
			GamePhase:   game.PhasePlaying,
			PrizePool:   0.02,
			GameTime:    42,
		},
	}
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodePayload[GameState](b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Data.GameTime != 42 || out.Data.PrizePool != 0.02 || !out.Data.GameRunning {
		t.Fatalf("round trip mismatch: %+v", out.Data)
	}
	if len(out.Data.Players) != 1 || out.Data.Players[0].Radius != 40 {
		t.Fatalf("player round trip mismatch: %+v", out.Data.Players)
	}
}
