package game

import (
	"math"
	"math/rand/v2"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSizeForBet(t *testing.T) {
	cases := []struct {
		bet  float64
		want float64
	}{
		{0, 20},
		{0.005, 25},
		{0.01, 30},
		{0.02, 40},
		{0.03, 50},
		{0.05, 50},  // clamped high
		{1, 50},     // clamped high
		{-0.5, 20},  // clamped low
	}
	for _, c := range cases {
		if got := SizeForBet(c.bet); got != c.want {
			t.Errorf("SizeForBet(%v) = %v, want %v", c.bet, got, c.want)
		}
	}
}

func TestSizeForBetMonotonic(t *testing.T) {
	prev := SizeForBet(0)
	for bet := 0.001; bet <= 0.05; bet += 0.001 {
		got := SizeForBet(bet)
		if got < prev {
			t.Fatalf("SizeForBet not monotonic: f(%v)=%v < previous %v", bet, got, prev)
		}
		prev = got
	}
}

func TestNewPlayerSpawnsInsideSquare(t *testing.T) {
	rng := testRNG()
	for i := 0; i < 100; i++ {
		p := NewPlayer("p1", "0xabc", "", 0.01, 2, rng)
		if math.Abs(p.X-CenterX) > SpawnAreaSize/2 || math.Abs(p.Y-CenterY) > SpawnAreaSize/2 {
			t.Fatalf("spawn (%v, %v) outside %vx%v square around center", p.X, p.Y, SpawnAreaSize, SpawnAreaSize)
		}
		if !p.Alive {
			t.Fatal("new player must be alive")
		}
		if p.VX != 0 || p.VY != 0 {
			t.Fatalf("new player must start at rest, got velocity (%v, %v)", p.VX, p.VY)
		}
		if p.Rotation < 0 || p.Rotation >= 2*math.Pi {
			t.Fatalf("rotation %v out of [0, 2pi)", p.Rotation)
		}
	}
}

func TestNewPlayerFields(t *testing.T) {
	rng := testRNG()
	p := NewPlayer("p1", "0xabc", "hsl(10, 70%, 60%)", 0.01, 3, rng)
	if p.ID != "p1" || p.Address != "0xabc" {
		t.Fatalf("identity fields wrong: %q %q", p.ID, p.Address)
	}
	if p.Radius != 30 {
		t.Fatalf("radius = %v, want 30 for bet 0.01", p.Radius)
	}
	if p.Color != "hsl(10, 70%, 60%)" {
		t.Fatalf("client color not kept: %q", p.Color)
	}
	if p.CharacterIndex != 3 {
		t.Fatalf("character slot = %d, want 3", p.CharacterIndex)
	}
	if p.Powerup != "" || p.PowerupEndTime != 0 {
		t.Fatal("new player must have no active power-up")
	}
	if p.Keys == nil {
		t.Fatal("keys map must be initialized")
	}
}

func TestNewPlayerRandomColor(t *testing.T) {
	rng := testRNG()
	p := NewPlayer("p1", "0xabc", "", 0.01, 1, rng)
	if p.Color == "" {
		t.Fatal("expected a server-assigned color")
	}
}
