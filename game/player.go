package game

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// SizeForBet maps a bet to a player radius, clamped to [MinRadius, MaxRadius].
func SizeForBet(bet float64) float64 {
	size := MinRadius + bet*BetScale
	return math.Max(MinRadius, math.Min(MaxRadius, size))
}

// NewPlayer builds a player for a join. The spawn point is uniform in a
// SpawnAreaSize square centered on the ring center. Pass an empty color to
// get a random server-assigned hue. Consumes nothing; the caller assigns
// the character slot.
func NewPlayer(id, address, color string, bet float64, slot int, rng *rand.Rand) *Player {
	if color == "" {
		color = fmt.Sprintf("hsl(%d, 70%%, 60%%)", rng.IntN(360))
	}
	return &Player{
		ID:             id,
		Address:        address,
		Bet:            bet,
		X:              CenterX + (rng.Float64()-0.5)*SpawnAreaSize,
		Y:              CenterY + (rng.Float64()-0.5)*SpawnAreaSize,
		Radius:         SizeForBet(bet),
		Color:          color,
		Alive:          true,
		Keys:           make(map[string]bool),
		Rotation:       rng.Float64() * 2 * math.Pi,
		CharacterIndex: slot,
	}
}
