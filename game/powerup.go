package game

import (
	"math"
	"math/rand/v2"
)

// SpawnPowerup places a random power-up inside the ring annulus. No-op
// once MaxPowerups are outstanding.
func SpawnPowerup(s *State, rng *rand.Rand) {
	if len(s.Powerups) >= MaxPowerups {
		return
	}

	angle := rng.Float64() * 2 * math.Pi
	minR := RingRadius * PowerupSpawnMinFrac
	maxR := RingRadius * PowerupSpawnMaxFrac
	distance := minR + rng.Float64()*(maxR-minR)

	s.Powerups = append(s.Powerups, Powerup{
		Type: PowerupTypes[rng.IntN(len(PowerupTypes))],
		X:    CenterX + math.Cos(angle)*distance,
		Y:    CenterY + math.Sin(angle)*distance,
	})
}

// pickupPowerups lets players absorb power-ups they are touching. Each
// power-up goes to the first qualifying player in scan order and is
// removed in the same tick, so pickup is exactly-once.
func pickupPowerups(s *State, nowMilli int64) {
	players := alivePlayers(s)
	for i := len(s.Powerups) - 1; i >= 0; i-- {
		pu := s.Powerups[i]
		for _, p := range players {
			dist := math.Hypot(p.X-pu.X, p.Y-pu.Y)
			if dist < p.Radius+PowerupPickupPad {
				p.Powerup = pu.Type
				p.PowerupEndTime = nowMilli + PowerupDurationMilli
				s.Powerups = append(s.Powerups[:i], s.Powerups[i+1:]...)
				break
			}
		}
	}
}
