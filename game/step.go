package game

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// Step advances the match-play simulation by one tick: input to velocity,
// integration, friction, ring containment, power-up expiry, rotation
// bookkeeping, pairwise collisions, power-up pickup and spawning.
// Eliminated players are skipped entirely and never move again.
func Step(s *State, now time.Time, rng *rand.Rand) {
	s.Tick++
	nowMilli := now.UnixMilli()

	for _, p := range alivePlayers(s) {
		base := BaseSpeed
		if p.Powerup == PowerupSpeed {
			base = SpeedBoost
		}
		movePlayer(p, base)

		p.VX *= Friction
		p.VY *= Friction

		containInRing(p)

		if p.PowerupEndTime != 0 && nowMilli > p.PowerupEndTime {
			p.Powerup = ""
			p.PowerupEndTime = 0
		}

		updateRotation(p)
	}

	players := alivePlayers(s)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			resolveCollision(players[i], players[j])
		}
	}

	pickupPowerups(s, nowMilli)

	if s.Phase == PhasePlaying && len(s.Powerups) < MaxPowerups && rng.Float64() < PowerupSpawnChance {
		SpawnPowerup(s, rng)
	}
}

// StepWaiting advances the pre-match waiting room by one tick. Movement is
// slower, friction heavier, and nobody is ever eliminated: players pushed
// far past the edge are repositioned back inside instead.
func StepWaiting(s *State) {
	s.Tick++

	for _, p := range alivePlayers(s) {
		movePlayer(p, WaitingBaseSpeed)

		p.VX *= WaitingFriction
		p.VY *= WaitingFriction

		dist := math.Hypot(p.X-CenterX, p.Y-CenterY)
		if dist+p.Radius > RingRadius {
			angle := math.Atan2(p.Y-CenterY, p.X-CenterX)
			p.VX -= math.Cos(angle) * WaitingRingPushback
			p.VY -= math.Sin(angle) * WaitingRingPushback

			if dist+p.Radius > RingRadius+RepositionOvershoot {
				back := RingRadius - p.Radius - RepositionInset
				p.X = CenterX + math.Cos(angle)*back
				p.Y = CenterY + math.Sin(angle)*back
			}
		}

		updateRotation(p)
	}

	players := alivePlayers(s)
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			resolveWaitingCollision(players[i], players[j])
		}
	}
}

// movePlayer applies the directional keys as velocity increments. Heavier
// players accelerate slower (mass grows with radius).
func movePlayer(p *Player, base float64) {
	mass := p.Radius / MassDivisor
	speed := base / math.Sqrt(mass)

	if keyDown(p.Keys, "w", "arrowup") {
		p.VY -= speed
	}
	if keyDown(p.Keys, "s", "arrowdown") {
		p.VY += speed
	}
	if keyDown(p.Keys, "a", "arrowleft") {
		p.VX -= speed
	}
	if keyDown(p.Keys, "d", "arrowright") {
		p.VX += speed
	}

	p.X += p.VX
	p.Y += p.VY
}

func containInRing(p *Player) {
	dist := math.Hypot(p.X-CenterX, p.Y-CenterY)
	if dist+p.Radius <= RingRadius {
		return
	}
	if dist+p.Radius > RingRadius+EliminationOvershoot {
		p.Alive = false
		return
	}
	angle := math.Atan2(p.Y-CenterY, p.X-CenterX)
	p.VX -= math.Cos(angle) * RingPushback
	p.VY -= math.Sin(angle) * RingPushback
}

func updateRotation(p *Player) {
	if p.VX != 0 || p.VY != 0 {
		p.Rotation = math.Atan2(p.VY, p.VX)
		p.RotationSpeed = math.Hypot(p.VX, p.VY) * RotationSpeedScale
	} else {
		p.RotationSpeed *= RotationDecay
	}
}

// keyDown checks a logical key and its aliases, case-insensitively.
func keyDown(keys map[string]bool, names ...string) bool {
	for k, down := range keys {
		if !down {
			continue
		}
		k = strings.ToLower(k)
		for _, n := range names {
			if k == n {
				return true
			}
		}
	}
	return false
}

// alivePlayers returns the alive set in id order so pair iteration and
// pickup scans are deterministic regardless of map iteration.
func alivePlayers(s *State) []*Player {
	ids := make([]string, 0, len(s.Players))
	for id, p := range s.Players {
		if p.Alive {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]*Player, len(ids))
	for i, id := range ids {
		out[i] = s.Players[id]
	}
	return out
}
