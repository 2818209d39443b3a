package game

import "math"

// resolveCollision applies the match-play impulse between two overlapping
// players. Mass is area-proportional; push force scales with the
// opponent's bet, STRENGTH power-up and momentum, so stake buys shoving
// power. Impulse and positional de-overlap happen in the same tick.
func resolveCollision(p1, p2 *Player) {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	dist := math.Hypot(dx, dy)
	if dist >= p1.Radius+p2.Radius || dist == 0 {
		return
	}

	mass1 := p1.Radius * p1.Radius
	mass2 := p2.Radius * p2.Radius

	strength1 := strengthOf(p1)
	strength2 := strengthOf(p2)

	momentum1 := 1 + math.Hypot(p1.VX, p1.VY)*MomentumScale
	momentum2 := 1 + math.Hypot(p2.VX, p2.VY)*MomentumScale

	nx := dx / dist
	ny := dy / dist

	force1 := strength1 * momentum1
	force2 := strength2 * momentum2

	// Each player's displacement is driven by the opponent's force over
	// their own mass.
	p1.VX += nx * (force2 / mass1) * PushForce
	p1.VY += ny * (force2 / mass1) * PushForce
	p2.VX -= nx * (force1 / mass2) * PushForce
	p2.VY -= ny * (force1 / mass2) * PushForce

	overlap := (p1.Radius + p2.Radius) - dist + OverlapPad
	separation := overlap * SeparationFactor
	p1.X += nx * separation * (mass2 / (mass1 + mass2))
	p1.Y += ny * separation * (mass2 / (mass1 + mass2))
	p2.X -= nx * separation * (mass1 / (mass1 + mass2))
	p2.Y -= ny * separation * (mass1 / (mass1 + mass2))
}

func strengthOf(p *Player) float64 {
	mult := 1.0
	if p.Powerup == PowerupStrength {
		mult = StrengthMult
	}
	return mult * p.Bet * BetForceScale
}

// resolveWaitingCollision is the calm pre-match variant: no impulse, just
// a gentle even split of the overlap and flat velocity damping on both.
func resolveWaitingCollision(p1, p2 *Player) {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	dist := math.Hypot(dx, dy)
	if dist >= p1.Radius+p2.Radius || dist == 0 {
		return
	}

	nx := dx / dist
	ny := dy / dist

	overlap := (p1.Radius + p2.Radius) - dist + WaitingOverlapPad
	separation := overlap * WaitingSeparationFactor

	p1.X += nx * separation * 0.5
	p1.Y += ny * separation * 0.5
	p2.X -= nx * separation * 0.5
	p2.Y -= ny * separation * 0.5

	p1.VX *= WaitingCollisionDamping
	p1.VY *= WaitingCollisionDamping
	p2.VX *= WaitingCollisionDamping
	p2.VY *= WaitingCollisionDamping
}
