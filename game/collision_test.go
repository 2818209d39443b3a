package game

import (
	"math"
	"testing"
)

func TestCollisionSymmetryForEqualTwins(t *testing.T) {
	p1 := testPlayer("a", CenterX-10, CenterY, 30)
	p2 := testPlayer("b", CenterX+10, CenterY, 30)

	resolveCollision(p1, p2)

	if math.Abs(p1.VX+p2.VX) > 1e-9 || math.Abs(p1.VY+p2.VY) > 1e-9 {
		t.Fatalf("impulses not equal and opposite: p1 (%v, %v) p2 (%v, %v)",
			p1.VX, p1.VY, p2.VX, p2.VY)
	}
	if p1.VX >= 0 || p2.VX <= 0 {
		t.Fatalf("players should be pushed apart: p1 vx %v, p2 vx %v", p1.VX, p2.VX)
	}
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	p1 := testPlayer("a", CenterX-10, CenterY, 30)
	p2 := testPlayer("b", CenterX+10, CenterY, 30)
	before := p2.X - p1.X

	resolveCollision(p1, p2)

	if after := p2.X - p1.X; after <= before {
		t.Fatalf("positional de-overlap missing: gap %v -> %v", before, after)
	}
}

func TestCollisionStrengthAndBetDominates(t *testing.T) {
	// Equal mass; p2 bets 4x more and holds STRENGTH. The impulse p2
	// imparts on p1 must be strictly greater than what it receives.
	p1 := testPlayer("a", CenterX-10, CenterY, 30)
	p1.Bet = 0.005
	p2 := testPlayer("b", CenterX+10, CenterY, 30)
	p2.Bet = 0.02
	p2.Powerup = PowerupStrength

	resolveCollision(p1, p2)

	impulse1 := math.Hypot(p1.VX, p1.VY) // driven by p2's force
	impulse2 := math.Hypot(p2.VX, p2.VY) // driven by p1's force
	if impulse1 <= impulse2 {
		t.Fatalf("higher-bet STRENGTH player should shove harder: got %v on p1, %v on p2",
			impulse1, impulse2)
	}
}

func TestCollisionMomentumIncreasesForce(t *testing.T) {
	slow1 := testPlayer("a", CenterX-10, CenterY, 30)
	slow2 := testPlayer("b", CenterX+10, CenterY, 30)
	resolveCollision(slow1, slow2)
	slowImpulse := math.Hypot(slow2.VX, slow2.VY)

	fast1 := testPlayer("a", CenterX-10, CenterY, 30)
	fast1.VX = 8
	fast2 := testPlayer("b", CenterX+10, CenterY, 30)
	resolveCollision(fast1, fast2)
	fastImpulse := math.Hypot(fast2.VX-0, fast2.VY-0)

	if fastImpulse <= slowImpulse {
		t.Fatalf("moving attacker should impart more: %v vs %v", fastImpulse, slowImpulse)
	}
}

func TestCollisionNoContactNoEffect(t *testing.T) {
	p1 := testPlayer("a", CenterX-100, CenterY, 30)
	p2 := testPlayer("b", CenterX+100, CenterY, 30)

	resolveCollision(p1, p2)

	if p1.VX != 0 || p2.VX != 0 || p1.X != CenterX-100 || p2.X != CenterX+100 {
		t.Fatal("non-overlapping players must be untouched")
	}
}

func TestWaitingCollisionGentleSeparationAndDamping(t *testing.T) {
	p1 := testPlayer("a", CenterX-10, CenterY, 30)
	p2 := testPlayer("b", CenterX+10, CenterY, 30)
	p1.VX, p2.VX = 4, -4
	before := p2.X - p1.X

	resolveWaitingCollision(p1, p2)

	if after := p2.X - p1.X; after <= before {
		t.Fatalf("waiting collision should separate: gap %v -> %v", before, after)
	}
	if math.Abs(p1.VX-4*WaitingCollisionDamping) > 1e-9 {
		t.Fatalf("p1 vx = %v, want flat %vx damping", p1.VX, WaitingCollisionDamping)
	}
	if math.Abs(p2.VX+4*WaitingCollisionDamping) > 1e-9 {
		t.Fatalf("p2 vx = %v, want flat %vx damping", p2.VX, WaitingCollisionDamping)
	}
}

func TestWaitingCollisionSplitsSeparationEvenly(t *testing.T) {
	p1 := testPlayer("a", CenterX-10, CenterY, 30)
	p2 := testPlayer("b", CenterX+10, CenterY, 30)

	resolveWaitingCollision(p1, p2)

	moved1 := (CenterX - 10) - p1.X
	moved2 := p2.X - (CenterX + 10)
	if math.Abs(moved1-moved2) > 1e-9 {
		t.Fatalf("separation not split evenly: %v vs %v", moved1, moved2)
	}
}
