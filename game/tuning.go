package game

const (
	CenterX    = 300.0
	CenterY    = 300.0
	RingRadius = 280.0

	// Size scales with the bet: every 0.01 FLOW adds ~10 units of radius.
	MinRadius = 20.0
	MaxRadius = 50.0
	BetScale  = 1000.0

	SpawnAreaSize = 200.0 // side of the square players spawn in

	BaseSpeed        = 0.7
	SpeedBoost       = 1.2 // base speed while holding SPEED
	WaitingBaseSpeed = 0.4
	MassDivisor      = 15.0

	Friction        = 0.92
	WaitingFriction = 0.85

	RingPushback        = 2.0
	WaitingRingPushback = 1.5
	// Overshoot past the ring edge that eliminates during play, and the
	// larger one that hard-repositions in the waiting room.
	EliminationOvershoot = 10.0
	RepositionOvershoot  = 20.0
	RepositionInset      = 10.0

	PushForce     = 3.5
	StrengthMult  = 2.0
	BetForceScale = 150.0
	MomentumScale = 0.5

	OverlapPad              = 2.0
	SeparationFactor        = 0.6
	WaitingOverlapPad       = 1.0
	WaitingSeparationFactor = 0.3
	WaitingCollisionDamping = 0.7

	RotationSpeedScale = 0.01
	RotationDecay      = 0.95

	MaxPowerups          = 3
	PowerupSpawnChance   = 0.01
	PowerupPickupPad     = 15.0
	PowerupDurationMilli = 5000
	// Power-ups spawn in an annulus: not on top of the center, not
	// against the wall.
	PowerupSpawnMinFrac = 0.2
	PowerupSpawnMaxFrac = 0.7

	MatchSeconds     = 60
	CountdownSeconds = 3

	CharacterSlotCount = 4
)
