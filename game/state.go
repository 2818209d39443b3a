package game

// Authoritative game state. The arena goroutine is the only writer; the
// JSON tags match what the browser client already consumes.

type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseCountdown Phase = "countdown"
	PhasePlaying   Phase = "playing"
	PhaseFinished  Phase = "finished"
)

const (
	PowerupStrength = "STRENGTH"
	PowerupSpeed    = "SPEED"
	PowerupShield   = "SHIELD"
	PowerupMagnet   = "MAGNET"
)

var PowerupTypes = []string{PowerupStrength, PowerupSpeed, PowerupShield, PowerupMagnet}

type Player struct {
	ID             string          `json:"id"`
	Address        string          `json:"address"`
	Bet            float64         `json:"bet"`
	X              float64         `json:"x"`
	Y              float64         `json:"y"`
	VX             float64         `json:"vx"`
	VY             float64         `json:"vy"`
	Radius         float64         `json:"radius"`
	Color          string          `json:"color"`
	Alive          bool            `json:"alive"`
	Powerup        string          `json:"powerup"`
	PowerupEndTime int64           `json:"powerupEndTime"` // unix millis, 0 = none
	Keys           map[string]bool `json:"keys"`
	Rotation       float64         `json:"rotation"`
	RotationSpeed  float64         `json:"rotationSpeed"`
	CharacterIndex int             `json:"characterIndex"`
}

type Powerup struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type State struct {
	Tick      uint64
	Players   map[string]*Player
	Powerups  []Powerup
	Phase     Phase
	PrizePool float64
	Countdown int
	GameTime  int
}

func NewState() State {
	return State{
		Players:  make(map[string]*Player),
		Powerups: make([]Powerup, 0),
		Phase:    PhaseWaiting,
		GameTime: MatchSeconds,
	}
}

// Running reports whether the match is live, derived from the phase.
func (s *State) Running() bool {
	return s.Phase == PhasePlaying
}

func (s *State) AliveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Alive {
			n++
		}
	}
	return n
}
