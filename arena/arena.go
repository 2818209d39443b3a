// Package arena runs the authoritative game loop: session registry,
// phase state machine, physics scheduling, chain reconciliation and
// broadcast fan-out. All state lives behind a single goroutine fed by an
// inbox channel, so there is exactly one writer and no locking.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"sumo/chain"
	"sumo/game"
	"sumo/protocol"
)

const (
	// One ticker drives everything. Match physics runs every 2nd tick
	// (30 Hz), waiting-room physics every 3rd (20 Hz); the per-second
	// clock, chain poll and session sweep are caught up inside the same
	// tick, which removes any cross-timer interleaving.
	simTickHz       = 60
	playingDivisor  = 2
	waitingDivisor  = 3
	inboxSize       = 256
	defaultResetDelay     = 5 * time.Second
	defaultSessionTimeout = 60 * time.Second
	defaultSweepInterval  = time.Minute
)

type Config struct {
	MinPlayers        int
	MinAliveToEnd     int           // match ends when alive count <= this (0 in debug single-player)
	ChainPollInterval time.Duration // ignored when no chain reader is set
}

type session struct {
	conn       Conn
	lastSeen   time.Time
	registered bool
	address    string
	bet        float64
}

type Arena struct {
	Inbox chan any

	cfg    Config
	log    *slog.Logger
	reader chain.Reader
	rng    *rand.Rand

	state    game.State
	slots    *game.CharacterSlots
	sessions map[string]*session

	tick       uint64
	lastSecond time.Time
	finishedAt time.Time

	lastPoll       time.Time
	pollInFlight   bool
	chainConnected bool
	lastSync       time.Time
	lastSnap       chain.Snapshot

	lastSweep time.Time

	resetDelay     time.Duration
	sessionTimeout time.Duration
	sweepInterval  time.Duration
}

func New(cfg Config, reader chain.Reader, log *slog.Logger) *Arena {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MinPlayers < 1 {
		cfg.MinPlayers = 1
	}
	if cfg.ChainPollInterval <= 0 {
		cfg.ChainPollInterval = 5 * time.Second
	}
	return &Arena{
		Inbox:          make(chan any, inboxSize),
		cfg:            cfg,
		log:            log,
		reader:         reader,
		rng:            rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		state:          game.NewState(),
		slots:          game.NewCharacterSlots(),
		sessions:       make(map[string]*session),
		resetDelay:     defaultResetDelay,
		sessionTimeout: defaultSessionTimeout,
		sweepInterval:  defaultSweepInterval,
	}
}

// Run consumes the inbox and drives the tick scheduler until ctx is done.
func (a *Arena) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / simTickHz)
	defer ticker.Stop()

	now := time.Now()
	a.lastSecond = now
	a.lastSweep = now
	a.lastPoll = now

	for {
		select {
		case <-ctx.Done():
			a.closeAll()
			return
		case cmd := <-a.Inbox:
			a.handle(cmd, time.Now())
		case t := <-ticker.C:
			a.tickOnce(t)
		}
	}
}

// tickOnce is one pass of the unified scheduler: catch up the per-second
// clock, run phase-gated physics, trigger the chain poll, sweep stale
// sessions.
func (a *Arena) tickOnce(now time.Time) {
	a.tick++

	for now.Sub(a.lastSecond) >= time.Second {
		a.lastSecond = a.lastSecond.Add(time.Second)
		a.secondTick(now)
	}

	switch {
	case a.state.Phase == game.PhasePlaying && a.tick%playingDivisor == 0:
		game.Step(&a.state, now, a.rng)
		a.broadcastState()
	case a.state.Phase == game.PhaseWaiting && len(a.state.Players) > 0 && a.tick%waitingDivisor == 0:
		game.StepWaiting(&a.state)
		a.broadcastState()
	}

	a.maybePollChain(now)
	a.maybeSweep(now)
}

// secondTick advances the coarse clock for the current phase.
func (a *Arena) secondTick(now time.Time) {
	switch a.state.Phase {
	case game.PhaseCountdown:
		a.state.Countdown--
		if a.state.Countdown <= 0 {
			a.beginMatch()
		}
		a.broadcastState()
	case game.PhasePlaying:
		a.state.GameTime--
		if a.state.GameTime <= 0 {
			a.log.Info("match over: time expired")
			a.endMatch(now)
		} else if a.state.AliveCount() <= a.cfg.MinAliveToEnd {
			a.log.Info("match over: not enough players alive", "alive", a.state.AliveCount())
			a.endMatch(now)
		}
		a.broadcastState()
	case game.PhaseFinished:
		if now.Sub(a.finishedAt) >= a.resetDelay {
			a.resetGame()
		}
	}
}

func (a *Arena) handle(cmd any, now time.Time) {
	switch c := cmd.(type) {
	case Connect:
		a.handleConnect(c, now)
	case Disconnect:
		a.dropSession(c.ID, "disconnected")
	case Join:
		a.handleJoin(c, now)
	case Start:
		a.handleStart(c, now)
	case Input:
		a.handleInput(c, now)
	case Register:
		a.handleRegister(c, now)
	case CheckChain:
		a.handleCheckChain(c, now)
	case StateRequest:
		a.touch(c.ID, now)
		a.sendState(c.ID)
	case Heartbeat:
		a.touch(c.ID, now)
	case chainSync:
		a.handleChainSync(c, now)
	default:
		a.log.Warn("arena: unknown command", "command", fmt.Sprintf("%T", cmd))
	}
}

func (a *Arena) handleConnect(c Connect, now time.Time) {
	a.sessions[c.ID] = &session{conn: c.Conn, lastSeen: now}
	a.log.Info("client connected", "id", c.ID, "clients", len(a.sessions))

	a.sendTo(c.ID, protocol.Connection{
		Type:    protocol.MsgConnection,
		ID:      c.ID,
		Message: "connected to server",
		Server:  a.serverState(),
	})
	a.sendState(c.ID)
}

func (a *Arena) handleJoin(c Join, now time.Time) {
	s, ok := a.sessions[c.ID]
	if !ok {
		a.log.Warn("join from unknown session", "id", c.ID)
		return
	}
	s.lastSeen = now

	if c.Address == "" || c.Bet < 0 {
		a.errorTo(c.ID, "join requires an address and a non-negative bet")
		return
	}
	if _, exists := a.state.Players[c.ID]; exists {
		a.errorTo(c.ID, "already joined")
		return
	}

	slot := a.slots.Assign()
	p := game.NewPlayer(c.ID, c.Address, c.Color, c.Bet, slot, a.rng)
	a.state.Players[c.ID] = p
	a.state.PrizePool += c.Bet

	a.log.Info("player joined", "id", c.ID, "bet", c.Bet,
		"character", slot, "size", p.Radius, "prizePool", a.state.PrizePool)
	a.broadcastState()
}

func (a *Arena) handleStart(c Start, now time.Time) {
	a.touch(c.ID, now)

	if a.state.Phase != game.PhaseWaiting {
		a.errorTo(c.ID, "game already started")
		return
	}
	if len(a.state.Players) < a.cfg.MinPlayers {
		a.errorTo(c.ID, fmt.Sprintf("at least %d players required to start", a.cfg.MinPlayers))
		return
	}

	a.state.Phase = game.PhaseCountdown
	a.state.Countdown = game.CountdownSeconds
	// Align the per-second clock so the countdown runs exactly
	// CountdownSeconds wall seconds from here.
	a.lastSecond = now
	a.log.Info("countdown started", "players", len(a.state.Players))
	a.broadcastState()
}

func (a *Arena) handleInput(c Input, now time.Time) {
	a.touch(c.ID, now)
	p, ok := a.state.Players[c.ID]
	if !ok {
		return
	}
	if c.Keys == nil {
		c.Keys = make(map[string]bool)
	}
	p.Keys = c.Keys
}

func (a *Arena) handleRegister(c Register, now time.Time) {
	s, ok := a.sessions[c.ID]
	if !ok {
		return
	}
	s.lastSeen = now
	if c.Address == "" {
		a.errorTo(c.ID, "register requires an address")
		return
	}
	s.registered = true
	s.address = c.Address
	s.bet = c.Bet
	a.log.Info("player registered", "id", c.ID, "address", c.Address, "bet", c.Bet)

	a.sendTo(c.ID, protocol.ServerStateUpdate{
		Type:   protocol.MsgServerStateUpdate,
		Server: *a.serverState(),
	})
}

func (a *Arena) handleCheckChain(c CheckChain, now time.Time) {
	a.touch(c.ID, now)
	a.sendTo(c.ID, protocol.ChainStateResult{
		Type:      protocol.MsgChainStateResult,
		IsInGame:  a.chainHasAddress(c.Address),
		Address:   c.Address,
		GamePhase: a.state.Phase,
	})
}

// beginMatch flips countdown into live play.
func (a *Arena) beginMatch() {
	a.state.Phase = game.PhasePlaying
	a.state.Countdown = 0
	a.state.GameTime = game.MatchSeconds
	game.SpawnPowerup(&a.state, a.rng)
	a.log.Info("match started", "players", len(a.state.Players))
}

func (a *Arena) endMatch(now time.Time) {
	a.state.Phase = game.PhaseFinished
	a.finishedAt = now
}

// resetGame wipes players, power-ups, slots, pool and clocks back to the
// waiting-room defaults. Connected sessions survive.
func (a *Arena) resetGame() {
	a.state = game.NewState()
	a.slots.Reset()
	a.log.Info("game reset")
	a.broadcastState()
}

// handleChainSync reconciles the mirrored contract state. Errors leave
// local state untouched; the mirror just marks itself disconnected.
func (a *Arena) handleChainSync(c chainSync, now time.Time) {
	a.pollInFlight = false

	if c.err != nil {
		if a.chainConnected {
			a.log.Warn("chain sync failed, continuing in local-authority mode", "err", c.err)
		}
		a.chainConnected = false
		return
	}

	a.chainConnected = true
	a.lastSync = c.snap.At
	a.lastSnap = c.snap

	changed := false
	for _, ps := range c.snap.Players {
		if ps.Address == "" || a.hasPlayerAddress(ps.Address) {
			continue
		}
		id := "chain-" + strings.ToLower(ps.Address)
		if _, ok := a.state.Players[id]; ok {
			continue
		}
		slot := a.slots.Assign()
		a.state.Players[id] = game.NewPlayer(id, ps.Address, "", ps.Bet, slot, a.rng)
		a.state.PrizePool += ps.Bet
		a.log.Info("mirrored on-chain player", "address", ps.Address, "bet", ps.Bet)
		changed = true
	}

	if c.snap.Active && (a.state.Phase == game.PhaseWaiting || a.state.Phase == game.PhaseFinished) {
		// The chain says a game is live that we never started locally:
		// jump straight to playing and re-derive the power-up layout.
		a.state.Phase = game.PhasePlaying
		a.state.Countdown = 0
		a.state.GameTime = game.MatchSeconds
		if len(a.state.Powerups) == 0 {
			game.SpawnPowerup(&a.state, a.rng)
		}
		a.lastSecond = now
		a.log.Info("chain reports active game, forcing play phase")
		changed = true
	}

	if changed {
		a.broadcastState()
	}
	a.broadcastSummary()
}

func (a *Arena) maybePollChain(now time.Time) {
	if a.reader == nil || a.pollInFlight || now.Sub(a.lastPoll) < a.cfg.ChainPollInterval {
		return
	}
	a.lastPoll = now
	a.pollInFlight = true
	reader := a.reader
	go func() {
		snap, err := reader.Fetch(context.Background())
		a.Inbox <- chainSync{snap: snap, err: err}
	}()
}

func (a *Arena) maybeSweep(now time.Time) {
	if now.Sub(a.lastSweep) < a.sweepInterval {
		return
	}
	a.lastSweep = now

	var stale []string
	for id, s := range a.sessions {
		if now.Sub(s.lastSeen) > a.sessionTimeout {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		a.log.Info("purging inactive session", "id", id)
		a.dropSession(id, "inactive")
	}
}

// dropSession removes a session and, if it had a player, frees the skin
// slot and the player. The bet stays in the prize pool: the pool tracks
// total committed stake for the match, not live stake.
func (a *Arena) dropSession(id, reason string) {
	s, ok := a.sessions[id]
	if !ok {
		return
	}
	delete(a.sessions, id)
	if s.conn != nil {
		_ = s.conn.Close()
	}

	if p, ok := a.state.Players[id]; ok {
		a.slots.Release(p.CharacterIndex)
		delete(a.state.Players, id)
		a.log.Info("player removed", "id", id, "reason", reason, "character", p.CharacterIndex)
		a.broadcastState()
		return
	}
	a.log.Info("session removed", "id", id, "reason", reason)
}

func (a *Arena) touch(id string, now time.Time) {
	if s, ok := a.sessions[id]; ok {
		s.lastSeen = now
	}
}

func (a *Arena) chainHasAddress(addr string) bool {
	for _, ps := range a.lastSnap.Players {
		if strings.EqualFold(ps.Address, addr) {
			return true
		}
	}
	return false
}

func (a *Arena) hasPlayerAddress(addr string) bool {
	for _, p := range a.state.Players {
		if strings.EqualFold(p.Address, addr) {
			return true
		}
	}
	return false
}

func (a *Arena) serverState() *protocol.ServerState {
	st := &protocol.ServerState{
		ConnectedClients: len(a.sessions),
		GamePhase:        a.state.Phase,
		ChainConnected:   a.chainConnected,
	}
	if !a.lastSync.IsZero() {
		st.LastSync = a.lastSync.UnixMilli()
	}
	return st
}

// snapshotData serializes the whole authoritative state. Players are
// emitted in id order so snapshots are stable.
func (a *Arena) snapshotData() protocol.StateData {
	ids := make([]string, 0, len(a.state.Players))
	for id := range a.state.Players {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	players := make([]game.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, *a.state.Players[id])
	}

	return protocol.StateData{
		Players:     players,
		Powerups:    slices.Clone(a.state.Powerups),
		GameRunning: a.state.Running(),
		GamePhase:   a.state.Phase,
		PrizePool:   a.state.PrizePool,
		Countdown:   a.state.Countdown,
		GameTime:    a.state.GameTime,
	}
}

// broadcastState fans the full snapshot out to every session. Sends are
// best-effort: a failed connection is dropped and the broadcast
// continues.
func (a *Arena) broadcastState() {
	b, err := protocol.Encode(protocol.GameState{Type: protocol.MsgGameState, Data: a.snapshotData()})
	if err != nil {
		a.log.Error("encode state snapshot", "err", err)
		return
	}

	var failed []string
	for id, s := range a.sessions {
		if s.conn == nil {
			continue
		}
		if err := s.conn.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		a.log.Info("dropping client after failed send", "id", id)
		a.dropSession(id, "send failed")
	}
}

func (a *Arena) broadcastSummary() {
	b, err := protocol.Encode(protocol.ServerStateUpdate{
		Type:   protocol.MsgServerStateUpdate,
		Server: *a.serverState(),
	})
	if err != nil {
		a.log.Error("encode server state", "err", err)
		return
	}
	for _, s := range a.sessions {
		if s.conn != nil {
			_ = s.conn.Send(b)
		}
	}
}

func (a *Arena) sendState(id string) {
	s, ok := a.sessions[id]
	if !ok || s.conn == nil {
		return
	}
	b, err := protocol.Encode(protocol.GameState{Type: protocol.MsgGameState, Data: a.snapshotData()})
	if err != nil {
		a.log.Error("encode state snapshot", "err", err)
		return
	}
	if err := s.conn.Send(b); err != nil {
		a.log.Warn("send state failed", "id", id, "err", err)
	}
}

func (a *Arena) sendTo(id string, v any) {
	s, ok := a.sessions[id]
	if !ok || s.conn == nil {
		return
	}
	b, err := protocol.Encode(v)
	if err != nil {
		a.log.Error("encode message", "err", err)
		return
	}
	if err := s.conn.Send(b); err != nil {
		a.log.Warn("send failed", "id", id, "err", err)
	}
}

func (a *Arena) errorTo(id, msg string) {
	a.sendTo(id, protocol.Error{Type: protocol.MsgError, Message: msg})
}

func (a *Arena) closeAll() {
	for _, s := range a.sessions {
		if s.conn != nil {
			_ = s.conn.Close()
		}
	}
}
