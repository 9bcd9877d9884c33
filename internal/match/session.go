package match

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/engine"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

type Mode string

const (
	ModeAI     Mode = "ai"
	ModeOnline Mode = "online"
)

var (
	ErrNotYourTurn       = errors.New("not your turn")
	ErrDiceAlreadyRolled = errors.New("dice already rolled this turn")
	ErrDiceNotRolled     = errors.New("roll the dice first")
	ErrGameOver          = errors.New("the match is over")
	ErrBusy              = errors.New("an action is already resolving")
	ErrNotEnoughSoul     = errors.New("not enough soul points")
)

// Transport is the session's outbound port. Online play wires the relay
// client behind it; offline play uses NoopTransport.
type Transport interface {
	SendAction(a transport.Action) error
}

type NoopTransport struct{}

func (NoopTransport) SendAction(transport.Action) error { return nil }

// RelayTransport adapts the websocket client to the session's port.
type RelayTransport struct {
	Client *transport.Client
	RoomID string
	Sender string
}

func (t RelayTransport) SendAction(a transport.Action) error {
	return t.Client.SendAction(t.RoomID, t.Sender, a)
}

// Result is the terminal outcome of a session.
type Result struct {
	WinnerID   string
	Turns      int
	Duration   time.Duration
	Concession bool
}

// Session owns both player states of one match. The local seat is driven by
// the public methods; the remote seat is driven either by replayed relay
// actions or by the built-in opponent policy. All public methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	rng      *rand.Rand
	catalog  *game.Catalog
	mode     Mode
	local    *game.PlayerState
	remote   *game.PlayerState
	port     Transport
	policy   *Policy
	turns    int
	started  time.Time
	gameOver bool
	winnerID string

	// OnGameOver fires exactly once, outside the session lock.
	OnGameOver func(Result)
}

// Config assembles a session. Seed fixes all in-match randomness (dice,
// shuffles, random discards).
type Config struct {
	Seed       int64
	Mode       Mode
	Catalog    *game.Catalog
	Local      *game.PlayerState
	Remote     *game.PlayerState
	Transport  Transport
	Policy     *Policy
	OnGameOver func(Result)
}

func NewSession(cfg Config) *Session {
	if cfg.Transport == nil {
		cfg.Transport = NoopTransport{}
	}
	if cfg.Catalog == nil {
		cfg.Catalog = game.DefaultCatalog()
	}
	if cfg.Policy == nil {
		cfg.Policy = NewPolicy(0, nil)
	}
	return &Session{
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		catalog:    cfg.Catalog,
		mode:       cfg.Mode,
		local:      cfg.Local,
		remote:     cfg.Remote,
		port:       cfg.Transport,
		policy:     cfg.Policy,
		OnGameOver: cfg.OnGameOver,
	}
}

// Begin deals the opening hands and opens the first turn. localStarts decides
// the seat order; online, the host starts.
func (s *Session) Begin(localStarts bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = time.Now()
	engine.Draw(s.rng, s.local, constants.OpeningDraw)
	engine.Draw(s.rng, s.remote, constants.OpeningDraw)
	if localStarts {
		s.beginTurnLocked(s.local)
	} else {
		s.remote.IsTurn = true
	}
}

// Local and Remote expose read-only snapshots for presentation.
func (s *Session) Local() *game.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Clone()
}

func (s *Session) Remote() *game.PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote.Clone()
}

// Turns reports how many turn-starts have run.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns
}

// IsOver reports whether the match has finished, and the winner when it has.
func (s *Session) IsOver() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameOver, s.winnerID
}

// beginTurnLocked runs a seat's turn start: stun check, status pass,
// rotation, then the turn draw. Burn ticks can end the match here.
func (s *Session) beginTurnLocked(p *game.PlayerState) {
	opp := s.opponentOf(p)
	p.IsTurn = true
	p.DiceRolled = false
	opp.IsTurn = false
	s.turns++

	stunned := false
	if active := p.ActiveCharacter(); active != nil && !active.IsDead && active.HasStatus(game.StatusStun) {
		stunned = true
	}
	ticks := engine.AdvanceStatuses(p)
	for _, tick := range ticks {
		logging.Debug("burn tick", logging.Fields{"character": tick.CharacterID, "damage": tick.Damage})
	}
	if p.IsWipedOut() {
		s.finishLocked(opp.ID, false)
		return
	}
	rotated := 0
	if !stunned {
		engine.RotateBoard(p.Board)
		rotated = 1
	}
	engine.Draw(s.rng, p, constants.DrawPerTurn)

	if p == s.local {
		s.emit(transport.Action{Type: transport.ActionRotate, Data: transport.ActionData{
			Value:     rotated,
			HandCount: transport.IntPtr(len(p.Hand)),
		}})
	}
}

func (s *Session) opponentOf(p *game.PlayerState) *game.PlayerState {
	if p == s.local {
		return s.remote
	}
	return s.local
}

// RollDice rolls 1..3, grants that many soul points and readies every slotted
// card.
func (s *Session) RollDice() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return 0, err
	}
	if s.local.DiceRolled {
		return 0, ErrDiceAlreadyRolled
	}
	value := s.rollLocked(s.local)
	s.emit(transport.Action{Type: transport.ActionRollDice, Data: transport.ActionData{
		Value:             value,
		CurrentSoulPoints: transport.IntPtr(s.local.SoulPoints),
	}})
	return value, nil
}

func (s *Session) rollLocked(p *game.PlayerState) int {
	value := s.rng.Intn(constants.DiceMax-constants.DiceMin+1) + constants.DiceMin
	p.SoulPoints += value
	engine.ReadyAllSlots(p)
	p.DiceRolled = true
	return value
}

// PlaceCard stages a hand card into a slot (slotIndex < 0 picks the first
// free one). Placed cards are face-up to both sides.
func (s *Session) PlaceCard(instanceID string, slotIndex int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return -1, err
	}
	idx, err := engine.PlaceInSlot(s.local, instanceID, slotIndex)
	if err != nil {
		return -1, err
	}
	raw, _ := json.Marshal(s.local.Slots[idx].Card)
	s.emit(transport.Action{Type: transport.ActionPlaceCard, Data: transport.ActionData{
		Card:      raw,
		SlotIndex: transport.IntPtr(idx),
		HandCount: transport.IntPtr(len(s.local.Hand)),
	}})
	return idx, nil
}

// BurnCard sacrifices a ready slotted card for one soul point.
func (s *Session) BurnCard(slotIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return err
	}
	if _, ok := engine.BurnSlot(s.local, slotIndex); !ok {
		return engine.ErrSlotNotReady
	}
	s.emit(transport.Action{Type: transport.ActionBurnCard, Data: transport.ActionData{
		SlotIndex:         transport.IntPtr(slotIndex),
		CurrentSoulPoints: transport.IntPtr(s.local.SoulPoints),
	}})
	return nil
}

// ResetSlots returns every still-preparing slotted card to the hand.
func (s *Session) ResetSlots() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return err
	}
	if engine.ResetNotReadySlots(s.local) == 0 {
		return nil
	}
	s.emit(transport.Action{Type: transport.ActionResetSlots, Data: transport.ActionData{
		HandCount: transport.IntPtr(len(s.local.Hand)),
	}})
	return nil
}

// BuyCard trades two soul points for a draw.
func (s *Session) BuyCard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return err
	}
	if s.local.SoulPoints < constants.BuyCardCost {
		return ErrNotEnoughSoul
	}
	s.local.SoulPoints -= constants.BuyCardCost
	engine.Draw(s.rng, s.local, 1)
	s.emit(transport.Action{Type: transport.ActionBuyCard, Data: transport.ActionData{
		CurrentSoulPoints: transport.IntPtr(s.local.SoulPoints),
		HandCount:         transport.IntPtr(len(s.local.Hand)),
	}})
	return nil
}

// CastSpell resolves a cast for the local seat and relays it. A cast arriving
// while another action holds the session is rejected outright, never queued;
// the lock spans the whole resolution, so TryLock is the at-most-one-in-flight
// latch.
func (s *Session) CastSpell(req engine.CastRequest) (*engine.CastResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrBusy
	}
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return nil, err
	}
	if !s.local.DiceRolled {
		return nil, ErrDiceNotRolled
	}

	res, err := s.castLocked(s.local, req)
	if err != nil {
		return nil, err
	}
	s.emitCast(req, res)
	if res.GameOver {
		s.finishLocked(res.WinnerID, false)
	}
	return res, nil
}

func (s *Session) castLocked(caster *game.PlayerState, req engine.CastRequest) (*engine.CastResult, error) {
	targeter := s.targeterFor(caster, req.Card)
	return engine.Cast(s.rng, caster, targeter, req)
}

// targeterFor picks which seat a card resolves against. Self-directed effects
// stay on the caster; everything else crosses the table.
func (s *Session) targeterFor(caster *game.PlayerState, card game.Card) *game.PlayerState {
	switch card.Type {
	case game.CardHeal, game.CardUtility:
		return caster
	case game.CardManipulation, game.CardInstant:
		switch card.Effect {
		case game.EffectDraw, game.EffectGainSoul, game.EffectTimeWarp:
			return caster
		}
	}
	return s.opponentOf(caster)
}

func (s *Session) emitCast(req engine.CastRequest, res *engine.CastResult) {
	raw, _ := json.Marshal(req.Card)
	data := transport.ActionData{
		Card:              raw,
		TargetID:          req.TargetID,
		SlotIndex:         transport.IntPtr(req.SlotIndex),
		CurrentSoulPoints: transport.IntPtr(res.CasterSoulPoints),
		HandCount:         transport.IntPtr(len(s.local.Hand)),
	}
	if req.EffectTargetSlot >= 0 {
		data.EffectTargetSlot = transport.IntPtr(req.EffectTargetSlot)
	}
	s.emit(transport.Action{Type: transport.ActionCastSpell, Data: data})
	if res.TrapTriggered {
		trapRaw, _ := json.Marshal(res.TrapCard)
		s.emit(transport.Action{Type: transport.ActionTrapTriggered, Data: transport.ActionData{Card: trapRaw}})
	}
}

// EndTurn closes the local turn: a roll must have happened, and the ending
// player's slot locks expire. In AI mode the caller follows up with
// PlayOpponentTurn.
func (s *Session) EndTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(s.local); err != nil {
		return err
	}
	if !s.local.DiceRolled {
		return ErrDiceNotRolled
	}
	s.local.IsTurn = false
	s.local.DiceRolled = false
	s.local.DisabledSlots = nil
	s.remote.HandRevealed = false
	s.remote.IsTurn = true
	s.emit(transport.Action{Type: transport.ActionEndTurn, Data: transport.ActionData{
		HandCount: transport.IntPtr(len(s.local.Hand)),
	}})
	return nil
}

// Concede forfeits the match.
func (s *Session) Concede() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return ErrGameOver
	}
	s.emit(transport.Action{Type: transport.ActionConcede, Data: transport.ActionData{}})
	s.finishLocked(s.remote.ID, true)
	return nil
}

func (s *Session) guardLocked(p *game.PlayerState) error {
	if s.gameOver {
		return ErrGameOver
	}
	if !p.IsTurn {
		return ErrNotYourTurn
	}
	return nil
}

// finishLocked ends the match once. The relay notification goes out before
// the callback so both sides agree on the outcome first.
func (s *Session) finishLocked(winnerID string, concession bool) {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.winnerID = winnerID
	s.emit(transport.Action{Type: transport.ActionGameOver, Data: transport.ActionData{WinnerID: winnerID}})
	logging.Info("match over", logging.Fields{"winner": winnerID, "turns": s.turns})
	if s.OnGameOver != nil {
		result := Result{
			WinnerID:   winnerID,
			Turns:      s.turns,
			Duration:   time.Since(s.started),
			Concession: concession,
		}
		go s.OnGameOver(result)
	}
}

func (s *Session) emit(a transport.Action) {
	if err := s.port.SendAction(a); err != nil {
		logging.Error("relay action failed", err, logging.Fields{"action": string(a.Type)})
	}
}
