package match

import (
	"time"

	"github.com/SakutaTHZ/ProjectT/internal/engine"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
)

// Clock abstracts the pacing between opponent steps so tests and the
// simulator can run without real sleeps.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Policy drives the built-in opponent as a fixed list of steps: begin turn,
// roll, maybe play a hand instant, cast one slotted card, restock the slots,
// end turn. Every step runs under the session lock; the clock ticks between
// steps, never inside them.
type Policy struct {
	stepDelay time.Duration
	clock     Clock
}

func NewPolicy(stepDelay time.Duration, clock Clock) *Policy {
	if clock == nil {
		clock = realClock{}
	}
	return &Policy{stepDelay: stepDelay, clock: clock}
}

// PlayOpponentTurn runs one full opponent turn. It returns immediately when
// it is not the opponent's turn or the match is over.
func (s *Session) PlayOpponentTurn() {
	steps := []func() bool{
		s.aiBeginTurn,
		s.aiRoll,
		s.aiMaybeInstant,
		s.aiCastOne,
		s.aiFillSlots,
		s.aiEndTurn,
	}
	for _, step := range steps {
		if !step() {
			return
		}
		s.policy.clock.Sleep(s.policy.stepDelay)
	}
}

func (s *Session) aiBeginTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver || !s.remote.IsTurn {
		return false
	}
	s.beginTurnLocked(s.remote)
	return !s.gameOver
}

func (s *Session) aiRoll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return false
	}
	s.rollLocked(s.remote)
	return true
}

// aiMaybeInstant gives the opponent an even chance of playing its first
// affordable hand instant this turn.
func (s *Session) aiMaybeInstant() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return false
	}
	if s.rng.Intn(2) == 0 {
		return true
	}
	for _, c := range s.remote.Hand {
		if c.Type != game.CardInstant || c.Hidden {
			continue
		}
		if s.remote.SoulPoints < engine.EffectiveCost(c, s.remote) {
			continue
		}
		req := engine.CastRequest{Card: c, SlotIndex: -1, EffectTargetSlot: -1}
		res, err := s.castLocked(s.remote, req)
		if err != nil {
			logging.Debug("opponent instant skipped", logging.Fields{"card": c.Name, "error": err.Error()})
			return true
		}
		if res.GameOver {
			s.finishLocked(res.WinnerID, false)
			return false
		}
		break
	}
	return true
}

// aiCastOne casts one uniformly random ready, affordable, non-disabled
// slotted card with a simple target heuristic.
func (s *Session) aiCastOne() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return false
	}
	var playable []int
	for idx, slot := range s.remote.Slots {
		if slot == nil || !slot.IsReady || s.remote.IsSlotDisabled(idx) {
			continue
		}
		if s.remote.SoulPoints < engine.EffectiveCost(slot.Card, s.remote) {
			continue
		}
		playable = append(playable, idx)
	}
	if len(playable) == 0 {
		return true
	}
	idx := playable[s.rng.Intn(len(playable))]
	card := s.remote.Slots[idx].Card
	req := engine.CastRequest{Card: card, SlotIndex: idx, EffectTargetSlot: -1}
	switch card.Type {
	case game.CardAttack:
		req.TargetID = s.aiPickAttackTarget(card)
	case game.CardHeal:
		req.TargetID = s.aiPickHealTarget()
	}

	res, err := s.castLocked(s.remote, req)
	if err != nil {
		logging.Debug("opponent cast skipped", logging.Fields{"card": card.Name, "error": err.Error()})
		return true
	}
	if res.GameOver {
		s.finishLocked(res.WinnerID, false)
		return false
	}
	return true
}

// aiPickAttackTarget hits the enemy front, or a random living target when the
// card can reach the backline.
func (s *Session) aiPickAttackTarget(card game.Card) string {
	opp := s.local
	if card.CanTargetBackline {
		var living []string
		for i := range opp.Board {
			if !opp.Board[i].IsDead {
				living = append(living, opp.Board[i].ID)
			}
		}
		if len(living) > 0 {
			return living[s.rng.Intn(len(living))]
		}
		return ""
	}
	if front := opp.ActiveCharacter(); front != nil && !front.IsDead {
		return front.ID
	}
	return ""
}

// aiPickHealTarget picks a random damaged living ally, falling back to any
// living one.
func (s *Session) aiPickHealTarget() string {
	var damaged, living []string
	for i := range s.remote.Board {
		ch := &s.remote.Board[i]
		if ch.IsDead {
			continue
		}
		living = append(living, ch.ID)
		if ch.CurrentHealth < ch.MaxHealth {
			damaged = append(damaged, ch.ID)
		}
	}
	if len(damaged) > 0 {
		return damaged[s.rng.Intn(len(damaged))]
	}
	if len(living) > 0 {
		return living[s.rng.Intn(len(living))]
	}
	return ""
}

// aiFillSlots stages non-instant hand cards, in hand order, until the slots
// run out.
func (s *Session) aiFillSlots() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return false
	}
	var stage []string
	for _, c := range s.remote.Hand {
		if c.Type == game.CardInstant || c.Hidden {
			continue
		}
		stage = append(stage, c.InstanceID)
	}
	for _, id := range stage {
		if _, err := engine.PlaceInSlot(s.remote, id, -1); err != nil {
			break
		}
	}
	return true
}

func (s *Session) aiEndTurn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return false
	}
	s.remote.IsTurn = false
	s.remote.DiceRolled = false
	s.remote.DisabledSlots = nil
	s.local.HandRevealed = false
	s.beginTurnLocked(s.local)
	return false
}
