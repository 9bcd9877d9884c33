package match

import (
	"encoding/json"
	"time"

	"github.com/SakutaTHZ/ProjectT/internal/engine"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

// ApplyRemoteAction replays an opponent action against the local replica.
// The replica is best effort: the sender's currentSoulPoints and handCount
// always win over the locally derived values, so a divergent random pick on
// either side never accumulates.
func (s *Session) ApplyRemoteAction(a transport.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return
	}

	switch a.Type {
	case transport.ActionRotate:
		s.applyRemoteTurnStartLocked(a.Data)
	case transport.ActionRollDice:
		s.overwriteSoulLocked(a.Data.CurrentSoulPoints)
		engine.ReadyAllSlots(s.remote)
		s.remote.DiceRolled = true
	case transport.ActionPlaceCard:
		s.applyRemotePlaceLocked(a.Data)
	case transport.ActionResetSlots:
		engine.ResetNotReadySlots(s.remote)
		s.reconcileHandLocked(s.remote, a.Data.HandCount)
	case transport.ActionBurnCard:
		if a.Data.SlotIndex != nil {
			engine.BurnSlot(s.remote, *a.Data.SlotIndex)
		}
		s.overwriteSoulLocked(a.Data.CurrentSoulPoints)
	case transport.ActionBuyCard:
		s.overwriteSoulLocked(a.Data.CurrentSoulPoints)
		s.reconcileHandLocked(s.remote, a.Data.HandCount)
	case transport.ActionCastSpell:
		s.applyRemoteCastLocked(a.Data)
	case transport.ActionTrapTriggered:
		logging.Debug("opponent hit a trap", nil)
	case transport.ActionEndTurn:
		s.reconcileHandLocked(s.remote, a.Data.HandCount)
		s.remote.IsTurn = false
		s.remote.DiceRolled = false
		s.remote.DisabledSlots = nil
		s.local.HandRevealed = false
		s.beginTurnLocked(s.local)
	case transport.ActionConcede:
		s.finishFromRemoteLocked(s.local.ID, true)
	case transport.ActionGameOver:
		s.finishFromRemoteLocked(a.Data.WinnerID, false)
	default:
		logging.Debug("unhandled remote action", logging.Fields{"action": string(a.Type)})
	}
}

// applyRemoteTurnStartLocked mirrors the opponent's turn start. Value carries
// whether the sender's board actually rotated (a stunned front blocks it).
func (s *Session) applyRemoteTurnStartLocked(data transport.ActionData) {
	s.remote.IsTurn = true
	s.remote.DiceRolled = false
	s.local.IsTurn = false
	s.turns++
	engine.AdvanceStatuses(s.remote)
	if s.remote.IsWipedOut() {
		s.finishFromRemoteLocked(s.local.ID, false)
		return
	}
	if data.Value == 1 {
		engine.RotateBoard(s.remote.Board)
	}
	s.reconcileHandLocked(s.remote, data.HandCount)
}

func (s *Session) applyRemotePlaceLocked(data transport.ActionData) {
	if data.SlotIndex == nil || len(data.Card) == 0 {
		return
	}
	var card game.Card
	if err := json.Unmarshal(data.Card, &card); err != nil {
		logging.Error("bad placed card payload", err, nil)
		return
	}
	// The staged card comes out of hiding; take any placeholder off the
	// mirrored hand.
	s.dropOneHandCardLocked(s.remote, card.InstanceID)
	idx := *data.SlotIndex
	if idx >= 0 && idx < len(s.remote.Slots) {
		s.remote.Slots[idx] = &game.CardInSlot{InstanceID: card.InstanceID, Card: card, IsReady: false}
	}
	s.reconcileHandLocked(s.remote, data.HandCount)
}

func (s *Session) applyRemoteCastLocked(data transport.ActionData) {
	var card game.Card
	if err := json.Unmarshal(data.Card, &card); err != nil {
		logging.Error("bad cast payload", err, nil)
		return
	}
	req := engine.CastRequest{Card: card, TargetID: data.TargetID, SlotIndex: -1, EffectTargetSlot: -1}
	if data.SlotIndex != nil {
		req.SlotIndex = *data.SlotIndex
	}
	if data.EffectTargetSlot != nil {
		req.EffectTargetSlot = *data.EffectTargetSlot
	}
	if req.SlotIndex < 0 {
		// Instant from a hidden hand: surface the card in the mirror so the
		// zone move stays balanced.
		s.dropOneHandCardLocked(s.remote, card.InstanceID)
		s.remote.Hand = append(s.remote.Hand, card)
	}

	res, err := engine.Cast(s.rng, s.remote, s.targeterFor(s.remote, card), req)
	if err != nil {
		// Replay drift; trust the sender's totals and move on.
		logging.Error("remote cast replay failed", err, logging.Fields{"card": card.Name})
	}
	s.overwriteSoulLocked(data.CurrentSoulPoints)
	s.reconcileHandLocked(s.remote, data.HandCount)
	if res != nil && res.GameOver {
		s.finishFromRemoteLocked(res.WinnerID, false)
	}
}

func (s *Session) overwriteSoulLocked(v *int) {
	if v != nil {
		s.remote.SoulPoints = *v
	}
}

// reconcileHandLocked forces the mirrored hand to the sender's length,
// padding with hidden placeholders and shedding placeholders first.
func (s *Session) reconcileHandLocked(p *game.PlayerState, want *int) {
	if want == nil {
		return
	}
	for len(p.Hand) > *want {
		s.dropOneHandCardLocked(p, "")
	}
	for len(p.Hand) < *want {
		p.Hand = append(p.Hand, game.HiddenCard())
	}
}

// dropOneHandCardLocked removes the card with the given instance id, or
// failing that one hidden placeholder, or failing that the last card.
func (s *Session) dropOneHandCardLocked(p *game.PlayerState, instanceID string) {
	if len(p.Hand) == 0 {
		return
	}
	if instanceID != "" {
		if _, ok := p.RemoveFromHand(instanceID); ok {
			return
		}
	}
	for i := range p.Hand {
		if p.Hand[i].Hidden {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
	p.Hand = p.Hand[:len(p.Hand)-1]
}

// finishFromRemoteLocked ends the match on the opponent's authority without
// re-broadcasting.
func (s *Session) finishFromRemoteLocked(winnerID string, concession bool) {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.winnerID = winnerID
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
