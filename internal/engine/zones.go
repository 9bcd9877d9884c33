package engine

import (
	"errors"
	"math/rand"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

var (
	ErrSlotOccupied      = errors.New("slot is occupied")
	ErrSlotDisabled      = errors.New("slot is disabled")
	ErrNoAvailableSlot   = errors.New("no available slot")
	ErrCannotSlotInstant = errors.New("instant spells cannot be placed in slots")
	ErrCardNotInHand     = errors.New("card not in hand")
)

// Draw moves up to count cards from the deck tail into the hand. When the
// deck runs out the discard pile is reshuffled into it (Fisher-Yates); when
// both are empty the draw stops early, which is a valid partial result, not a
// failure. Cards drawn into a full hand are burned straight to the discard
// pile.
func Draw(rng *rand.Rand, p *game.PlayerState, count int) int {
	drawn := 0
	for i := 0; i < count; i++ {
		if len(p.Deck) == 0 {
			if len(p.Discard) == 0 {
				break
			}
			reshuffleDiscard(rng, p)
		}
		card := p.Deck[len(p.Deck)-1]
		p.Deck = p.Deck[:len(p.Deck)-1]
		if len(p.Hand) < constants.MaxHandSize {
			p.Hand = append(p.Hand, card)
		} else {
			p.Discard = append(p.Discard, card)
		}
		drawn++
	}
	return drawn
}

// reshuffleDiscard turns the discard pile into a fresh, uniformly shuffled
// deck. The multiset of cards is preserved exactly.
func reshuffleDiscard(rng *rand.Rand, p *game.PlayerState) {
	deck := make([]game.Card, len(p.Discard))
	copy(deck, p.Discard)
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	p.Deck = deck
	p.Discard = p.Discard[:0]
}

// PlaceInSlot moves a hand card into a staging slot, not ready. slotIndex < 0
// picks the first free, non-disabled slot. The placed index is returned.
func PlaceInSlot(p *game.PlayerState, instanceID string, slotIndex int) (int, error) {
	var card *game.Card
	for i := range p.Hand {
		if p.Hand[i].InstanceID == instanceID {
			card = &p.Hand[i]
			break
		}
	}
	if card == nil {
		return -1, ErrCardNotInHand
	}
	if card.Type == game.CardInstant {
		return -1, ErrCannotSlotInstant
	}

	if slotIndex >= 0 {
		if slotIndex >= len(p.Slots) {
			return -1, ErrNoAvailableSlot
		}
		if p.IsSlotDisabled(slotIndex) {
			return -1, ErrSlotDisabled
		}
		if p.Slots[slotIndex] != nil {
			return -1, ErrSlotOccupied
		}
	} else {
		slotIndex = -1
		for i, s := range p.Slots {
			if s == nil && !p.IsSlotDisabled(i) {
				slotIndex = i
				break
			}
		}
		if slotIndex < 0 {
			return -1, ErrNoAvailableSlot
		}
	}

	placed, _ := p.RemoveFromHand(instanceID)
	p.Slots[slotIndex] = &game.CardInSlot{InstanceID: placed.InstanceID, Card: placed, IsReady: false}
	return slotIndex, nil
}

// BurnSlot sacrifices a ready slotted card for one soul point. A slot that is
// empty or still preparing yields a silent no-op (ok=false).
func BurnSlot(p *game.PlayerState, slotIndex int) (game.Card, bool) {
	if slotIndex < 0 || slotIndex >= len(p.Slots) {
		return game.Card{}, false
	}
	slot := p.Slots[slotIndex]
	if slot == nil || !slot.IsReady {
		return game.Card{}, false
	}
	card := slot.Card
	p.Slots[slotIndex] = nil
	p.Discard = append(p.Discard, card)
	p.SoulPoints += constants.BurnReward
	return card, true
}

// ResetNotReadySlots returns every still-preparing slotted card to the hand
// and reports how many moved. Zero means no state changed.
func ResetNotReadySlots(p *game.PlayerState) int {
	returned := 0
	for i, s := range p.Slots {
		if s != nil && !s.IsReady {
			p.Hand = append(p.Hand, s.Card)
			p.Slots[i] = nil
			returned++
		}
	}
	return returned
}

// ReadyAllSlots marks every slotted card castable. Called on a successful
// dice roll.
func ReadyAllSlots(p *game.PlayerState) {
	for _, s := range p.Slots {
		if s != nil {
			s.IsReady = true
		}
	}
}

// RotateBoard advances every character's position by one, mod 3,
// unconditionally. Callers must check STUN on the position-0 character first.
func RotateBoard(board []game.Character) {
	for i := range board {
		board[i].Position = (board[i].Position + 1) % 3
	}
}

// DiscardRandomFromHand moves one uniformly random hand card to the discard
// pile. Hidden placeholders count like any other card so online replicas keep
// the same hand length as the authoritative side.
func DiscardRandomFromHand(rng *rand.Rand, p *game.PlayerState) (game.Card, bool) {
	if len(p.Hand) == 0 {
		return game.Card{}, false
	}
	idx := rng.Intn(len(p.Hand))
	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
	p.Discard = append(p.Discard, card)
	return card, true
}
