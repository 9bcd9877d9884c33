package game

import "github.com/SakutaTHZ/ProjectT/internal/constants"

// CardInSlot is a staged, face-up card. A freshly placed card is not ready;
// it becomes castable at the owner's next successful dice roll.
type CardInSlot struct {
	InstanceID string `json:"instanceId"`
	Card       Card   `json:"card"`
	IsReady    bool   `json:"isReady"`
}

// PlayerState is one side of a match. It is owned exclusively by its side and
// mutated only through the engine and match-session operations.
//
// Invariant: a card instance lives in exactly one of deck, hand, a slot or
// discard at any time.
type PlayerState struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Score         int           `json:"score"`
	SoulPoints    int           `json:"soulPoints"`
	Hand          []Card        `json:"hand"`
	Slots         []*CardInSlot `json:"slots"`
	DisabledSlots []int         `json:"disabledSlots"`
	Deck          []Card        `json:"deck"`
	Discard       []Card        `json:"discard"`
	Board         []Character   `json:"board"`
	IsTurn        bool          `json:"isTurn"`
	DiceRolled    bool          `json:"diceRolled"`
	// HandRevealed is set while the opponent has sight of this hand
	// (Eagle Eye); cleared at turn end. Presentation-only flag.
	HandRevealed bool `json:"handRevealed,omitempty"`
}

// NewPlayerState builds an empty player with the given squad. Squad members
// are re-seated at positions 0..2 in order and restored to full health.
func NewPlayerState(id, name string, squad []Character) *PlayerState {
	board := make([]Character, len(squad))
	for i, ch := range squad {
		c := ch.Clone()
		c.Position = i
		c.CurrentHealth = c.MaxHealth
		c.IsDead = false
		c.Statuses = nil
		board[i] = c
	}
	return &PlayerState{
		ID:    id,
		Name:  name,
		Slots: make([]*CardInSlot, constants.SlotCount),
		Board: board,
	}
}

// ActiveCharacter returns the character at position 0, dead or alive, or nil
// for a malformed board.
func (p *PlayerState) ActiveCharacter() *Character {
	for i := range p.Board {
		if p.Board[i].Position == 0 {
			return &p.Board[i]
		}
	}
	return nil
}

// CharacterByID finds a board member by id.
func (p *PlayerState) CharacterByID(id string) *Character {
	for i := range p.Board {
		if p.Board[i].ID == id {
			return &p.Board[i]
		}
	}
	return nil
}

// IsWipedOut reports whether every board member is dead.
func (p *PlayerState) IsWipedOut() bool {
	for i := range p.Board {
		if !p.Board[i].IsDead {
			return false
		}
	}
	return len(p.Board) > 0
}

// IsSlotDisabled reports whether the slot index is currently locked.
func (p *PlayerState) IsSlotDisabled(idx int) bool {
	for _, d := range p.DisabledSlots {
		if d == idx {
			return true
		}
	}
	return false
}

// OccupiedSlotIndices lists the indices of non-empty slots.
func (p *PlayerState) OccupiedSlotIndices() []int {
	out := make([]int, 0, len(p.Slots))
	for i, s := range p.Slots {
		if s != nil {
			out = append(out, i)
		}
	}
	return out
}

// RemoveFromHand filters the instance out of the hand and reports whether it
// was present.
func (p *PlayerState) RemoveFromHand(instanceID string) (Card, bool) {
	for i, c := range p.Hand {
		if c.InstanceID == instanceID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// Clone returns a deep copy of the player state. The match session snapshots
// both sides with it before serializing a welcome payload.
func (p *PlayerState) Clone() *PlayerState {
	out := *p
	out.Hand = append([]Card(nil), p.Hand...)
	out.Deck = append([]Card(nil), p.Deck...)
	out.Discard = append([]Card(nil), p.Discard...)
	out.DisabledSlots = append([]int(nil), p.DisabledSlots...)
	out.Slots = make([]*CardInSlot, len(p.Slots))
	for i, s := range p.Slots {
		if s != nil {
			cp := *s
			out.Slots[i] = &cp
		}
	}
	out.Board = make([]Character, len(p.Board))
	for i := range p.Board {
		out.Board[i] = p.Board[i].Clone()
	}
	return &out
}
