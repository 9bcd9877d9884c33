package match

import (
	"encoding/json"
	"errors"

	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

var ErrBadLoadout = errors.New("malformed opponent loadout")

// Loadout snapshots the local seat for the pre-match handshake. The squad
// travels in full; the deck and hand travel as counts only.
func (s *Session) Loadout() transport.LoadoutPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	squad, _ := json.Marshal(s.local.Board)
	return transport.LoadoutPayload{
		PlayerID:   s.local.ID,
		PlayerName: s.local.Name,
		Squad:      squad,
		DeckSize:   len(s.local.Deck),
		HandCount:  len(s.local.Hand),
	}
}

// ApplyOpponentLoadout rebuilds the remote mirror from a WELCOME or
// SYNC_LOADOUT payload. Hand and deck are filled with opaque placeholders to
// match the announced counts.
func (s *Session) ApplyOpponentLoadout(p transport.LoadoutPayload) error {
	var squad []game.Character
	if err := json.Unmarshal(p.Squad, &squad); err != nil || len(squad) == 0 {
		return ErrBadLoadout
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	mirror := game.NewPlayerState(p.PlayerID, p.PlayerName, squad)
	for i := 0; i < p.DeckSize; i++ {
		mirror.Deck = append(mirror.Deck, game.HiddenCard())
	}
	for i := 0; i < p.HandCount; i++ {
		mirror.Hand = append(mirror.Hand, game.HiddenCard())
	}
	mirror.IsTurn = s.remote.IsTurn
	s.remote = mirror
	return nil
}
