package service

import (
	"errors"
	"math/rand"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

var (
	ErrInvalidSquadSize = errors.New("a squad must have exactly three characters")
	ErrUnknownCharacter = errors.New("unknown character id")
	ErrDuplicateSquadID = errors.New("the same character cannot appear twice in a squad")
	ErrInvalidDeckSize  = errors.New("a deck must have exactly thirty cards")
	ErrUnknownCard      = errors.New("unknown card template id")
)

// Loadout is a validated squad plus minted deck, ready to seat in a session.
type Loadout struct {
	Squad []game.Character
	Deck  []game.Card
}

// BuildLoadout validates squad and deck selections against the catalog and
// mints the card instances. An empty deck selection gets a random deck.
func BuildLoadout(catalog *game.Catalog, rng *rand.Rand, squadIDs, deckTemplateIDs []string) (*Loadout, error) {
	if len(squadIDs) != constants.SquadSize {
		return nil, ErrInvalidSquadSize
	}
	seen := make(map[string]struct{}, len(squadIDs))
	squad := make([]game.Character, 0, constants.SquadSize)
	for _, id := range squadIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateSquadID
		}
		seen[id] = struct{}{}
		ch := catalog.CharacterByID(id)
		if ch == nil {
			return nil, ErrUnknownCharacter
		}
		squad = append(squad, ch.Clone())
	}

	if len(deckTemplateIDs) == 0 {
		return &Loadout{Squad: squad, Deck: catalog.GenerateDeck(rng, constants.DeckSize)}, nil
	}
	if len(deckTemplateIDs) != constants.DeckSize {
		return nil, ErrInvalidDeckSize
	}
	templates := make([]game.Card, 0, constants.DeckSize)
	for _, id := range deckTemplateIDs {
		tpl := catalog.CardByTemplateID(id)
		if tpl == nil {
			return nil, ErrUnknownCard
		}
		templates = append(templates, *tpl)
	}
	return &Loadout{Squad: squad, Deck: game.MintDeck(rng, templates)}, nil
}
