package service

import (
	"math/rand"
	"testing"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

func TestBuildLoadoutValidSelections(t *testing.T) {
	catalog := game.DefaultCatalog()
	rng := rand.New(rand.NewSource(1))

	loadout, err := BuildLoadout(catalog, rng, []string{"char_1", "char_2", "char_3"}, nil)
	if err != nil {
		t.Fatalf("BuildLoadout: %v", err)
	}
	if len(loadout.Squad) != constants.SquadSize {
		t.Fatalf("squad size = %d, want %d", len(loadout.Squad), constants.SquadSize)
	}
	if len(loadout.Deck) != constants.DeckSize {
		t.Fatalf("deck size = %d, want %d", len(loadout.Deck), constants.DeckSize)
	}
	seen := map[string]struct{}{}
	for _, c := range loadout.Deck {
		if c.InstanceID == "" {
			t.Fatal("minted card without instance id")
		}
		if _, dup := seen[c.InstanceID]; dup {
			t.Fatalf("duplicate instance id %s", c.InstanceID)
		}
		seen[c.InstanceID] = struct{}{}
	}
}

func TestBuildLoadoutExplicitDeck(t *testing.T) {
	catalog := game.DefaultCatalog()
	rng := rand.New(rand.NewSource(1))

	ids := make([]string, constants.DeckSize)
	for i := range ids {
		ids[i] = catalog.Cards[i%len(catalog.Cards)].TemplateID
	}
	loadout, err := BuildLoadout(catalog, rng, []string{"char_1", "char_2", "char_3"}, ids)
	if err != nil {
		t.Fatalf("BuildLoadout: %v", err)
	}
	if len(loadout.Deck) != constants.DeckSize {
		t.Fatalf("deck size = %d, want %d", len(loadout.Deck), constants.DeckSize)
	}
}

func TestBuildLoadoutRejections(t *testing.T) {
	catalog := game.DefaultCatalog()
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		name  string
		squad []string
		deck  []string
		want  error
	}{
		{"short squad", []string{"char_1"}, nil, ErrInvalidSquadSize},
		{"duplicate member", []string{"char_1", "char_1", "char_2"}, nil, ErrDuplicateSquadID},
		{"unknown member", []string{"char_1", "char_2", "nope"}, nil, ErrUnknownCharacter},
		{"short deck", []string{"char_1", "char_2", "char_3"}, []string{"fireball"}, ErrInvalidDeckSize},
	}
	for _, tc := range cases {
		if _, err := BuildLoadout(catalog, rng, tc.squad, tc.deck); err != tc.want {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}

	bad := make([]string, constants.DeckSize)
	for i := range bad {
		bad[i] = "no_such_card"
	}
	if _, err := BuildLoadout(catalog, rng, []string{"char_1", "char_2", "char_3"}, bad); err != ErrUnknownCard {
		t.Fatalf("unknown card: err = %v, want ErrUnknownCard", err)
	}
}
