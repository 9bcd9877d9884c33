package match

import (
	"testing"

	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

func TestLoadoutHandshakeMirrorsTheOpponent(t *testing.T) {
	host := newAISession(&recordingPort{})
	guest := newAISession(&recordingPort{})

	if err := guest.ApplyOpponentLoadout(host.Loadout()); err != nil {
		t.Fatalf("ApplyOpponentLoadout: %v", err)
	}

	mirror := guest.Remote()
	hostLocal := host.Local()
	if mirror.ID != hostLocal.ID || mirror.Name != hostLocal.Name {
		t.Fatalf("mirror identity = %s/%s, want %s/%s", mirror.ID, mirror.Name, hostLocal.ID, hostLocal.Name)
	}
	if len(mirror.Board) != len(hostLocal.Board) {
		t.Fatalf("mirror board = %d characters, want %d", len(mirror.Board), len(hostLocal.Board))
	}
	for i := range mirror.Board {
		if mirror.Board[i].ID != hostLocal.Board[i].ID {
			t.Fatalf("mirror board[%d] = %s, want %s", i, mirror.Board[i].ID, hostLocal.Board[i].ID)
		}
	}
	if len(mirror.Deck) != len(hostLocal.Deck) {
		t.Fatalf("mirror deck = %d, want %d", len(mirror.Deck), len(hostLocal.Deck))
	}
	for _, c := range mirror.Deck {
		if !c.Hidden {
			t.Fatal("mirror deck leaked a real card")
		}
	}
	if len(mirror.Hand) != len(hostLocal.Hand) {
		t.Fatalf("mirror hand = %d, want %d", len(mirror.Hand), len(hostLocal.Hand))
	}
}

func TestApplyOpponentLoadoutRejectsGarbage(t *testing.T) {
	s := newAISession(&recordingPort{})
	err := s.ApplyOpponentLoadout(transport.LoadoutPayload{Squad: []byte("not json")})
	if err != ErrBadLoadout {
		t.Fatalf("err = %v, want ErrBadLoadout", err)
	}
}
