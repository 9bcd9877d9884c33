package match

import (
	"testing"
	"time"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/engine"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/transport"
)

type recordingPort struct {
	actions []transport.Action
}

func (r *recordingPort) SendAction(a transport.Action) error {
	r.actions = append(r.actions, a)
	return nil
}

func (r *recordingPort) last() transport.Action {
	if len(r.actions) == 0 {
		return transport.Action{}
	}
	return r.actions[len(r.actions)-1]
}

func fillerDeck(prefix string, n int) []game.Card {
	deck := make([]game.Card, n)
	for i := range deck {
		deck[i] = game.Card{
			InstanceID: prefix + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			TemplateID: "filler",
			Name:       "Filler",
			Cost:       1,
			Type:       game.CardUtility,
			Effect:     game.EffectGainSoul,
			EffectValue: 1,
		}
	}
	return deck
}

func squadFor(prefix string) []game.Character {
	return []game.Character{
		{ID: prefix + "_1", Name: "Front", MaxHealth: 100},
		{ID: prefix + "_2", Name: "Mid", MaxHealth: 100},
		{ID: prefix + "_3", Name: "Back", MaxHealth: 100},
	}
}

func newAISession(port Transport) *Session {
	local := game.NewPlayerState("p1", "Alice", squadFor("p1"))
	local.Deck = fillerDeck("l", 20)
	remote := game.NewPlayerState("ai", "Opponent", squadFor("ai"))
	remote.Deck = fillerDeck("r", 20)
	return NewSession(Config{
		Seed:      7,
		Mode:      ModeAI,
		Local:     local,
		Remote:    remote,
		Transport: port,
		Policy:    NewPolicy(0, fakeClock{}),
	})
}

type fakeClock struct{}

func (fakeClock) Sleep(time.Duration) {}

func TestBeginDealsOpeningHandsAndOpensFirstTurn(t *testing.T) {
	port := &recordingPort{}
	s := newAISession(port)
	s.Begin(true)

	local := s.Local()
	if !local.IsTurn {
		t.Fatal("local seat did not open the match")
	}
	if got := len(local.Hand); got != constants.OpeningDraw+constants.DrawPerTurn {
		t.Fatalf("opening hand = %d, want %d", got, constants.OpeningDraw+constants.DrawPerTurn)
	}
	if got := len(s.Remote().Hand); got != constants.OpeningDraw {
		t.Fatalf("opponent opening hand = %d, want %d", got, constants.OpeningDraw)
	}
	if port.last().Type != transport.ActionRotate {
		t.Fatalf("last action = %s, want turn-start rotation", port.last().Type)
	}
}

func TestRollDiceGrantsSoulAndReadiesSlots(t *testing.T) {
	port := &recordingPort{}
	s := newAISession(port)
	s.Begin(true)

	hand := s.Local().Hand
	if _, err := s.PlaceCard(hand[0].InstanceID, 0); err != nil {
		t.Fatalf("PlaceCard: %v", err)
	}
	value, err := s.RollDice()
	if err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if value < constants.DiceMin || value > constants.DiceMax {
		t.Fatalf("dice value = %d, out of range", value)
	}
	local := s.Local()
	if local.SoulPoints != value {
		t.Fatalf("soul points = %d, want %d", local.SoulPoints, value)
	}
	if !local.Slots[0].IsReady {
		t.Fatal("slotted card not readied by the roll")
	}

	if _, err := s.RollDice(); err != ErrDiceAlreadyRolled {
		t.Fatalf("second roll err = %v, want ErrDiceAlreadyRolled", err)
	}
	last := port.last()
	if last.Type != transport.ActionRollDice || last.Data.CurrentSoulPoints == nil || *last.Data.CurrentSoulPoints != value {
		t.Fatalf("emitted action = %+v", last)
	}
}

func TestActionsGuardTurnOwnership(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(false)

	if _, err := s.RollDice(); err != ErrNotYourTurn {
		t.Fatalf("RollDice out of turn: %v", err)
	}
	if err := s.EndTurn(); err != ErrNotYourTurn {
		t.Fatalf("EndTurn out of turn: %v", err)
	}
	if err := s.BuyCard(); err != ErrNotYourTurn {
		t.Fatalf("BuyCard out of turn: %v", err)
	}
}

func TestBuyCardTradesSoulForDraw(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(true)

	if err := s.BuyCard(); err != ErrNotEnoughSoul {
		t.Fatalf("broke buy: err = %v, want ErrNotEnoughSoul", err)
	}

	s.mu.Lock()
	s.local.SoulPoints = 3
	s.mu.Unlock()

	handBefore := len(s.Local().Hand)
	if err := s.BuyCard(); err != nil {
		t.Fatalf("BuyCard: %v", err)
	}
	local := s.Local()
	if local.SoulPoints != 3-constants.BuyCardCost {
		t.Fatalf("soul points = %d, want %d", local.SoulPoints, 3-constants.BuyCardCost)
	}
	if len(local.Hand) != handBefore+1 {
		t.Fatalf("hand = %d, want %d", len(local.Hand), handBefore+1)
	}
}

func TestOpponentTurnHandsBackControl(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(true)

	if _, err := s.RollDice(); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := s.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if s.Local().IsTurn {
		t.Fatal("local still on turn after ending it")
	}

	s.PlayOpponentTurn()

	if over, _ := s.IsOver(); over {
		t.Fatal("match ended during a single opponent turn")
	}
	if !s.Local().IsTurn {
		t.Fatal("control not returned to the local seat")
	}
	if s.Remote().IsTurn {
		t.Fatal("opponent kept the turn")
	}
	if s.Turns() != 3 {
		t.Fatalf("turns = %d, want 3", s.Turns())
	}
}

func TestEndTurnRequiresARoll(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(true)

	if err := s.EndTurn(); err != ErrDiceNotRolled {
		t.Fatalf("roll-less end turn err = %v, want ErrDiceNotRolled", err)
	}
}

func TestDisabledSlotsExpireAtOwnTurnEnd(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(true)
	s.mu.Lock()
	s.local.DisabledSlots = []int{2}
	s.mu.Unlock()

	if _, err := s.PlaceCard(s.Local().Hand[0].InstanceID, 2); err != engine.ErrSlotDisabled {
		t.Fatalf("place into locked slot err = %v, want ErrSlotDisabled", err)
	}
	if _, err := s.RollDice(); err != nil {
		t.Fatalf("RollDice: %v", err)
	}
	if err := s.EndTurn(); err != nil {
		t.Fatalf("EndTurn: %v", err)
	}
	if got := s.Local().DisabledSlots; len(got) != 0 {
		t.Fatalf("disabled slots survived the owner's turn end: %v", got)
	}
}

func TestCastIsRejectedWhileTheSessionIsBusy(t *testing.T) {
	s := newAISession(&recordingPort{})
	s.Begin(true)

	s.mu.Lock()
	_, err := s.CastSpell(engine.CastRequest{})
	s.mu.Unlock()
	if err != ErrBusy {
		t.Fatalf("cast against a held session err = %v, want ErrBusy", err)
	}
}

func TestConcedeFinishesForTheOpponent(t *testing.T) {
	s := newAISession(&recordingPort{})
	done := make(chan Result, 1)
	s.OnGameOver = func(r Result) { done <- r }
	s.Begin(true)

	if err := s.Concede(); err != nil {
		t.Fatalf("Concede: %v", err)
	}
	over, winner := s.IsOver()
	if !over || winner != "ai" {
		t.Fatalf("over=%v winner=%q, want opponent win", over, winner)
	}

	select {
	case r := <-done:
		if !r.Concession || r.WinnerID != "ai" {
			t.Fatalf("result = %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("OnGameOver never fired")
	}

	if err := s.Concede(); err != ErrGameOver {
		t.Fatalf("second concede err = %v, want ErrGameOver", err)
	}
}
