package engine

import (
	"testing"

	"github.com/SakutaTHZ/ProjectT/internal/game"
)

func slotReady(p *game.PlayerState, card game.Card, idx int) {
	p.Slots[idx] = &game.CardInSlot{InstanceID: card.InstanceID, Card: card, IsReady: true}
}

func fireball(id string) game.Card {
	return game.Card{InstanceID: id, TemplateID: "fireball", Name: "Fireball", Cost: 1, Damage: 20, Type: game.CardAttack}
}

func TestCastAttackHitsFrontline(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 3
	card := fireball("fb1")
	slotReady(caster, card, 0)

	res, err := Cast(testRNG(), caster, targeter, CastRequest{
		Card: card, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1,
	})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if targeter.Board[0].CurrentHealth != 80 {
		t.Fatalf("target health = %d, want 80", targeter.Board[0].CurrentHealth)
	}
	if caster.SoulPoints != 2 || res.CasterSoulPoints != 2 {
		t.Fatalf("soul points = %d/%d, want 2", caster.SoulPoints, res.CasterSoulPoints)
	}
	if caster.Slots[0] != nil || len(caster.Discard) != 1 || caster.Discard[0].InstanceID != "fb1" {
		t.Fatal("cast card not moved slot -> discard")
	}
	if res.DamageDealt != 20 || res.Kills != 0 || res.GameOver {
		t.Fatalf("result = %+v", res)
	}
}

func TestCastValidationLeavesStateUntouched(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	card := fireball("fb1")
	slotReady(caster, card, 0)

	_, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1})
	if err != ErrInsufficientSoulPoints {
		t.Fatalf("err = %v, want ErrInsufficientSoulPoints", err)
	}
	if caster.Slots[0] == nil || len(caster.Discard) != 0 || targeter.Board[0].CurrentHealth != 100 {
		t.Fatal("failed cast mutated state")
	}
}

func TestCastRequiresReadySlot(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 3
	card := fireball("fb1")
	caster.Slots[0] = &game.CardInSlot{InstanceID: "fb1", Card: card, IsReady: false}

	_, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1})
	if err != ErrSlotNotReady {
		t.Fatalf("err = %v, want ErrSlotNotReady", err)
	}
}

func TestCastAttackBacklineRules(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	plain := fireball("fb1")
	slotReady(caster, plain, 0)

	_, err := Cast(testRNG(), caster, targeter, CastRequest{Card: plain, TargetID: "p2_2", SlotIndex: 0, EffectTargetSlot: -1})
	if err != ErrInvalidTarget {
		t.Fatalf("backline hit without reach: err = %v, want ErrInvalidTarget", err)
	}

	snipe := game.Card{InstanceID: "sn1", Name: "Snipe", Cost: 2, Damage: 40, Type: game.CardAttack, CanTargetBackline: true}
	slotReady(caster, snipe, 1)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: snipe, TargetID: "p2_2", SlotIndex: 1, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("backline hit with reach: %v", err)
	}
	if targeter.Board[1].CurrentHealth != 60 {
		t.Fatalf("backline health = %d, want 60", targeter.Board[1].CurrentHealth)
	}
}

func TestCastHealTargetsOwnLivingOnly(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	caster.Board[0].CurrentHealth = 50
	caster.Board[1].IsDead = true
	caster.Board[1].CurrentHealth = 0
	heal := game.Card{InstanceID: "h1", Name: "Mend", Cost: 1, Damage: -25, Type: game.CardHeal}
	slotReady(caster, heal, 0)

	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: heal, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1}); err != ErrInvalidTarget {
		t.Fatalf("heal on enemy: err = %v, want ErrInvalidTarget", err)
	}
	if _, err := Cast(testRNG(), caster, caster, CastRequest{Card: heal, TargetID: "p1_2", SlotIndex: 0, EffectTargetSlot: -1}); err != ErrInvalidTarget {
		t.Fatalf("heal on dead ally: err = %v, want ErrInvalidTarget", err)
	}

	res, err := Cast(testRNG(), caster, caster, CastRequest{Card: heal, TargetID: "p1_1", SlotIndex: 0, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if caster.Board[0].CurrentHealth != 75 || res.Healed != 25 {
		t.Fatalf("health = %d, healed = %d, want 75/25", caster.Board[0].CurrentHealth, res.Healed)
	}
}

func TestCastKillScoresAndWins(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	caster.Score = 2
	targeter.Board[0].CurrentHealth = 15
	card := fireball("fb1")
	slotReady(caster, card, 0)

	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if res.Kills != 1 || caster.Score != 3 {
		t.Fatalf("kills = %d, score = %d", res.Kills, caster.Score)
	}
	if !res.GameOver || res.WinnerID != "p1" {
		t.Fatalf("result = %+v, want caster win at max score", res)
	}
	if !targeter.Board[0].IsDead {
		t.Fatal("killed character not flagged dead")
	}
}

func TestCastWipeoutWinsRegardlessOfScore(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	targeter.Board[0].IsDead = true
	targeter.Board[1].IsDead = true
	targeter.Board[2].CurrentHealth = 10
	card := game.Card{InstanceID: "sn1", Name: "Snipe", Cost: 2, Damage: 40, Type: game.CardAttack, CanTargetBackline: true}
	slotReady(caster, card, 0)

	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, TargetID: "p2_3", SlotIndex: 0, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if !res.GameOver || res.WinnerID != "p1" {
		t.Fatalf("result = %+v, want wipeout win", res)
	}
	if caster.Score != 1 {
		t.Fatalf("score = %d, wipeout must not inflate score", caster.Score)
	}
}

func TestCastReflectCanFinishTheCaster(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	caster.Board[0].CurrentHealth = 5
	caster.Board[1].IsDead = true
	caster.Board[2].IsDead = true
	targeter.Board[0].Passive = game.PassiveReflect
	targeter.Board[0].PassiveValue = 5
	card := fireball("fb1")
	slotReady(caster, card, 0)

	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, TargetID: "p2_1", SlotIndex: 0, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if !caster.Board[0].IsDead {
		t.Fatal("reflect did not kill the caster's active")
	}
	if !res.GameOver || res.WinnerID != "p2" {
		t.Fatalf("result = %+v, want targeter win", res)
	}
}

func TestCastEqualizingFlow(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 10
	targeter.SoulPoints = 4
	card := game.Card{InstanceID: "eq1", Name: "Equalizing Flow", Cost: 2, Type: game.CardInstant, Effect: game.EffectEqualize}
	caster.Hand = []game.Card{card}

	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: card, SlotIndex: -1, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if caster.SoulPoints != 6 || targeter.SoulPoints != 6 {
		t.Fatalf("soul points = %d/%d, want 6/6", caster.SoulPoints, targeter.SoulPoints)
	}
	if res.CasterSoulPoints != 6 {
		t.Fatalf("authoritative total = %d, want 6", res.CasterSoulPoints)
	}
	if len(caster.Hand) != 0 || len(caster.Discard) != 1 {
		t.Fatal("instant not moved hand -> discard")
	}
}

func TestCastTrapInterceptsSlotDiscard(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 3
	targeter.SoulPoints = 2
	discard := game.Card{InstanceID: "mr1", Name: "Mind Rot", Cost: 1, Type: game.CardDiscard}
	slotReady(caster, discard, 0)
	trap := game.Card{InstanceID: "bt1", Name: "Bear Trap", Cost: 1, Damage: 20, Type: game.CardTrap}
	slotReady(targeter, trap, 2)
	protected := namedCard("pv1", "Protected")
	slotReady(targeter, protected, 3)

	slot := 3
	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: discard, SlotIndex: 0, EffectTargetSlot: slot})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if !res.TrapTriggered || res.TrapCard.InstanceID != "bt1" {
		t.Fatalf("result = %+v, want trap interception", res)
	}
	if targeter.Slots[3] == nil {
		t.Fatal("protected slot was destroyed despite interception")
	}
	if targeter.Slots[2] != nil || targeter.SoulPoints != 1 {
		t.Fatal("trap not consumed and paid for by its owner")
	}
	if caster.Board[0].CurrentHealth != 80 {
		t.Fatalf("caster active health = %d, want 80 from trap damage", caster.Board[0].CurrentHealth)
	}
	if caster.SoulPoints != 2 || caster.Slots[0] != nil || len(caster.Discard) != 1 {
		t.Fatal("caster's intercepted card must still be paid and discarded")
	}
}

func TestCastTrapSkippedWhenUnaffordableOrImmune(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 3
	discard := game.Card{InstanceID: "mr1", Name: "Mind Rot", Cost: 1, Type: game.CardDiscard}
	slotReady(caster, discard, 0)
	trap := game.Card{InstanceID: "bt1", Name: "Bear Trap", Cost: 1, Damage: 20, Type: game.CardTrap}
	slotReady(targeter, trap, 2)
	slotReady(targeter, namedCard("pv1", "Protected"), 3)

	// Owner cannot pay the trap's cost.
	targeter.SoulPoints = 0
	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: discard, SlotIndex: 0, EffectTargetSlot: 3})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if res.TrapTriggered {
		t.Fatal("unaffordable trap still intercepted")
	}
	if targeter.Slots[3] != nil {
		t.Fatal("slot discard did not resolve")
	}

	// Trap immunity on the caster's active character.
	caster2 := newTestPlayer("p3")
	caster2.SoulPoints = 3
	caster2.Board[0].Passive = game.PassiveTrapImmunity
	targeter2 := newTestPlayer("p4")
	targeter2.SoulPoints = 5
	discard2 := game.Card{InstanceID: "mr2", Name: "Mind Rot", Cost: 1, Type: game.CardDiscard}
	slotReady(caster2, discard2, 0)
	slotReady(targeter2, game.Card{InstanceID: "bt2", Name: "Bear Trap", Cost: 1, Damage: 20, Type: game.CardTrap}, 0)
	slotReady(targeter2, namedCard("pv2", "Protected"), 1)

	res, err = Cast(testRNG(), caster2, targeter2, CastRequest{Card: discard2, SlotIndex: 0, EffectTargetSlot: 1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if res.TrapTriggered || targeter2.Slots[1] != nil {
		t.Fatal("trap immunity ignored")
	}
}

func TestCastDiscardEffects(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 10
	targeter.Hand = []game.Card{namedCard("a", "A"), namedCard("b", "B"), namedCard("c", "C")}

	amnesia := game.Card{InstanceID: "am1", Name: "Amnesia", Cost: 2, Type: game.CardDiscard, EffectValue: 2}
	slotReady(caster, amnesia, 0)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: amnesia, SlotIndex: 0, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if len(targeter.Hand) != 1 || len(targeter.Discard) != 2 {
		t.Fatalf("hand=%d discard=%d after double discard", len(targeter.Hand), len(targeter.Discard))
	}

	caster.Deck = []game.Card{namedCard("d1", "D")}
	theft := game.Card{InstanceID: "tt1", Name: "Thought Theft", Cost: 2, Type: game.CardDiscard, Effect: game.EffectDiscardDraw}
	slotReady(caster, theft, 1)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: theft, SlotIndex: 1, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if len(targeter.Hand) != 0 || len(caster.Hand) != 1 {
		t.Fatalf("discard-draw: target hand=%d caster hand=%d", len(targeter.Hand), len(caster.Hand))
	}

	collapse := game.Card{InstanceID: "mc1", Name: "Mental Collapse", Cost: 3, Damage: 10, Type: game.CardDiscard, Effect: game.EffectDiscardStrike}
	slotReady(caster, collapse, 2)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: collapse, SlotIndex: 2, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if targeter.Board[0].CurrentHealth != 90 {
		t.Fatalf("discard-strike health = %d, want 90", targeter.Board[0].CurrentHealth)
	}
}

func TestCastManipulationEffects(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 10
	targeter.SoulPoints = 3

	drain := game.Card{InstanceID: "sd1", Name: "Soul Drain", Cost: 1, Type: game.CardManipulation, Effect: game.EffectSoulDrain}
	slotReady(caster, drain, 0)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: drain, SlotIndex: 0, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if caster.SoulPoints != 10 || targeter.SoulPoints != 2 {
		t.Fatalf("soul drain: %d/%d, want 10/2 (pay 1, steal 1)", caster.SoulPoints, targeter.SoulPoints)
	}

	overload := game.Card{InstanceID: "ov1", Name: "Overload", Cost: 2, Type: game.CardManipulation, Effect: game.EffectSoulBurn, EffectValue: 2}
	slotReady(caster, overload, 1)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: overload, SlotIndex: 1, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if targeter.SoulPoints != 0 {
		t.Fatalf("soul burn: targeter = %d, want clamp at 0", targeter.SoulPoints)
	}

	lockdown := game.Card{InstanceID: "ld1", Name: "Lockdown", Cost: 2, Type: game.CardManipulation, Effect: game.EffectLockdown}
	slotReady(caster, lockdown, 2)
	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: lockdown, SlotIndex: 2, EffectTargetSlot: 4}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if !targeter.IsSlotDisabled(4) {
		t.Fatal("lockdown did not disable the chosen slot")
	}
}

func TestCastTimeWarpReturnsPreparingCards(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	caster.Deck = []game.Card{namedCard("d1", "D")}
	caster.Slots[1] = &game.CardInSlot{InstanceID: "a", Card: namedCard("a", "A"), IsReady: false}
	warp := game.Card{InstanceID: "tw1", Name: "Time Warp", Cost: 2, Type: game.CardManipulation, Effect: game.EffectTimeWarp}
	slotReady(caster, warp, 0)

	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: warp, SlotIndex: 0, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if len(caster.Hand) != 2 {
		t.Fatalf("hand = %d, want drawn card plus returned card", len(caster.Hand))
	}
	if caster.Slots[1] != nil {
		t.Fatal("preparing card left in slot")
	}
}

func TestCastUnstableRiftCyclesBothHands(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	rift := game.Card{InstanceID: "ur1", Name: "Unstable Rift", Cost: 3, Type: game.CardInstant, Effect: game.EffectRift}
	caster.Hand = []game.Card{rift, namedCard("a", "A")}
	caster.Deck = []game.Card{namedCard("d1", "D"), namedCard("d2", "D"), namedCard("d3", "D")}
	targeter.Hand = []game.Card{namedCard("x", "X")}
	targeter.Deck = []game.Card{namedCard("y1", "Y"), namedCard("y2", "Y"), namedCard("y3", "Y")}

	if _, err := Cast(testRNG(), caster, targeter, CastRequest{Card: rift, SlotIndex: -1, EffectTargetSlot: -1}); err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if len(caster.Hand) != 3 || len(targeter.Hand) != 3 {
		t.Fatalf("hands = %d/%d, want 3/3", len(caster.Hand), len(targeter.Hand))
	}
	if len(targeter.Discard) != 1 || targeter.Discard[0].InstanceID != "x" {
		t.Fatalf("targeter discard = %+v", targeter.Discard)
	}
}

func TestCastEagleEyeRevealsHand(t *testing.T) {
	caster := newTestPlayer("p1")
	targeter := newTestPlayer("p2")
	caster.SoulPoints = 5
	eye := game.Card{InstanceID: "ee1", Name: "Eagle Eye", Cost: 1, Type: game.CardInstant, Effect: game.EffectReveal}
	caster.Hand = []game.Card{eye}

	res, err := Cast(testRNG(), caster, targeter, CastRequest{Card: eye, SlotIndex: -1, EffectTargetSlot: -1})
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if !targeter.HandRevealed || !res.HandRevealed {
		t.Fatal("hand not revealed")
	}
}
