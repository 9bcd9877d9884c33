package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/engine"
	"github.com/SakutaTHZ/ProjectT/internal/game"
	"github.com/SakutaTHZ/ProjectT/internal/logging"
	"github.com/SakutaTHZ/ProjectT/internal/match"
	"github.com/SakutaTHZ/ProjectT/internal/service"
)

// simulate plays a seeded, fully scripted match against the built-in
// opponent and prints the outcome. Useful for balancing passes and for
// exercising the whole engine without a client.
func main() {
	seed := flag.Int64("seed", 1, "seed for all in-match randomness")
	maxTurns := flag.Int("max-turns", 200, "abort threshold")
	flag.Parse()

	catalog := game.DefaultCatalog()
	rng := rand.New(rand.NewSource(*seed))

	hostLoadout, err := service.BuildLoadout(catalog, rng, []string{"char_1", "char_2", "char_3"}, nil)
	if err != nil {
		logging.Fatal("bad host loadout", err, nil)
	}
	guestLoadout, err := service.BuildLoadout(catalog, rng, []string{"char_4", "char_5", "char_6"}, nil)
	if err != nil {
		logging.Fatal("bad guest loadout", err, nil)
	}
	local := game.NewPlayerState("p1", "Scripted", hostLoadout.Squad)
	local.Deck = hostLoadout.Deck
	remote := game.NewPlayerState("p2", "Opponent", guestLoadout.Squad)
	remote.Deck = guestLoadout.Deck

	session := match.NewSession(match.Config{
		Seed:   *seed,
		Mode:   match.ModeAI,
		Local:  local,
		Remote: remote,
		Policy: match.NewPolicy(0, instantClock{}),
	})
	session.Begin(true)

	for {
		if over, winner := session.IsOver(); over {
			report(session, winner)
			return
		}
		if session.Turns() > *maxTurns {
			fmt.Printf("no winner after %d turns (seed %d)\n", *maxTurns, *seed)
			os.Exit(1)
		}
		playScriptedTurn(session)
		session.PlayOpponentTurn()
	}
}

func report(session *match.Session, winner string) {
	p1, p2 := session.Local(), session.Remote()
	fmt.Printf("winner: %s after %d turns\n", winner, session.Turns())
	fmt.Printf("  %s: score=%d soul=%d\n", p1.Name, p1.Score, p1.SoulPoints)
	fmt.Printf("  %s: score=%d soul=%d\n", p2.Name, p2.Score, p2.SoulPoints)
}

// playScriptedTurn mirrors the built-in opponent's cadence through the public
// session API.
func playScriptedTurn(session *match.Session) {
	if local := session.Local(); !local.IsTurn {
		return
	}
	if _, err := session.RollDice(); err != nil {
		logging.Debug("roll skipped", logging.Fields{"error": err.Error()})
		return
	}
	for placed := 0; placed < 2; placed++ {
		if !placeCheapest(session) {
			break
		}
	}
	castAllReady(session)
	if session.Local().SoulPoints >= constants.BuyCardCost*2 {
		_ = session.BuyCard()
	}
	_ = session.EndTurn()
}

func placeCheapest(session *match.Session) bool {
	local := session.Local()
	pick := ""
	cost := 0
	for _, c := range local.Hand {
		if c.Type == game.CardInstant {
			continue
		}
		if pick == "" || c.Cost < cost {
			pick = c.InstanceID
			cost = c.Cost
		}
	}
	if pick == "" {
		return false
	}
	_, err := session.PlaceCard(pick, -1)
	return err == nil
}

func castAllReady(session *match.Session) {
	for {
		req, ok := pickCast(session)
		if !ok {
			return
		}
		if _, err := session.CastSpell(req); err != nil {
			return
		}
		if over, _ := session.IsOver(); over {
			return
		}
	}
}

func pickCast(session *match.Session) (engine.CastRequest, bool) {
	local, remote := session.Local(), session.Remote()
	for idx, slot := range local.Slots {
		if slot == nil || !slot.IsReady || local.IsSlotDisabled(idx) {
			continue
		}
		card := slot.Card
		if card.Type == game.CardTrap || local.SoulPoints < engine.EffectiveCost(card, local) {
			continue
		}
		req := engine.CastRequest{Card: card, SlotIndex: idx, EffectTargetSlot: -1}
		switch card.Type {
		case game.CardAttack:
			target := remote.ActiveCharacter()
			if target == nil || target.IsDead {
				continue
			}
			req.TargetID = target.ID
		case game.CardHeal:
			target := woundedAlly(local)
			if target == "" {
				continue
			}
			req.TargetID = target
		}
		return req, true
	}
	return engine.CastRequest{}, false
}

func woundedAlly(p *game.PlayerState) string {
	pick := ""
	worst := 0
	for i := range p.Board {
		ch := &p.Board[i]
		if ch.IsDead {
			continue
		}
		if missing := ch.MaxHealth - ch.CurrentHealth; missing > worst {
			worst = missing
			pick = ch.ID
		}
	}
	return pick
}

type instantClock struct{}

func (instantClock) Sleep(d time.Duration) {}
