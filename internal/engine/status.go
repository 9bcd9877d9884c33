package engine

import (
	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

// BurnTick describes one burn application during a turn-start status pass.
type BurnTick struct {
	CharacterID string
	Damage      int
}

// AdvanceStatuses runs the bearer's turn-start status pass: apply BURN damage
// to every living character, then decrement every status duration and drop
// the expired ones. Deaths are flagged once, after the full pass, so
// simultaneous burn deaths never re-trigger effects.
func AdvanceStatuses(p *game.PlayerState) []BurnTick {
	var ticks []BurnTick
	for i := range p.Board {
		ch := &p.Board[i]
		if ch.IsDead {
			continue
		}
		kept := ch.Statuses[:0]
		for _, s := range ch.Statuses {
			if s.Type == game.StatusBurn && s.Value > 0 {
				ch.CurrentHealth -= s.Value
				if ch.CurrentHealth < 0 {
					ch.CurrentHealth = 0
				}
				ticks = append(ticks, BurnTick{CharacterID: ch.ID, Damage: s.Value})
			}
			s.Duration--
			if s.Duration > 0 {
				kept = append(kept, s)
			}
		}
		ch.Statuses = kept
	}
	// Single death pass after all burns resolved.
	for i := range p.Board {
		if p.Board[i].CurrentHealth == 0 && !p.Board[i].IsDead {
			p.Board[i].IsDead = true
		}
	}
	return ticks
}

// EffectiveCost applies the active character's cost-cut passive. The floor of
// 1 means free and one-cost cards are never reduced. STUN does not suppress
// the passive.
func EffectiveCost(card game.Card, p *game.PlayerState) int {
	active := p.ActiveCharacter()
	if active != nil && !active.IsDead && active.Passive == game.PassiveCostCut && card.Cost > 1 {
		cost := card.Cost - active.PassiveValue
		if cost < 1 {
			cost = 1
		}
		return cost
	}
	return card.Cost
}

// attackDamage runs the fixed damage pipeline for an attack or trap hit:
// base -> fragile bonus per instance -> weak penalty per instance on the
// attacker's active character -> attacker's flat bonus passive -> defender's
// flat shield passive (position 0 only) -> floor at zero.
func attackDamage(card game.Card, attacker *game.PlayerState, target *game.Character) int {
	dmg := card.Damage
	dmg += target.CountStatus(game.StatusFragile) * constants.FragileBonus
	if active := attacker.ActiveCharacter(); active != nil && !active.IsDead {
		dmg -= active.CountStatus(game.StatusWeak) * constants.WeakPenalty
		if dmg < 0 {
			dmg = 0
		}
		if active.Passive == game.PassiveAttackBonus {
			dmg += active.PassiveValue
		}
	} else if dmg < 0 {
		dmg = 0
	}
	if target.Position == 0 && !target.IsDead && target.Passive == game.PassiveShield {
		dmg -= target.PassiveValue
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// healAmount applies the caster's heal-bonus passive to a heal card.
func healAmount(card game.Card, caster *game.PlayerState) int {
	amt := card.HealAmount()
	if active := caster.ActiveCharacter(); active != nil && !active.IsDead && active.Passive == game.PassiveHealBonus {
		amt += active.PassiveValue
	}
	return amt
}

// reflectDamage returns the flat amount bounced back at an attacker when the
// defender's active character carries the reflect passive. Attacks only.
func reflectDamage(card game.Card, target *game.Character) int {
	if card.Type != game.CardAttack {
		return 0
	}
	if target.Position == 0 && !target.IsDead && target.Passive == game.PassiveReflect {
		return target.PassiveValue
	}
	return 0
}

// lifestealAmount returns the flat self-heal granted to the caster's active
// character on attacks.
func lifestealAmount(card game.Card, caster *game.PlayerState) int {
	if card.Type != game.CardAttack {
		return 0
	}
	if active := caster.ActiveCharacter(); active != nil && !active.IsDead && active.Passive == game.PassiveLifesteal {
		return active.PassiveValue
	}
	return 0
}

// trapImmune reports whether the player's active character shrugs off enemy
// trap interceptions.
func trapImmune(p *game.PlayerState) bool {
	active := p.ActiveCharacter()
	return active != nil && !active.IsDead && active.Passive == game.PassiveTrapImmunity
}
