package engine

import (
	"errors"
	"math/rand"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
	"github.com/SakutaTHZ/ProjectT/internal/game"
)

var (
	ErrInsufficientSoulPoints = errors.New("not enough soul points")
	ErrSlotNotReady           = errors.New("spell is still preparing")
	ErrInvalidTarget          = errors.New("invalid target")
)

// CastRequest describes one attempted cast. SlotIndex is the originating
// slot, or -1 for an instant cast straight from the hand. EffectTargetSlot
// points a slot-targeted effect (Lockdown, slot discard) at the targeter's
// board; -1 means none.
type CastRequest struct {
	Card             game.Card
	TargetID         string
	SlotIndex        int
	EffectTargetSlot int
}

// CastResult reports what a committed cast did. CasterSoulPoints is the
// authoritative post-commit total used by the sync layer to correct drift on
// the remote replica.
type CastResult struct {
	Kills            int
	DamageDealt      int
	Healed           int
	TrapTriggered    bool
	TrapCard         game.Card
	HandRevealed     bool
	GameOver         bool
	WinnerID         string
	CasterSoulPoints int
}

// castContext carries one cast transaction. The cast is atomic: every
// validation runs before the first mutation, and once resolution starts it
// always commits.
type castContext struct {
	rng      *rand.Rand
	caster   *game.PlayerState
	targeter *game.PlayerState
	req      CastRequest
	cost     int
	result   CastResult
}

// Cast validates and resolves a single spell cast from caster against
// targeter (the same pointer for self-casts). Validation failures return a
// sentinel error with both states untouched; a nil error means the cast
// committed fully.
func Cast(rng *rand.Rand, caster, targeter *game.PlayerState, req CastRequest) (*CastResult, error) {
	cc := &castContext{rng: rng, caster: caster, targeter: targeter, req: req}
	cc.cost = EffectiveCost(req.Card, caster)

	if err := cc.validate(); err != nil {
		return nil, err
	}
	if cc.tryTrapIntercept() {
		cc.finish()
		return &cc.result, nil
	}
	cc.payAndConsume()
	cc.resolve()
	cc.finish()
	return &cc.result, nil
}

func (cc *castContext) selfCast() bool { return cc.caster == cc.targeter }

func (cc *castContext) validate() error {
	card := cc.req.Card
	if cc.caster.SoulPoints < cc.cost {
		return ErrInsufficientSoulPoints
	}
	if cc.req.SlotIndex >= 0 {
		if cc.req.SlotIndex >= len(cc.caster.Slots) {
			return ErrInvalidTarget
		}
		if cc.caster.IsSlotDisabled(cc.req.SlotIndex) {
			return ErrSlotDisabled
		}
		slot := cc.caster.Slots[cc.req.SlotIndex]
		if slot == nil || slot.Card.InstanceID != card.InstanceID || !slot.IsReady {
			return ErrSlotNotReady
		}
	}

	switch card.Type {
	case game.CardAttack:
		if cc.selfCast() {
			return ErrInvalidTarget
		}
		target := cc.targeter.CharacterByID(cc.req.TargetID)
		if target == nil || target.IsDead {
			return ErrInvalidTarget
		}
		if target.Position != 0 && !card.CanTargetBackline {
			return ErrInvalidTarget
		}
	case game.CardHeal:
		if !cc.selfCast() {
			return ErrInvalidTarget
		}
		target := cc.caster.CharacterByID(cc.req.TargetID)
		if target == nil || target.IsDead {
			return ErrInvalidTarget
		}
	case game.CardTrap:
		// A trap cast proactively behaves like an attack on the enemy front
		// when no explicit target is given.
		if cc.selfCast() {
			return ErrInvalidTarget
		}
		if cc.req.TargetID != "" {
			target := cc.targeter.CharacterByID(cc.req.TargetID)
			if target == nil || target.IsDead {
				return ErrInvalidTarget
			}
		}
	case game.CardDiscard, game.CardManipulation:
		// These act on the opposing player (or caster for pure self
		// manipulation like Soul Infusion / Time Warp), never a character.
		if cc.req.TargetID != "" && cc.req.TargetID != cc.targeter.ID {
			return ErrInvalidTarget
		}
	}
	return nil
}

// tryTrapIntercept checks for a ready enemy trap preempting a slot-targeted
// discard effect. On interception the trap fully substitutes: the trap card
// and its cost are consumed from the targeter, the caster still pays and
// discards the original card, and its intended effect is voided.
func (cc *castContext) tryTrapIntercept() bool {
	if cc.selfCast() || cc.req.Card.Type != game.CardDiscard || cc.req.EffectTargetSlot < 0 {
		return false
	}
	if trapImmune(cc.caster) {
		return false
	}
	trapIdx := -1
	for i, s := range cc.targeter.Slots {
		if s == nil || !s.IsReady || s.Card.Type != game.CardTrap {
			continue
		}
		if cc.targeter.SoulPoints >= EffectiveCost(s.Card, cc.targeter) {
			trapIdx = i
			break
		}
	}
	if trapIdx < 0 {
		return false
	}

	trap := cc.targeter.Slots[trapIdx].Card
	// Caster's card is consumed with its effect voided.
	cc.payAndConsume()
	// Trap is consumed from the targeter.
	cc.targeter.SoulPoints -= EffectiveCost(trap, cc.targeter)
	cc.targeter.Slots[trapIdx] = nil
	cc.targeter.Discard = append(cc.targeter.Discard, trap)

	// The trap's effect resolves against the original caster's frontline.
	if victim := cc.caster.ActiveCharacter(); victim != nil && !victim.IsDead {
		dmg := attackDamage(trap, cc.targeter, victim)
		if victim.ApplyDamage(dmg) {
			cc.targeter.Score++
		}
		if trap.ApplyStatus != nil {
			victim.Statuses = append(victim.Statuses, *trap.ApplyStatus)
		}
		cc.result.DamageDealt = dmg
	}
	cc.result.TrapTriggered = true
	cc.result.TrapCard = trap
	return true
}

// payAndConsume deducts the effective cost and moves the card out of its
// origin zone into the caster's discard pile. Soul gains from the same cast
// land afterwards, per the pay-then-gain commit order.
func (cc *castContext) payAndConsume() {
	cc.caster.SoulPoints -= cc.cost
	if cc.req.SlotIndex >= 0 {
		cc.caster.Slots[cc.req.SlotIndex] = nil
	} else {
		cc.caster.RemoveFromHand(cc.req.Card.InstanceID)
	}
	cc.caster.Discard = append(cc.caster.Discard, cc.req.Card)
}

func (cc *castContext) resolve() {
	card := cc.req.Card
	switch card.Type {
	case game.CardAttack:
		cc.resolveStrike(cc.targeter.CharacterByID(cc.req.TargetID))
	case game.CardTrap:
		target := cc.targeter.CharacterByID(cc.req.TargetID)
		if target == nil {
			target = cc.targeter.ActiveCharacter()
		}
		cc.resolveStrike(target)
	case game.CardHeal:
		target := cc.caster.CharacterByID(cc.req.TargetID)
		amt := healAmount(card, cc.caster)
		before := target.CurrentHealth
		target.ApplyHeal(amt)
		cc.result.Healed = target.CurrentHealth - before
	case game.CardDiscard:
		cc.resolveDiscard()
	case game.CardManipulation, game.CardUtility, game.CardInstant:
		cc.resolveEffect()
	}
}

// resolveStrike applies the damage pipeline plus the passive interactions an
// attack carries (reflect, lifesteal, applied status, kill scoring).
func (cc *castContext) resolveStrike(target *game.Character) {
	if target == nil || target.IsDead {
		return
	}
	card := cc.req.Card
	dmg := attackDamage(card, cc.caster, target)
	reflect := reflectDamage(card, target)
	if target.ApplyDamage(dmg) {
		cc.caster.Score++
		cc.result.Kills++
	}
	cc.result.DamageDealt = dmg
	if card.ApplyStatus != nil {
		target.Statuses = append(target.Statuses, *card.ApplyStatus)
	}
	if active := cc.caster.ActiveCharacter(); active != nil && !active.IsDead {
		if steal := lifestealAmount(card, cc.caster); steal > 0 {
			active.ApplyHeal(steal)
		}
		if reflect > 0 {
			active.ApplyDamage(reflect)
		}
	}
}

func (cc *castContext) resolveDiscard() {
	// A slot-targeted discard destroys the chosen slotted card instead of
	// pulling from the hand.
	if cc.req.EffectTargetSlot >= 0 && cc.req.EffectTargetSlot < len(cc.targeter.Slots) {
		if s := cc.targeter.Slots[cc.req.EffectTargetSlot]; s != nil {
			cc.targeter.Discard = append(cc.targeter.Discard, s.Card)
			cc.targeter.Slots[cc.req.EffectTargetSlot] = nil
		}
		return
	}
	switch cc.req.Card.Effect {
	case game.EffectDiscardDraw:
		DiscardRandomFromHand(cc.rng, cc.targeter)
		Draw(cc.rng, cc.caster, 1)
	case game.EffectDiscardStrike:
		DiscardRandomFromHand(cc.rng, cc.targeter)
		cc.resolveStrike(cc.targeter.ActiveCharacter())
	default:
		n := cc.req.Card.EffectValue
		if n <= 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			if _, ok := DiscardRandomFromHand(cc.rng, cc.targeter); !ok {
				break
			}
		}
	}
}

func (cc *castContext) resolveEffect() {
	card := cc.req.Card
	switch card.Effect {
	case game.EffectDraw:
		Draw(cc.rng, cc.caster, card.EffectValue)
	case game.EffectGainSoul:
		cc.caster.SoulPoints += card.EffectValue
	case game.EffectSoulDrain:
		if cc.targeter.SoulPoints > 0 {
			cc.targeter.SoulPoints--
			cc.caster.SoulPoints++
		}
	case game.EffectSoulBurn:
		cc.targeter.SoulPoints -= card.EffectValue
		if cc.targeter.SoulPoints < 0 {
			cc.targeter.SoulPoints = 0
		}
	case game.EffectLockdown:
		cc.resolveLockdown()
	case game.EffectTimeWarp:
		Draw(cc.rng, cc.caster, 1)
		ResetNotReadySlots(cc.caster)
	case game.EffectEqualize:
		// Cost is already paid, so pooling current totals matches the
		// pre-cost formula. Floor once, assign symmetrically.
		split := (cc.caster.SoulPoints + cc.targeter.SoulPoints) / 2
		cc.caster.SoulPoints = split
		cc.targeter.SoulPoints = split
	case game.EffectShatter:
		occupied := cc.targeter.OccupiedSlotIndices()
		n := card.EffectValue
		for i := 0; i < n && len(occupied) > 0; i++ {
			pick := cc.rng.Intn(len(occupied))
			idx := occupied[pick]
			cc.targeter.Discard = append(cc.targeter.Discard, cc.targeter.Slots[idx].Card)
			cc.targeter.Slots[idx] = nil
			occupied = append(occupied[:pick], occupied[pick+1:]...)
		}
	case game.EffectRift:
		cc.caster.Discard = append(cc.caster.Discard, cc.caster.Hand...)
		cc.caster.Hand = cc.caster.Hand[:0]
		Draw(cc.rng, cc.caster, 3)
		if !cc.selfCast() {
			cc.targeter.Discard = append(cc.targeter.Discard, cc.targeter.Hand...)
			cc.targeter.Hand = cc.targeter.Hand[:0]
			Draw(cc.rng, cc.targeter, 3)
		}
	case game.EffectReveal:
		cc.targeter.HandRevealed = true
		cc.result.HandRevealed = true
	}
}

func (cc *castContext) resolveLockdown() {
	idx := cc.req.EffectTargetSlot
	if idx >= 0 && idx < len(cc.targeter.Slots) && !cc.targeter.IsSlotDisabled(idx) {
		cc.targeter.DisabledSlots = append(cc.targeter.DisabledSlots, idx)
		return
	}
	var free []int
	for i := range cc.targeter.Slots {
		if !cc.targeter.IsSlotDisabled(i) {
			free = append(free, i)
		}
	}
	if len(free) > 0 {
		cc.targeter.DisabledSlots = append(cc.targeter.DisabledSlots, free[cc.rng.Intn(len(free))])
	}
}

// finish records the authoritative soul total and evaluates win conditions.
// Reaching MAX_SCORE and wiping the enemy board are independent wins; when a
// single cast produces both, the caster wins the tie.
func (cc *castContext) finish() {
	cc.result.CasterSoulPoints = cc.caster.SoulPoints
	switch {
	case cc.caster.Score >= constants.MaxScore || cc.targeter.IsWipedOut():
		cc.result.GameOver = true
		cc.result.WinnerID = cc.caster.ID
	case cc.targeter.Score >= constants.MaxScore || cc.caster.IsWipedOut():
		// A triggered trap or reflected damage can finish the caster.
		cc.result.GameOver = true
		cc.result.WinnerID = cc.targeter.ID
	}
}
