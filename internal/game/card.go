package game

// CardType classifies how a card resolves when cast.
type CardType string

const (
	CardAttack       CardType = "ATTACK"
	CardHeal         CardType = "HEAL"
	CardTrap         CardType = "TRAP"
	CardUtility      CardType = "UTILITY"
	CardDiscard      CardType = "DISCARD"
	CardManipulation CardType = "MANIPULATION"
	CardInstant      CardType = "INSTANT"
)

// StatusType identifies a status effect carried by a character.
type StatusType string

const (
	StatusBurn    StatusType = "BURN"    // damage at the bearer's turn start
	StatusFragile StatusType = "FRAGILE" // take extra damage
	StatusWeak    StatusType = "WEAK"    // deal less damage
	StatusStun    StatusType = "STUN"    // prevents rotation
)

// StatusEffect is one applied instance of a status. Multiple instances of the
// same type may coexist on a character; they are never merged.
type StatusEffect struct {
	Type     StatusType `json:"type"`
	Duration int        `json:"duration"`
	Value    int        `json:"value,omitempty"`
}

// EffectKind routes the non-damage behavior of a card inside the resolver.
// Using a typed kind instead of dispatching on card names keeps the catalog
// data-driven: renaming a card never changes rules behavior.
type EffectKind string

const (
	EffectNone          EffectKind = ""
	EffectDraw          EffectKind = "DRAW"           // draw EffectValue cards
	EffectGainSoul      EffectKind = "GAIN_SOUL"      // gain EffectValue soul points
	EffectDiscardRandom EffectKind = "DISCARD_RANDOM" // target discards EffectValue random cards
	EffectDiscardDraw   EffectKind = "DISCARD_DRAW"   // target discards 1, caster draws 1
	EffectDiscardStrike EffectKind = "DISCARD_STRIKE" // target discards 1, then takes card damage on front
	EffectLockdown      EffectKind = "LOCKDOWN"       // disable one target slot
	EffectSoulDrain     EffectKind = "SOUL_DRAIN"     // transfer 1 soul point target -> caster
	EffectSoulBurn      EffectKind = "SOUL_BURN"      // target loses EffectValue soul points
	EffectTimeWarp      EffectKind = "TIME_WARP"      // draw 1, return own not-ready slots to hand
	EffectEqualize      EffectKind = "EQUALIZE"       // pool both soul totals and split evenly
	EffectShatter       EffectKind = "SHATTER"        // destroy up to EffectValue random occupied target slots
	EffectRift          EffectKind = "RIFT"           // both sides discard hands and draw 3
	EffectReveal        EffectKind = "REVEAL"         // reveal the opponent's hand
)

// Card is an immutable template. Per-copy identity lives in the InstanceID,
// minted at deck-generation time; template fields are never mutated.
type Card struct {
	InstanceID string `json:"id"`
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
	Cost       int    `json:"cost"`
	// Damage is negative for heals, matching the catalog convention.
	Damage            int           `json:"damage"`
	Description       string        `json:"description,omitempty"`
	Type              CardType      `json:"type"`
	CanTargetBackline bool          `json:"canTargetBackline,omitempty"`
	ApplyStatus       *StatusEffect `json:"applyStatus,omitempty"`
	Effect            EffectKind    `json:"effect,omitempty"`
	EffectValue       int           `json:"effectValue,omitempty"`
	// Hidden marks an opaque placeholder standing in for an unknown remote
	// hand card (hand sizes are synced, contents are not).
	Hidden bool `json:"hidden,omitempty"`
}

// HealAmount returns the restorative value of a heal card.
func (c Card) HealAmount() int {
	if c.Damage < 0 {
		return -c.Damage
	}
	return 0
}
