package game

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/SakutaTHZ/ProjectT/internal/constants"
)

// Catalog is the read-only card/character lookup table consumed at match
// start. Templates may be overridden from the config file; the defaults below
// are the stock game set.
type Catalog struct {
	Cards      []Card
	Characters []Character
}

// CardByTemplateID finds a card template, or nil.
func (c *Catalog) CardByTemplateID(id string) *Card {
	for i := range c.Cards {
		if c.Cards[i].TemplateID == id {
			return &c.Cards[i]
		}
	}
	return nil
}

// CharacterByID finds a character template, or nil.
func (c *Catalog) CharacterByID(id string) *Character {
	for i := range c.Characters {
		if c.Characters[i].ID == id {
			return &c.Characters[i]
		}
	}
	return nil
}

// MintCard stamps a fresh instance id onto a template copy. Instance ids are
// the per-copy identity used to track a card across zones.
func MintCard(tpl Card) Card {
	tpl.InstanceID = uuid.NewString()
	return tpl
}

// HiddenCard returns an opaque placeholder used to mirror the length of a
// remote hand without knowing its contents.
func HiddenCard() Card {
	return Card{InstanceID: uuid.NewString(), Name: "???", Hidden: true}
}

// GenerateDeck draws size random templates from the catalog, minting a fresh
// instance for each.
func (c *Catalog) GenerateDeck(rng *rand.Rand, size int) []Card {
	deck := make([]Card, 0, size)
	for i := 0; i < size; i++ {
		deck = append(deck, MintCard(c.Cards[rng.Intn(len(c.Cards))]))
	}
	return deck
}

// MintDeck mints instances for an explicit template list (a custom loadout)
// and shuffles them.
func MintDeck(rng *rand.Rand, templates []Card) []Card {
	deck := make([]Card, 0, len(templates))
	for _, tpl := range templates {
		deck = append(deck, MintCard(tpl))
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// DefaultCatalog returns the stock card and character set.
func DefaultCatalog() *Catalog {
	return &Catalog{Cards: defaultCards(), Characters: defaultCharacters()}
}

// DefaultPlayerSquad and DefaultOpponentSquad are the stock loadouts used
// when no custom squad is provided.
func (c *Catalog) DefaultPlayerSquad() []Character   { return c.squad("char_1", "char_2", "char_3") }
func (c *Catalog) DefaultOpponentSquad() []Character { return c.squad("char_4", "char_5", "char_6") }

func (c *Catalog) squad(ids ...string) []Character {
	out := make([]Character, 0, constants.SquadSize)
	for _, id := range ids {
		if ch := c.CharacterByID(id); ch != nil {
			out = append(out, ch.Clone())
		}
	}
	return out
}

func defaultCards() []Card {
	return []Card{
		// Attacks
		{TemplateID: "atk-1", Name: "Fireball", Cost: 1, Damage: 20, Type: CardAttack, Description: "Deal 20 Dmg to Front."},
		{TemplateID: "atk-2", Name: "Snipe", Cost: 2, Damage: 40, Type: CardAttack, CanTargetBackline: true, Description: "Deal 40 Dmg. Can hit Back."},
		{TemplateID: "atk-3", Name: "Meteor", Cost: 3, Damage: 60, Type: CardAttack, Description: "Deal 60 Dmg to Front."},
		{TemplateID: "atk-4", Name: "Shadow Strike", Cost: 1, Damage: 15, Type: CardAttack, CanTargetBackline: true, Description: "Deal 15 Dmg. Can hit Back."},
		{TemplateID: "atk-5", Name: "Cleave", Cost: 2, Damage: 30, Type: CardAttack, Description: "Deal 30 Dmg to Front."},
		{TemplateID: "atk-6", Name: "Execution", Cost: 3, Damage: 80, Type: CardAttack, Description: "Deal 80 Dmg to Front."},
		{TemplateID: "atk-ignite", Name: "Ignite", Cost: 1, Damage: 10, Type: CardAttack, Description: "Deal 10 Dmg + Burn (10 dmg/turn) for 2 turns.",
			ApplyStatus: &StatusEffect{Type: StatusBurn, Duration: 2, Value: 10}},
		{TemplateID: "atk-shatter", Name: "Shatter Armor", Cost: 2, Damage: 10, Type: CardAttack, Description: "Deal 10 Dmg + Fragile (+10 Dmg taken) for 2 turns.",
			ApplyStatus: &StatusEffect{Type: StatusFragile, Duration: 2, Value: 10}},
		{TemplateID: "atk-stun", Name: "Concussion", Cost: 2, Damage: 15, Type: CardAttack, Description: "Deal 15 Dmg + Stun (Prevents Rotation) for 1 turn.",
			ApplyStatus: &StatusEffect{Type: StatusStun, Duration: 1}},

		// Heals
		{TemplateID: "heal-1", Name: "Nature's Balm", Cost: 1, Damage: -25, Type: CardHeal, Description: "Heal 25 HP."},
		{TemplateID: "heal-2", Name: "Holy Light", Cost: 2, Damage: -50, Type: CardHeal, Description: "Heal 50 HP."},
		{TemplateID: "heal-3", Name: "Mend", Cost: 0, Damage: -10, Type: CardHeal, Description: "Heal 10 HP."},
		{TemplateID: "heal-4", Name: "Divine Grace", Cost: 3, Damage: -100, Type: CardHeal, Description: "Heal 100 HP."},
		{TemplateID: "heal-5", Name: "Regrowth", Cost: 1, Damage: -30, Type: CardHeal, Description: "Heal 30 HP."},

		// Traps
		{TemplateID: "trap-1", Name: "Bear Trap", Cost: 1, Damage: 20, Type: CardTrap, Description: "Deal 20 Dmg to target."},
		{TemplateID: "trap-2", Name: "Spike Pit", Cost: 2, Damage: 30, Type: CardTrap, Description: "Deal 30 Dmg to target."},
		{TemplateID: "trap-3", Name: "Explosive Rune", Cost: 3, Damage: 50, Type: CardTrap, Description: "Deal 50 Dmg to target."},
		{TemplateID: "trap-weak", Name: "Intimidate", Cost: 1, Damage: 5, Type: CardTrap, Description: "Deal 5 Dmg + Weak (-10 Dmg dealt) for 2 turns.",
			ApplyStatus: &StatusEffect{Type: StatusWeak, Duration: 2, Value: 10}},
		{TemplateID: "trap-mirror", Name: "Mirror Force", Cost: 2, Damage: 30, Type: CardTrap, Description: "Reflect 30 damage."},

		// Utility
		{TemplateID: "util-1", Name: "Soul Harvest", Cost: 1, Type: CardUtility, Effect: EffectDraw, EffectValue: 2, Description: "Draw 2 Cards."},
		{TemplateID: "util-2", Name: "Focus", Cost: 0, Type: CardUtility, Effect: EffectGainSoul, EffectValue: 1, Description: "Gain 1 Soul Point."},
		{TemplateID: "util-3", Name: "Greed", Cost: 2, Type: CardUtility, Effect: EffectDraw, EffectValue: 3, Description: "Draw 3 Cards."},
		{TemplateID: "util-4", Name: "Clairvoyance", Cost: 0, Type: CardUtility, Effect: EffectDraw, EffectValue: 1, Description: "Draw 1 Card."},
		{TemplateID: "util-5", Name: "Preparation", Cost: 1, Type: CardUtility, Effect: EffectGainSoul, EffectValue: 2, Description: "Gain 2 Soul Points."},

		// Discard
		{TemplateID: "disc-1", Name: "Mind Rot", Cost: 2, Type: CardDiscard, Effect: EffectDiscardRandom, EffectValue: 1, Description: "Discard 1 Random Enemy Card."},
		{TemplateID: "disc-2", Name: "Amnesia", Cost: 3, Type: CardDiscard, Effect: EffectDiscardRandom, EffectValue: 2, Description: "Discard 2 Random Enemy Cards."},
		{TemplateID: "disc-3", Name: "Thought Theft", Cost: 1, Type: CardDiscard, Effect: EffectDiscardDraw, Description: "Opponent Discards 1, You Draw 1."},
		{TemplateID: "disc-4", Name: "Mental Collapse", Cost: 2, Damage: 10, Type: CardDiscard, Effect: EffectDiscardStrike, Description: "Discard 1 Card. Deal 10 Dmg to Front."},
		{TemplateID: "disc-5", Name: "Confusion", Cost: 1, Type: CardDiscard, Effect: EffectDiscardRandom, EffectValue: 1, Description: "Discard 1 Card."},

		// Manipulation
		{TemplateID: "man-1", Name: "Lockdown", Cost: 2, Type: CardManipulation, Effect: EffectLockdown, Description: "Disable Selected Slot for 1 Turn."},
		{TemplateID: "man-2", Name: "Soul Drain", Cost: 1, Type: CardManipulation, Effect: EffectSoulDrain, Description: "Steal 1 Soul Point."},
		{TemplateID: "man-3", Name: "Soul Infusion", Cost: 1, Type: CardManipulation, Effect: EffectGainSoul, EffectValue: 2, Description: "Gain 2 Soul Points."},
		{TemplateID: "man-4", Name: "Time Warp", Cost: 3, Type: CardManipulation, Effect: EffectTimeWarp, Description: "Draw 1. Reset all your slots."},
		{TemplateID: "man-5", Name: "Overload", Cost: 2, Type: CardManipulation, Effect: EffectSoulBurn, EffectValue: 2, Description: "Opponent loses 2 Soul Points."},

		// Instants (cast straight from hand, never slotted)
		{TemplateID: "inst-1", Name: "Equalizing Flow", Cost: 2, Type: CardInstant, Effect: EffectEqualize, Description: "Pool both Soul totals and split evenly."},
		{TemplateID: "inst-2", Name: "Spell Shatter", Cost: 2, Type: CardInstant, Effect: EffectShatter, EffectValue: 2, Description: "Destroy 2 enemy spells."},
		{TemplateID: "inst-3", Name: "Rapid Reflex", Cost: 1, Type: CardInstant, Effect: EffectDraw, EffectValue: 2, Description: "Draw 2 Cards instantly."},
		{TemplateID: "inst-4", Name: "Unstable Rift", Cost: 3, Type: CardInstant, Effect: EffectRift, Description: "Both players discard hands and draw 3."},
		{TemplateID: "inst-5", Name: "Eagle Eye", Cost: 1, Type: CardInstant, Effect: EffectReveal, Description: "Reveal the enemy hand."},
	}
}

func defaultCharacters() []Character {
	return []Character{
		{ID: "char_1", Name: "Sylphy", MaxHealth: 100, CurrentHealth: 100, Passive: PassiveHealBonus, PassiveValue: 10, PassiveText: "+10 Heal Potency"},
		{ID: "char_2", Name: "Ragnar", MaxHealth: 120, CurrentHealth: 120, Passive: PassiveReflect, PassiveValue: 5, PassiveText: "Reflect 5 Dmg"},
		{ID: "char_3", Name: "Lyra", MaxHealth: 80, CurrentHealth: 80, Passive: PassiveCostCut, PassiveValue: 1, PassiveText: "Spells cost -1 (min 1)"},
		{ID: "char_4", Name: "Ashlen", MaxHealth: 100, CurrentHealth: 100, Passive: PassiveShield, PassiveValue: 5, PassiveText: "Shield -5 Dmg"},
		{ID: "char_5", Name: "Vorg", MaxHealth: 140, CurrentHealth: 140, Passive: PassiveShield, PassiveValue: 10, PassiveText: "Tanky -10 Dmg"},
		{ID: "char_6", Name: "Nyx", MaxHealth: 90, CurrentHealth: 90, Passive: PassiveLifesteal, PassiveValue: 10, PassiveText: "Lifesteal +10"},
		{ID: "char_7", Name: "Kael", MaxHealth: 110, CurrentHealth: 110, Passive: PassiveAttackBonus, PassiveValue: 5, PassiveText: "+5 Attack Dmg"},
		{ID: "char_8", Name: "Elara", MaxHealth: 85, CurrentHealth: 85, Passive: PassiveTrapImmunity, PassiveText: "Immune to Traps"},
	}
}
