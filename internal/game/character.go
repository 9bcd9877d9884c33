package game

// PassiveKind routes a character's passive ability. Passives only apply while
// the character is alive at board position 0 (the active slot); STUN does not
// suppress them.
type PassiveKind string

const (
	PassiveNone         PassiveKind = ""
	PassiveHealBonus    PassiveKind = "HEAL_BONUS"    // outgoing heals +Value
	PassiveReflect      PassiveKind = "REFLECT"       // attackers take Value back
	PassiveCostCut      PassiveKind = "COST_CUT"      // spells cost -Value, floored at 1
	PassiveShield       PassiveKind = "SHIELD"        // incoming damage -Value
	PassiveLifesteal    PassiveKind = "LIFESTEAL"     // attacks heal own active for Value
	PassiveAttackBonus  PassiveKind = "ATTACK_BONUS"  // outgoing attack damage +Value
	PassiveTrapImmunity PassiveKind = "TRAP_IMMUNITY" // enemy traps never intercept
)

// Character is one of the three board members. Position 0 is the active
// (front) spot; rotation advances every position by one, mod 3.
type Character struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	MaxHealth     int            `json:"maxHealth"`
	CurrentHealth int            `json:"currentHealth"`
	Position      int            `json:"position"`
	Passive       PassiveKind    `json:"passive"`
	PassiveValue  int            `json:"passiveValue,omitempty"`
	PassiveText   string         `json:"passiveText,omitempty"`
	IsDead        bool           `json:"isDead"`
	Statuses      []StatusEffect `json:"statuses"`
}

// HasStatus reports whether the character carries at least one instance of
// the given status type.
func (ch *Character) HasStatus(t StatusType) bool {
	for _, s := range ch.Statuses {
		if s.Type == t {
			return true
		}
	}
	return false
}

// CountStatus returns the number of instances of the given status type.
// Instances stack additively; they are never merged.
func (ch *Character) CountStatus(t StatusType) int {
	n := 0
	for _, s := range ch.Statuses {
		if s.Type == t {
			n++
		}
	}
	return n
}

// ApplyDamage reduces health, flooring at zero, and flips the one-way death
// flag. It reports whether this call killed the character.
func (ch *Character) ApplyDamage(amount int) bool {
	if ch.IsDead || amount <= 0 {
		return false
	}
	ch.CurrentHealth -= amount
	if ch.CurrentHealth < 0 {
		ch.CurrentHealth = 0
	}
	if ch.CurrentHealth == 0 {
		ch.IsDead = true
		return true
	}
	return false
}

// ApplyHeal restores health up to MaxHealth. Dead characters are never
// revived; heals on them are a no-op.
func (ch *Character) ApplyHeal(amount int) {
	if ch.IsDead || amount <= 0 {
		return
	}
	ch.CurrentHealth += amount
	if ch.CurrentHealth > ch.MaxHealth {
		ch.CurrentHealth = ch.MaxHealth
	}
}

// Clone returns a deep copy (statuses included).
func (ch *Character) Clone() Character {
	out := *ch
	out.Statuses = make([]StatusEffect, len(ch.Statuses))
	copy(out.Statuses, ch.Statuses)
	return out
}
