package secard

import (
	"strconv"
	"strings"
)

// Printed forms of variable and missing stats.
const (
	variableX    = "X"
	variableStar = "Star"
	noValue      = "-"
	none         = "None"
)

// stat renders key with the variable-value policy: VariableValue prints as
// variable, an absent field as absent. Non-integer values pass through.
func stat(card Record, key, variable, absent string) string {
	if !card.Has(key) {
		return absent
	}
	if n, ok := card.Int(key); ok {
		if n == VariableValue {
			return variable
		}
		return strconv.Itoa(n)
	}
	return card.String(key, absent)
}

// count renders a plain number that defaults to "0".
func count(card Record, key string) string {
	return card.String(key, "0")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Cost returns the resource cost: X when variable, "-" when absent.
func Cost(card Record) string { return stat(card, "cost", variableX, noValue) }

// Doom returns the doom threshold: Star when variable, "-" when absent.
func Doom(card Record) string { return stat(card, "doom", variableStar, noValue) }

// Clues returns the clue value: Star when variable, "-" when absent.
func Clues(card Record) string { return stat(card, "clues", variableStar, noValue) }

// Shroud returns the shroud value: X when variable, "0" when absent.
func Shroud(card Record) string { return stat(card, "shroud", variableX, "0") }

// EnemyFight returns the enemy fight value: X when variable, "-" when absent.
func EnemyFight(card Record) string { return stat(card, "enemy_fight", variableX, noValue) }

// EnemyEvade returns the enemy evade value: X when variable, "-" when absent.
func EnemyEvade(card Record) string { return stat(card, "enemy_evade", variableX, noValue) }

// Health returns the health value. Enemies print X when variable. Other
// cards only print health when they also carry sanity, using Star when
// variable; cards with neither stat print "None".
func Health(card Record) string {
	isEnemy := card.TypeCode() == "enemy"
	switch {
	case isEnemy:
		return stat(card, "health", variableX, noValue)
	case card.Has("sanity"):
		return stat(card, "health", variableStar, noValue)
	default:
		return none
	}
}

// Sanity returns the sanity value: Star when variable, "-" when only health
// is present, "None" when neither is.
func Sanity(card Record) string {
	absent := none
	if card.Has("health") {
		absent = noValue
	}
	return stat(card, "sanity", variableStar, absent)
}

// Willpower returns the willpower skill value.
func Willpower(card Record) string { return count(card, "skill_willpower") }

// Intellect returns the intellect skill value.
func Intellect(card Record) string { return count(card, "skill_intellect") }

// Combat returns the combat skill value.
func Combat(card Record) string { return count(card, "skill_combat") }

// Agility returns the agility skill value.
func Agility(card Record) string { return count(card, "skill_agility") }

// EnemyDamage returns the damage an enemy deals.
func EnemyDamage(card Record) string { return count(card, "enemy_damage") }

// EnemyHorror returns the horror an enemy deals.
func EnemyHorror(card Record) string { return count(card, "enemy_horror") }

// PackNumber returns the card's position in its pack.
func PackNumber(card Record) string { return count(card, "position") }

// EncounterNumber returns the card's position in its encounter set.
func EncounterNumber(card Record) string { return count(card, "encounter_position") }

// ProgressNumber returns the act or agenda stage.
func ProgressNumber(card Record) string { return count(card, "stage") }

// XP returns the experience level. Signature cards print no level.
func XP(card Record) string {
	if strings.Contains(card.String("real_text", ""), "deck only.") {
		return none
	}
	return count(card, "xp")
}

// Unique returns "1" for unique cards. Investigators are always unique.
func Unique(card Record) string {
	return flag(card.Bool("is_unique", false) || card.TypeCode() == "investigator")
}

// PerInvestigator returns "1" when the printed value scales with players.
// Locations and acts scale their clues unless the count is 0, variable, or
// marked fixed. Other cards scale their health when flagged.
func PerInvestigator(card Record) string {
	switch card.TypeCode() {
	case "location", "act":
		clues, isInt := card.Int("clues")
		fixed := !card.Has("clues") ||
			isInt && (clues == 0 || clues == VariableValue) ||
			card.Bool("clues_fixed", false)
		return flag(!fixed)
	default:
		return flag(card.Bool("health_per_investigator", false))
	}
}
