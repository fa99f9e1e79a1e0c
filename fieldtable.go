package secard

import "fmt"

// input is everything a field derivation may read.
type input struct {
	card  Record
	sheet Sheet
	meta  Record
}

// fieldRule derives the values of one or more Strange Eons fields.
// derive returns one value per name.
type fieldRule struct {
	names  []string
	derive func(r *Renderer, in input) ([]string, error)
}

type valueFunc func(r *Renderer, in input) (string, error)

// same writes one value to every name.
func same(d valueFunc, names ...string) fieldRule {
	return fieldRule{
		names: names,
		derive: func(r *Renderer, in input) ([]string, error) {
			v, err := d(r, in)
			if err != nil {
				return nil, err
			}
			values := make([]string, len(names))
			for i := range values {
				values[i] = v
			}
			return values, nil
		},
	}
}

func stats(f func(Record) string) valueFunc {
	return func(_ *Renderer, in input) (string, error) {
		return f(in.card), nil
	}
}

func text(f func(*Renderer, Record) string) valueFunc {
	return func(r *Renderer, in input) (string, error) {
		return f(r, in.card), nil
	}
}

func lookup(f func(*Renderer, Record) (string, error)) valueFunc {
	return func(r *Renderer, in input) (string, error) {
		return f(r, in.card)
	}
}

// bottomLine blanks d on sheets without a printed bottom line.
func bottomLine(d valueFunc) valueFunc {
	return func(r *Renderer, in input) (string, error) {
		if r.BottomLineTransparent(in.card, in.sheet) {
			return "", nil
		}
		return d(r, in)
	}
}

var fieldRules = buildFieldRules()

// fieldCount sizes the output map.
var fieldCount = func() int {
	n := 0
	for _, rule := range fieldRules {
		n += len(rule.names)
	}
	return n
}()

func buildFieldRules() []fieldRule {
	rules := []fieldRule{
		same(text((*Renderer).FrontName), "name"),
		same(text((*Renderer).Subname), "$Subtitle"),
		same(text((*Renderer).BackName), "$TitleBack"),
		same(lookup((*Renderer).Subtype), "$Subtype"),
		same(stats(Unique), "$Unique"),
		same(stats(Cost), "$ResourceCost"),
		same(stats(XP), "$Level"),
		same(stats(Willpower), "$Willpower"),
		same(stats(Intellect), "$Intellect"),
		same(stats(Combat), "$Combat"),
		same(stats(Agility), "$Agility"),
		same(stats(Health), "$Stamina", "$Health"),
		same(stats(Sanity), "$Sanity"),
		same(stats(EnemyDamage), "$Damage"),
		same(stats(EnemyHorror), "$Horror"),
		same(stats(EnemyFight), "$Attack"),
		same(stats(EnemyEvade), "$Evade"),
		same(text((*Renderer).Traits), "$Traits"),
		same(text((*Renderer).FrontRule), "$Rules"),
		same(text((*Renderer).FrontFlavor), "$Flavor"),
		same(text((*Renderer).BackFlavor), "$FlavorBack", "$InvStoryBack"),
		same(bottomLine(text((*Renderer).Illustrator)), "$Artist", "$ArtistBack"),
		same(bottomLine(text((*Renderer).Copyright)), "$Copyright"),
		same(bottomLine(lookup((*Renderer).Pack)), "$Collection"),
		same(bottomLine(stats(PackNumber)), "$CollectionNumber"),
		same(bottomLine(lookup((*Renderer).Encounter)), "$Encounter"),
		same(bottomLine(stats(EncounterNumber)), "$EncounterNumber"),
		same(bottomLine(lookup((*Renderer).EncounterTotal)), "$EncounterTotal"),
		same(text((*Renderer).EncounterFrontVisibility), "$ShowEncounterIcon"),
		same(text((*Renderer).EncounterBackVisibility), "$ShowEncounterIconBack"),
		same(stats(Doom), "$Doom"),
		same(text((*Renderer).DoomComment), "$Asterisk"),
		same(stats(Clues), "$Clues"),
		same(stats(Shroud), "$Shroud"),
		same(stats(PerInvestigator), "$PerInvestigator"),
		same(stats(ProgressNumber), "$ProgressNumber"),
		same(text((*Renderer).ProgressLetter), "$ProgressLetter"),
		same(text(func(r *Renderer, c Record) string { return flag(r.ProgressReversed(c)) }), "$ProgressReversed"),
		same(text((*Renderer).ProgressDirection), "$ProgressDirection"),
		same(text((*Renderer).Tracker), "$Tracker"),
		same(text((*Renderer).FrontTemplate), "$Template"),
		same(text((*Renderer).BackTemplate), "$TemplateBack"),
		same(text((*Renderer).BackHeader), "$HeaderBack"),
		same(text((*Renderer).Points), "$Victory"),
		locationRule(Front, "$LocationFront"),
		locationRule(Back, "$LocationBack"),
	}

	for i := range FactionSlots {
		rules = append(rules, same(func(r *Renderer, in input) (string, error) {
			return r.Faction(in.card, i, in.sheet)
		}, fmt.Sprintf("$Faction%d", i+1)))
	}
	for i := range SkillSlots {
		rules = append(rules, same(text(func(r *Renderer, c Record) string {
			return r.Skill(c, i)
		}), fmt.Sprintf("$Skill%d", i+1)))
	}
	for i := range EquipmentSlots {
		rules = append(rules, same(text(func(r *Renderer, c Record) string {
			return r.Slot(c, i)
		}), fmt.Sprintf("$Slot%d", i+1)))
	}
	for _, side := range []Sheet{Front, Back} {
		for i := range ParagraphSlots {
			rules = append(rules, paragraphRule(side, i))
		}
		for _, token := range []ChaosToken{Skull, Cultist, Tablet, ElderThing} {
			rules = append(rules, chaosRule(side, token))
		}
		for i := range ConnectionSlots {
			rules = append(rules, connectionRule(side, i))
		}
	}
	for i := range DeckLineSlots {
		rules = append(rules,
			same(text(func(r *Renderer, c Record) string {
				return r.DeckHeader(c, i)
			}), fmt.Sprintf("$DeckHeader%d", i+1)),
			same(text(func(r *Renderer, c Record) string {
				return r.DeckRule(c, i)
			}), fmt.Sprintf("$DeckRule%d", i+1)),
		)
	}
	return rules
}

// backSuffix marks the back-face variant of a field name.
func backSuffix(side Sheet) string {
	if side == Back {
		return "Back"
	}
	return ""
}

func paragraphRule(side Sheet, i int) fieldRule {
	prefix, suffix := fmt.Sprintf("$Paragraph%d", i+1), backSuffix(side)
	return fieldRule{
		names: []string{prefix + "Header" + suffix, prefix + "Flavor" + suffix, prefix + "Rule" + suffix},
		derive: func(r *Renderer, in input) ([]string, error) {
			header, flavor, rule := r.Paragraph(in.card, side, i)
			return []string{header, flavor, rule}, nil
		},
	}
}

func chaosRule(side Sheet, token ChaosToken) fieldRule {
	suffix := backSuffix(side)
	return fieldRule{
		names: []string{"$" + token.String() + suffix, "$Merge" + token.String() + suffix},
		derive: func(r *Renderer, in input) ([]string, error) {
			rule, merge := r.Chaos(in.card, side, token)
			return []string{rule, merge}, nil
		},
	}
}

func locationRule(side Sheet, name string) fieldRule {
	return same(func(r *Renderer, in input) (string, error) {
		return r.LocationIcon(in.meta, side), nil
	}, name)
}

func connectionRule(side Sheet, i int) fieldRule {
	name := "$ConnectionFront"
	if side == Back {
		name = "$ConnectionBack"
	}
	return same(func(r *Renderer, in input) (string, error) {
		return r.Connection(in.meta, side, i), nil
	}, fmt.Sprintf("%s%d", name, i+1))
}
