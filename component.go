package secard

import (
	"fmt"

	"github.com/alnah/go-secard/internal/gamedata"
)

// Component is a Strange Eons component list a rendered sheet belongs to.
type Component string

// Strange Eons components.
const (
	ComponentAsset                      Component = "asset"
	ComponentAssetEncounter             Component = "asset_encounter"
	ComponentEvent                      Component = "event"
	ComponentSkill                      Component = "skill"
	ComponentInvestigatorFront          Component = "investigator_front"
	ComponentInvestigatorBack           Component = "investigator_back"
	ComponentInvestigatorEncounterFront Component = "investigator_encounter_front"
	ComponentInvestigatorEncounterBack  Component = "investigator_encounter_back"
	ComponentTreacheryWeakness          Component = "treachery_weakness"
	ComponentTreacheryEncounter         Component = "treachery_encounter"
	ComponentEnemyWeakness              Component = "enemy_weakness"
	ComponentEnemyEncounter             Component = "enemy_encounter"
	ComponentAgendaFront                Component = "agenda_front"
	ComponentAgendaBack                 Component = "agenda_back"
	ComponentActFront                   Component = "act_front"
	ComponentActBack                    Component = "act_back"
	ComponentImageFront                 Component = "image_front"
	ComponentImageBack                  Component = "image_back"
	ComponentLocationFront              Component = "location_front"
	ComponentLocationBack               Component = "location_back"
	ComponentScenarioFront              Component = "scenario_front"
	ComponentScenarioBack               Component = "scenario_back"
	ComponentScenarioHeader             Component = "scenario_header"
	ComponentStory                      Component = "story"
)

// Components lists every component in Strange Eons project order.
var Components = []Component{
	ComponentAsset, ComponentAssetEncounter, ComponentEvent, ComponentSkill,
	ComponentInvestigatorFront, ComponentInvestigatorBack,
	ComponentInvestigatorEncounterFront, ComponentInvestigatorEncounterBack,
	ComponentTreacheryWeakness, ComponentTreacheryEncounter,
	ComponentEnemyWeakness, ComponentEnemyEncounter,
	ComponentAgendaFront, ComponentAgendaBack, ComponentActFront, ComponentActBack,
	ComponentImageFront, ComponentImageBack,
	ComponentLocationFront, ComponentLocationBack,
	ComponentScenarioFront, ComponentScenarioBack, ComponentScenarioHeader,
	ComponentStory,
}

// pick returns front or back for sheet.
func pick(sheet Sheet, front, back Component) Component {
	if sheet == Front {
		return front
	}
	return back
}

// isWeakness reports whether card carries a weakness subtype.
func isWeakness(card Record) bool {
	switch card.String("subtype_code", "") {
	case "weakness", "basicweakness":
		return true
	default:
		return false
	}
}

// ComponentType classifies a card sheet into its Strange Eons component.
// Full-art acts and agendas use the image components; Return to scenario
// cards and a few story cards use the story templates.
func (r *Renderer) ComponentType(card Record, sheet Sheet) (Component, error) {
	if !sheet.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidSheet, sheet)
	}

	code := card.Code()
	switch card.TypeCode() {
	case "asset":
		if card.Has("encounter_code") {
			return ComponentAssetEncounter, nil
		}
		return ComponentAsset, nil
	case "event":
		return ComponentEvent, nil
	case "skill":
		return ComponentSkill, nil
	case "investigator":
		if card.Has("encounter_code") {
			return pick(sheet, ComponentInvestigatorEncounterFront, ComponentInvestigatorEncounterBack), nil
		}
		return pick(sheet, ComponentInvestigatorFront, ComponentInvestigatorBack), nil
	case "treachery":
		if isWeakness(card) {
			return ComponentTreacheryWeakness, nil
		}
		return ComponentTreacheryEncounter, nil
	case "enemy":
		if isWeakness(card) {
			return ComponentEnemyWeakness, nil
		}
		return ComponentEnemyEncounter, nil
	case "agenda":
		if r.fullArt(code, sheet, gamedata.AgendaImageFront, gamedata.AgendaImageBack) {
			return pick(sheet, ComponentImageFront, ComponentImageBack), nil
		}
		return pick(sheet, ComponentAgendaFront, ComponentAgendaBack), nil
	case "act":
		if r.fullArt(code, sheet, gamedata.ActImageFront, gamedata.ActImageBack) {
			return pick(sheet, ComponentImageFront, ComponentImageBack), nil
		}
		return pick(sheet, ComponentActFront, ComponentActBack), nil
	case "location":
		return pick(sheet, ComponentLocationFront, ComponentLocationBack), nil
	case "scenario":
		if r.isReturnTo(card) {
			return ComponentStory, nil
		}
		return pick(sheet, ComponentScenarioFront, ComponentScenarioBack), nil
	case "story":
		if sheet == Back && r.tables.Has(gamedata.ScenarioHeaderBack, code) {
			return ComponentScenarioHeader, nil
		}
		return ComponentStory, nil
	default:
		return "", fmt.Errorf("%w: %q (card %s)", ErrUnsupportedType, card.TypeCode(), code)
	}
}

func (r *Renderer) fullArt(code string, sheet Sheet, front, back gamedata.List) bool {
	if sheet == Front {
		return r.tables.Has(front, code)
	}
	return r.tables.Has(back, code)
}
