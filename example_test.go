package secard_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-secard"
)

// Example renders the front of a player card.
func Example() {
	r, err := secard.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	card, err := secard.ParseRecord([]byte(`{
		"code": "01020",
		"type_code": "asset",
		"faction_code": "guardian",
		"pack_code": "core",
		"name": "Machete",
		"traits": "Item. Weapon. Melee.",
		"text": "[action] Fight. You get +1 [combat].",
		"cost": 3,
		"real_slot": "Hand"
	}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fields, err := r.Render(card, secard.Front)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, name := range []string{"name", "$Faction1", "$ResourceCost", "$Slot1", "$Traits", "$Rules"} {
		fmt.Printf("%s=%q\n", name, fields.Get(name))
	}
	// Output:
	// name="Machete"
	// $Faction1="Guardian"
	// $ResourceCost="3"
	// $Slot1="Hand"
	// $Traits="Item. Weapon. Melee."
	// $Rules="<act> Fight. You get +1 <com>. "
}

// Example_withLanguage localizes labels for a German card.
func Example_withLanguage() {
	r, err := secard.New(secard.WithLanguage("de"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	card, err := secard.ParseRecord([]byte(`{"code":"01111","type_code":"location","victory":1}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(r.Points(card))
	fmt.Println(r.TabooLabel())
	// Output:
	// Sieg 1.
	// Tabu
}

// ExampleRenderer_RenderAll renders both sheets of a card list concurrently.
func ExampleRenderer_RenderAll() {
	cards, err := secard.ParseRecords([]byte(`[
		{"code":"01104","type_code":"story","pack_code":"core","encounter_code":"torch","name":"The Gathering"},
		{"code":"01105","type_code":"agenda","pack_code":"core","encounter_code":"torch","name":"What's Going On?!","doom":3}
	]`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	r, err := secard.New(
		secard.WithEncounterCounts(secard.CountEncounterCards(cards)),
		secard.WithWorkers(2),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	rendered, err := r.RenderAll(context.Background(), secard.JobsFor(cards))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, card := range rendered {
		fmt.Println(card.Code(), card.Sheet(), card.Get("$Encounter"), card.Get("$EncounterTotal"))
	}
	// Output:
	// 01104 0 The Gathering 2
	// 01104 1 The Gathering 2
	// 01105 0 The Gathering 2
	// 01105 1 The Gathering 2
}

// ExampleRenderer_ComponentType shows where a sheet goes in a Strange Eons project.
func ExampleRenderer_ComponentType() {
	r, err := secard.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	card, err := secard.ParseRecord([]byte(`{"code":"01116","type_code":"enemy","subtype_code":"weakness"}`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	component, err := r.ComponentType(card, secard.Front)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(component)
	// Output: enemy_weakness
}
