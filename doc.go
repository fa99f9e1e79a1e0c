// Package secard converts ArkhamDB card records into Strange Eons fields.
//
// # Quick Start
//
// Create a renderer, parse a record, and render one sheet:
//
//	r, err := secard.New(secard.WithLanguage("de"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	card, err := secard.ParseRecord(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := r.Render(card, secard.Front)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Get("$Rules"))
//
// The result is a flat field-name to string mapping (a RenderedCard) whose
// names match the Strange Eons component settings ("name", "$Rules",
// "$Paragraph1Header", "$Skull", ...).
//
// # Derivation
//
// Every field is an independent pure function of the record, the sheet and
// optional location metadata:
//
//  1. Stats apply the variable-value policy (VariableValue prints as X or Star)
//  2. Rule text is rewritten into Strange Eons markup (icons, trait spans,
//     bold keywords, bullets)
//  3. Story text is segmented into header, flavor and body paragraphs
//  4. Chaos token lines and deck lines are split per token and per line
//  5. Every user-facing text passes through the localizer for its kind
//
// Enumerated lookups (faction, subtype, pack, encounter set) fail with a
// *LookupError-wrapping error when the key is not in the game tables; an
// absent field never fails.
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := secard.New(
//	    secard.WithLanguage("zh-CN"),
//	    secard.WithTables(os.DirFS("data"), "tables.yaml"),
//	    secard.WithEncounterCounts(secard.CountEncounterCards(cards)),
//	    secard.WithLogger(logger),
//	)
//
// Per-render options are passed to Render:
//
//	out, err := r.Render(card, secard.Back,
//	    secard.WithMetadata(meta),
//	    secard.WithPortrait(secard.Portrait{X: 0, Y: 12.5, Scale: 1.1}),
//	)
//
// # Batch Rendering
//
// RenderAll renders many (card, sheet) jobs concurrently and returns the
// results in job order. A Cache memoizes results across runs:
//
//	r, _ := secard.New(secard.WithCache(store), secard.WithWorkers(8))
//	cards, err := r.RenderAll(ctx, jobs)
//
// A Renderer is immutable after New and safe for concurrent use.
package secard
