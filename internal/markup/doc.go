// Package markup rewrites ArkhamDB card text into Strange Eons markup.
//
// ArkhamDB encodes game icons as bracket tags ([action], [skull], ...) and
// formatting as a small HTML subset (<b>, <i>, <p>). Strange Eons expects
// short angle-bracket codes (<act>, <sku>, ...) and relative size tags.
//
// The package exposes two stages:
//   - Rewrite replaces icon tags and the [[Trait]] sugar
//   - NormalizeRule applies Rewrite and then cleans rule text (errata and FAQ
//     notes removed, bold keywords restyled, paragraphs joined, bullets marked)
//
// Size changes never use closing </size> tags, which Strange Eons renders
// inconsistently. Each shrink is followed by a compensating grow so that the
// product of the percentages stays at 100%.
package markup
