// Package content holds the on-screen copy for the menu and the three
// stories. The copy is embedded JSON; ending titles and all scoring live in
// package narrative.
package content

import "embed"

// copyFS embeds every JSON file in this directory at build time.
//
//go:embed *.json
var copyFS embed.FS

// Embedded file names, one per section.
const (
	MenuFile      = "menu.json"
	AetherianFile = "aetherian.json"
	ChronosFile   = "chronos.json"
	VoidFile      = "void.json"
)
