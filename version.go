package quire

import (
	_ "embed"
)

// Version is the release of the library and the quire CLI.
//
//go:embed VERSION
var Version string
