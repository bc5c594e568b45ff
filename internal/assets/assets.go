// Package assets embeds the default Neovim configuration shipped with
// nvsetup, used when no init.lua is found next to the executable.
package assets

import _ "embed"

// InitLua is the default init.lua installed when no source file is
// provided on the command line or found beside the nvsetup binary.
//
//go:embed init.lua
var InitLua []byte
