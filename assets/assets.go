// Package assets embeds the placeholder ROM image shipped with this
// module. invaders.rom is an 8KiB zero-filled stand-in (all NOPs) for
// the copyrighted commercial Space Invaders dump, which is not
// redistributed here; pass --rom to internal/romload.Load to use a real
// dump instead.
package assets

import _ "embed"

//go:embed invaders.rom
var PlaceholderROM []byte
