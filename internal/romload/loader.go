// loader.go - ROM image loading: a real dump from disk if one is given,
// otherwise the embedded placeholder.

package romload

import (
	"fmt"
	"os"

	"invaders8080/assets"
)

// Load reads a ROM image from path if path is non-empty, otherwise
// returns the embedded placeholder. The placeholder is an 8KiB
// zero-filled image (all NOPs) standing in for the copyrighted
// commercial dump, which is not redistributed with this module.
func Load(path string) ([]byte, error) {
	if path == "" {
		return assets.PlaceholderROM, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romload: reading %q: %w", path, err)
	}
	return data, nil
}
