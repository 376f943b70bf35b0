// errors.go - the arcade I/O bridge's fatal error taxonomy.

package arcadeio

import "fmt"

// UnsupportedPortError is returned when a port/direction combination the
// Taito cabinet does not implement is addressed. Fatal: an undefined port
// access means a corrupt ROM or a miscompiled core.
type UnsupportedPortError struct {
	Port      byte
	Direction string // "input" or "output"
}

func (e *UnsupportedPortError) Error() string {
	return fmt.Sprintf("arcadeio: unsupported %s port 0x%02X", e.Direction, e.Port)
}
