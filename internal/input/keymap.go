// keymap.go - translates polled host keys into the Taito cabinet's
// port1/port2 bit layout.

package input

import "invaders8080/internal/video"

// port1 bit assignments.
const (
	port1Coin    = 1 << 0
	port1P2Start = 1 << 1
	port1P1Start = 1 << 2
	port1P1Fire  = 1 << 4
	port1P1Left  = 1 << 5
	port1P1Right = 1 << 6
)

// port2 mirrors P1's control bit positions for player 2; the
// DIP-switch bits (lives count, bonus-life threshold, coin-info display)
// are held at their common "3 ships, extra life at 1500" default since
// the core exposes no DIP configuration surface.
const (
	port2P2Fire  = 1 << 4
	port2P2Left  = 1 << 5
	port2P2Right = 1 << 6
)

// Port1 derives the port1 latch value from a polled KeyState.
func Port1(k video.KeyState) byte {
	var v byte
	if k.Coin {
		v |= port1Coin
	}
	if k.P2Start {
		v |= port1P2Start
	}
	if k.P1Start {
		v |= port1P1Start
	}
	if k.P1Fire {
		v |= port1P1Fire
	}
	if k.P1Left {
		v |= port1P1Left
	}
	if k.P1Right {
		v |= port1P1Right
	}
	return v
}

// Port2 derives the port2 latch value from a polled KeyState.
func Port2(k video.KeyState) byte {
	var v byte
	if k.P2Fire {
		v |= port2P2Fire
	}
	if k.P2Left {
		v |= port2P2Left
	}
	if k.P2Right {
		v |= port2P2Right
	}
	return v
}
