package input

import (
	"testing"

	"invaders8080/internal/video"
)

func TestPort1BitLayout(t *testing.T) {
	got := Port1(video.KeyState{Coin: true, P1Fire: true, P1Right: true})
	want := byte(port1Coin | port1P1Fire | port1P1Right)
	if got != want {
		t.Errorf("Port1 = %08b, want %08b", got, want)
	}
}

func TestPort2MirrorsP2Controls(t *testing.T) {
	got := Port2(video.KeyState{P2Left: true})
	if got != port2P2Left {
		t.Errorf("Port2 = %08b, want %08b", got, port2P2Left)
	}
}
