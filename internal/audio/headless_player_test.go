//go:build headless

package audio

import "testing"

func TestNoopPlayerDiscardsTriggers(t *testing.T) {
	p, err := NewPlayer()
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.Trigger(3, 0xFF)
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
