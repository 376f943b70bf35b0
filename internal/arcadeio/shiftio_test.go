package arcadeio

import "testing"

func TestShiftRegisterExtraction(t *testing.T) {
	s := NewShiftIO()

	if err := s.Output(4, 0xAA); err != nil {
		t.Fatal(err)
	}
	if err := s.Output(4, 0xBB); err != nil {
		t.Fatal(err)
	}
	if err := s.Output(2, 0x04); err != nil {
		t.Fatal(err)
	}
	got, err := s.Input(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xBA {
		t.Errorf("shift extraction = %#02x, want 0xBA", got)
	}
}

func TestPort0ReturnsDIPSwitches(t *testing.T) {
	s := NewShiftIO()
	got, err := s.Input(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0b0111_0000 {
		t.Errorf("port0 = %08b, want 01110000", got)
	}
}

func TestPort1And2LatchesAreSchedulerWritable(t *testing.T) {
	s := NewShiftIO()
	s.SetPort1(0x21)
	s.SetPort2(0x08)

	p1, _ := s.Input(1)
	p2, _ := s.Input(2)
	if p1 != 0x21 || p2 != 0x08 {
		t.Errorf("port1=%02x port2=%02x, want 21 08", p1, p2)
	}
}

func TestSoundPortsForwardToSink(t *testing.T) {
	var gotPort, gotValue byte
	s := NewShiftIOWithSound(func(port, value byte) {
		gotPort, gotValue = port, value
	})
	if err := s.Output(3, 0x01); err != nil {
		t.Fatal(err)
	}
	if gotPort != 3 || gotValue != 0x01 {
		t.Errorf("sink got port=%d value=%#02x", gotPort, gotValue)
	}
}

func TestWatchdogIgnored(t *testing.T) {
	s := NewShiftIO()
	if err := s.Output(6, 0xFF); err != nil {
		t.Errorf("watchdog output should be a no-op, got error: %v", err)
	}
}

func TestUnsupportedPortIsFatal(t *testing.T) {
	s := NewShiftIO()
	if _, err := s.Input(7); err == nil {
		t.Fatal("expected UnsupportedPortError on input(7)")
	}
	if err := s.Output(9, 0); err == nil {
		t.Fatal("expected UnsupportedPortError on output(9)")
	}
}
