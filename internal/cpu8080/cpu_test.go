package cpu8080

import "testing"

// fakeIO is a minimal IOPorts stub for CPU-level tests that don't
// exercise IN/OUT; arcadeio has the real bridge under test.
type fakeIO struct {
	in  map[byte]byte
	out map[byte]byte
}

func newFakeIO() *fakeIO {
	return &fakeIO{in: map[byte]byte{}, out: map[byte]byte{}}
}

func (f *fakeIO) Input(port byte) (byte, error) { return f.in[port], nil }
func (f *fakeIO) Output(port byte, v byte) error { f.out[port] = v; return nil }

func TestAddWithCarryOut(t *testing.T) {
	c := NewState8080()
	c.A = 0xFF
	c.B = 0x01
	c.mem[0] = 0x80 // ADD B
	c.PC = 0

	cycles, err := c.Step(newFakeIO())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.A != 0x00 || !c.Z || c.S || !c.P || !c.CY || !c.AC {
		t.Fatalf("got A=%02x S=%v Z=%v P=%v CY=%v AC=%v", c.A, c.S, c.Z, c.P, c.CY, c.AC)
	}
	if c.PC != 1 {
		t.Errorf("PC = %d, want 1", c.PC)
	}
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4", cycles)
	}
}

func TestDAAAfterAdd(t *testing.T) {
	c := NewState8080()
	c.A = 0x9B
	c.CY = false
	c.AC = false
	c.mem[0] = 0x27 // DAA
	c.PC = 0

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.A != 0x01 || !c.CY || !c.AC || c.Z || c.S || c.P {
		t.Fatalf("got A=%02x CY=%v AC=%v Z=%v S=%v P=%v", c.A, c.CY, c.AC, c.Z, c.S, c.P)
	}
}

func TestCallThenRet(t *testing.T) {
	c := NewState8080()
	c.PC = 0x0100
	c.SP = 0x2400
	c.mem[0x0100] = 0xCD
	c.mem[0x0101] = 0x34
	c.mem[0x0102] = 0x12
	c.mem[0x1234] = 0xC9

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatalf("CALL: unexpected error: %v", err)
	}
	if c.PC != 0x1234 || c.SP != 0x23FE {
		t.Fatalf("after CALL: PC=%04x SP=%04x", c.PC, c.SP)
	}
	if c.mem[0x23FE] != 0x03 || c.mem[0x23FF] != 0x01 {
		t.Fatalf("return address not on stack: %02x %02x", c.mem[0x23FE], c.mem[0x23FF])
	}

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatalf("RET: unexpected error: %v", err)
	}
	if c.PC != 0x0103 || c.SP != 0x2400 {
		t.Fatalf("after RET: PC=%04x SP=%04x", c.PC, c.SP)
	}
}

func TestJNZTakenAndNotTaken(t *testing.T) {
	for _, tc := range []struct {
		name    string
		z       bool
		wantPC  uint16
	}{
		{"not zero, taken", false, 0x2000},
		{"zero, not taken", true, 0x0003},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := NewState8080()
			c.Z = tc.z
			c.mem[0] = 0xC2
			c.mem[1] = 0x00
			c.mem[2] = 0x20

			cycles, err := c.Step(newFakeIO())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.PC != tc.wantPC {
				t.Errorf("PC = %04x, want %04x", c.PC, tc.wantPC)
			}
			if cycles != 10 {
				t.Errorf("cycles = %d, want 10", cycles)
			}
		})
	}
}

func TestInterruptInjection(t *testing.T) {
	c := NewState8080()
	c.IE = true
	c.PC = 0x1000
	c.SP = 0x2400

	c.RaiseInterrupt(2)

	if c.SP != 0x23FE {
		t.Fatalf("SP = %04x, want 0x23FE", c.SP)
	}
	if c.mem[0x23FE] != 0x00 || c.mem[0x23FF] != 0x10 {
		t.Fatalf("pushed PC wrong: %02x %02x", c.mem[0x23FE], c.mem[0x23FF])
	}
	if c.PC != 0x0010 {
		t.Errorf("PC = %04x, want 0x0010", c.PC)
	}
	if c.IE {
		t.Error("IE should be cleared after interrupt acceptance")
	}
}

func TestInterruptIgnoredWhenDisabled(t *testing.T) {
	c := NewState8080()
	c.IE = false
	c.PC = 0x1000
	c.SP = 0x2400

	c.RaiseInterrupt(2)

	if c.PC != 0x1000 || c.SP != 0x2400 {
		t.Errorf("interrupt with IE=0 should be a no-op, got PC=%04x SP=%04x", c.PC, c.SP)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c := NewState8080()
	c.SetBC(0xBEEF)
	c.SP = 0x2400
	c.mem[0] = 0xC5 // PUSH B
	c.mem[1] = 0xC1 // POP B

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatal(err)
	}
	spAfterPush := c.SP
	if spAfterPush != 0x23FE {
		t.Fatalf("SP after push = %04x", spAfterPush)
	}
	c.SetBC(0x0000)

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatal(err)
	}
	if c.BC() != 0xBEEF {
		t.Errorf("BC after pop = %04x, want BEEF", c.BC())
	}
	if c.SP != 0x2400 {
		t.Errorf("SP after pop = %04x, want 2400", c.SP)
	}
}

func TestPushPopPSWRoundTrip(t *testing.T) {
	c := NewState8080()
	c.A = 0x42
	c.S, c.Z, c.P, c.CY, c.AC = true, false, true, true, false
	c.SP = 0x2400
	c.mem[0] = 0xF5 // PUSH PSW
	c.mem[1] = 0xF1 // POP PSW

	want := c.Flags
	wantA := c.A

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatal(err)
	}
	psw := c.mem[c.SP]
	if psw&(1<<5) != 0 || psw&(1<<3) != 0 || psw&(1<<1) == 0 {
		t.Fatalf("PSW fixed bits wrong: %08b", psw)
	}

	c.A = 0
	c.Flags = Flags{}

	if _, err := c.Step(newFakeIO()); err != nil {
		t.Fatal(err)
	}
	if c.A != wantA || c.Flags != want {
		t.Errorf("PSW round-trip: A=%02x flags=%+v, want A=%02x flags=%+v", c.A, c.Flags, wantA, want)
	}
}

func TestUnimplementedOpcodeReturnsError(t *testing.T) {
	c := NewState8080()
	opcodeTable[0x00] = opUnimplemented // temporarily blind a defined slot
	defer func() { opcodeTable[0x00] = opNOP }()

	_, err := c.Step(newFakeIO())
	var target *UnimplementedOpcodeError
	if err == nil {
		t.Fatal("expected an error")
	}
	if !asUnimplemented(err, &target) {
		t.Fatalf("expected *UnimplementedOpcodeError, got %T: %v", err, err)
	}
	if target.PC != 0 {
		t.Errorf("PC = %d, want 0", target.PC)
	}
}

func asUnimplemented(err error, target **UnimplementedOpcodeError) bool {
	e, ok := err.(*UnimplementedOpcodeError)
	if ok {
		*target = e
	}
	return ok
}

func TestLoadPanicsWhenTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Load to panic")
		}
	}()
	c := NewState8080()
	c.Load(make([]byte, 10), 65530, 0)
}

func TestDecodeCompletenessAllBytesDefined(t *testing.T) {
	for op := 0; op < 256; op++ {
		if opcodeTable[op] == nil {
			t.Fatalf("opcode %#02x has no dispatch entry", op)
		}
		c := NewState8080()
		c.mem[0] = byte(op)
		if _, err := opcodeTable[op](c, newFakeIO()); err != nil {
			if _, ok := err.(*UnimplementedOpcodeError); ok {
				t.Errorf("opcode %#02x decodes to opUnimplemented", op)
			}
		}
	}
}
