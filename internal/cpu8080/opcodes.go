// opcodes.go - the 256-entry decode table for the Intel 8080 instruction
// set. Regular register/register-pair families (MOV, the ALU group,
// INR/DCR/MVI, LXI/DAD/INX/DCX/PUSH/POP) are generated by looping over
// the 8080's own ddd/sss/rp encoding, since that structure is exact and
// loop-built code is far less error-prone than enumerating 200-odd
// individual entries by hand. The conditional jump/call/return and RST
// families are loop-built the same way; the remaining control-flow, stack
// and I/O opcodes are assigned individually.

package cpu8080

type opcodeFunc func(c *State8080, io IOPorts) (int, error)

var opcodeTable = buildOpcodeTable()

// Register encoding used by MOV/ALU/INR/DCR/MVI: 0=B 1=C 2=D 3=E 4=H 5=L
// 6=M (memory via HL) 7=A.
const (
	regB = 0
	regC = 1
	regD = 2
	regE = 3
	regH = 4
	regL = 5
	regM = 6
	regA = 7
)

func getReg8(c *State8080, idx int) byte {
	switch idx {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case regM:
		return c.readByte(c.HL())
	default:
		return c.A
	}
}

func setReg8(c *State8080, idx int, v byte) {
	switch idx {
	case regB:
		c.B = v
	case regC:
		c.C = v
	case regD:
		c.D = v
	case regE:
		c.E = v
	case regH:
		c.H = v
	case regL:
		c.L = v
	case regM:
		c.writeByte(c.HL(), v)
	default:
		c.A = v
	}
}

// Register-pair encoding used by LXI/DAD/INX/DCX/STAX/LDAX: 0=BC 1=DE
// 2=HL 3=SP. PUSH/POP reuse 0-2 and substitute PSW for SP at rp=3.
func getRP(c *State8080, rp int) uint16 {
	switch rp {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func setRP(c *State8080, rp int, v uint16) {
	switch rp {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

func d8(c *State8080) byte  { return c.mem[c.PC+1] }
func d16(c *State8080) uint16 { return c.readWord(c.PC + 1) }

// ---- ALU flag rules ----

func aluAdd(c *State8080, x byte, carryIn byte) {
	sum := uint16(c.A) + uint16(x) + uint16(carryIn)
	c.AC = (c.A&0x0F)+(x&0x0F)+carryIn > 0x0F
	c.CY = sum > 0xFF
	c.A = byte(sum)
	c.setSZP(c.A)
}

func aluSub(c *State8080, x byte, borrowIn byte) {
	diff := int(c.A) - int(x) - int(borrowIn)
	c.AC = (int(c.A)&0x0F)-(int(x)&0x0F)-int(borrowIn) >= 0
	c.CY = diff < 0
	c.A = byte(diff)
	c.setSZP(c.A)
}

func aluCmp(c *State8080, x byte) {
	diff := int(c.A) - int(x)
	c.AC = (int(c.A)&0x0F)-(int(x)&0x0F) >= 0
	c.CY = diff < 0
	c.setSZP(byte(diff))
}

func aluAna(c *State8080, x byte) {
	c.AC = (c.A|x)&0x08 != 0
	c.A &= x
	c.CY = false
	c.setSZP(c.A)
}

func aluXra(c *State8080, x byte) {
	c.A ^= x
	c.CY = false
	c.AC = false
	c.setSZP(c.A)
}

func aluOra(c *State8080, x byte) {
	c.A |= x
	c.CY = false
	c.AC = false
	c.setSZP(c.A)
}

func inr(c *State8080, v byte) byte {
	result := v + 1
	c.AC = v&0x0F == 0x0F
	c.setSZP(result)
	return result
}

func dcr(c *State8080, v byte) byte {
	result := v - 1
	c.AC = v&0x0F != 0x00
	c.setSZP(result)
	return result
}

// buildOpcodeTable assembles the 256-entry dispatch table.
func buildOpcodeTable() [256]opcodeFunc {
	var t [256]opcodeFunc

	for i := range t {
		t[i] = opUnimplemented
	}

	// NOP and its documented aliases.
	for _, op := range []byte{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		t[op] = opNOP
	}

	// MOV dst,src grid: 0x40 | dst<<3 | src, except 0x76 = HLT.
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := byte(0x40 | dst<<3 | src)
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			t[op] = func(c *State8080, io IOPorts) (int, error) {
				setReg8(c, d, getReg8(c, s))
				c.PC += 1
				if d == regM || s == regM {
					return 7, nil
				}
				return 5, nil
			}
		}
	}
	t[0x76] = opHLT

	// ALU register group: 0x80-0xBF, src 0-7 per opcode's low 3 bits.
	for src := 0; src < 8; src++ {
		s := src
		t[byte(0x80|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluAdd(c, getReg8(c, s), 0)
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0x88|s)] = func(c *State8080, io IOPorts) (int, error) {
			carry := byte(0)
			if c.CY {
				carry = 1
			}
			aluAdd(c, getReg8(c, s), carry)
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0x90|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluSub(c, getReg8(c, s), 0)
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0x98|s)] = func(c *State8080, io IOPorts) (int, error) {
			borrow := byte(0)
			if c.CY {
				borrow = 1
			}
			aluSub(c, getReg8(c, s), borrow)
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0xA0|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluAna(c, getReg8(c, s))
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0xA8|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluXra(c, getReg8(c, s))
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0xB0|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluOra(c, getReg8(c, s))
			c.PC += 1
			return aluRegCycles(s), nil
		}
		t[byte(0xB8|s)] = func(c *State8080, io IOPorts) (int, error) {
			aluCmp(c, getReg8(c, s))
			c.PC += 1
			return aluRegCycles(s), nil
		}
	}

	// INR/DCR/MVI grid: opcode = base | reg<<3, reg 0-7.
	for reg := 0; reg < 8; reg++ {
		r := reg
		t[byte(0x04|r<<3)] = func(c *State8080, io IOPorts) (int, error) {
			setReg8(c, r, inr(c, getReg8(c, r)))
			c.PC += 1
			if r == regM {
				return 10, nil
			}
			return 5, nil
		}
		t[byte(0x05|r<<3)] = func(c *State8080, io IOPorts) (int, error) {
			setReg8(c, r, dcr(c, getReg8(c, r)))
			c.PC += 1
			if r == regM {
				return 10, nil
			}
			return 5, nil
		}
		t[byte(0x06|r<<3)] = func(c *State8080, io IOPorts) (int, error) {
			setReg8(c, r, d8(c))
			c.PC += 2
			if r == regM {
				return 10, nil
			}
			return 7, nil
		}
	}

	// Register-pair grid: LXI/DAD/INX/DCX, rp 0-3 (BC,DE,HL,SP).
	for rp := 0; rp < 4; rp++ {
		p := rp
		t[byte(0x01|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			setRP(c, p, d16(c))
			c.PC += 3
			return 10, nil
		}
		t[byte(0x09|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			sum := uint32(c.HL()) + uint32(getRP(c, p))
			c.CY = sum > 0xFFFF
			c.SetHL(uint16(sum))
			c.PC += 1
			return 10, nil
		}
		t[byte(0x03|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			setRP(c, p, getRP(c, p)+1)
			c.PC += 1
			return 5, nil
		}
		t[byte(0x0B|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			setRP(c, p, getRP(c, p)-1)
			c.PC += 1
			return 5, nil
		}
	}

	// PUSH/POP grid: rp 0=BC 1=DE 2=HL 3=PSW.
	for rp := 0; rp < 4; rp++ {
		p := rp
		t[byte(0xC1|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			v := c.pop16()
			if p == 3 {
				c.A = byte(v >> 8)
				c.Flags.Unpack(byte(v))
			} else {
				setRP(c, p, v)
			}
			c.PC += 1
			return 10, nil
		}
		t[byte(0xC5|p<<4)] = func(c *State8080, io IOPorts) (int, error) {
			var v uint16
			if p == 3 {
				v = uint16(c.A)<<8 | uint16(c.Flags.Pack())
			} else {
				v = getRP(c, p)
			}
			c.push16(v)
			c.PC += 1
			return 11, nil
		}
	}

	// STAX/LDAX (rp 0=BC, 1=DE only).
	t[0x02] = func(c *State8080, io IOPorts) (int, error) {
		c.writeByte(c.BC(), c.A)
		c.PC += 1
		return 7, nil
	}
	t[0x12] = func(c *State8080, io IOPorts) (int, error) {
		c.writeByte(c.DE(), c.A)
		c.PC += 1
		return 7, nil
	}
	t[0x0A] = func(c *State8080, io IOPorts) (int, error) {
		c.A = c.readByte(c.BC())
		c.PC += 1
		return 7, nil
	}
	t[0x1A] = func(c *State8080, io IOPorts) (int, error) {
		c.A = c.readByte(c.DE())
		c.PC += 1
		return 7, nil
	}

	// Rotates, carry twiddles, DAA, CMA.
	t[0x07] = func(c *State8080, io IOPorts) (int, error) {
		bit7 := c.A >> 7
		c.A = c.A<<1 | bit7
		c.CY = bit7 == 1
		c.PC += 1
		return 4, nil
	}
	t[0x0F] = func(c *State8080, io IOPorts) (int, error) {
		bit0 := c.A & 1
		c.A = c.A>>1 | bit0<<7
		c.CY = bit0 == 1
		c.PC += 1
		return 4, nil
	}
	t[0x17] = func(c *State8080, io IOPorts) (int, error) {
		bit7 := c.A >> 7
		carryIn := byte(0)
		if c.CY {
			carryIn = 1
		}
		c.A = c.A<<1 | carryIn
		c.CY = bit7 == 1
		c.PC += 1
		return 4, nil
	}
	t[0x1F] = func(c *State8080, io IOPorts) (int, error) {
		bit0 := c.A & 1
		carryIn := byte(0)
		if c.CY {
			carryIn = 0x80
		}
		c.A = c.A>>1 | carryIn
		c.CY = bit0 == 1
		c.PC += 1
		return 4, nil
	}
	t[0x27] = opDAA
	t[0x2F] = func(c *State8080, io IOPorts) (int, error) {
		c.A = ^c.A
		c.PC += 1
		return 4, nil
	}
	t[0x37] = func(c *State8080, io IOPorts) (int, error) {
		c.CY = true
		c.PC += 1
		return 4, nil
	}
	t[0x3F] = func(c *State8080, io IOPorts) (int, error) {
		c.CY = !c.CY
		c.PC += 1
		return 4, nil
	}

	// Direct memory addressing.
	t[0x22] = func(c *State8080, io IOPorts) (int, error) {
		addr := d16(c)
		c.writeByte(addr, c.L)
		c.writeByte(addr+1, c.H)
		c.PC += 3
		return 16, nil
	}
	t[0x2A] = func(c *State8080, io IOPorts) (int, error) {
		addr := d16(c)
		c.L = c.readByte(addr)
		c.H = c.readByte(addr + 1)
		c.PC += 3
		return 16, nil
	}
	t[0x32] = func(c *State8080, io IOPorts) (int, error) {
		c.writeByte(d16(c), c.A)
		c.PC += 3
		return 13, nil
	}
	t[0x3A] = func(c *State8080, io IOPorts) (int, error) {
		c.A = c.readByte(d16(c))
		c.PC += 3
		return 13, nil
	}

	// Immediate ALU group.
	t[0xC6] = func(c *State8080, io IOPorts) (int, error) { aluAdd(c, d8(c), 0); c.PC += 2; return 7, nil }
	t[0xCE] = func(c *State8080, io IOPorts) (int, error) {
		carry := byte(0)
		if c.CY {
			carry = 1
		}
		aluAdd(c, d8(c), carry)
		c.PC += 2
		return 7, nil
	}
	t[0xD6] = func(c *State8080, io IOPorts) (int, error) { aluSub(c, d8(c), 0); c.PC += 2; return 7, nil }
	t[0xDE] = func(c *State8080, io IOPorts) (int, error) {
		borrow := byte(0)
		if c.CY {
			borrow = 1
		}
		aluSub(c, d8(c), borrow)
		c.PC += 2
		return 7, nil
	}
	t[0xE6] = func(c *State8080, io IOPorts) (int, error) { aluAna(c, d8(c)); c.PC += 2; return 7, nil }
	t[0xEE] = func(c *State8080, io IOPorts) (int, error) { aluXra(c, d8(c)); c.PC += 2; return 7, nil }
	t[0xF6] = func(c *State8080, io IOPorts) (int, error) { aluOra(c, d8(c)); c.PC += 2; return 7, nil }
	t[0xFE] = func(c *State8080, io IOPorts) (int, error) { aluCmp(c, d8(c)); c.PC += 2; return 7, nil }

	// Unconditional and conditional control transfer.
	t[0xC3] = opJMP
	t[0xCB] = opJMP // documented alias
	t[0xC9] = opRET
	t[0xD9] = opRET // documented alias
	t[0xCD] = opCALL
	for _, op := range []byte{0xDD, 0xED, 0xFD} {
		t[op] = opCALL // documented aliases
	}
	t[0xE9] = func(c *State8080, io IOPorts) (int, error) { c.PC = c.HL(); return 5, nil }

	conditions := []struct {
		op   byte
		test func(c *State8080) bool
	}{
		{0x00, func(c *State8080) bool { return !c.Z }},  // NZ
		{0x01, func(c *State8080) bool { return c.Z }},   // Z
		{0x02, func(c *State8080) bool { return !c.CY }}, // NC
		{0x03, func(c *State8080) bool { return c.CY }},  // C
		{0x04, func(c *State8080) bool { return !c.P }},  // PO
		{0x05, func(c *State8080) bool { return c.P }},   // PE
		{0x06, func(c *State8080) bool { return !c.S }},  // P (plus)
		{0x07, func(c *State8080) bool { return c.S }},   // M (minus)
	}
	for _, cc := range conditions {
		cond := cc.test
		t[byte(0xC2|cc.op<<3)] = func(c *State8080, io IOPorts) (int, error) {
			target := d16(c)
			if cond(c) {
				c.PC = target
			} else {
				c.PC += 3
			}
			return 10, nil
		}
		t[byte(0xC4|cc.op<<3)] = func(c *State8080, io IOPorts) (int, error) {
			target := d16(c)
			if cond(c) {
				c.push16(c.PC + 3)
				c.PC = target
				return 17, nil
			}
			c.PC += 3
			return 11, nil
		}
		t[byte(0xC0|cc.op<<3)] = func(c *State8080, io IOPorts) (int, error) {
			if cond(c) {
				c.PC = c.pop16()
				return 11, nil
			}
			c.PC += 1
			return 5, nil
		}
	}

	// RST n: opcode = 0xC7 | n<<3.
	for n := 0; n < 8; n++ {
		vec := byte(n)
		t[byte(0xC7|vec<<3)] = func(c *State8080, io IOPorts) (int, error) {
			c.push16(c.PC + 1)
			c.PC = 8 * uint16(vec)
			return 11, nil
		}
	}

	// Stack/SP special forms.
	t[0xE3] = func(c *State8080, io IOPorts) (int, error) {
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		c.writeByte(c.SP, c.L)
		c.writeByte(c.SP+1, c.H)
		c.L, c.H = lo, hi
		c.PC += 1
		return 18, nil
	}
	t[0xF9] = func(c *State8080, io IOPorts) (int, error) { c.SP = c.HL(); c.PC += 1; return 5, nil }
	t[0xEB] = func(c *State8080, io IOPorts) (int, error) {
		c.H, c.D = c.D, c.H
		c.L, c.E = c.E, c.L
		c.PC += 1
		return 5, nil
	}

	// Interrupt-enable latch and I/O.
	t[0xF3] = func(c *State8080, io IOPorts) (int, error) { c.IE = false; c.PC += 1; return 4, nil }
	t[0xFB] = func(c *State8080, io IOPorts) (int, error) { c.IE = true; c.PC += 1; return 4, nil }
	t[0xDB] = func(c *State8080, io IOPorts) (int, error) {
		v, err := io.Input(d8(c))
		if err != nil {
			return 0, err
		}
		c.A = v
		c.PC += 2
		return 10, nil
	}
	t[0xD3] = func(c *State8080, io IOPorts) (int, error) {
		if err := io.Output(d8(c), c.A); err != nil {
			return 0, err
		}
		c.PC += 2
		return 10, nil
	}

	return t
}

// aluRegCycles returns the 4-or-7 cost of an ALU opcode's register
// operand depending on whether it addresses memory via HL.
func aluRegCycles(src int) int {
	if src == regM {
		return 7
	}
	return 4
}

func opUnimplemented(c *State8080, io IOPorts) (int, error) {
	return 0, &UnimplementedOpcodeError{Opcode: c.mem[c.PC], PC: c.PC}
}

func opNOP(c *State8080, io IOPorts) (int, error) {
	c.PC += 1
	return 4, nil
}

func opHLT(c *State8080, io IOPorts) (int, error) {
	c.Halted = true
	c.PC += 1
	return 7, nil
}

func opJMP(c *State8080, io IOPorts) (int, error) {
	c.PC = d16(c)
	return 10, nil
}

func opCALL(c *State8080, io IOPorts) (int, error) {
	ret := c.PC + 3
	c.push16(ret)
	c.PC = d16(c)
	return 17, nil
}

func opRET(c *State8080, io IOPorts) (int, error) {
	c.PC = c.pop16()
	return 10, nil
}

// opDAA applies the Intel 8080 decimal-adjust rule.
func opDAA(c *State8080, io IOPorts) (int, error) {
	a := c.A
	cy := c.CY
	if a&0x0F > 9 || c.AC {
		c.AC = (a&0x0F)+6 > 0x0F
		a += 6
	} else {
		c.AC = false
	}
	if a>>4 > 9 || cy {
		c.CY = true
		a += 0x60
	} else {
		c.CY = cy
	}
	c.A = a
	c.setSZP(c.A)
	c.PC += 1
	return 4, nil
}
