/*
 * RISC240 - Microcode table and opcode decoder.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package cpu

// Source names a datapath mux input for the ALU's A or B operand.
type Source int

const (
	SrcX Source = iota // don't care, yields 0
	SrcPC
	SrcMDR
	SrcSP
	SrcReg
)

// Dest names the architectural register a cycle's result is latched
// into. DestNone covers both the table's literal "NONE" and "x" values:
// both mean no write-back occurs.
type Dest int

const (
	DestNone Dest = iota
	DestPC
	DestMAR
	DestMDR
	DestIR
	DestSP
	DestReg
)

type nextKind int

const (
	nextFixed nextKind = iota
	nextFromOpcode
	nextFromFlag
)

// nextState is the tagged variant that resolves a control word's
// successor microstate. Fixed entries are constant; nextFromOpcode is
// used only by DECODE; nextFromFlag is used by the five conditional
// branch roots, picking taken/notTaken by evaluating flag against the
// current Flags.
type nextState struct {
	kind     nextKind
	fixed    UState
	taken    UState
	notTaken UState
	flag     func(Flags) bool
}

func fixed(s UState) nextState {
	return nextState{kind: nextFixed, fixed: s}
}

func fromFlag(taken, notTaken UState, flag func(Flags) bool) nextState {
	return nextState{kind: nextFromFlag, taken: taken, notTaken: notTaken, flag: flag}
}

var fromOpcode = nextState{kind: nextFromOpcode}

// ControlWord is the eight-field control record a microstate's row in the
// microcode table contributes to a cycle, plus the state's own opcode
// encoding.
type ControlWord struct {
	ALUOp     ALUOp
	SrcA      Source
	SrcB      Source
	Dest      Dest
	LoadCC    bool
	MemRead   bool
	MemWrite  bool
	Next      nextState
	Opcode    uint8 // this state's own 7-bit encoding
}

// microcode is the static, immutable control-word table indexed by
// microstate. Transcribed in meaning from sim240.py's nextState_logic.
var microcode = map[UState]ControlWord{
	FETCH:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(FETCH1), Opcode: 0x09},
	FETCH1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(FETCH2), Opcode: 0x0A},
	FETCH2: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestIR, Next: fixed(DECODE), Opcode: 0x0B},

	DECODE: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, Next: fromOpcode, Opcode: 0x07},

	STOP:  {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, Next: fixed(STOP1), Opcode: 0x7F},
	STOP1: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, Next: fixed(STOP1), Opcode: 0x41},

	ADD: {ALUOp: FAPlusB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x00},
	AND: {ALUOp: FAAndB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x48},
	MV:  {ALUOp: FA, SrcA: SrcReg, SrcB: SrcX, Dest: DestReg, Next: fixed(FETCH), Opcode: 0x10},
	NOT: {ALUOp: FANot, SrcA: SrcReg, SrcB: SrcX, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x40},
	OR:  {ALUOp: FAOrB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x50},
	SLL: {ALUOp: FAShl, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x60},
	SLT: {ALUOp: FAMinusB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestNone, LoadCC: true, Next: fixed(slt1), Opcode: 0x28},
	slt1: {ALUOp: FALtB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, Next: fixed(FETCH), Opcode: 0x2D},
	SRA: {ALUOp: FAAshr, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x78},
	SRL: {ALUOp: FALshr, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x70},
	SUB: {ALUOp: FAMinusB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x08},
	XOR: {ALUOp: FAXorB, SrcA: SrcReg, SrcB: SrcReg, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x58},

	ADDI:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(addi1), Opcode: 0x18},
	addi1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(addi2), Opcode: 0x19},
	addi2: {ALUOp: FAPlusB, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x1A},

	LW:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(lw1), Opcode: 0x14},
	lw1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(lw2), Opcode: 0x15},
	lw2: {ALUOp: FAPlusB, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestMAR, Next: fixed(lw3), Opcode: 0x16},
	lw3: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(lw4), Opcode: 0x17},
	lw4: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x1B},

	SLLI:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(slli1), Opcode: 0x61},
	slli1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(slli2), Opcode: 0x62},
	slli2: {ALUOp: FAShl, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x63},

	SLTI:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(slti1), Opcode: 0x29},
	slti1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(slti2), Opcode: 0x2A},
	slti2: {ALUOp: FAMinusB, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestNone, LoadCC: true, Next: fixed(slti3), Opcode: 0x2B},
	slti3: {ALUOp: FALtB, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestReg, Next: fixed(FETCH), Opcode: 0x2C},

	SRAI:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(srai1), Opcode: 0x79},
	srai1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(srai2), Opcode: 0x7A},
	srai2: {ALUOp: FAAshr, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x7B},

	SRLI:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(srli1), Opcode: 0x71},
	srli1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(srli2), Opcode: 0x72},
	srli2: {ALUOp: FALshr, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestReg, LoadCC: true, Next: fixed(FETCH), Opcode: 0x73},

	SW:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(sw1), Opcode: 0x1C},
	sw1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, MemRead: true, Next: fixed(sw2), Opcode: 0x1D},
	sw2: {ALUOp: FAPlusB, SrcA: SrcReg, SrcB: SrcMDR, Dest: DestMAR, Next: fixed(sw3), Opcode: 0x1E},
	sw3: {ALUOp: FB, SrcA: SrcX, SrcB: SrcReg, Dest: DestMDR, LoadCC: true, Next: fixed(sw4), Opcode: 0x1F},
	sw4: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemWrite: true, Next: fixed(FETCH), Opcode: 0x20},

	BRA:  {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR, Next: fixed(bra1), Opcode: 0x7C},
	bra1: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(bra2), Opcode: 0x7D},
	bra2: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x7E},

	BRC: {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR,
		Next: fromFlag(brc2, brc1, func(f Flags) bool { return f.C }), Opcode: 0x54},
	brc1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x55},
	brc2: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(brc3), Opcode: 0x56},
	brc3: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x57},

	BRN: {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR,
		Next: fromFlag(brn2, brn1, func(f Flags) bool { return f.N }), Opcode: 0x4C},
	brn1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x4D},
	brn2: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(brn3), Opcode: 0x4E},
	brn3: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x4F},

	BRNZ: {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR,
		Next: fromFlag(brnz2, brnz1, func(f Flags) bool { return f.N || f.Z }), Opcode: 0x6C},
	brnz1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x6D},
	brnz2: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(brnz3), Opcode: 0x6E},
	brnz3: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x6F},

	BRV: {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR,
		Next: fromFlag(brv2, brv1, func(f Flags) bool { return f.V }), Opcode: 0x5C},
	brv1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x5D},
	brv2: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(brv3), Opcode: 0x5E},
	brv3: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x5F},

	BRZ: {ALUOp: FA, SrcA: SrcPC, SrcB: SrcX, Dest: DestMAR,
		Next: fromFlag(brz2, brz1, func(f Flags) bool { return f.Z }), Opcode: 0x64},
	brz1: {ALUOp: FAPlus2, SrcA: SrcPC, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x65},
	brz2: {ALUOp: FX, SrcA: SrcX, SrcB: SrcX, Dest: DestNone, MemRead: true, Next: fixed(brz3), Opcode: 0x66},
	brz3: {ALUOp: FA, SrcA: SrcMDR, SrcB: SrcX, Dest: DestPC, Next: fixed(FETCH), Opcode: 0x67},
}

// opcodeTable is the reverse mapping of every microstate's 7-bit
// encoding back to its name, used both by DECODE (IR[15:9] -> root
// state) and by the snapshot/memory dump (any word's top 7 bits -> a
// mnemonic label, purely for display).
var opcodeTable = func() map[uint8]UState {
	m := make(map[uint8]UState, len(microcode))
	for name, cw := range microcode {
		m[cw.Opcode] = name
	}
	return m
}()

// decodeOpcode maps a 7-bit opcode field to its microstate, or reports
// ok=false if no microstate owns that encoding.
func decodeOpcode(opcode uint8) (UState, bool) {
	s, ok := opcodeTable[opcode]
	return s, ok
}

// Lookup resolves the control word for state s, computing its next state
// (for DECODE and the conditional branch roots) against the given IR
// field and flags.
func Lookup(s UState, ir uint16, flags Flags) (ControlWord, UState, error) {
	cw, ok := microcode[s]
	if !ok {
		return ControlWord{}, "", errUndefinedState(s)
	}
	switch cw.Next.kind {
	case nextFixed:
		return cw, cw.Next.fixed, nil
	case nextFromOpcode:
		opcode := uint8((ir >> 9) & 0x7F)
		next, ok := decodeOpcode(opcode)
		if !ok {
			return cw, "", errUndefinedInstruction
		}
		return cw, next, nil
	case nextFromFlag:
		if cw.Next.flag(flags) {
			return cw, cw.Next.taken, nil
		}
		return cw, cw.Next.notTaken, nil
	default:
		return cw, "", errUndefinedState(s)
	}
}

// MnemonicFor returns the microstate name a raw memory word's top 7 bits
// decode to, or "UNDEF" if no microstate owns that encoding — used only
// for display in snapshot/memory dumps, never for execution.
func MnemonicFor(word uint16) string {
	opcode := uint8((word >> 9) & 0x7F)
	if s, ok := decodeOpcode(opcode); ok {
		return string(s)
	}
	return "UNDEF"
}
