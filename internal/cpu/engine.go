/*
 * RISC240 - Cycle engine and step/run driver.
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

// Package cpu implements the RISC240 microcoded execution engine: the ALU,
// the register file, the fixed microcode table, and the cycle/step/run
// driver that advances them.
package cpu

import (
	"fmt"

	"github.com/ece240-staff/risc240sim/internal/bits"
	"github.com/ece240-staff/risc240sim/internal/memory"
)

// State is the RISC240's visible architectural state: the registers a
// user can query or set, plus the microcode engine's own bookkeeping
// (current microstate and cycle count).
type State struct {
	PC, IR, MAR, MDR, SP uint16
	Regs                 [8]uint16
	Z, N, C, V           bool
	UState               UState
	Cycle                uint64
}

// Engine couples architectural State to a Memory and drives the
// microcode table.
type Engine struct {
	State State
	Mem   *memory.Memory
}

// NewEngine returns an Engine with zeroed state at FETCH, backed by mem.
func NewEngine(mem *memory.Memory) *Engine {
	return &Engine{
		State: State{UState: FETCH},
		Mem:   mem,
	}
}

// Cadence controls how often Run emits a formatted state line.
type Cadence int

const (
	CadenceQuiet Cadence = iota
	CadenceInstruction
	CadenceMicro
)

// StopReason reports why Run stopped.
type StopReason int

const (
	StopCount       StopReason = iota // requested instruction count reached
	StopBreakpoint                    // PC landed on a breakpoint after a step
	StopHalted                        // ustate reached STOP1
)

func (r StopReason) String() string {
	switch r {
	case StopCount:
		return "count exhausted"
	case StopBreakpoint:
		return "breakpoint"
	case StopHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// readReg returns regs[i], hardwiring index 0 to zero on read.
func (s *State) readReg(i uint16) uint16 {
	if i == 0 {
		return 0
	}
	return s.Regs[i]
}

// writeReg writes regs[i], discarding writes to index 0.
func (s *State) writeReg(i uint16, v uint16) {
	if i == 0 {
		return
	}
	s.Regs[i] = v
}

func (e *Engine) mux(src Source, rs uint16) uint16 {
	switch src {
	case SrcPC:
		return e.State.PC
	case SrcMDR:
		return e.State.MDR
	case SrcSP:
		return e.State.SP
	case SrcReg:
		return e.State.readReg(rs)
	default: // SrcX
		return 0
	}
}

// Cycle performs exactly one microcycle: resolve the control word for the
// current microstate, drive the ALU, optionally touch memory, write back
// the result, latch flags, and advance to the next microstate. The steps
// follow the logical ordering in which a read-then-writeback cycle still
// ends with MDR holding the freshly read value.
func (e *Engine) Cycle() error {
	s := &e.State
	cw, next, err := Lookup(s.UState, s.IR, Flags{Z: s.Z, N: s.N, C: s.C, V: s.V})
	if err != nil {
		return fmt.Errorf("cycle %d, state %s: %w", s.Cycle, s.UState, err)
	}

	rd := bits.Slice(uint32(s.IR), 8, 6)
	rs1 := bits.Slice(uint32(s.IR), 5, 3)
	rs2 := bits.Slice(uint32(s.IR), 2, 0)

	a := e.mux(cw.SrcA, uint16(rs1))
	b := e.mux(cw.SrcB, uint16(rs2))

	result, flags := Compute(cw.ALUOp, a, b)

	var readWord uint16
	if cw.MemRead {
		readWord = e.Mem.Read(s.MAR)
	}
	if cw.MemWrite {
		e.Mem.Write(s.MAR, s.MDR)
	}

	switch cw.Dest {
	case DestReg:
		s.writeReg(uint16(rd), result)
	case DestPC:
		s.PC = result
	case DestMAR:
		s.MAR = result
	case DestMDR:
		s.MDR = result
	case DestIR:
		s.IR = result
	case DestSP:
		s.SP = result
	case DestNone:
		// no write-back
	}

	if cw.MemRead {
		s.MDR = readWord
	}

	if cw.LoadCC {
		s.Z, s.N, s.C, s.V = flags.Z, flags.N, flags.C, flags.V
	}

	s.UState = next
	s.Cycle++
	return nil
}

// Step runs one full instruction: one cycle, then further cycles until the
// microstate is FETCH (the next instruction's start) or STOP1 (the halted
// self-loop). emit, if non-nil, is called with a state line after every
// microcycle (used by the per-microcycle print cadence).
func (e *Engine) Step(emit func(string)) error {
	if err := e.Cycle(); err != nil {
		return err
	}
	if emit != nil {
		emit(e.StateLine())
	}
	for e.State.UState != FETCH && e.State.UState != STOP1 {
		if err := e.Cycle(); err != nil {
			return err
		}
		if emit != nil {
			emit(e.StateLine())
		}
	}
	return nil
}

// StateLine is the formatted display of the engine's architectural state,
// matching the column layout used by both the interactive prompt and the
// snapshot file's State: block: the cycle count zero-padded to a minimum
// of 4 digits (matching Python's "%0.4d", which widens rather than
// truncates past 9999), STATE left-justified to 6 characters, PC/IR/MAR/MDR
// as 4-digit uppercase hex, ZNCV as four adjacent flag digits, then R0..R7
// as 4-digit lowercase hex.
func (e *Engine) StateLine() string {
	s := &e.State
	flagDigit := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	zncv := flagDigit(s.Z) + flagDigit(s.N) + flagDigit(s.C) + flagDigit(s.V)
	line := fmt.Sprintf("%04d %-6s %s %s %s %s %s",
		s.Cycle, string(s.UState), bits.Hex4(s.PC), bits.Hex4(s.IR),
		zncv, bits.Hex4(s.MAR), bits.Hex4(s.MDR))
	for i := 0; i < 8; i++ {
		line += " " + bits.Hex4Lower(s.Regs[i])
	}
	return line
}

// Run executes up to n instructions, emitting a state line per cadence via
// emit (nil emit means no output), and stops early on a breakpoint hit or
// reaching STOP1.
func (e *Engine) Run(n int, breakpoints map[uint16]bool, cadence Cadence, emit func(string)) (StopReason, error) {
	microEmit := emit
	if cadence != CadenceMicro {
		microEmit = nil
	}
	for i := 0; i < n; i++ {
		if err := e.Step(microEmit); err != nil {
			return StopCount, err
		}
		if cadence == CadenceInstruction && emit != nil {
			emit(e.StateLine())
		}
		if e.State.UState == STOP1 {
			return StopHalted, nil
		}
		if breakpoints[e.State.PC] {
			return StopBreakpoint, nil
		}
	}
	return StopCount, nil
}
