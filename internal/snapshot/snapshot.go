/*
 * RISC240 - State snapshot save/load/check.
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

// Package snapshot saves, loads, and checks grader state files: a
// Breakpoints: block, a State: block, and a Memory: block of defined
// cells, each in the column layout used throughout the simulator.
package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ece240-staff/risc240sim/internal/bits"
	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/memory"
)

const dontCare = "xxxx"

// Save writes the Breakpoints:, State:, and Memory: blocks for e and
// breakpoints to w.
func Save(w io.Writer, e *cpu.Engine, breakpoints map[uint16]bool) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Breakpoints:")
	addrs := make([]uint16, 0, len(breakpoints))
	for a := range breakpoints {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		fmt.Fprintln(bw, bits.Hex4(a))
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "State:")
	fmt.Fprintln(bw, e.StateLine())
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "Memory:")
	for _, addr := range e.Mem.DefinedCells() {
		fmt.Fprintln(bw, memoryLine(e.Mem, addr))
	}

	return bw.Flush()
}

// memoryLine formats one Memory: block entry: mem[AAAA:BBBB]: VVVV
// MNEMONIC rd rs1 rs2, where AAAA is the word's low byte address, BBBB is
// AAAA+1, and rd/rs1/rs2 are the register-index fields of the word
// interpreted as an instruction (purely for display).
func memoryLine(m *memory.Memory, addr uint16) string {
	value := m.Read(addr)
	rd := bits.Slice(uint32(value), 8, 6)
	rs1 := bits.Slice(uint32(value), 5, 3)
	rs2 := bits.Slice(uint32(value), 2, 0)
	return fmt.Sprintf("mem[%s:%s]: %s %s %d %d %d",
		bits.Hex4(addr), bits.Hex4(addr+1), bits.Hex4(value), cpu.MnemonicFor(value), rd, rs1, rs2)
}

// stateFields is the parsed State: line, column-indexed per the shared
// layout (Cycle STATE PC IR ZNCV MAR MDR R0..R7).
type stateFields struct {
	cycle                string
	state                string
	pc, ir               string
	zncv                 string
	mar, mdr             string
	regs                 [8]string
}

// Load reads a snapshot from r and applies it to e and breakpoints: every
// listed breakpoint address, every architectural register, the cycle
// counter, and every listed memory cell (marked defined). R0 is forced
// back to zero after the register file is populated, matching the
// write-side hardwiring enforced during normal execution.
func Load(r io.Reader, e *cpu.Engine, breakpoints map[uint16]bool) error {
	sc := bufio.NewScanner(r)

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "Breakpoints:" {
		return fmt.Errorf("snapshot: expected %q", "Breakpoints:")
	}
	for k := range breakpoints {
		delete(breakpoints, k)
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		addr, err := strconv.ParseUint(line, 16, 16)
		if err != nil {
			return fmt.Errorf("snapshot: bad breakpoint address %q: %w", line, err)
		}
		breakpoints[uint16(addr)] = true
	}

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "State:" {
		return fmt.Errorf("snapshot: expected %q", "State:")
	}
	if !sc.Scan() {
		return fmt.Errorf("snapshot: missing state line")
	}
	fields, err := parseStateLine(sc.Text())
	if err != nil {
		return err
	}
	if err := applyState(fields, e); err != nil {
		return err
	}
	e.State.Regs[0] = 0

	sc.Scan() // blank line separator

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "Memory:" {
		return fmt.Errorf("snapshot: expected %q", "Memory:")
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		addr, value, err := parseMemoryLine(line)
		if err != nil {
			return err
		}
		e.Mem.Write(addr, value)
	}
	return sc.Err()
}

func parseStateLine(line string) (stateFields, error) {
	cols := strings.Fields(line)
	if len(cols) != 15 {
		return stateFields{}, fmt.Errorf("snapshot: state line has %d columns, want 15", len(cols))
	}
	var f stateFields
	f.cycle, f.state, f.pc, f.ir, f.zncv, f.mar, f.mdr = cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6]
	for i := 0; i < 8; i++ {
		f.regs[i] = cols[7+i]
	}
	return f, nil
}

func parseHexField(text string) (uint16, bool, error) {
	if strings.EqualFold(text, dontCare) {
		return 0, true, nil
	}
	v, err := strconv.ParseUint(text, 16, 16)
	if err != nil {
		return 0, false, fmt.Errorf("snapshot: bad hex value %q: %w", text, err)
	}
	return uint16(v), false, nil
}

func applyState(f stateFields, e *cpu.Engine) error {
	if !strings.EqualFold(f.cycle, dontCare) {
		cyc, err := strconv.ParseUint(f.cycle, 10, 64)
		if err != nil {
			return fmt.Errorf("snapshot: bad cycle %q: %w", f.cycle, err)
		}
		e.State.Cycle = cyc
	}
	if !strings.EqualFold(f.state, dontCare) {
		e.State.UState = cpu.UState(f.state)
	}
	if v, dc, err := parseHexField(f.pc); err != nil {
		return err
	} else if !dc {
		e.State.PC = v
	}
	if v, dc, err := parseHexField(f.ir); err != nil {
		return err
	} else if !dc {
		e.State.IR = v
	}
	if v, dc, err := parseHexField(f.mar); err != nil {
		return err
	} else if !dc {
		e.State.MAR = v
	}
	if v, dc, err := parseHexField(f.mdr); err != nil {
		return err
	} else if !dc {
		e.State.MDR = v
	}
	if !strings.EqualFold(f.zncv, dontCare) {
		if len(f.zncv) != 4 {
			return fmt.Errorf("snapshot: bad ZNCV field %q", f.zncv)
		}
		bitsOf := [4]*bool{&e.State.Z, &e.State.N, &e.State.C, &e.State.V}
		for i, ch := range f.zncv {
			switch ch {
			case '0':
				*bitsOf[i] = false
			case '1':
				*bitsOf[i] = true
			default:
				return fmt.Errorf("snapshot: bad ZNCV digit %q", ch)
			}
		}
	}
	for i := 0; i < 8; i++ {
		v, dc, err := parseHexField(f.regs[i])
		if err != nil {
			return err
		}
		if !dc {
			e.State.Regs[i] = v
		}
	}
	return nil
}

func parseMemoryLine(line string) (addr, value uint16, err error) {
	// mem[AAAA:BBBB]: VVVV MNEMONIC rd rs1 rs2
	open := strings.IndexByte(line, '[')
	colon := strings.IndexByte(line, ':')
	closeBracket := strings.IndexByte(line, ']')
	if open < 0 || colon < 0 || closeBracket < 0 || colon < open || closeBracket < colon {
		return 0, 0, fmt.Errorf("snapshot: malformed memory line %q", line)
	}
	addrText := line[open+1 : colon]
	a, err := strconv.ParseUint(addrText, 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("snapshot: bad memory address %q: %w", addrText, err)
	}
	rest := strings.TrimSpace(line[closeBracket+1:])
	rest = strings.TrimPrefix(rest, ":")
	cols := strings.Fields(rest)
	if len(cols) < 1 {
		return 0, 0, fmt.Errorf("snapshot: missing value in memory line %q", line)
	}
	v, err := strconv.ParseUint(cols[0], 16, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("snapshot: bad memory value %q: %w", cols[0], err)
	}
	return uint16(a), uint16(v), nil
}

// Check compares e's current state (and memory) against the snapshot read
// from r, ignoring the breakpoint block. A field equal to "xxxx" (any
// case) is a don't-care. Memory lines present in the file must match;
// cells not listed are ignored. Returns one diff string per mismatch,
// using the file's value as the reference (not the live value) in each
// message.
func Check(r io.Reader, e *cpu.Engine) ([]string, error) {
	sc := bufio.NewScanner(r)
	var diffs []string

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "Breakpoints:" {
		return nil, fmt.Errorf("snapshot: expected %q", "Breakpoints:")
	}
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			break
		}
	}

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "State:" {
		return nil, fmt.Errorf("snapshot: expected %q", "State:")
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("snapshot: missing state line")
	}
	fileFields, err := parseStateLine(sc.Text())
	if err != nil {
		return nil, err
	}
	liveFields, err := parseStateLine(e.StateLine())
	if err != nil {
		return nil, err
	}
	diffs = append(diffs, diffStateFields(fileFields, liveFields)...)

	sc.Scan() // blank line

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "Memory:" {
		return nil, fmt.Errorf("snapshot: expected %q", "Memory:")
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		addr, fileVal, err := parseMemoryLine(line)
		if err != nil {
			return nil, err
		}
		liveVal := e.Mem.Read(addr)
		if liveVal != fileVal {
			diffs = append(diffs, fmt.Sprintf("mem[%s]: expected %s, got %s",
				bits.Hex4(addr), bits.Hex4(fileVal), bits.Hex4(liveVal)))
		}
	}
	return diffs, sc.Err()
}

func diffStateFields(file, live stateFields) []string {
	var diffs []string
	cmp := func(name, fileVal, liveVal string) {
		if strings.EqualFold(fileVal, dontCare) {
			return
		}
		if !strings.EqualFold(fileVal, liveVal) {
			diffs = append(diffs, fmt.Sprintf("%s: expected %s, got %s", name, fileVal, liveVal))
		}
	}
	cmp("cycle", file.cycle, live.cycle)
	cmp("state", file.state, live.state)
	cmp("pc", file.pc, live.pc)
	cmp("ir", file.ir, live.ir)
	cmp("zncv", file.zncv, live.zncv)
	cmp("mar", file.mar, live.mar)
	cmp("mdr", file.mdr, live.mdr)
	for i := 0; i < 8; i++ {
		cmp(fmt.Sprintf("r%d", i), file.regs[i], live.regs[i])
	}
	return diffs
}
