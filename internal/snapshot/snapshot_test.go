package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/memory"
)

func newSampleEngine() *cpu.Engine {
	mem := memory.New()
	e := cpu.NewEngine(mem)
	e.State.PC = 0x0002
	e.State.Regs[1] = 0x0001
	mem.Preload(0x0000, 0x2248)
	return e
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := newSampleEngine()
	breakpoints := map[uint16]bool{0x0010: true}

	var buf bytes.Buffer
	if err := Save(&buf, e, breakpoints); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := cpu.NewEngine(memory.New())
	loadedBreaks := map[uint16]bool{}
	if err := Load(strings.NewReader(buf.String()), loaded, loadedBreaks); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.State.PC != e.State.PC {
		t.Errorf("PC = %#04x, want %#04x", loaded.State.PC, e.State.PC)
	}
	if loaded.State.Regs[1] != e.State.Regs[1] {
		t.Errorf("R1 = %#04x, want %#04x", loaded.State.Regs[1], e.State.Regs[1])
	}
	if !loadedBreaks[0x0010] {
		t.Errorf("breakpoint 0x0010 not loaded")
	}
	if loaded.Mem.Read(0x0000) != 0x2248 {
		t.Errorf("mem[0] = %#04x, want 0x2248", loaded.Mem.Read(0x0000))
	}
}

func TestSaveLoadRoundTripPastTenThousandCycles(t *testing.T) {
	e := newSampleEngine()
	e.State.Cycle = 12345

	var buf bytes.Buffer
	if err := Save(&buf, e, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(buf.String(), "12345 ") {
		t.Fatalf("saved state line truncated the cycle count: %q", buf.String())
	}

	loaded := cpu.NewEngine(memory.New())
	if err := Load(strings.NewReader(buf.String()), loaded, map[uint16]bool{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State.Cycle != 12345 {
		t.Errorf("Cycle = %d, want 12345 (must not wrap modulo 10000)", loaded.State.Cycle)
	}
}

func TestSaveThenCheckAgainstSelfIsClean(t *testing.T) {
	e := newSampleEngine()
	var buf bytes.Buffer
	if err := Save(&buf, e, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	diffs, err := Check(strings.NewReader(buf.String()), e)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected no diffs, got %v", diffs)
	}
}

func TestCheckDontCareIgnoresField(t *testing.T) {
	e := newSampleEngine()
	snap := "Breakpoints:\n\n" +
		"State:\n" +
		"xxxx " + string(e.State.UState) + " " + "xxxx xxxx 0000 xxxx xxxx 0000 0001 0000 0000 0000 0000 0000 0000\n\n" +
		"Memory:\n"
	diffs, err := Check(strings.NewReader(snap), e)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diffs) != 0 {
		t.Errorf("expected no diffs with don't-care cycle/PC/IR/MAR, got %v", diffs)
	}
}

func TestCheckReportsMismatch(t *testing.T) {
	e := newSampleEngine()
	snap := "Breakpoints:\n\n" +
		"State:\n" +
		"xxxx " + string(e.State.UState) + " xxxx xxxx 0000 xxxx xxxx 0000 00ff 0000 0000 0000 0000 0000 0000\n\n" +
		"Memory:\n"
	diffs, err := Check(strings.NewReader(snap), e)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diffs) != 1 || !strings.Contains(diffs[0], "r1") {
		t.Errorf("diffs = %v, want one r1 mismatch", diffs)
	}
}

func TestCheckMemoryMismatchUsesFileValueAsReference(t *testing.T) {
	e := newSampleEngine()
	snap := "Breakpoints:\n\n" +
		"State:\n" +
		strings.Join(strings.Fields(e.StateLine()), " ") + "\n\n" +
		"Memory:\n" +
		"mem[0000:0001]: dead ADD 0 0 0\n"
	diffs, err := Check(strings.NewReader(snap), e)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(diffs) != 1 || !strings.Contains(diffs[0], "expected DEAD") {
		t.Errorf("diffs = %v, want mismatch citing file value DEAD as reference", diffs)
	}
}
