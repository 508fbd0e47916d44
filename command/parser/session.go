/*
 * RISC240 - Command session state.
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

// Package parser implements the RISC240 prompt's command grammar and
// dispatch: one session struct owns the engine, the breakpoint set, the
// label table, and the print cadence, so that (unlike the teacher's
// process-global CPU) multiple independent sessions can run side by side
// in tests.
package parser

import (
	"math/rand"
	"strings"

	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/listing"
	"github.com/ece240-staff/risc240sim/internal/memory"
)

// Session is the mutable state a running prompt drives: the engine, its
// breakpoints and labels, and the print cadence in force.
type Session struct {
	Engine        *cpu.Engine
	Breakpoints   map[uint16]bool
	Labels        map[string]uint16
	Program       []listing.Word
	Deterministic bool
	Rng           *rand.Rand
	Cadence       cpu.Cadence
	Out           Printer

	firstPrinted bool
}

// Printer is the minimal sink a session writes formatted output to. It is
// satisfied by *util/transcript.Transcript.
type Printer interface {
	Println(line string)
}

// NewSession builds a session around mem/engine, already preloaded with
// program, with an empty breakpoint set at CadenceInstruction (sim240.py's
// default print_per == "i").
func NewSession(engine *cpu.Engine, program []listing.Word, labels map[string]uint16,
	deterministic bool, rng *rand.Rand, out Printer,
) *Session {
	return &Session{
		Engine:        engine,
		Breakpoints:   make(map[uint16]bool),
		Labels:        labels,
		Program:       program,
		Deterministic: deterministic,
		Rng:           rng,
		Cadence:       cpu.CadenceInstruction,
		Out:           out,
	}
}

// Reset reinitializes the engine to FETCH/cycle 0 with zeroed registers
// and flags, reinitializes memory (random or zero per Deterministic), and
// replays the program preload — mirroring sim240.py's init(), which always
// re-applies get_labels()+init_p18240()+init_memory() together.
func (s *Session) Reset() {
	mem := memory.New()
	mem.Reset(s.Deterministic, s.Rng)
	for _, w := range s.Program {
		mem.Preload(w.Addr, w.Data)
	}
	s.Engine = cpu.NewEngine(mem)
}

// lookupLabel resolves name against the label table case-insensitively,
// matching spec.md's case-insensitive command surface.
func (s *Session) lookupLabel(name string) (uint16, bool) {
	for label, addr := range s.Labels {
		if strings.EqualFold(label, name) {
			return addr, true
		}
	}
	return 0, false
}
