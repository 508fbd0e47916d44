package reader

import (
	"bufio"
	"math/rand"
	"strings"
	"testing"

	"github.com/ece240-staff/risc240sim/command/parser"
	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/listing"
	"github.com/ece240-staff/risc240sim/internal/memory"
)

type fakePrinter struct {
	lines []string
}

func (f *fakePrinter) Print(line string)   { f.lines = append(f.lines, line) }
func (f *fakePrinter) Println(line string) { f.lines = append(f.lines, line) }

func newTestSession(out parser.Printer) *parser.Session {
	mem := memory.New()
	mem.Reset(true, nil)
	engine := cpu.NewEngine(mem)
	return parser.NewSession(engine, nil, map[string]uint16{}, true, rand.New(rand.NewSource(1)), out)
}

func TestRunDrainsSimFileThenQuits(t *testing.T) {
	out := &fakePrinter{}
	sess := newTestSession(out)
	sim := bufio.NewScanner(strings.NewReader("labels\nquit\n"))

	Run(sess, sim, out)

	joined := strings.Join(out.lines, "\n")
	if !strings.Contains(joined, "240sim> labels") {
		t.Errorf("expected echoed sim-file command, got %v", out.lines)
	}
}

func TestRunQuietDrainsWithoutEchoingPrompt(t *testing.T) {
	out := &fakePrinter{}
	sess := newTestSession(out)
	sim := bufio.NewScanner(strings.NewReader("r0?\n"))

	if err := RunQuiet(sess, sim); err != nil {
		t.Fatalf("RunQuiet: %v", err)
	}
	if len(out.lines) != 1 || out.lines[0] != "R0: 0000" {
		t.Errorf("output = %v, want only the register query result", out.lines)
	}
}
