/*
 * RISC240 - Command grammar and dispatch.
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

package parser

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ece240-staff/risc240sim/internal/bits"
	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/snapshot"
)

const invalidInput = "Invalid input. Type 'help' for help."

const wideHeader = "Cycle STATE PC   IR   ZNCV MAR  MDR  R0   R1   R2   R3   R4   R5   R6   R7"

// runRE recognizes "run"/"r" with an optional hex instruction count and an
// optional one-letter cadence override, with or without separating spaces
// (sim240.py's menu accepted "run 5u" and "r6i" alike).
var runRE = regexp.MustCompile(`(?i)^(?:run|r)\s*([0-9a-f]*)\s*([qiu]?)$`)

// ProcessCommand parses and executes one line of input against sess. The
// bool return reports whether the prompt loop should terminate.
func ProcessCommand(line string, sess *Session) (bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, nil
	}

	if runRE.MatchString(trimmed) {
		return false, cmdRun(sess, runRE.FindStringSubmatch(trimmed))
	}

	cl := newCmdLine(trimmed)
	word := strings.ToLower(cl.getWord())

	switch word {
	case "quit", "exit", "q":
		return true, nil
	case "help", "h", "?":
		sess.Out.Println(helpText)
		return false, nil
	case "reset":
		sess.Reset()
		return false, nil
	case "step", "s":
		return false, cmdStep(sess)
	case "ustep", "u":
		return false, cmdUstep(sess)
	case "break":
		return false, cmdBreak(sess, cl.rest())
	case "clear":
		return false, cmdClear(sess, cl.rest())
	case "lsbrk":
		cmdLsbrk(sess)
		return false, nil
	case "labels":
		cmdLabels(sess)
		return false, nil
	case "load":
		return false, cmdLoad(sess, cl.rest())
	case "save":
		return false, cmdSave(sess, cl.rest())
	case "check":
		return false, cmdCheck(sess, cl.rest())
	}

	if handled, err := tryRegisterOrMemory(trimmed, sess); handled {
		return false, err
	}

	sess.Out.Println(invalidInput)
	return false, nil
}

// printFirstIfNeeded emits the header plus the current state line exactly once per
// session lifetime, the first time any step/run happens — sim240.py's
// first_print flag.
func (s *Session) printFirstIfNeeded() {
	if s.firstPrinted {
		return
	}
	s.firstPrinted = true
	if s.Cadence != cpu.CadenceQuiet {
		s.Out.Println(wideHeader)
		s.Out.Println(s.Engine.StateLine())
	}
}

func cmdStep(sess *Session) error {
	sess.printFirstIfNeeded()
	if sess.Cadence != cpu.CadenceQuiet {
		sess.Out.Println(wideHeader)
	}
	if err := sess.Engine.Step(nil); err != nil {
		return reportFatal(err)
	}
	if sess.Cadence != cpu.CadenceQuiet {
		sess.Out.Println(sess.Engine.StateLine())
	}
	return nil
}

func cmdUstep(sess *Session) error {
	sess.printFirstIfNeeded()
	if sess.Cadence != cpu.CadenceQuiet {
		sess.Out.Println(wideHeader)
	}
	if err := sess.Engine.Cycle(); err != nil {
		return reportFatal(err)
	}
	if sess.Cadence != cpu.CadenceQuiet {
		sess.Out.Println(sess.Engine.StateLine())
	}
	return nil
}

// cmdRun handles both "run"/"r" and the forms with a glued count/cadence
// suffix; match holds [whole, count, cadence].
func cmdRun(sess *Session, match []string) error {
	n := 1_000_000_000
	if match[1] != "" {
		v, err := strconv.ParseUint(match[1], 16, 32)
		if err != nil {
			sess.Out.Println(invalidInput)
			return nil
		}
		n = int(v)
	}

	cadence := sess.Cadence
	switch strings.ToLower(match[2]) {
	case "q":
		cadence = cpu.CadenceQuiet
	case "i":
		cadence = cpu.CadenceInstruction
	case "u":
		cadence = cpu.CadenceMicro
	}

	saved := sess.Cadence
	sess.Cadence = cadence
	sess.printFirstIfNeeded()
	if cadence != cpu.CadenceQuiet {
		sess.Out.Println(wideHeader)
	}

	emit := func(l string) { sess.Out.Println(l) }
	if cadence == cpu.CadenceQuiet {
		emit = nil
	}
	reason, err := sess.Engine.Run(n, sess.Breakpoints, cadence, emit)
	sess.Cadence = saved
	if err != nil {
		return reportFatal(err)
	}
	if reason == cpu.StopBreakpoint {
		sess.Out.Println(fmt.Sprintf("Hit breakpoint at $%s.", bits.Hex4(sess.Engine.State.PC)))
	}
	return nil
}

// reportFatal prints a fatal runtime diagnostic and exits, matching
// sim240.py's control() behavior on an undefined-instruction decode.
func reportFatal(err error) error {
	fmt.Fprintln(os.Stderr, "PC points to undefined instruction, exiting...")
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
	return nil
}

// resolveBreakpointArg parses a break/clear operand: 'name' forces a
// label, $hex forces an address, a bare pure-hex token (1-4 digits) is an
// address, and any other bare token is tried as a label.
func resolveBreakpointArg(sess *Session, arg string) (addr uint16, label string, isLabel bool, ok bool) {
	if len(arg) >= 2 && strings.HasPrefix(arg, "'") && strings.HasSuffix(arg, "'") {
		label = strings.ToUpper(arg[1 : len(arg)-1])
		a, found := sess.lookupLabel(label)
		return a, label, true, found
	}
	if strings.HasPrefix(arg, "$") {
		v, err := strconv.ParseUint(arg[1:], 16, 16)
		if err != nil {
			return 0, "", false, false
		}
		return uint16(v), "", false, true
	}
	if isPureHex(arg) {
		v, err := strconv.ParseUint(arg, 16, 16)
		if err == nil {
			return uint16(v), "", false, true
		}
	}
	label = strings.ToUpper(arg)
	a, found := sess.lookupLabel(label)
	return a, label, true, found
}

func isPureHex(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func cmdBreak(sess *Session, arg string) error {
	addr, label, isLabel, ok := resolveBreakpointArg(sess, arg)
	if !ok {
		if isLabel {
			sess.Out.Println("Invalid label.")
		} else {
			sess.Out.Println(invalidInput)
		}
		return nil
	}
	sess.Breakpoints[bits.WordAlign(addr)] = true
	_ = label
	return nil
}

func cmdClear(sess *Session, arg string) error {
	if strings.TrimSpace(arg) == "*" {
		sess.Breakpoints = make(map[uint16]bool)
		return nil
	}
	addr, label, isLabel, ok := resolveBreakpointArg(sess, arg)
	if !ok {
		if isLabel {
			sess.Out.Println("Invalid label.")
		} else {
			sess.Out.Println(invalidInput)
		}
		return nil
	}
	addr = bits.WordAlign(addr)
	if sess.Breakpoints[addr] {
		delete(sess.Breakpoints, addr)
		return nil
	}
	if isLabel {
		sess.Out.Println("No breakpoint at " + label + ".")
	} else {
		sess.Out.Println("No breakpoint at " + bits.Hex4(addr) + ".")
	}
	return nil
}

func cmdLsbrk(sess *Session) {
	addrs := make([]uint16, 0, len(sess.Breakpoints))
	for a := range sess.Breakpoints {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, a := range addrs {
		sess.Out.Println("$" + bits.Hex4(a))
	}
}

func cmdLabels(sess *Session) {
	names := make([]string, 0, len(sess.Labels))
	for name := range sess.Labels {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		sess.Out.Println(fmt.Sprintf("%s: %s", name, bits.Hex4(sess.Labels[name])))
	}
}

func cmdLoad(sess *Session, filename string) error {
	sess.Out.Println("Loading from " + filename + "...")
	f, err := os.Open(filename)
	if err != nil {
		sess.Out.Println("Unable to read from " + filename)
		return nil
	}
	defer f.Close()
	if err := snapshot.Load(f, sess.Engine, sess.Breakpoints); err != nil {
		sess.Out.Println(err.Error())
	}
	return nil
}

func cmdSave(sess *Session, filename string) error {
	sess.Out.Println("Saving to " + filename + "...")
	f, err := os.Create(filename)
	if err != nil {
		sess.Out.Println("Unable to write to " + filename)
		return nil
	}
	defer f.Close()
	if err := snapshot.Save(f, sess.Engine, sess.Breakpoints); err != nil {
		sess.Out.Println(err.Error())
	}
	return nil
}

func cmdCheck(sess *Session, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		sess.Out.Println("Failed to open state file")
		return nil
	}
	defer f.Close()
	diffs, err := snapshot.Check(f, sess.Engine)
	if err != nil {
		sess.Out.Println(err.Error())
		return nil
	}
	for _, d := range diffs {
		sess.Out.Println(d)
	}
	if len(diffs) == 0 {
		sess.Out.Println("State matches reference file!")
	}
	return nil
}

const helpText = `
quit,q,exit             Quit the simulator.
help,h,?                Print this help message.
step,s                  Simulate one instruction.
ustep,u                 Simulate one micro-instruction.
run,r [n]               Simulate the next n instructions.
run u                   Same as above, but print every ustep.
break [addr/label]      Set a breakpoint at [addr] or [label].
lsbrk                   List all set breakpoints.
clear [addr/label/*]    Clear breakpoint at [addr]/[label], or clear all.
reset                   Reset the processor to initial state.
save [file]             Save the current state to a file.
load [file]             Load the state from a given file.
check [file]            Check state against state described in file.
labels                  Print the labels described in the listing file.

You may set registers like so:          PC=0100
You may view register contents like so: PC?
You may view the register file like so: R*?
You may view all registers like so:     *?

You may set memory like so:  m[00A0]=0100
You may view memory like so: m[00A0]? or with a range: m[0:A]?

Note: all constants are interpreted as hexadecimal.`
