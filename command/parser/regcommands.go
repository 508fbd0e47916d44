/*
 * RISC240 - Register and memory inspection commands.
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
	"regexp"
	"strconv"
	"strings"

	"github.com/ece240-staff/risc240sim/internal/bits"
)

var (
	starRE  = regexp.MustCompile(`^\*\?$`)
	rstarRE = regexp.MustCompile(`(?i)^r\*\?$`)
	regRE   = regexp.MustCompile(`(?i)^(r[0-7]|pc|ir|mar|mdr|sp|z|n|c|v)(?:(=)([0-9a-f]{1,4})|(\?))$`)
	memRE   = regexp.MustCompile(`(?i)^m\[([0-9a-f]{1,4})(?::([0-9a-f]{1,4}))?\](?:(=)([0-9a-f]{1,4})|(\?))$`)
)

// tryRegisterOrMemory matches the glued (no internal space) register and
// memory forms sim240.py's menu handled with set_reg/get_reg/set_memory/
// fget_memory: "<reg>=hex", "<reg>?", "*?", "R*?", "m[a]=hex", "m[a]?",
// "m[lo:hi]?". It reports whether trimmed matched one of these forms.
func tryRegisterOrMemory(trimmed string, sess *Session) (bool, error) {
	switch {
	case starRE.MatchString(trimmed):
		printFullState(sess)
		return true, nil
	case rstarRE.MatchString(trimmed):
		printRegFile(sess)
		return true, nil
	}

	if m := regRE.FindStringSubmatch(trimmed); m != nil {
		name := strings.ToUpper(m[1])
		if m[2] == "=" {
			v, _ := strconv.ParseUint(m[3], 16, 16)
			setRegister(sess, name, uint16(v))
		} else {
			sess.Out.Println(fmt.Sprintf("%s: %s", name, bits.Hex4(getRegister(sess, name))))
		}
		return true, nil
	}

	if m := memRE.FindStringSubmatch(trimmed); m != nil {
		return true, handleMemCommand(sess, m)
	}

	return false, nil
}

func getRegister(sess *Session, name string) uint16 {
	s := &sess.Engine.State
	switch name {
	case "PC":
		return s.PC
	case "IR":
		return s.IR
	case "MAR":
		return s.MAR
	case "MDR":
		return s.MDR
	case "SP":
		return s.SP
	case "Z":
		return boolToWord(s.Z)
	case "N":
		return boolToWord(s.N)
	case "C":
		return boolToWord(s.C)
	case "V":
		return boolToWord(s.V)
	default: // R0..R7
		idx := int(name[1] - '0')
		return s.Regs[idx]
	}
}

func setRegister(sess *Session, name string, v uint16) {
	s := &sess.Engine.State
	switch name {
	case "PC":
		s.PC = bits.WordAlign(v)
	case "IR":
		s.IR = v
	case "MAR":
		s.MAR = v
	case "MDR":
		s.MDR = v
	case "SP":
		s.SP = v
	case "Z", "N", "C", "V":
		if v != 0 && v != 1 {
			sess.Out.Println("Value can only be 0 or 1.")
			return
		}
		flag := v == 1
		switch name {
		case "Z":
			s.Z = flag
		case "N":
			s.N = flag
		case "C":
			s.C = flag
		case "V":
			s.V = flag
		}
	default: // R0..R7
		idx := name[1] - '0'
		if idx == 0 {
			return
		}
		s.Regs[idx] = v
	}
}

func boolToWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

func printFullState(sess *Session) {
	sess.Out.Println(wideHeader)
	sess.Out.Println(sess.Engine.StateLine())
}

func printRegFile(sess *Session) {
	s := &sess.Engine.State
	for i := 0; i < 4; i++ {
		sess.Out.Println(fmt.Sprintf("R%d: %s   R%d: %s",
			i, bits.Hex4(s.Regs[i]), i+4, bits.Hex4(s.Regs[i+4])))
	}
}

func handleMemCommand(sess *Session, m []string) error {
	lo, _ := strconv.ParseUint(m[1], 16, 16)
	hi := lo
	hasRange := m[2] != ""
	if hasRange {
		hi, _ = strconv.ParseUint(m[2], 16, 16)
	}

	if m[3] == "=" {
		if hasRange {
			sess.Out.Println(invalidInput)
			return nil
		}
		v, _ := strconv.ParseUint(m[4], 16, 16)
		sess.Engine.Mem.Write(uint16(lo), uint16(v))
		return nil
	}

	if hi < lo {
		sess.Out.Println(fmt.Sprintf("Did you mean mem[%s:%s]?", bits.Hex4(uint16(hi)), bits.Hex4(uint16(lo))))
		return nil
	}
	for a := lo; a <= hi; a++ {
		sess.Out.Println(fmt.Sprintf("m[%s]: %s", bits.Hex4(uint16(a)), bits.Hex4(sess.Engine.Mem.Read(uint16(a)))))
	}
	return nil
}
