/*
 * RISC240 - Arithmetic/logic unit.
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

import "github.com/ece240-staff/risc240sim/internal/bits"

// ALUOp names one of the RISC240 ALU's 14 operations.
type ALUOp int

const (
	FA ALUOp = iota
	FB
	FAPlus2
	FAPlusB
	FAMinusB
	FANot
	FAAndB
	FAOrB
	FAXorB
	FAShl
	FALshr
	FAAshr
	FALtB
	FX // don't care
)

// Flags holds the four single-bit condition codes produced by an ALU
// operation.
type Flags struct {
	Z, N, C, V bool
}

// Compute evaluates op on 16-bit inputs a and b, truncating the result to
// 16 bits and deriving Z/N/C/V per operation. Carries are computed in a
// 32-bit accumulator so bit16 is simply shifted out, instead of the
// bit-slice trick the reference implementation uses.
func Compute(op ALUOp, a, b uint16) (result uint16, flags Flags) {
	var r uint32
	var carry, overflow bool

	signA := bits.Bit(uint32(a), 15)
	signB := bits.Bit(uint32(b), 15)

	switch op {
	case FA:
		r = uint32(a)
	case FB:
		r = uint32(b)
	case FAPlus2:
		sum := uint32(a) + 2
		r = sum & 0xFFFF
		carry = bits.Bit(sum, 16)
		overflow = !signA && bits.Bit(r, 15)
	case FAPlusB:
		sum := uint32(a) + uint32(b)
		r = sum & 0xFFFF
		carry = bits.Bit(sum, 16)
		signR := bits.Bit(r, 15)
		overflow = (signA && signB && !signR) || (!signA && !signB && signR)
	case FAMinusB:
		diff := uint32(a) - uint32(b)
		r = diff & 0xFFFF
		carry = b >= a
		signR := bits.Bit(r, 15)
		overflow = (signA && !signB && !signR) || (!signA && signB && signR)
	case FANot:
		r = (^uint32(a)) & 0xFFFF
	case FAAndB:
		r = uint32(a) & uint32(b)
	case FAOrB:
		r = uint32(a) | uint32(b)
	case FAXorB:
		r = uint32(a) ^ uint32(b)
	case FAShl:
		r = (uint32(a) << (uint32(b) & 0xF)) & 0xFFFF
	case FALshr:
		r = uint32(a) >> (uint32(b) & 0xF)
	case FAAshr:
		shift := uint32(b) & 0xF
		v := int16(a)
		r = uint32(uint16(v>>shift)) & 0xFFFF
	case FALtB:
		if lessThan(a, b) {
			r = 1
		}
		diff := uint32(a) - uint32(b)
		carry = bits.Bit(diff, 15)
		overflow = bits.Bit(diff, 15) == signA
	case FX:
		r = 0
	}

	result = uint16(r)
	flags = Flags{
		Z: result == 0,
		N: bits.Bit(uint32(result), 15),
		C: carry,
		V: overflow,
	}
	return result, flags
}

// lessThan implements the signed comparison for F_A_LT_B, handling sign
// boundaries explicitly: a negative value is always less than a
// non-negative one.
func lessThan(a, b uint16) bool {
	return int16(a) < int16(b)
}
