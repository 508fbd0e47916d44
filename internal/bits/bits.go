/*
 * RISC240 - Bit-slice and word-alignment helpers.
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

// Package bits holds the small set of bit-twiddling helpers the RISC240
// datapath needs: field extraction, word alignment, and canonical hex
// formatting.
package bits

import "strings"

var hexMap = "0123456789ABCDEF"

// Slice extracts bits [hi:lo] (inclusive, Verilog order) from x.
func Slice(x uint32, hi, lo int) uint32 {
	width := hi - lo + 1
	mask := uint32(1)<<width - 1
	return (x >> lo) & mask
}

// Bit extracts a single bit as a bool.
func Bit(x uint32, i int) bool {
	return Slice(x, i, i) != 0
}

// WordAlign clears bit 0 of a 16-bit address.
func WordAlign(addr uint16) uint16 {
	return addr &^ 1
}

// Hex4 formats x as exactly four uppercase hex digits, modulo 2^16.
func Hex4(x uint16) string {
	var b strings.Builder
	b.Grow(4)
	shift := 12
	for range 4 {
		b.WriteByte(hexMap[(x>>shift)&0xf])
		shift -= 4
	}
	return b.String()
}

// Hex4Lower formats x as four lowercase hex digits, used for the register
// file columns of the state-display line.
func Hex4Lower(x uint16) string {
	return strings.ToLower(Hex4(x))
}
