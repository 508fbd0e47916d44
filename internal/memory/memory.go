/*
 * RISC240 - Word-addressed memory.
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

// Package memory implements the RISC240's word-addressed store: 2^15
// cells of 16 bits, each tagged defined/undefined.
package memory

import (
	"math/rand"
	"sort"

	"github.com/ece240-staff/risc240sim/internal/bits"
)

const numCells = 1 << 15 // one cell per word address (2^16 byte addresses / 2)

type cell struct {
	value   uint16
	defined bool
}

// Memory is a word-addressed store of 2^15 16-bit cells.
type Memory struct {
	cells [numCells]cell
}

// New returns a zeroed, all-undefined memory.
func New() *Memory {
	return &Memory{}
}

func index(addr uint16) uint16 {
	return bits.WordAlign(addr) >> 1
}

// Read returns the current value at addr (word-aligned), whether or not
// the cell is defined: the live simulator always returns the cell's
// current contents (random or zero), never an error for undefined cells.
func (m *Memory) Read(addr uint16) uint16 {
	return m.cells[index(addr)].value
}

// Defined reports whether the cell at addr has been explicitly written.
func (m *Memory) Defined(addr uint16) bool {
	return m.cells[index(addr)].defined
}

// Write stores value at addr (word-aligned) and marks the cell defined.
func (m *Memory) Write(addr, value uint16) {
	c := &m.cells[index(addr)]
	c.value = value
	c.defined = true
}

// Preload behaves like Write; it exists as a distinct name so callers can
// tell program-load writes from run-time store instructions in logs.
func (m *Memory) Preload(addr, value uint16) {
	m.Write(addr, value)
}

// Reset clears every cell. When deterministic is true all cells become
// 0x0000; otherwise each cell gets a fresh random 16-bit value. Neither
// path marks cells defined — random initialization must not set defined,
// per the architecture's "defined" invariant.
func (m *Memory) Reset(deterministic bool, rng *rand.Rand) {
	for i := range m.cells {
		var v uint16
		if !deterministic {
			v = uint16(rng.Intn(1 << 16))
		}
		m.cells[i] = cell{value: v, defined: false}
	}
}

// DefinedCells returns the word addresses of every defined cell, in
// ascending order.
func (m *Memory) DefinedCells() []uint16 {
	var addrs []uint16
	for i, c := range m.cells {
		if c.defined {
			addrs = append(addrs, uint16(i)<<1)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
