/*
 * RISC240 - Microstate identifiers.
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

// UState names one microstate of the control FSM. Each microstate also
// has a 7-bit encoding (3 high bits + 4 low bits), used both for opcode
// decode and for labeling raw memory words in snapshot dumps.
type UState string

// Administrative states.
const (
	FETCH  UState = "FETCH"
	FETCH1 UState = "FETCH1"
	FETCH2 UState = "FETCH2"
	DECODE UState = "DECODE"
	STOP   UState = "STOP"
	STOP1  UState = "STOP1"
)

// R-type root states.
const (
	ADD UState = "ADD"
	AND UState = "AND"
	MV  UState = "MV"
	NOT UState = "NOT"
	OR  UState = "OR"
	SLL UState = "SLL"
	SLT UState = "SLT"
	SRA UState = "SRA"
	SRL UState = "SRL"
	SUB UState = "SUB"
	XOR UState = "XOR"
)

// I-type root states.
const (
	ADDI UState = "ADDI"
	LW   UState = "LW"
	SLLI UState = "SLLI"
	SLTI UState = "SLTI"
	SRAI UState = "SRAI"
	SRLI UState = "SRLI"
)

// S-type root state.
const (
	SW UState = "SW"
)

// B-type root states.
const (
	BRA  UState = "BRA"
	BRC  UState = "BRC"
	BRN  UState = "BRN"
	BRNZ UState = "BRNZ"
	BRV  UState = "BRV"
	BRZ  UState = "BRZ"
)

// Numbered continuation states.
const (
	slt1 UState = "SLT1"

	addi1 UState = "ADDI1"
	addi2 UState = "ADDI2"

	lw1 UState = "LW1"
	lw2 UState = "LW2"
	lw3 UState = "LW3"
	lw4 UState = "LW4"

	slli1 UState = "SLLI1"
	slli2 UState = "SLLI2"

	slti1 UState = "SLTI1"
	slti2 UState = "SLTI2"
	slti3 UState = "SLTI3"

	srai1 UState = "SRAI1"
	srai2 UState = "SRAI2"

	srli1 UState = "SRLI1"
	srli2 UState = "SRLI2"

	sw1 UState = "SW1"
	sw2 UState = "SW2"
	sw3 UState = "SW3"
	sw4 UState = "SW4"

	bra1 UState = "BRA1"
	bra2 UState = "BRA2"

	brc1 UState = "BRC1"
	brc2 UState = "BRC2"
	brc3 UState = "BRC3"

	brn1 UState = "BRN1"
	brn2 UState = "BRN2"
	brn3 UState = "BRN3"

	brnz1 UState = "BRNZ1"
	brnz2 UState = "BRNZ2"
	brnz3 UState = "BRNZ3"

	brv1 UState = "BRV1"
	brv2 UState = "BRV2"
	brv3 UState = "BRV3"

	brz1 UState = "BRZ1"
	brz2 UState = "BRZ2"
	brz3 UState = "BRZ3"
)
