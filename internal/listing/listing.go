/*
 * RISC240 - Listing file parser.
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

// Package listing parses an assembled RISC240 program listing into program
// words plus a label table.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Word is one parsed listing line: a memory address, its data word, and an
// optional label.
type Word struct {
	Addr  uint16
	Data  uint16
	Label string
}

// Parse reads a listing from r, skipping its two header lines. Each
// subsequent line at least 11 characters wide yields a Word; columns 0-3
// hold the address in hex, columns 5-8 hold the data in hex, and an
// optional label occupies column 11 through the next space. Addresses and
// data are parsed case-insensitively. The returned labels map only
// contains non-empty label text.
func Parse(r io.Reader) ([]Word, map[string]uint16, error) {
	scanner := bufio.NewScanner(r)
	labels := make(map[string]uint16)
	var words []Word

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum <= 2 {
			continue // header, then rule line
		}
		if len(line) < 11 {
			continue
		}
		addrText := strings.TrimSpace(line[0:4])
		dataText := strings.TrimSpace(line[5:9])
		if addrText == "" || dataText == "" {
			continue
		}
		addr, err := strconv.ParseUint(addrText, 16, 16)
		if err != nil {
			return nil, nil, fmt.Errorf("listing line %d: bad address %q: %w", lineNum, addrText, err)
		}
		data, err := strconv.ParseUint(dataText, 16, 16)
		if err != nil {
			return nil, nil, fmt.Errorf("listing line %d: bad data %q: %w", lineNum, dataText, err)
		}

		w := Word{Addr: uint16(addr), Data: uint16(data)}
		if len(line) > 11 {
			label := line[11:]
			if sp := strings.IndexByte(label, ' '); sp >= 0 {
				label = label[:sp]
			}
			label = strings.TrimSpace(label)
			if label != "" {
				w.Label = label
				labels[label] = w.Addr
			}
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("listing: %w", err)
	}
	return words, labels, nil
}
