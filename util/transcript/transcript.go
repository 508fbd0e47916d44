/*
 * RISC240 - Session transcript capture.
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

// Package transcript accumulates every line written to the console during a
// session and, if a path was given, persists it to a file on Close. This is
// the idiomatic re-expression of sim240.py's global transcript string plus
// its tran/tran_print helpers: here it is an instance owned by the session
// instead of process-global mutable state.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Transcript echoes every line to stdout and buffers it for an optional
// file write-out.
type Transcript struct {
	stdout io.Writer
	buf    []byte
	path   string
}

// New returns a Transcript that echoes to stdout. If path is non-empty, the
// accumulated transcript is written to that file on Close.
func New(path string) *Transcript {
	return &Transcript{stdout: os.Stdout, path: path}
}

// Print writes line verbatim (no trailing newline added) to stdout and
// appends it to the buffered transcript.
func (t *Transcript) Print(line string) {
	fmt.Fprint(t.stdout, line)
	t.buf = append(t.buf, line...)
}

// Println writes line followed by a newline to stdout and the buffer.
func (t *Transcript) Println(line string) {
	t.Print(line + "\n")
}

// Close flushes the accumulated transcript to the configured file, if any.
func (t *Transcript) Close() error {
	if t.path == "" {
		return nil
	}
	f, err := os.Create(t.path)
	if err != nil {
		return fmt.Errorf("transcript: unable to create %s: %w", t.path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if _, err := w.Write(t.buf); err != nil {
		return err
	}
	return w.Flush()
}
