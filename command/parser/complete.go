/*
 * RISC240 - Tab completion.
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

import "strings"

// completionWords lists the long-form keywords the prompt accepts (the
// one-letter aliases q, h, ?, s, u and r are not offered), used to
// drive liner's tab completion the way sim240.py's simple prefix-list
// completer did.
var completionWords = []string{
	"labels", "lsbrk", "quit", "exit", "help",
	"run", "reset", "step", "save", "ustep",
	"clear", "load", "check", "break", "m[",
}

// Complete returns every completion word with line as a prefix, for use as
// a liner.WordCompleter/normal completer callback.
func Complete(line string) []string {
	var out []string
	lower := strings.ToLower(line)
	for _, w := range completionWords {
		if strings.HasPrefix(w, lower) {
			out = append(out, w)
		}
	}
	return out
}
