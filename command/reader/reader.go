/*
 * RISC240 - Command reader.
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

// Package reader drives the interactive prompt loop: a sim-file's lines
// (if one was given) are consumed first, echoed to the transcript, and
// once exhausted the loop falls through to an interactive liner prompt.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/ece240-staff/risc240sim/command/parser"
)

// Printer is the minimal sink the reader echoes prompts and command lines
// to, satisfied by *util/transcript.Transcript.
type Printer interface {
	Print(line string)
	Println(line string)
}

// Run feeds simLines (if non-nil) to sess one line at a time, echoing each
// to out, then falls through to an interactive liner prompt reading from
// the terminal until the session quits or the prompt is Ctrl-C aborted.
func Run(sess *parser.Session, simLines *bufio.Scanner, out Printer) {
	prompt := "240sim> "

	if simLines != nil {
		for simLines.Scan() {
			line := simLines.Text()
			out.Println(prompt + line)
			quit, err := parser.ProcessCommand(line, sess)
			if err != nil {
				out.Println("Error: " + err.Error())
			}
			if quit {
				return
			}
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return parser.Complete(line)
	})

	for {
		command, err := ln.Prompt(prompt)
		if err == nil {
			ln.AppendHistory(command)
			quit, perr := parser.ProcessCommand(command, sess)
			if perr != nil {
				out.Println("Error: " + perr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			out.Println("Unexpected input, did you forget to quit?")
			return
		}
		if errors.Is(err, io.EOF) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}

// RunQuiet drains simLines against sess without any prompt/echo output,
// used by the -g grading path when the sim file should run to completion
// silently before the state check.
func RunQuiet(sess *parser.Session, simLines *bufio.Scanner) error {
	for simLines.Scan() {
		quit, err := parser.ProcessCommand(simLines.Text(), sess)
		if err != nil {
			return fmt.Errorf("reader: %w", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}
