/*
 * RISC240 - Main process.
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

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/ece240-staff/risc240sim/command/parser"
	"github.com/ece240-staff/risc240sim/command/reader"
	"github.com/ece240-staff/risc240sim/internal/cpu"
	"github.com/ece240-staff/risc240sim/internal/listing"
	"github.com/ece240-staff/risc240sim/internal/memory"
	"github.com/ece240-staff/risc240sim/internal/snapshot"
	"github.com/ece240-staff/risc240sim/util/logger"
	"github.com/ece240-staff/risc240sim/util/transcript"
)

const version = "RISC240 simulator 1.0"

var Logger *slog.Logger

func main() {
	optVersion := getopt.BoolLong("version", 'v', "Print version and exit")
	optRunOnly := getopt.BoolLong("run", 'r', "Run to completion, then exit")
	optDeterministic := getopt.BoolLong("deterministic", 'n', "Zero-initialize memory instead of random")
	optTranscript := getopt.StringLong("transcript", 't', "", "Transcript output file")
	optQuiet := getopt.BoolLong("quiet", 'q', "Quiet cadence")
	optGrade := getopt.StringLong("grade", 'g', "", "Grade against reference state file, then exit")
	optStdin := getopt.BoolLong("stdin", 'i', "Read listing from stdin")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}
	if *optVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	debug := false
	Logger = slog.New(logger.NewHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel}, &debug))
	slog.SetDefault(Logger)

	args := getopt.Args()
	if len(args) == 0 && !*optStdin {
		fmt.Fprintln(os.Stderr, "usage: risc240sim [options] listing-file [sim-file]")
		os.Exit(1)
	}
	if *optStdin && !*optRunOnly && *optGrade == "" {
		fmt.Fprintln(os.Stderr, "-i requires -r or -g")
		os.Exit(1)
	}

	var listingFile *os.File
	if *optStdin {
		listingFile = os.Stdin
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			Logger.Error("unable to open listing file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		listingFile = f
		args = args[1:]
	}

	words, labels, err := listing.Parse(listingFile)
	if err != nil {
		Logger.Error("listing parse failed", "error", err)
		os.Exit(1)
	}

	deterministic := *optDeterministic
	rng := rand.New(rand.NewSource(1))

	mem := memory.New()
	mem.Reset(deterministic, rng)
	for _, w := range words {
		mem.Preload(w.Addr, w.Data)
	}
	engine := cpu.NewEngine(mem)

	tr := transcript.New(*optTranscript)
	defer tr.Close()

	sess := parser.NewSession(engine, words, labels, deterministic, rng, tr)

	quiet := *optQuiet || *optGrade != "" || *optRunOnly
	if quiet {
		sess.Cadence = cpu.CadenceQuiet
	}

	var simLines *bufio.Scanner
	if len(args) > 0 {
		simFile, err := os.Open(args[0])
		if err != nil {
			Logger.Error("unable to open sim file", "error", err)
			os.Exit(1)
		}
		defer simFile.Close()
		simLines = bufio.NewScanner(simFile)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	go func() {
		<-sigChan
		tr.Close()
		os.Exit(1)
	}()

	switch {
	case *optGrade != "":
		if simLines != nil {
			if err := reader.RunQuiet(sess, simLines); err != nil {
				Logger.Error("sim file error", "error", err)
			}
		} else {
			runToCompletion(sess)
		}
		gradeAndExit(sess, *optGrade)

	case *optRunOnly:
		if simLines != nil {
			if err := reader.RunQuiet(sess, simLines); err != nil {
				Logger.Error("sim file error", "error", err)
			}
		} else {
			runToCompletion(sess)
		}

	default:
		reader.Run(sess, simLines, tr)
	}
}

// runToCompletion drives the engine directly until it halts, for the -r
// and -g paths when no sim-file script was supplied.
func runToCompletion(sess *parser.Session) {
	_, err := sess.Engine.Run(1_000_000_000, sess.Breakpoints, cpu.CadenceQuiet, nil)
	if err != nil {
		Logger.Error("PC points to undefined instruction, exiting", "error", err)
		os.Exit(1)
	}
}

func gradeAndExit(sess *parser.Session, refPath string) {
	f, err := os.Open(refPath)
	if err != nil {
		fmt.Println("Failed to open state file")
		os.Exit(1)
	}
	defer f.Close()

	diffs, err := snapshot.Check(f, sess.Engine)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	for _, d := range diffs {
		fmt.Println(d)
	}
	if len(diffs) == 0 {
		fmt.Println("State matches reference file!")
		os.Exit(0)
	}
	os.Exit(1)
}
