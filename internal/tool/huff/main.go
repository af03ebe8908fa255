// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command huff compresses a text file line by line with a Huffman code built
// over the whole file, and decompresses such payloads.
//
// Example usage:
//
//	$ huff -tokens word -o prose.huff prose.txt
//	$ huff -d -tokens word prose.huff
//
// The same -tokens setting must be used for compression and decompression.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/golib/unitconv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dsnet/huffman"
	"github.com/dsnet/huffman/internal/prefix"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	decompress bool
	verbose    bool
	conf       huffman.Config
	stderr     io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("huff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: huff [-d] [-tokens char|word|byte] [-workers N] [-parallel N] [-o out] [-v] [file]")
		fs.PrintDefaults()
	}
	d := fs.Bool("d", false, "Decompress a payload instead of compressing lines")
	tokens := fs.String("tokens", "char", "Token type: char, word, or byte")
	workers := fs.String("workers", "0", "Maximum number of goroutines (0 uses every CPU)")
	parallel := fs.String("parallel", fmt.Sprint(huffman.DefaultParallelLines), "Minimum number of lines before working in parallel")
	out := fs.String("o", "", "Output file (default stdout)")
	v := fs.Bool("v", false, "Print the code table and sizes to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	fail := func(err error) int {
		fmt.Fprintf(stderr, "huff: %v\n", err)
		return 1
	}

	opts := options{decompress: *d, verbose: *v, stderr: stderr}
	nw, err := unitconv.ParsePrefix(*workers, unitconv.AutoParse)
	if err != nil || nw < 0 {
		return fail(fmt.Errorf("invalid -workers value %q", *workers))
	}
	np, err := unitconv.ParsePrefix(*parallel, unitconv.AutoParse)
	if err != nil || np < 0 {
		return fail(fmt.Errorf("invalid -parallel value %q", *parallel))
	}
	opts.conf.Workers, opts.conf.ParallelLines = int(nw), int(np)

	input, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return fail(err)
	}

	var output []byte
	switch *tokens {
	case "char":
		output, err = process(opts, input, huffman.CharFreqs, huffman.Chars, huffman.JoinChars)
	case "word":
		output, err = process(opts, input, huffman.WordFreqs, huffman.Words, huffman.JoinWords)
	case "byte":
		output, err = process(opts, input, huffman.ByteFreqs, huffman.Bytes, huffman.JoinBytes)
	default:
		err = fmt.Errorf("unknown token type %q", *tokens)
	}
	if err != nil {
		return fail(err)
	}

	if *out == "" {
		_, err = stdout.Write(output)
	} else {
		err = os.WriteFile(*out, output, 0664)
	}
	if err != nil {
		return fail(err)
	}
	return 0
}

func readInput(file string, stdin io.Reader) ([]byte, error) {
	if file == "" || file == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(file)
}

// process compresses or decompresses input. Lines are separated by '\n' and
// a trailing newline is kept as a final empty line, so decompression gives
// back the exact input.
func process[T huffman.Token](opts options, input []byte, freqs huffman.FreqFunc[T], split huffman.TokenFunc[T], join huffman.JoinFunc[T]) ([]byte, error) {
	if opts.decompress {
		p, err := huffman.UnmarshalPayload[T](input)
		if err != nil {
			return nil, err
		}
		lines, err := p.Decode(join, &opts.conf)
		if err != nil {
			return nil, err
		}
		output := []byte(strings.Join(lines, "\n"))
		if opts.verbose {
			report(opts.stderr, p, nil, len(output), len(input))
		}
		return output, nil
	}

	lines := strings.Split(string(input), "\n")
	p, err := huffman.Encode(lines, freqs, split, &opts.conf)
	if err != nil {
		return nil, err
	}
	output, err := p.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if opts.verbose {
		report(opts.stderr, p, freqs(lines), len(input), len(output))
	}
	return output, nil
}

func report[T huffman.Token](w io.Writer, p *huffman.Payload[T], freqs map[T]uint64, rawSize, compSize int) {
	pr := message.NewPrinter(language.English)
	fmt.Fprintln(w, prefix.FormatCodes[T](p.Codes, freqs))
	if freqs != nil {
		pr.Fprintf(w, "expected length: %.3f bits/token\n", p.Codes.ExpectedLength(freqs))
	}
	pr.Fprintf(w, "tokens: %d\n", len(p.Codes))
	pr.Fprintf(w, "lines:  %d\n", len(p.Lines))
	pr.Fprintf(w, "raw:    %d bytes (%sB)\n", rawSize, unitconv.FormatPrefix(float64(rawSize), unitconv.Base1024, 2))
	pr.Fprintf(w, "packed: %d bytes (%sB)\n", compSize, unitconv.FormatPrefix(float64(compSize), unitconv.Base1024, 2))
	if compSize > 0 {
		pr.Fprintf(w, "ratio:  %.2fx\n", float64(rawSize)/float64(compSize))
	}
}
