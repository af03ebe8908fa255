// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"io"
	"strings"

	"github.com/dsnet/huffman"
)

// Streams are split on '\n' so that joining the decoded lines with '\n'
// gives back the exact input. Inputs without any token, such as an empty
// stream, are stored raw behind a one byte header.
const (
	modeRaw = iota
	modeHuffman
)

func init() {
	registerLines("huff:char", huffman.CharFreqs, huffman.Chars, huffman.JoinChars)
	registerLines("huff:word", huffman.WordFreqs, huffman.Words, huffman.JoinWords)
	registerLines("huff:byte", huffman.ByteFreqs, huffman.Bytes, huffman.JoinBytes)
}

func registerLines[T huffman.Token](name string, freqs huffman.FreqFunc[T], split huffman.TokenFunc[T], join huffman.JoinFunc[T]) {
	// The level is ignored since Huffman coding has no effort setting.
	RegisterEncoder(name,
		func(w io.Writer, _ int) io.WriteCloser {
			return &lineWriter[T]{w: w, freqs: freqs, split: split}
		})
	RegisterDecoder(name,
		func(r io.Reader) io.ReadCloser {
			data, err := io.ReadAll(r)
			if err != nil {
				return errReader{err}
			}
			out, err := decodeLines(data, join)
			if err != nil {
				return errReader{err}
			}
			return io.NopCloser(strings.NewReader(out))
		})
}

// lineWriter buffers the whole stream, since the code table depends on every
// line, and compresses it on Close.
type lineWriter[T huffman.Token] struct {
	w     io.Writer
	buf   bytes.Buffer
	freqs huffman.FreqFunc[T]
	split huffman.TokenFunc[T]
}

func (lw *lineWriter[T]) Write(b []byte) (int, error) { return lw.buf.Write(b) }

func (lw *lineWriter[T]) Close() error {
	lines := strings.Split(lw.buf.String(), "\n")
	data, err := huffman.Compress(lines, lw.freqs, lw.split, nil)
	switch {
	case huffman.IsEmptyInput(err):
		_, err = lw.w.Write(append([]byte{modeRaw}, lw.buf.Bytes()...))
		return err
	case err != nil:
		return err
	}
	if _, err := lw.w.Write([]byte{modeHuffman}); err != nil {
		return err
	}
	_, err = lw.w.Write(data)
	return err
}

func decodeLines[T huffman.Token](data []byte, join huffman.JoinFunc[T]) (string, error) {
	if len(data) == 0 {
		return "", io.ErrUnexpectedEOF
	}
	if data[0] == modeRaw {
		return string(data[1:]), nil
	}
	lines, err := huffman.Decompress(data[1:], join, nil)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
