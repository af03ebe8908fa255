// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_kp_lib

package bench

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/zstd"
)

func init() {
	RegisterEncoder("flate",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := flate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("flate",
		func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
	RegisterEncoder("zstd",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(lvl)))
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder("zstd",
		func(r io.Reader) io.ReadCloser {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return errReader{err}
			}
			return zr.IOReadCloser()
		})
	RegisterEncoder("huff0",
		func(w io.Writer, _ int) io.WriteCloser {
			return &huff0Writer{w: w}
		})
	RegisterDecoder("huff0",
		func(r io.Reader) io.ReadCloser {
			data, err := io.ReadAll(r)
			if err != nil {
				return errReader{err}
			}
			out, err := huff0Decode(data)
			if err != nil {
				return errReader{err}
			}
			return io.NopCloser(bytes.NewReader(out))
		})
}

// Blocks produced by huff0Writer are framed as a mode byte followed by the
// uvarint length of the block body.
const (
	blockRaw = iota
	blockRLE
	blockHuff0
)

// huff0Writer compresses its input as a sequence of independent huff0 blocks.
// Each block carries its own table, which makes it the closest byte level
// counterpart of a single Huffman code table.
type huff0Writer struct {
	w   io.Writer
	buf []byte
}

func (zw *huff0Writer) Write(b []byte) (int, error) {
	zw.buf = append(zw.buf, b...)
	for len(zw.buf) >= huff0.BlockSizeMax {
		if err := zw.flush(zw.buf[:huff0.BlockSizeMax]); err != nil {
			return 0, err
		}
		zw.buf = zw.buf[huff0.BlockSizeMax:]
	}
	return len(b), nil
}

func (zw *huff0Writer) Close() error {
	if len(zw.buf) == 0 {
		return nil
	}
	err := zw.flush(zw.buf)
	zw.buf = nil
	return err
}

func (zw *huff0Writer) flush(block []byte) error {
	s := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}
	out, _, err := huff0.Compress1X(block, s)
	mode := byte(blockHuff0)
	switch err {
	case nil:
	case huff0.ErrIncompressible:
		mode, out = blockRaw, block
	case huff0.ErrUseRLE:
		mode, out = blockRLE, block[:1]
	default:
		return err
	}
	hdr := binary.AppendUvarint([]byte{mode}, uint64(len(block)))
	hdr = binary.AppendUvarint(hdr, uint64(len(out)))
	if _, err := zw.w.Write(hdr); err != nil {
		return err
	}
	_, err = zw.w.Write(out)
	return err
}

func huff0Decode(data []byte) ([]byte, error) {
	var out []byte
	for len(data) > 0 {
		mode := data[0]
		rawLen, n1 := binary.Uvarint(data[1:])
		if n1 <= 0 {
			return nil, io.ErrUnexpectedEOF
		}
		bodyLen, n2 := binary.Uvarint(data[1+n1:])
		if n2 <= 0 || uint64(len(data)-1-n1-n2) < bodyLen {
			return nil, io.ErrUnexpectedEOF
		}
		body := data[1+n1+n2 : 1+n1+n2+int(bodyLen)]
		data = data[1+n1+n2+int(bodyLen):]

		switch mode {
		case blockRaw:
			out = append(out, body...)
		case blockRLE:
			if len(body) != 1 {
				return nil, io.ErrUnexpectedEOF
			}
			out = append(out, bytes.Repeat(body, int(rawLen))...)
		case blockHuff0:
			s, remain, err := huff0.ReadTable(body, nil)
			if err != nil {
				return nil, err
			}
			b, err := s.Decompress1X(remain)
			if err != nil {
				return nil, err
			}
			if uint64(len(b)) != rawLen {
				return nil, io.ErrUnexpectedEOF
			}
			out = append(out, b...)
		default:
			return nil, io.ErrUnexpectedEOF
		}
	}
	return out, nil
}
