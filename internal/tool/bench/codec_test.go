// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/dsnet/huffman/internal/testutil"
)

var testFiles = []string{"prose.txt", "unicode.txt", "logs.txt"}

// TestCodecs tests that the output of each registered encoder is a valid input
// for the decoder registered under the same name.
func TestCodecs(t *testing.T) {
	inputs := map[string][]byte{
		"empty":    nil,
		"newlines": []byte("\n\n\n"),
		"single":   []byte("x"),
		"runs":     bytes.Repeat([]byte("a"), 1<<19),
	}
	for _, fl := range testFiles {
		inputs[fl] = testutil.MustLoadFile(filepath.Join("../../../testdata", fl), -1)
	}
	// Large enough to span several huff0 blocks.
	inputs["large"] = testutil.MustLoadFile("../../../testdata/prose.txt", 1<<20)

	for name, dd := range inputs {
		t.Run(fmt.Sprintf("File:%v", name), func(t *testing.T) {
			t.Parallel()
			for _, c := range Codecs() {
				t.Run(fmt.Sprintf("Codec:%v", c), func(t *testing.T) { testCodec(t, c, dd) })
			}
		})
	}
}

func testCodec(t *testing.T, codec string, dd []byte) {
	const level = 6 // Default compression on all encoders
	de, err := compress(dd, Encoders[codec], level)
	if err != nil {
		t.Fatalf("unexpected compress error: %v", err)
	}

	bd := new(bytes.Buffer)
	zr := Decoders[codec](bytes.NewReader(de))
	if _, err := io.Copy(bd, zr); err != nil {
		t.Fatalf("unexpected Read error: %v", err)
	}
	if err := zr.Close(); err != nil {
		t.Fatalf("unexpected Close error: %v", err)
	}
	if !bytes.Equal(bd.Bytes(), dd) {
		t.Errorf("data mismatch: got %d bytes, want %d bytes", bd.Len(), len(dd))
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"huff:byte", "huff:char", "huff:word", "flate", "huff0", "xz", "zstd"}
	got := Codecs()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("codecs mismatch: got %v, want %v", got, want)
	}
}
