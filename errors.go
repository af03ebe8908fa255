// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

import (
	"fmt"

	"github.com/dsnet/huffman/internal/errors"
)

// Errors returned by this package are matched by class with errors.Is.
// The returned errors carry the offending line index or token in their
// message.
var (
	// ErrEmptyInput reports that the frequency table had no tokens.
	ErrEmptyInput error = errors.Error{Code: errors.EmptyInput}

	// ErrMissingCode reports that the tokenizer produced a token with no code,
	// meaning the frequency strategy and tokenizer disagree.
	ErrMissingCode error = errors.Error{Code: errors.MissingCode}

	// ErrTruncatedCode reports that a line's bits ended in the middle of a code.
	ErrTruncatedCode error = errors.Error{Code: errors.Truncated}

	// ErrInvalidCode reports bits that match no code, or a code table that is
	// not a usable prefix code.
	ErrInvalidCode error = errors.Error{Code: errors.InvalidCode}

	// ErrSerialization reports a payload that could not be encoded or parsed.
	ErrSerialization error = errors.Error{Code: errors.Serialization}

	// ErrInvalidInput reports misuse of the API, such as a nil strategy or
	// frequencies whose total overflows.
	ErrInvalidInput error = errors.Error{Code: errors.Invalid}
)

func IsEmptyInput(err error) bool    { return errors.IsEmptyInput(err) }
func IsMissingCode(err error) bool   { return errors.IsMissingCode(err) }
func IsTruncatedCode(err error) bool { return errors.IsTruncated(err) }
func IsInvalidCode(err error) bool   { return errors.IsInvalidCode(err) }
func IsSerialization(err error) bool { return errors.IsSerialization(err) }

func errorf(c int, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...)}
}

func errWrap(c int, err error, f string, a ...interface{}) error {
	return errors.Error{Code: c, Pkg: "huffman", Msg: fmt.Sprintf(f, a...), Err: err}
}

// lineError prefixes the message of err with the line index.
func lineError(i int, err error) error {
	if e, ok := err.(errors.Error); ok {
		e.Msg = fmt.Sprintf("line %d: %s", i, e.Msg)
		return e
	}
	return err
}
