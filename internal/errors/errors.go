// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package errors implements the coded error type used by this repository.
//
// Every failure reported across the public API is an Error whose Code
// classifies it. Callers are expected to switch on the class, not on the
// message, since messages carry the offending line index or token.
package errors

import (
	stderrors "errors"
	"strings"
)

const (
	// Unknown indicates that there is no classification for this error.
	Unknown = iota

	// Internal indicates that this error is due to an internal bug.
	// Users should file a issue report if this type of error is encountered.
	Internal

	// Invalid indicates that this error is due to the user misusing the API
	// and is indicative of a bug on the user's part.
	Invalid

	// EmptyInput indicates that there were no tokens to build a tree from.
	EmptyInput

	// MissingCode indicates that the tokenizer produced a token that has no
	// entry in the code table.
	MissingCode

	// Truncated indicates that a bit sequence ended in the middle of a code.
	Truncated

	// InvalidCode indicates that a bit sequence does not correspond to any
	// valid code, or that a code table is not a usable prefix code.
	InvalidCode

	// Serialization indicates that a payload could not be encoded or parsed.
	Serialization
)

var codeMap = map[int]string{
	Unknown:       "unknown error",
	Internal:      "internal error",
	Invalid:       "invalid argument",
	EmptyInput:    "empty input",
	MissingCode:   "missing code",
	Truncated:     "truncated code",
	InvalidCode:   "invalid code",
	Serialization: "serialization error",
}

type Error struct {
	Code int    // The error type
	Pkg  string // Name of the package where the error originated
	Msg  string // Descriptive message about the error (optional)
	Err  error  // Underlying cause (optional)
}

func (e Error) Error() string {
	var ss []string
	for _, s := range []string{e.Pkg, codeMap[e.Code], e.Msg} {
		if s != "" {
			ss = append(ss, s)
		}
	}
	if e.Err != nil {
		ss = append(ss, e.Err.Error())
	}
	return strings.Join(ss, ": ")
}

func (e Error) Unwrap() error { return e.Err }

// Is reports whether target is an Error of the same class.
// This allows a bare Error{Code: c} to act as a sentinel for errors.Is.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

func (e Error) IsInternal() bool      { return e.Code == Internal }
func (e Error) IsInvalid() bool       { return e.Code == Invalid }
func (e Error) IsEmptyInput() bool    { return e.Code == EmptyInput }
func (e Error) IsMissingCode() bool   { return e.Code == MissingCode }
func (e Error) IsTruncated() bool     { return e.Code == Truncated }
func (e Error) IsInvalidCode() bool   { return e.Code == InvalidCode }
func (e Error) IsSerialization() bool { return e.Code == Serialization }

func IsInternal(err error) bool      { return isCode(err, Internal) }
func IsInvalid(err error) bool       { return isCode(err, Invalid) }
func IsEmptyInput(err error) bool    { return isCode(err, EmptyInput) }
func IsMissingCode(err error) bool   { return isCode(err, MissingCode) }
func IsTruncated(err error) bool     { return isCode(err, Truncated) }
func IsInvalidCode(err error) bool   { return isCode(err, InvalidCode) }
func IsSerialization(err error) bool { return isCode(err, Serialization) }

func isCode(err error, code int) bool {
	var cerr Error
	return stderrors.As(err, &cerr) && cerr.Code == code
}
