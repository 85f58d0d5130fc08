// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errs defines the error taxonomy shared by the sampler, its
// façade, and the tooling built on top of it.
//
// The severity enum (Fatal/Warn/Log) used elsewhere in this codebase's
// error package is replaced here by the three argument-kinds the sampler
// façade actually rejects.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies why a public call was rejected.
type Kind uint8

const (
	// None is the zero value; never attached to a returned error.
	None Kind = iota
	// OutOfBounds marks an index outside [1, Len(s)].
	OutOfBounds
	// InvalidWeight marks a weight that is negative, NaN, infinite,
	// subnormal, or otherwise outside the accepted domain.
	InvalidWeight
	// NotResizable marks a resize rejected by a non-growable storage
	// variant, or a mutation that would grow a bounded arena past its
	// capacity.
	NotResizable
)

var kindNames = map[Kind]string{
	None:          "",
	OutOfBounds:   "out_of_bounds",
	InvalidWeight: "invalid_weight",
	NotResizable:  "not_resizable",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// E is the unified error type returned by every façade call. Message is
// the formatted primary text; Extra is optional caller-supplied context;
// Cause chains an underlying error (wrap). All three Kinds arise from
// argument validation performed before any state mutation — state is
// unchanged whenever an *E is returned.
type E struct {
	Kind    Kind
	Message string
	Extra   string
	Cause   error
}

func (e *E) Error() string {
	base := fmt.Sprintf("kind=%s %s", e.Kind, e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

func (e *E) Unwrap() error { return e.Cause }

// Is lets errors.Is match on Kind alone, so callers can compare against a
// bare &E{Kind: OutOfBounds} without caring about Message/Extra/Cause.
func (e *E) Is(target error) bool {
	var t *E
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

func New(kind Kind, msg string) *E {
	return &E{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, a ...any) *E {
	return New(kind, fmt.Sprintf(format, a...))
}

func NewWithExtra(kind Kind, msg, extra string) *E {
	e := New(kind, msg)
	e.Extra = extra
	return e
}

// Wrap attaches a Kind and message to a lower-level cause.
func Wrap(kind Kind, cause error, msg string) *E {
	e := New(kind, msg)
	e.Cause = cause
	return e
}

// AsE unwraps err into *E if possible.
func AsE(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or None if err is not (or does not wrap) an *E.
func KindOf(err error) Kind {
	if e, ok := AsE(err); ok {
		return e.Kind
	}
	return None
}
