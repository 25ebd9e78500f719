// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ifds

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by Result.GetSummarySources, which the
// solver's memo tables cannot answer without an inverted summary index it
// doesn't maintain.
var ErrUnsupported = errors.New("ifds: operation not supported")

// CancelError is returned by Solver.Solve when the caller's context is
// canceled mid-tabulation. It carries the partial Result computed up to
// the point of cancellation, so a caller that only needs an approximation
// (e.g. a UI showing progress, or a client that times out on huge inputs)
// can still use what was found.
type CancelError[T comparable, P comparable] struct {
	// Cause is the context error that triggered cancellation.
	Cause error
	// Partial is the result reflecting every propagation performed before
	// cancellation was observed.
	Partial *Result[T, P]
}

func (e *CancelError[T, P]) Error() string {
	return fmt.Sprintf("ifds: tabulation canceled: %v", e.Cause)
}

// Unwrap exposes the underlying context error to errors.Is/errors.As.
func (e *CancelError[T, P]) Unwrap() error {
	return e.Cause
}
