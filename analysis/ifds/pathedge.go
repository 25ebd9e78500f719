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

import "fmt"

// ZeroFact is the conventional id of the zero/bottom dataflow fact.
const ZeroFact = 0

// PathEdge is the solver-internal assertion "if at procedure entry Entry
// fact D1 held, then at Target fact D2 holds". It is immutable once
// created; two path edges are equal iff all four components are equal,
// which Go gives us for free since T is constrained to be comparable.
type PathEdge[T comparable] struct {
	Entry  T
	D1     int
	Target T
	D2     int
}

// NewPathEdge builds a path edge from its four components.
func NewPathEdge[T comparable](entry T, d1 int, target T, d2 int) PathEdge[T] {
	return PathEdge[T]{Entry: entry, D1: d1, Target: target, D2: d2}
}

// String renders the edge in the "(entry,d1) -> (target,d2)" form used
// throughout the dataflow literature.
func (e PathEdge[T]) String() string {
	return fmt.Sprintf("(%v,%d) -> (%v,%d)", e.Entry, e.D1, e.Target, e.D2)
}
