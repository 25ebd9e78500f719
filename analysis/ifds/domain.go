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

// Domain describes the finite set of dataflow facts a TabulationProblem
// ranges over, to the extent the solver needs to know about it: ordering
// pending path edges in the worklist. Clients that don't care about
// exploration order can use FIFODomain.
type Domain[T comparable] interface {
	// HasPriorityOver reports whether p1 should be processed before p2 when
	// both are pending in the worklist. It need not be a total order; edges
	// for which neither HasPriorityOver(p1,p2) nor HasPriorityOver(p2,p1)
	// holds are considered incomparable and the heap is free to return
	// either first.
	HasPriorityOver(p1, p2 PathEdge[T]) bool
}

// FIFODomain is a Domain with no ordering preference: every comparison
// reports false, so the worklist pops edges in whatever order
// container/heap leaves them in, which is not insertion order. Useful for
// problems and tests that don't need a particular exploration order.
type FIFODomain[T comparable] struct{}

// HasPriorityOver always returns false.
func (FIFODomain[T]) HasPriorityOver(PathEdge[T], PathEdge[T]) bool { return false }
