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

// MergeFunction is an optional client operator that collapses the several
// facts reached at the same (entry,block) pair into one. Installing one
// turns the solver into a non-distributive (IDE-style) widening solver at
// the cost of IFDS precision: instead of tracking every distinct fact, the
// solver tracks the single fact alpha.Merge converges to.
type MergeFunction interface {
	// Merge returns the fact to propagate in place of newFact, given the
	// facts already recorded at the target. Returning -1 means "nothing new
	// to propagate".
	Merge(preExisting *IntSet, newFact int) int
}

// TabulationProblem bundles everything the solver needs from the client:
// where to start, the supergraph to walk, the flow functions to apply, and
// optionally a merge function and a fact-priority ordering.
type TabulationProblem[T comparable, P comparable] interface {
	// InitialSeeds returns the path edges the solver starts from.
	InitialSeeds() []PathEdge[T]

	// Supergraph returns the exploded supergraph underlying the problem.
	Supergraph() Supergraph[T, P]

	// FunctionMap returns the flow function dispatcher for the problem.
	FunctionMap() FlowFunctionMap[T]

	// MergeFunction returns the problem's merge operator, or nil if the
	// problem is a plain distributive (IFDS) problem.
	MergeFunction() MergeFunction

	// Domain returns the fact domain, consulted only for worklist
	// ordering.
	Domain() Domain[T]
}
