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

// Supergraph is the interprocedural control-flow graph the solver walks:
// each procedure's CFG linked by call -> entry and exit -> return-site
// edges. T is an opaque handle to a supergraph node (typically a basic
// block); P is an opaque handle to a procedure. Both are client-owned --
// the solver never constructs one, it only asks for their relationships.
//
// Implementations are expected to be cheap and side-effect free: the
// solver calls these methods from deep inside its propagation loop.
type Supergraph[T comparable, P comparable] interface {
	// IsCall reports whether t is a call node.
	IsCall(t T) bool

	// IsExit reports whether t is an exit node of its procedure.
	IsExit(t T) bool

	// SuccNodes returns the successors of t.
	SuccNodes(t T) []T

	// PredNodes returns the predecessors of t.
	PredNodes(t T) []T

	// CalledNodes returns the entry nodes of the procedures callNode may
	// invoke.
	CalledNodes(callNode T) []T

	// NormalSuccessors returns the successors of callNode that are reached
	// by ordinary (non-call) control flow, for problems where a call node
	// also has normal outgoing edges (e.g. backward analyses).
	NormalSuccessors(callNode T) []T

	// ReturnSites returns the return sites associated with callNode. There
	// may be more than one, to model exceptional returns.
	ReturnSites(callNode T) []T

	// EntriesForProcedure returns every entry node of p. There may be more
	// than one in supergraphs that model a procedure with several possible
	// starting blocks.
	EntriesForProcedure(p P) []T

	// ExitsForProcedure returns every exit node of p.
	ExitsForProcedure(p P) []T

	// AllNodes returns every node in the supergraph.
	AllNodes() []T

	// Number returns the global number of t, unique across the whole
	// supergraph.
	Number(t T) int

	// LocalBlockNumber returns the number of t, unique within its own
	// procedure. Must be non-negative.
	LocalBlockNumber(t T) int

	// LocalBlock is the inverse of LocalBlockNumber within procedure p.
	LocalBlock(p P, localNumber int) T

	// SuccNodeNumbers returns the global numbers of the successors of t, or
	// nil if t has none (this is how the solver recognizes the exit of the
	// root procedure, which has no successors at all).
	SuccNodeNumbers(t T) *IntSet

	// ProcOf returns the procedure t belongs to.
	ProcOf(t T) P

	// ContainsNode reports whether t is a node of this supergraph.
	ContainsNode(t T) bool
}

// HasCallee reports whether returnSite has a predecessor belonging to a
// different procedure than its own -- the solver's definition of "this
// return site follows an actual call" as opposed to a call node that
// merely falls through with no resolvable callee.
func HasCallee[T comparable, P comparable](sg Supergraph[T, P], returnSite T) bool {
	owner := sg.ProcOf(returnSite)
	for _, pred := range sg.PredNodes(returnSite) {
		if sg.ProcOf(pred) != owner {
			return true
		}
	}
	return false
}
