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

// Result is a read-only view over a Solver's memo tables. It holds a live
// reference to the solver rather than a snapshot: querying a Result after
// calling AddSeed or Solve again on the same solver reflects the new state,
// exactly as the original algorithm's inner Result class borrowed its
// enclosing solver's fields instead of copying them.
//
// A Result returned alongside a *CancelError is equally live, but its
// backing tables simply stopped growing at the point cancellation was
// observed -- every entry in them is still a valid proven fact.
type Result[T comparable, P comparable] struct {
	solver *Solver[T, P]
}

// GetResult returns the set of facts d2 such that some path edge
// (entry,d1) -> (n,d2) was proven, for any entry and d1 -- i.e. "what can
// hold at n", independent of which seed produced it. Returns an empty,
// non-nil set if n was never reached.
func (r *Result[T, P]) GetResult(n T) *IntSet {
	sg := r.solver.supergraph
	number := sg.LocalBlockNumber(n)
	proc := sg.ProcOf(n)

	out := NewIntSet()
	for _, entry := range sg.EntriesForProcedure(proc) {
		local, ok := r.solver.pathEdges[entry]
		if !ok {
			continue
		}
		if reached := local.GetReachableAny(number); reached != nil {
			out.AddAll(reached)
		}
	}
	return out
}

// GetSupergraphNodesReached returns every node of the supergraph for which
// GetResult would return a non-empty set.
func (r *Result[T, P]) GetSupergraphNodesReached() []T {
	sg := r.solver.supergraph
	var out []T
	for _, n := range sg.AllNodes() {
		if !r.GetResult(n).IsEmpty() {
			out = append(out, n)
		}
	}
	return out
}

// GetSummaryTargets returns the facts d2 such that (sp,x,d1) -> d2 is a
// recorded summary edge for the procedure containing sp and x, where sp is
// an entry, x is an exit of the same procedure, and d1 is the entry fact.
// Returns an empty, non-nil set if no such summary has been proven.
func (r *Result[T, P]) GetSummaryTargets(sp, x T, d1 int) *IntSet {
	sg := r.solver.supergraph
	proc := sg.ProcOf(sp)
	summaries, ok := r.solver.summaryEdges[proc]
	if !ok {
		return NewIntSet()
	}
	targets := summaries.GetSummaryEdges(sg.LocalBlockNumber(sp), sg.LocalBlockNumber(x), d1)
	if targets == nil {
		return NewIntSet()
	}
	return targets.Clone()
}

// GetSummarySources is not supported: the solver's summary table is
// indexed by (entry,exit,d1), and answering "which d1 summarize to d2" for
// an arbitrary d2 would require an inverted index the solver doesn't
// maintain, matching the upstream algorithm this one is modeled on.
func (r *Result[T, P]) GetSummarySources(sp, x T, d2 int) (*IntSet, error) {
	return nil, ErrUnsupported
}

// GetSeeds returns every seed the backing solver has recorded so far.
func (r *Result[T, P]) GetSeeds() []PathEdge[T] {
	return r.solver.GetSeeds()
}

// Problem returns the problem the backing solver was constructed for.
func (r *Result[T, P]) Problem() TabulationProblem[T, P] {
	return r.solver.problem
}

// Supergraph returns the supergraph the backing solver walks.
func (r *Result[T, P]) Supergraph() Supergraph[T, P] {
	return r.solver.supergraph
}

// Iterations reports how many edges the backing solver has popped off the
// worklist so far.
func (r *Result[T, P]) Iterations() int {
	return r.solver.Iterations()
}
