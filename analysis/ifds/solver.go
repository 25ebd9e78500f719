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
	"context"
	"fmt"
)

// Solver runs the tabulation algorithm (Reps, Horwitz, Sagiv, POPL'95) to a
// fixed point over the exploded supergraph described by a
// TabulationProblem. It owns three memo tables -- per-entry LocalPathEdges,
// per-procedure LocalSummaryEdges, per-callee-entry CallFlowEdges -- plus
// the worklist that drives propagation until they stop growing.
//
// A Solver is single-threaded and cooperative: Solve runs a tight loop on
// the calling goroutine, polling ctx exactly once per worklist iteration.
// There is no internal locking, and re-entering a Solver (via AddSeed or a
// second Solve) from another goroutine concurrently with a running Solve is
// not supported.
type Solver[T comparable, P comparable] struct {
	supergraph  Supergraph[T, P]
	functionMap FlowFunctionMap[T]
	problem     TabulationProblem[T, P]

	pathEdges     map[T]*LocalPathEdges      // keyed by entry s_p
	summaryEdges  map[P]*LocalSummaryEdges   // keyed by procedure
	callFlowEdges map[T]*CallFlowEdges       // keyed by callee entry s_p

	seeds   []PathEdge[T] // insertion-ordered, for reproducible debugging
	seedSet map[PathEdge[T]]bool

	worklist *Worklist[T]
	diag     *diagnostics
}

// Option configures a Solver at construction time.
type Option[T comparable, P comparable] func(*Solver[T, P])

// WithEvictionHook installs a hook the solver calls every `every` worklist
// iterations. It is meant for evicting auxiliary caches maintained by
// collaborators (e.g. a flow-function memoization cache) -- the hook must
// never touch the solver's own memo tables, and the solver never calls it
// for any other reason. A non-positive interval disables the hook.
func WithEvictionHook[T comparable, P comparable](every int, hook func()) Option[T, P] {
	return func(s *Solver[T, P]) {
		s.diag = newDiagnostics(every, hook)
	}
}

// NewSolver constructs a Solver for problem. It panics if problem is nil:
// that's a programming error in the caller, not a condition the solver can
// recover from.
func NewSolver[T comparable, P comparable](problem TabulationProblem[T, P], opts ...Option[T, P]) *Solver[T, P] {
	if problem == nil {
		panic("ifds: NewSolver: problem is nil")
	}

	domain := problem.Domain()
	if domain == nil {
		domain = FIFODomain[T]{}
	}

	s := &Solver[T, P]{
		supergraph:    problem.Supergraph(),
		functionMap:   problem.FunctionMap(),
		problem:       problem,
		pathEdges:     make(map[T]*LocalPathEdges),
		summaryEdges:  make(map[P]*LocalSummaryEdges),
		callFlowEdges: make(map[T]*CallFlowEdges),
		seedSet:       make(map[PathEdge[T]]bool),
		worklist:      NewWorklist[T](domain),
		diag:          newDiagnostics(0, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs the solver until the worklist drains or ctx is canceled.
//
// On success it returns a Result reflecting the fixed point. On
// cancellation it returns a nil Result and a *CancelError carrying a
// partial Result consistent with every propagation performed before
// cancellation was observed.
//
// Calling Solve again with no new seeds (via AddSeed) is a no-op: the
// worklist is already empty, so the loop exits immediately and the memo
// tables are unchanged.
func (s *Solver[T, P]) Solve(ctx context.Context) (*Result[T, P], error) {
	s.initialize()
	if err := s.forwardTabulate(ctx); err != nil {
		return nil, &CancelError[T, P]{Cause: err, Partial: &Result[T, P]{solver: s}}
	}
	return &Result[T, P]{solver: s}, nil
}

// AddSeed inserts a new seed path edge and propagates it immediately. It
// may be called between or after Solve calls to reuse summaries already
// computed for shared callees; the newly enqueued edges are only drained by
// a subsequent call to Solve. It is not safe to call concurrently with a
// running Solve.
func (s *Solver[T, P]) AddSeed(seed PathEdge[T]) {
	assertNonNegative(seed.D1, seed.D2)
	s.recordSeed(seed)
}

// GetResult returns a live view over the solver's current memo tables.
func (s *Solver[T, P]) GetResult() *Result[T, P] {
	return &Result[T, P]{solver: s}
}

// GetSeeds returns every seed recorded so far, in the order they were
// added.
func (s *Solver[T, P]) GetSeeds() []PathEdge[T] {
	out := make([]PathEdge[T], len(s.seeds))
	copy(out, s.seeds)
	return out
}

// GetSupergraph returns the supergraph this solver walks.
func (s *Solver[T, P]) GetSupergraph() Supergraph[T, P] {
	return s.supergraph
}

// GetProblem returns the problem this solver was constructed for.
func (s *Solver[T, P]) GetProblem() TabulationProblem[T, P] {
	return s.problem
}

// Iterations reports how many edges have been popped off the worklist so
// far, across every Solve call made on this solver.
func (s *Solver[T, P]) Iterations() int {
	return s.diag.Iterations()
}

func (s *Solver[T, P]) initialize() {
	for _, seed := range s.problem.InitialSeeds() {
		s.recordSeed(seed)
	}
}

func (s *Solver[T, P]) recordSeed(seed PathEdge[T]) {
	if !s.seedSet[seed] {
		s.seedSet[seed] = true
		s.seeds = append(s.seeds, seed)
	}
	s.propagate(seed.Entry, seed.D1, seed.Target, seed.D2)
}

// forwardTabulateSLRPs in the POPL'95 paper (Figure 3).
func (s *Solver[T, P]) forwardTabulate(ctx context.Context) error {
	for s.worklist.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.diag.tick()

		edge := s.worklist.Take()
		j := s.merge(edge.Entry, edge.D1, edge.Target, edge.D2)
		if j == -1 {
			continue
		}
		if j != edge.D2 {
			// The merge function collapsed the propagated fact into
			// something other than what we popped: push the merged fact
			// instead of dispatching on this one.
			s.propagate(edge.Entry, edge.D1, edge.Target, j)
			continue
		}

		switch {
		case s.supergraph.IsCall(edge.Target):
			s.processCall(edge)
		case s.supergraph.IsExit(edge.Target):
			s.processExit(edge)
		default:
			s.processNormal(edge)
		}
	}
	return nil
}

// propagate records the fact (i) -> (n,j) relative to entry, and enqueues
// it iff it wasn't already recorded. It is the only mutator of
// LocalPathEdges.
func (s *Solver[T, P]) propagate(entry T, i int, n T, j int) {
	assertNonNegative(j)
	number := s.supergraph.LocalBlockNumber(n)
	assertValidBlockNumber(number)

	local := s.localPathEdgesFor(entry)
	if !local.Contains(i, number, j) {
		local.AddPathEdge(i, number, j)
		s.worklist.Insert(NewPathEdge(entry, i, n, j))
	}
}

// merge consults the problem's merge function, if any, to collapse the
// fact about to be propagated with whatever already reaches (n,i). Returns
// -1 to mean "drop, nothing new to propagate".
func (s *Solver[T, P]) merge(entry T, i int, n T, j int) int {
	alpha := s.problem.MergeFunction()
	if alpha == nil {
		return j
	}
	local, ok := s.pathEdges[entry]
	if !ok {
		return j
	}
	preExisting := local.GetReachable(s.supergraph.LocalBlockNumber(n), i)
	if preExisting == nil || preExisting.IsEmpty() || (preExisting.Len() == 1 && preExisting.Contains(j)) {
		return j
	}
	return alpha.Merge(preExisting, j)
}

// processNormal implements lines [33-37]: propagate edge.D2 across every
// normal successor of edge.Target.
func (s *Solver[T, P]) processNormal(edge PathEdge[T]) {
	for _, m := range s.supergraph.SuccNodes(edge.Target) {
		f := s.functionMap.NormalFlowFunction(edge.Target, m)
		for _, d3 := range computeFlow(edge.D2, f).AsSlice() {
			s.propagate(edge.Entry, edge.D1, m, d3)
		}
	}
}

// processCall implements lines [14-19], extended to replay callee
// summaries as soon as they're available, to fan out over normal
// successors of a call node (for backward problems), and to apply the
// call-to-return bypass per return site.
func (s *Solver[T, P]) processCall(edge PathEdge[T]) {
	c := s.supergraph.Number(edge.Target)
	returnSites := s.supergraph.ReturnSites(edge.Target)

	for _, callee := range s.supergraph.CalledNodes(edge.Target) {
		f := s.functionMap.CallFlowFunction(edge.Target, callee)
		reached := computeFlow(edge.D2, f)
		if reached == nil {
			continue
		}

		calleeProc := s.supergraph.ProcOf(callee)
		summaries := s.summaryEdges[calleeProc] // nil until the callee has an exit
		callFlow := s.callFlowEdgesFor(callee)
		spNum := s.supergraph.LocalBlockNumber(callee)

		for _, d1 := range reached.AsSlice() {
			s.propagate(callee, d1, callee, d1)
			callFlow.AddCallEdge(c, edge.D2, d1)

			if summaries == nil {
				continue
			}
			s.replaySummaries(edge, callee, calleeProc, spNum, d1, summaries, returnSites)
		}
	}

	for _, m := range s.supergraph.NormalSuccessors(edge.Target) {
		f := s.functionMap.NormalFlowFunction(edge.Target, m)
		for _, d3 := range computeFlow(edge.D2, f).AsSlice() {
			s.propagate(edge.Entry, edge.D1, m, d3)
		}
	}

	for _, rs := range returnSites {
		var f UnaryFlowFunction
		if HasCallee[T, P](s.supergraph, rs) {
			f = s.functionMap.CallToReturnFlowFunction(edge.Target, rs)
		} else {
			f = s.functionMap.CallNoneToReturnFlowFunction(edge.Target, rs)
		}
		for _, x := range computeFlow(edge.D2, f).AsSlice() {
			s.propagate(edge.Entry, edge.D1, rs, x)
		}
	}
}

// replaySummaries propagates facts from any summary edge already recorded
// for (callee,d1) to the return sites of edge.Target that are reachable
// from the matching exit -- this is what lets the solver reuse a callee's
// summary at a second call site without recomputing the callee's body.
func (s *Solver[T, P]) replaySummaries(
	edge PathEdge[T],
	callee T,
	calleeProc P,
	spNum int,
	d1 int,
	summaries *LocalSummaryEdges,
	returnSites []T,
) {
	for _, exit := range s.supergraph.ExitsForProcedure(calleeProc) {
		xNum := s.supergraph.LocalBlockNumber(exit)
		reachedBySummary := summaries.GetSummaryEdges(spNum, xNum, d1)
		if reachedBySummary == nil {
			continue
		}
		for _, rs := range s.supergraph.SuccNodes(exit) {
			if !containsNode(returnSites, rs) {
				continue
			}
			retf := s.functionMap.ReturnFlowFunction(edge.Target, exit, rs)
			for _, d2 := range reachedBySummary.AsSlice() {
				for _, d5 := range s.applyReturnFlow(retf, edge.D2, d2).AsSlice() {
					s.propagate(edge.Entry, edge.D1, rs, d5)
				}
			}
		}
	}
}

// processExit implements lines [21-32]: record the summary edge this exit
// just proved, then propagate it to the return sites of every caller of
// edge.Entry that's known (via CallFlowEdges) to have flowed a fact into
// edge.D1.
func (s *Solver[T, P]) processExit(edge PathEdge[T]) {
	succNumbers := s.supergraph.SuccNodeNumbers(edge.Target)
	if succNumbers.IsEmpty() {
		// Return from the entry point of the supergraph: no caller to
		// propagate to.
		return
	}

	proc := s.supergraph.ProcOf(edge.Target)
	summaries := s.summaryEdgesFor(proc)
	spLocal := s.supergraph.LocalBlockNumber(edge.Entry)
	xLocal := s.supergraph.LocalBlockNumber(edge.Target)
	if !summaries.Contains(spLocal, xLocal, edge.D1, edge.D2) {
		summaries.InsertSummaryEdge(spLocal, xLocal, edge.D1, edge.D2)
	}

	for _, c := range s.supergraph.PredNodes(edge.Entry) {
		callFlow, ok := s.callFlowEdges[edge.Entry]
		if !ok {
			continue
		}
		d4 := callFlow.GetCallFlowSources(s.supergraph.Number(c), edge.D1)
		if d4 == nil {
			continue
		}
		s.propagateToReturnSites(edge, succNumbers, c, d4)
	}
}

// propagateToReturnSites is §4.1.a: for each return site of c that's
// actually reachable from edge.Target (distinct exits may have disjoint
// reachable returns, e.g. normal vs. exceptional), compute the facts
// reaching it and propagate them back into every entry of proc(c).
func (s *Solver[T, P]) propagateToReturnSites(edge PathEdge[T], succ *IntSet, c T, d4 *IntSet) {
	proc := s.supergraph.ProcOf(c)
	entries := s.supergraph.EntriesForProcedure(proc)

	for _, rs := range s.supergraph.ReturnSites(c) {
		if !succ.Contains(s.supergraph.Number(rs)) {
			continue
		}
		retf := s.functionMap.ReturnFlowFunction(c, edge.Target, rs)

		if binary, ok := retf.(BinaryReturnFlowFunction); ok {
			for _, d4v := range d4.AsSlice() {
				d5 := computeBinaryFlow(d4v, edge.D2, binary)
				s.propagateBackToEntries(entries, c, d4v, d5, rs)
			}
			continue
		}

		unary, _ := retf.(UnaryFlowFunction)
		d5 := computeFlow(edge.D2, unary)
		for _, d4v := range d4.AsSlice() {
			s.propagateBackToEntries(entries, c, d4v, d5, rs)
		}
	}
}

// propagateBackToEntries implements lines [26-28], generalized to iterate
// every entry of proc(c) instead of assuming a single one, to support
// procedures with multiple entry blocks.
func (s *Solver[T, P]) propagateBackToEntries(entries []T, c T, d4v int, d5 *IntSet, rs T) {
	for _, d5v := range d5.AsSlice() {
		for _, sp := range entries {
			d3 := s.inversePathEdges(sp, c, d4v)
			for _, d3v := range d3.AsSlice() {
				s.propagate(sp, d3v, rs, d5v)
			}
		}
	}
}

// applyReturnFlow dispatches a return flow function by its concrete type,
// mirroring the instanceof check in the original algorithm.
func (s *Solver[T, P]) applyReturnFlow(retf ReturnFlowFunction, callD, exitD int) *IntSet {
	switch f := retf.(type) {
	case BinaryReturnFlowFunction:
		return computeBinaryFlow(callD, exitD, f)
	case UnaryFlowFunction:
		return computeFlow(exitD, f)
	default:
		return nil
	}
}

// inversePathEdges returns the set of d1 such that (sp,d1) -> (n,d2) is a
// recorded path edge. sp must be an entry of proc(n).
func (s *Solver[T, P]) inversePathEdges(sp T, n T, d2 int) *IntSet {
	local, ok := s.pathEdges[sp]
	if !ok {
		return nil
	}
	return local.GetInverse(s.supergraph.LocalBlockNumber(n), d2)
}

func (s *Solver[T, P]) localPathEdgesFor(entry T) *LocalPathEdges {
	local, ok := s.pathEdges[entry]
	if !ok {
		local = NewLocalPathEdges(s.problem.MergeFunction() != nil)
		s.pathEdges[entry] = local
	}
	return local
}

func (s *Solver[T, P]) summaryEdgesFor(proc P) *LocalSummaryEdges {
	local, ok := s.summaryEdges[proc]
	if !ok {
		local = NewLocalSummaryEdges()
		s.summaryEdges[proc] = local
	}
	return local
}

func (s *Solver[T, P]) callFlowEdgesFor(calleeEntry T) *CallFlowEdges {
	local, ok := s.callFlowEdges[calleeEntry]
	if !ok {
		local = NewCallFlowEdges()
		s.callFlowEdges[calleeEntry] = local
	}
	return local
}

func containsNode[T comparable](xs []T, x T) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

func assertNonNegative(xs ...int) {
	for _, x := range xs {
		if x < 0 {
			panic(fmt.Sprintf("ifds: dataflow fact id must be non-negative, got %d", x))
		}
	}
}

func assertValidBlockNumber(n int) {
	if n < 0 {
		panic(fmt.Sprintf("ifds: local block number must be non-negative, got %d", n))
	}
}
