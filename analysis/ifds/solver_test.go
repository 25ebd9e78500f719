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
	"errors"
	"testing"
)

// unaryFn adapts a plain function to UnaryFlowFunction.
type unaryFn func(d int) *IntSet

func (f unaryFn) Targets(d int) *IntSet { return f(d) }

// binaryFn adapts a plain function to BinaryReturnFlowFunction.
type binaryFn func(callD, exitD int) *IntSet

func (f binaryFn) Targets(callD, exitD int) *IntSet { return f(callD, exitD) }

var identityUnary UnaryFlowFunction = unaryFn(func(d int) *IntSet { return Singleton(d) })

// toyFlowMap is a FlowFunctionMap[string] whose five methods are supplied
// as closures; a nil closure falls back to identity (or, for
// ReturnFlowFunction, to "no facts reach").
type toyFlowMap struct {
	normal func(src, dst string) UnaryFlowFunction
	call   func(call, callee string) UnaryFlowFunction
	ret    func(call, exit, rs string) ReturnFlowFunction
	c2r    func(call, rs string) UnaryFlowFunction
	cn2r   func(call, rs string) UnaryFlowFunction
}

func (m *toyFlowMap) NormalFlowFunction(src, dst string) UnaryFlowFunction {
	if m.normal == nil {
		return identityUnary
	}
	return m.normal(src, dst)
}

func (m *toyFlowMap) CallFlowFunction(call, callee string) UnaryFlowFunction {
	if m.call == nil {
		return identityUnary
	}
	return m.call(call, callee)
}

func (m *toyFlowMap) ReturnFlowFunction(call, exit, rs string) ReturnFlowFunction {
	if m.ret == nil {
		return unaryFn(func(d int) *IntSet { return nil })
	}
	return m.ret(call, exit, rs)
}

func (m *toyFlowMap) CallToReturnFlowFunction(call, rs string) UnaryFlowFunction {
	if m.c2r == nil {
		return identityUnary
	}
	return m.c2r(call, rs)
}

func (m *toyFlowMap) CallNoneToReturnFlowFunction(call, rs string) UnaryFlowFunction {
	if m.cn2r == nil {
		return identityUnary
	}
	return m.cn2r(call, rs)
}

// toyProblem is a TabulationProblem[string,string] over a toyGraph, with
// every optional hook (merge, domain) defaulting to "none".
type toyProblem struct {
	sg    *toyGraph
	fm    *toyFlowMap
	seeds []PathEdge[string]
	merge MergeFunction
	dom   Domain[string]
}

func (p *toyProblem) InitialSeeds() []PathEdge[string]          { return p.seeds }
func (p *toyProblem) Supergraph() Supergraph[string, string]    { return p.sg }
func (p *toyProblem) FunctionMap() FlowFunctionMap[string]      { return p.fm }
func (p *toyProblem) MergeFunction() MergeFunction              { return p.merge }
func (p *toyProblem) Domain() Domain[string]                    { return p.dom }

// S1: a single straight-line procedure with no calls. The zero fact seeded
// at the entry should reach every node down to the exit, unchanged, since
// every normal flow function is identity.
func TestSolverSingleProcedurePassThrough(t *testing.T) {
	g := newToyGraph()
	a, b, c := g.node("p", "a"), g.node("p", "b"), g.node("p", "c")
	g.setEntry("p", a)
	g.setExit("p", c, true)
	g.chain(a, b)
	g.chain(b, c)

	problem := &toyProblem{
		sg:    g,
		fm:    &toyFlowMap{},
		seeds: []PathEdge[string]{NewPathEdge(a, ZeroFact, a, ZeroFact)},
	}

	result, err := NewSolver[string, string](problem).Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !result.GetResult(c).Contains(ZeroFact) {
		t.Fatalf("GetResult(c) = %v, want it to contain the zero fact", result.GetResult(c).AsSlice())
	}
	if !result.GetResult(b).Contains(ZeroFact) {
		t.Fatal("GetResult(b) should also contain the zero fact")
	}
}

// S2: two call sites in the same caller, both calling the same callee.
// CallToReturnFlowFunction returns nil (no bypass), so the only way a fact
// reaches either return site is through the callee's summary -- this
// exercises summary-edge recording and reuse across the second call site.
func TestSolverCrossProcedureSummaryReuse(t *testing.T) {
	g := newToyGraph()
	m0 := g.node("main", "entry")
	call1 := g.node("main", "call1")
	mid := g.node("main", "mid")
	call2 := g.node("main", "call2")
	mexit := g.node("main", "exit")
	ce := g.node("callee", "entry")
	cx := g.node("callee", "exit")

	g.setEntry("main", m0)
	g.setExit("main", mexit, true)
	g.setEntry("callee", ce)
	g.setExit("callee", cx, true)

	g.chain(m0, call1)
	rs1 := mid
	g.chain(mid, call2)
	rs2 := mexit
	g.chain(ce, cx)

	g.resolvedCall(call1, []string{ce}, []string{rs1})
	g.resolvedCall(call2, []string{ce}, []string{rs2})

	fm := &toyFlowMap{
		ret: func(call, exit, rs string) ReturnFlowFunction {
			return unaryFn(func(d int) *IntSet { return Singleton(d) })
		},
		c2r: func(call, rs string) UnaryFlowFunction {
			return unaryFn(func(d int) *IntSet { return nil })
		},
	}
	problem := &toyProblem{
		sg:    g,
		fm:    fm,
		seeds: []PathEdge[string]{NewPathEdge(m0, ZeroFact, m0, ZeroFact)},
	}

	result, err := NewSolver[string, string](problem).Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !result.GetResult(mexit).Contains(ZeroFact) {
		t.Fatalf("GetResult(exit) = %v, want it to contain the zero fact via the callee's summary",
			result.GetResult(mexit).AsSlice())
	}
	if got := result.GetSummaryTargets(ce, cx, ZeroFact); !got.Contains(ZeroFact) {
		t.Fatalf("GetSummaryTargets(callee entry, callee exit, 0) = %v, want it to contain 0", got.AsSlice())
	}
}

// S3: a callee with two exits, one a normal return and one a dead end
// (modeling an unrecovered panic). Only the return's summary should ever
// reach the caller; the dead end has no successors, so processExit returns
// before recording or propagating any summary for it.
func TestSolverMultipleExitsDeadEndNeverPropagates(t *testing.T) {
	g := newToyGraph()
	m0 := g.node("main", "call")
	rs := g.node("main", "rs")
	mexit := g.node("main", "exit")
	ce := g.node("callee", "entry")
	normalExit := g.node("callee", "normalExit")
	deadEnd := g.node("callee", "panic")

	g.setEntry("main", m0)
	g.setExit("main", mexit, true)
	g.setEntry("callee", ce)
	g.setExit("callee", normalExit, true)
	g.setExit("callee", deadEnd, false) // dead end: no successors, not a "return"

	g.chain(rs, mexit)
	g.chain(ce, normalExit) // one branch falls through to the normal return
	g.chain(ce, deadEnd)    // the other hits the dead end; it has no successors of its own

	g.resolvedCall(m0, []string{ce}, []string{rs})

	fm := &toyFlowMap{
		ret: func(call, exit, rs string) ReturnFlowFunction {
			return unaryFn(func(d int) *IntSet { return Singleton(d) })
		},
		c2r: func(string, string) UnaryFlowFunction { return unaryFn(func(int) *IntSet { return nil }) },
	}
	problem := &toyProblem{
		sg:    g,
		fm:    fm,
		seeds: []PathEdge[string]{NewPathEdge(m0, ZeroFact, m0, ZeroFact)},
	}

	result, err := NewSolver[string, string](problem).Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !result.GetResult(rs).Contains(ZeroFact) {
		t.Fatal("the normal return's summary should have reached the return site")
	}
	if !result.GetResult(mexit).Contains(ZeroFact) {
		t.Fatal("the fact should have flowed all the way to main's own exit")
	}
	// The dead end is reached from the callee's entry but has no successors
	// at all, so processExit treats it exactly like the root procedure's own
	// exit: no summary is ever propagated from it to any caller.
	if g.SuccNodes(deadEnd) != nil {
		t.Fatal("test setup error: deadEnd must have no successors")
	}
}

// S4: a binary return flow function that combines the call-site fact with
// the exit fact, something no unary return flow function could express.
// CallToReturnFlowFunction returns nil, so fact 5105 can only appear via
// the binary combination 5*1000+105.
func TestSolverBinaryReturnFlowFunction(t *testing.T) {
	g := newToyGraph()
	m0 := g.node("main", "call") // the call node is itself main's entry, for brevity
	rs := g.node("main", "rs")
	mexit := g.node("main", "exit")
	ie := g.node("id", "entry")
	ix := g.node("id", "exit")

	g.setEntry("main", m0)
	g.setExit("main", mexit, true)
	g.setEntry("id", ie)
	g.setExit("id", ix, true)

	g.chain(ie, ix)
	g.chain(rs, mexit)
	g.resolvedCall(m0, []string{ie}, []string{rs})

	fm := &toyFlowMap{
		call: func(call, callee string) UnaryFlowFunction {
			return unaryFn(func(d int) *IntSet { return Singleton(d + 100) })
		},
		ret: func(call, exit, rs string) ReturnFlowFunction {
			return binaryFn(func(callD, exitD int) *IntSet { return Singleton(callD*1000 + exitD) })
		},
		c2r: func(string, string) UnaryFlowFunction { return unaryFn(func(int) *IntSet { return nil }) },
	}
	problem := &toyProblem{
		sg:    g,
		fm:    fm,
		seeds: []PathEdge[string]{NewPathEdge(m0, 5, m0, 5)},
	}

	result, err := NewSolver[string, string](problem).Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := result.GetResult(mexit); !got.Contains(5105) {
		t.Fatalf("GetResult(exit) = %v, want it to contain 5105 (5*1000+105)", got.AsSlice())
	}
	if got := result.GetResult(rs); got.Contains(5) {
		t.Fatalf("GetResult(rs) = %v, should not contain the raw call fact 5 (no bypass installed)", got.AsSlice())
	}
}

// S5: a merge function that collapses every fact but the canonical one.
// The domain is set up so the canonical fact (1) is always dispatched
// before the other fact (2) reaching the same node, making which fact
// survives past the merge point deterministic.
type preferFact1[T comparable] struct{}

func (preferFact1[T]) HasPriorityOver(p1, p2 PathEdge[T]) bool { return p1.D2 < p2.D2 }

type collapseToOne struct{}

func (collapseToOne) Merge(preExisting *IntSet, newFact int) int {
	if newFact == 1 {
		return 1
	}
	return -1
}

func TestSolverMergeFunctionCollapsesFacts(t *testing.T) {
	g := newToyGraph()
	a, b, c := g.node("p", "a"), g.node("p", "b"), g.node("p", "c")
	g.setEntry("p", a)
	g.setExit("p", c, true)
	g.chain(a, b)
	g.chain(b, c)

	fm := &toyFlowMap{
		normal: func(src, dst string) UnaryFlowFunction {
			if src == a && dst == b {
				return unaryFn(func(d int) *IntSet { return NewIntSetOf(1, 2) })
			}
			return identityUnary
		},
	}
	problem := &toyProblem{
		sg:    g,
		fm:    fm,
		seeds: []PathEdge[string]{NewPathEdge(a, ZeroFact, a, ZeroFact)},
		merge: collapseToOne{},
		dom:   preferFact1[string]{},
	}

	result, err := NewSolver[string, string](problem).Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got := result.GetResult(b); !got.Contains(1) || !got.Contains(2) {
		t.Fatalf("GetResult(b) = %v, want both raw facts 1 and 2 recorded", got.AsSlice())
	}
	if got := result.GetResult(c); !got.Contains(1) || got.Contains(2) {
		t.Fatalf("GetResult(c) = %v, want exactly {1}: fact 2 should have been merged away before reaching c", got.AsSlice())
	}
}

// S6: a context canceled before the solver runs any worklist iteration.
// Solve must return a *CancelError wrapping the context error, together
// with a partial Result that still reflects the seed itself.
func TestSolverCancellation(t *testing.T) {
	g := newToyGraph()
	a, b := g.node("p", "a"), g.node("p", "b")
	g.setEntry("p", a)
	g.setExit("p", b, true)
	g.chain(a, b)

	problem := &toyProblem{
		sg:    g,
		fm:    &toyFlowMap{},
		seeds: []PathEdge[string]{NewPathEdge(a, ZeroFact, a, ZeroFact)},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewSolver[string, string](problem).Solve(ctx)
	if result != nil {
		t.Fatal("Solve should return a nil Result on cancellation")
	}
	var cancelErr *CancelError[string, string]
	if !errors.As(err, &cancelErr) {
		t.Fatalf("Solve error = %v, want a *CancelError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatal("errors.Is(err, context.Canceled) should hold through Unwrap")
	}
	if !cancelErr.Partial.GetResult(a).Contains(ZeroFact) {
		t.Fatal("the partial result should still reflect the seed recorded before cancellation")
	}
	if cancelErr.Partial.GetResult(b).Contains(ZeroFact) {
		t.Fatal("the partial result should not reflect work that only happens inside the worklist loop")
	}
}
