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

package ifdsgraph

import (
	"runtime"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/flowlab-dev/ifds-go/analysis/ifds"
	"github.com/flowlab-dev/ifds-go/internal/funcutil"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// valueDomain numbers every SSA value that can hold a dataflow fact: each
// function's parameters and every value-producing instruction in its body.
// Constants are excluded -- they carry no definition site worth tracking.
// Fact 0 is reserved as ifds.ZeroFact and never assigned to a value.
type valueDomain struct {
	idOf    map[ssa.Value]int
	valueOf []ssa.Value // valueOf[id], id >= 1
}

// buildValueDomain numbers every value in prog. Each function's values are
// collected independently and in parallel with funcutil.MapParallel, then
// merged in a fixed, sorted order so that numbering (and therefore solver
// behavior) is reproducible across runs.
func buildValueDomain(prog *ssa.Program) *valueDomain {
	var funcs []*ssa.Function
	for fn := range ssautil.AllFunctions(prog) {
		if fn.Blocks != nil {
			funcs = append(funcs, fn)
		}
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].String() < funcs[j].String() })

	perFunc := funcutil.MapParallel(funcs, func(fn *ssa.Function) []ssa.Value {
		var vs []ssa.Value
		for _, p := range fn.Params {
			vs = append(vs, p)
		}
		for _, b := range fn.Blocks {
			for _, instr := range b.Instrs {
				v, ok := instr.(ssa.Value)
				if !ok {
					continue
				}
				if _, isConst := v.(*ssa.Const); isConst {
					continue
				}
				vs = append(vs, v)
			}
		}
		return vs
	}, runtime.NumCPU())

	dom := &valueDomain{idOf: make(map[ssa.Value]int), valueOf: []ssa.Value{nil}}
	for _, vs := range perFunc {
		for _, v := range vs {
			id := len(dom.valueOf)
			dom.idOf[v] = id
			dom.valueOf = append(dom.valueOf, v)
		}
	}
	return dom
}

func (d *valueDomain) factOf(v ssa.Value) (int, bool) {
	id, ok := d.idOf[v]
	return id, ok
}

// genFlow passes every incoming fact through unchanged and additionally
// generates gen, if present -- the flow function for an ordinary
// instruction that defines a new SSA value, and (reused) for an unresolved
// call, which conservatively generates a fresh fact for its own result.
type genFlow struct {
	gen    int
	hasGen bool
}

func (f *genFlow) Targets(d int) *ifds.IntSet {
	out := ifds.Singleton(d)
	if f.hasGen {
		out.Insert(f.gen)
	}
	return out
}

// identityFlow passes every incoming fact through unchanged. It carries no
// state, so a single instance serves every call site.
type identityFlow struct{}

func (identityFlow) Targets(d int) *ifds.IntSet { return ifds.Singleton(d) }

var sharedIdentity ifds.UnaryFlowFunction = identityFlow{}

// callFlow maps a call's argument facts onto the callee's parameter facts,
// and always lets the zero fact through so the callee body is reachable
// even when no argument carries an interesting fact.
type callFlow struct {
	argToParam map[int]int
}

func (f *callFlow) Targets(d int) *ifds.IntSet {
	out := ifds.NewIntSet()
	if d == ifds.ZeroFact {
		out.Insert(ifds.ZeroFact)
	}
	if mapped, ok := f.argToParam[d]; ok {
		out.Insert(mapped)
	}
	return out
}

// returnFlow maps the callee's returned-value fact onto the fact for the
// call's own result at the return site. Go results don't depend jointly on
// the call-site fact and the exit fact the way e.g. a taint sanitizer keyed
// on a call argument might, so this is intentionally unary; package ifds's
// own tests exercise the binary return-flow path with a synthetic problem.
type returnFlow struct {
	resultID  int
	callFact  int
	hasResult bool
}

func (f *returnFlow) Targets(d int) *ifds.IntSet {
	if f.hasResult && d == f.resultID {
		return ifds.Singleton(f.callFact)
	}
	return nil
}

type edgeKey struct{ from, to int }

// FlowFunctionMap dispatches flow functions for a ReachingDefs problem. The
// normal- and call-flow functions it builds are small, but building one
// still means a map allocation and a handful of field reads; caching the
// built function per edge avoids repeating that work every time the
// solver's worklist revisits the same edge, which it does often once
// summaries start getting reused.
type FlowFunctionMap struct {
	sg  *Supergraph
	dom *valueDomain

	normalCache *lru.Cache[edgeKey, ifds.UnaryFlowFunction]
	callCache   *lru.Cache[edgeKey, ifds.UnaryFlowFunction]
}

func newFlowFunctionMap(sg *Supergraph, dom *valueDomain, cacheSize int) *FlowFunctionMap {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	normalCache, err := lru.New[edgeKey, ifds.UnaryFlowFunction](cacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size, which we just normalized away
	}
	callCache, err := lru.New[edgeKey, ifds.UnaryFlowFunction](cacheSize)
	if err != nil {
		panic(err)
	}
	return &FlowFunctionMap{sg: sg, dom: dom, normalCache: normalCache, callCache: callCache}
}

// Purge drops every cached flow function. Wired to the solver's
// soft-eviction hook; it never touches the solver's own memo tables.
func (m *FlowFunctionMap) Purge() {
	m.normalCache.Purge()
	m.callCache.Purge()
}

func (m *FlowFunctionMap) NormalFlowFunction(src, dst *Node) ifds.UnaryFlowFunction {
	key := edgeKey{m.sg.Number(src), m.sg.Number(dst)}
	if ff, ok := m.normalCache.Get(key); ok {
		return ff
	}
	gen, hasGen := genValue(m.dom, src)
	ff := &genFlow{gen: gen, hasGen: hasGen}
	m.normalCache.Add(key, ff)
	return ff
}

func (m *FlowFunctionMap) CallFlowFunction(call, callee *Node) ifds.UnaryFlowFunction {
	key := edgeKey{m.sg.Number(call), m.sg.Number(callee)}
	if ff, ok := m.callCache.Get(key); ok {
		return ff
	}

	mapping := make(map[int]int)
	if c, ok := call.Instr.(*ssa.Call); ok {
		params := callee.Fn.Params
		for i, arg := range c.Call.Args {
			if i >= len(params) {
				break
			}
			argID, ok := m.dom.factOf(arg)
			if !ok {
				continue
			}
			paramID, ok := m.dom.factOf(params[i])
			if !ok {
				continue
			}
			mapping[argID] = paramID
		}
	}

	ff := &callFlow{argToParam: mapping}
	m.callCache.Add(key, ff)
	return ff
}

func (m *FlowFunctionMap) ReturnFlowFunction(call, exit, returnSite *Node) ifds.ReturnFlowFunction {
	ret, ok := exit.Instr.(*ssa.Return)
	c, callOK := call.Instr.(*ssa.Call)
	if !ok || !callOK || len(ret.Results) != 1 {
		return &returnFlow{}
	}
	resultID, hasResult := m.dom.factOf(ret.Results[0])
	callFactID, _ := m.dom.factOf(c)
	return &returnFlow{resultID: resultID, callFact: callFactID, hasResult: hasResult}
}

func (m *FlowFunctionMap) CallToReturnFlowFunction(call, returnSite *Node) ifds.UnaryFlowFunction {
	return sharedIdentity
}

func (m *FlowFunctionMap) CallNoneToReturnFlowFunction(call, returnSite *Node) ifds.UnaryFlowFunction {
	gen, hasGen := genValue(m.dom, call)
	return &genFlow{gen: gen, hasGen: hasGen}
}

func genValue(dom *valueDomain, n *Node) (int, bool) {
	v, ok := n.Instr.(ssa.Value)
	if !ok {
		return 0, false
	}
	if _, isConst := v.(*ssa.Const); isConst {
		return 0, false
	}
	return dom.factOf(v)
}

// ReachingDefs is a TabulationProblem computing, for every reachable
// (block, fact) pair, which SSA value definitions can reach that point.
// It seeds the solver at the entry of every function with no known static
// caller -- mains, inits, and exported entry points in whatever package
// was loaded -- each with the zero fact, which is what lets the solver
// reach the rest of the program through ordinary calls.
type ReachingDefs struct {
	sg    *Supergraph
	dom   *valueDomain
	fm    *FlowFunctionMap
	seeds []ifds.PathEdge[*Node]
}

// NewReachingDefs builds a ReachingDefs problem over sg. cacheSize bounds
// the flow-function cache FlowFunctionMap maintains; zero or negative picks
// a sensible default.
func NewReachingDefs(prog *ssa.Program, sg *Supergraph, cacheSize int) *ReachingDefs {
	dom := buildValueDomain(prog)
	fm := newFlowFunctionMap(sg, dom, cacheSize)

	var seeds []ifds.PathEdge[*Node]
	for fn, entry := range sg.entry {
		if len(sg.calledBy[fn]) == 0 {
			seeds = append(seeds, ifds.NewPathEdge(entry, ifds.ZeroFact, entry, ifds.ZeroFact))
		}
	}
	sort.Slice(seeds, func(i, j int) bool {
		return sg.Number(seeds[i].Entry) < sg.Number(seeds[j].Entry)
	})

	return &ReachingDefs{sg: sg, dom: dom, fm: fm, seeds: seeds}
}

// ValueFact returns the fact id assigned to v, if v is tracked.
func (p *ReachingDefs) ValueFact(v ssa.Value) (int, bool) { return p.dom.factOf(v) }

// ValueOf is the inverse of ValueFact.
func (p *ReachingDefs) ValueOf(fact int) ssa.Value {
	if fact <= 0 || fact >= len(p.dom.valueOf) {
		return nil
	}
	return p.dom.valueOf[fact]
}

func (p *ReachingDefs) InitialSeeds() []ifds.PathEdge[*Node] { return p.seeds }

func (p *ReachingDefs) Supergraph() ifds.Supergraph[*Node, *ssa.Function] { return p.sg }

func (p *ReachingDefs) FunctionMap() ifds.FlowFunctionMap[*Node] { return p.fm }

// MergeFunction returns nil: reaching definitions is plain distributive
// IFDS, with no need to collapse multiple facts into one.
func (p *ReachingDefs) MergeFunction() ifds.MergeFunction { return nil }

// Domain returns nil: this problem has no preferred worklist ordering, so
// the solver falls back to ifds.FIFODomain.
func (p *ReachingDefs) Domain() ifds.Domain[*Node] { return nil }

// EvictionHook returns the function to pass to ifds.WithEvictionHook to
// periodically purge this problem's flow-function cache.
func (p *ReachingDefs) EvictionHook() func() { return p.fm.Purge }
