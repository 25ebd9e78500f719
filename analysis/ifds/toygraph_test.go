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

// toyGraph is a hand-built Supergraph[string,string] used by the solver's
// scenario tests. Nodes are "proc:label" strings; procedures are plain
// strings. It exists purely to drive Solver through specific shapes
// (multiple exits, unresolved calls, summary reuse) without needing a real
// program.
type toyGraph struct {
	order []string

	proc   map[string]string
	global map[string]int
	local  map[string]int

	entries map[string][]string
	exits   map[string][]string

	isCallSet   map[string]bool
	isExitSet   map[string]bool
	isReturnSet map[string]bool // subset of isExitSet: exits that are normal returns, not dead ends

	succ map[string][]string
	pred map[string][]string

	calledNodes map[string][]string
	normalSucc  map[string][]string
	returnSites map[string][]string
	calledBy    map[string][]string
}

func newToyGraph() *toyGraph {
	return &toyGraph{
		proc:        make(map[string]string),
		global:      make(map[string]int),
		local:       make(map[string]int),
		entries:     make(map[string][]string),
		exits:       make(map[string][]string),
		isCallSet:   make(map[string]bool),
		isExitSet:   make(map[string]bool),
		isReturnSet: make(map[string]bool),
		succ:        make(map[string][]string),
		pred:        make(map[string][]string),
		calledNodes: make(map[string][]string),
		normalSucc:  make(map[string][]string),
		returnSites: make(map[string][]string),
		calledBy:    make(map[string][]string),
	}
}

// node allocates (or returns the existing) node "proc:label".
func (g *toyGraph) node(proc, label string) string {
	id := proc + ":" + label
	if _, ok := g.proc[id]; ok {
		return id
	}
	local := 0
	for _, n := range g.order {
		if g.proc[n] == proc {
			local++
		}
	}
	g.proc[id] = proc
	g.global[id] = len(g.order)
	g.local[id] = local
	g.order = append(g.order, id)
	return id
}

func (g *toyGraph) setEntry(proc, id string) { g.entries[proc] = append(g.entries[proc], id) }

// setExit marks id as an exit of proc. isReturn distinguishes a normal
// return (which propagates a summary on to callers) from a dead end like
// an unrecovered panic (no successors, so no summary ever reaches a
// caller).
func (g *toyGraph) setExit(proc, id string, isReturn bool) {
	g.exits[proc] = append(g.exits[proc], id)
	g.isExitSet[id] = true
	if isReturn {
		g.isReturnSet[id] = true
	}
}

// chain records an ordinary intraprocedural successor edge.
func (g *toyGraph) chain(from, to string) {
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

// resolvedCall marks call as a call node with resolved callees, and wires
// each callee's normal-return exits back to the given return sites (so
// PredNodes on a return site sees the callee's exit, and HasCallee reports
// true). A callee's dead-end exits are deliberately left unconnected.
func (g *toyGraph) resolvedCall(call string, callees []string, returnSites []string) {
	g.isCallSet[call] = true
	g.calledNodes[call] = callees
	g.returnSites[call] = returnSites
	for _, ce := range callees {
		calleeProc := g.proc[ce]
		g.calledBy[calleeProc] = append(g.calledBy[calleeProc], call)
		for _, x := range g.exits[calleeProc] {
			if !g.isReturnSet[x] {
				continue
			}
			for _, rs := range returnSites {
				g.succ[x] = append(g.succ[x], rs)
				g.pred[rs] = append(g.pred[rs], x)
			}
		}
	}
}

// unresolvedCall marks call as a call node with no resolvable callee.
func (g *toyGraph) unresolvedCall(call string, returnSites []string) {
	g.isCallSet[call] = true
	g.returnSites[call] = returnSites
	for _, rs := range returnSites {
		g.pred[rs] = append(g.pred[rs], call)
	}
}

func (sg *toyGraph) IsCall(n string) bool { return sg.isCallSet[n] }
func (sg *toyGraph) IsExit(n string) bool { return sg.isExitSet[n] }

func (sg *toyGraph) SuccNodes(n string) []string { return sg.succ[n] }

func (sg *toyGraph) PredNodes(n string) []string {
	proc := sg.proc[n]
	for _, e := range sg.entries[proc] {
		if e == n {
			return sg.calledBy[proc]
		}
	}
	return sg.pred[n]
}

func (sg *toyGraph) CalledNodes(callNode string) []string      { return sg.calledNodes[callNode] }
func (sg *toyGraph) NormalSuccessors(callNode string) []string { return sg.normalSucc[callNode] }
func (sg *toyGraph) ReturnSites(callNode string) []string      { return sg.returnSites[callNode] }
func (sg *toyGraph) EntriesForProcedure(p string) []string     { return sg.entries[p] }
func (sg *toyGraph) ExitsForProcedure(p string) []string       { return sg.exits[p] }
func (sg *toyGraph) AllNodes() []string                        { return sg.order }
func (sg *toyGraph) Number(n string) int                       { return sg.global[n] }
func (sg *toyGraph) LocalBlockNumber(n string) int              { return sg.local[n] }

func (sg *toyGraph) LocalBlock(p string, localNumber int) string {
	for n, l := range sg.local {
		if l == localNumber && sg.proc[n] == p {
			return n
		}
	}
	return ""
}

func (sg *toyGraph) SuccNodeNumbers(n string) *IntSet {
	succ := sg.succ[n]
	if len(succ) == 0 {
		return nil
	}
	s := NewIntSet()
	for _, m := range succ {
		s.Insert(sg.global[m])
	}
	return s
}

func (sg *toyGraph) ProcOf(n string) string     { return sg.proc[n] }
func (sg *toyGraph) ContainsNode(n string) bool { _, ok := sg.proc[n]; return ok }
