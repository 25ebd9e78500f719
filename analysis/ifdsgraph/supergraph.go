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
	"github.com/flowlab-dev/ifds-go/analysis/ifds"
	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Supergraph implements ifds.Supergraph[*Node, *ssa.Function] over a built
// SSA program and a resolved call graph. Build one with BuildSupergraph.
type Supergraph struct {
	prog *ssa.Program
	cg   *callgraph.Graph

	allNodes []*Node
	known    map[*Node]struct{}

	entry      map[*ssa.Function]*Node
	exits      map[*ssa.Function][]*Node
	localBlock map[*ssa.Function]map[int]*Node

	chainSucc map[*Node][]*Node
	chainPred map[*Node][]*Node

	callees  map[*Node][]*Node
	calledBy map[*ssa.Function][]*Node

	returnSucc map[*Node][]*Node
	returnPred map[*Node][]*Node
}

// BuildSupergraph constructs a Supergraph over every function in prog with
// a body, using cg to resolve call-site callees.
func BuildSupergraph(prog *ssa.Program, cg *callgraph.Graph) *Supergraph {
	sg := &Supergraph{
		prog:       prog,
		cg:         cg,
		known:      make(map[*Node]struct{}),
		entry:      make(map[*ssa.Function]*Node),
		exits:      make(map[*ssa.Function][]*Node),
		localBlock: make(map[*ssa.Function]map[int]*Node),
		chainSucc:  make(map[*Node][]*Node),
		chainPred:  make(map[*Node][]*Node),
		callees:    make(map[*Node][]*Node),
		calledBy:   make(map[*ssa.Function][]*Node),
		returnSucc: make(map[*Node][]*Node),
		returnPred: make(map[*Node][]*Node),
	}

	blockNodes := make(map[*ssa.BasicBlock][]*Node)
	callNodeBySite := make(map[ssa.CallInstruction]*Node)

	for fn := range ssautil.AllFunctions(prog) {
		if fn.Blocks == nil {
			continue
		}
		local := 0
		sg.localBlock[fn] = make(map[int]*Node)
		for bi, b := range fn.Blocks {
			nodes := make([]*Node, len(b.Instrs))
			for idx, instr := range b.Instrs {
				n := &Node{Fn: fn, Block: b, Index: idx, Instr: instr, global: len(sg.allNodes), local: local}
				sg.allNodes = append(sg.allNodes, n)
				sg.known[n] = struct{}{}
				sg.localBlock[fn][local] = n
				nodes[idx] = n
				blockNodes[b] = nodes
				local++

				if bi == 0 && idx == 0 {
					sg.entry[fn] = n
				}
				if n.isReturn() || n.isPanic() {
					sg.exits[fn] = append(sg.exits[fn], n)
				}
				if call, ok := instr.(*ssa.Call); ok {
					callNodeBySite[call] = n
				}
			}
		}
	}

	for fn := range ssautil.AllFunctions(prog) {
		if fn.Blocks == nil {
			continue
		}
		for _, b := range fn.Blocks {
			nodes := blockNodes[b]
			for idx, n := range nodes {
				var succs []*Node
				if idx+1 < len(nodes) {
					succs = []*Node{nodes[idx+1]}
				} else {
					for _, sb := range b.Succs {
						if sn := blockNodes[sb]; len(sn) > 0 {
							succs = append(succs, sn[0])
						}
					}
				}
				sg.chainSucc[n] = succs
				for _, s := range succs {
					sg.chainPred[s] = append(sg.chainPred[s], n)
				}
			}
		}
	}

	for _, cgNode := range sg.cg.Nodes {
		for _, edge := range cgNode.Out {
			call, ok := edge.Site.(*ssa.Call)
			if !ok {
				continue
			}
			callNode, ok := callNodeBySite[call]
			if !ok {
				continue
			}
			calleeEntry, ok := sg.entry[edge.Callee.Func]
			if !ok {
				continue
			}
			sg.callees[callNode] = append(sg.callees[callNode], calleeEntry)
			sg.calledBy[edge.Callee.Func] = append(sg.calledBy[edge.Callee.Func], callNode)
		}
	}

	for fn, exits := range sg.exits {
		callers := sg.calledBy[fn]
		for _, x := range exits {
			if !x.isReturn() {
				continue
			}
			var rs []*Node
			for _, c := range callers {
				rs = append(rs, sg.chainSucc[c]...)
			}
			sg.returnSucc[x] = rs
		}
	}

	for call, calleeEntries := range sg.callees {
		for _, rs := range sg.chainSucc[call] {
			for _, ce := range calleeEntries {
				for _, x := range sg.exits[ce.Fn] {
					if x.isReturn() {
						sg.returnPred[rs] = append(sg.returnPred[rs], x)
					}
				}
			}
		}
	}
	for n := range sg.allNodes {
		c := sg.allNodes[n]
		if !c.isCall() || len(sg.callees[c]) > 0 {
			continue
		}
		for _, rs := range sg.chainSucc[c] {
			sg.returnPred[rs] = append(sg.returnPred[rs], c)
		}
	}

	return sg
}

// IsCall reports whether n is a direct function call.
func (sg *Supergraph) IsCall(n *Node) bool { return n.isCall() }

// IsExit reports whether n is a return or an unrecovered panic.
func (sg *Supergraph) IsExit(n *Node) bool { return n.isReturn() || n.isPanic() }

// SuccNodes returns n's successors. A panic has none; a return's are the
// return sites of every resolved caller; a call's are none (use
// CalledNodes/ReturnSites instead); everything else chains to the next
// instruction or the first instruction of each successor block.
func (sg *Supergraph) SuccNodes(n *Node) []*Node {
	switch {
	case n.isPanic():
		return nil
	case n.isReturn():
		return sg.returnSucc[n]
	case n.isCall():
		return nil
	default:
		return sg.chainSucc[n]
	}
}

// PredNodes returns n's predecessors: the call sites of proc(n) if n is an
// entry, the structural predecessors of a return site (the resolved
// callees' exits, or the call node itself if unresolved) if n is one, and
// the ordinary chain predecessor otherwise.
func (sg *Supergraph) PredNodes(n *Node) []*Node {
	if sg.entry[n.Fn] == n {
		return sg.calledBy[n.Fn]
	}
	if preds, ok := sg.returnPred[n]; ok {
		return preds
	}
	return sg.chainPred[n]
}

// CalledNodes returns the entries of callNode's resolved callees.
func (sg *Supergraph) CalledNodes(callNode *Node) []*Node { return sg.callees[callNode] }

// NormalSuccessors returns the fallthrough node(s) after callNode.
func (sg *Supergraph) NormalSuccessors(callNode *Node) []*Node { return sg.chainSucc[callNode] }

// ReturnSites returns the node(s) control returns to after callNode.
func (sg *Supergraph) ReturnSites(callNode *Node) []*Node { return sg.chainSucc[callNode] }

// EntriesForProcedure returns fn's single entry node.
func (sg *Supergraph) EntriesForProcedure(fn *ssa.Function) []*Node {
	if e, ok := sg.entry[fn]; ok {
		return []*Node{e}
	}
	return nil
}

// ExitsForProcedure returns every return and panic node of fn.
func (sg *Supergraph) ExitsForProcedure(fn *ssa.Function) []*Node { return sg.exits[fn] }

// AllNodes returns every node of the supergraph, in construction order.
func (sg *Supergraph) AllNodes() []*Node { return sg.allNodes }

// Number returns n's global number.
func (sg *Supergraph) Number(n *Node) int { return n.global }

// LocalBlockNumber returns n's number local to proc(n).
func (sg *Supergraph) LocalBlockNumber(n *Node) int { return n.local }

// LocalBlock is the inverse of LocalBlockNumber within fn.
func (sg *Supergraph) LocalBlock(fn *ssa.Function, localNumber int) *Node {
	return sg.localBlock[fn][localNumber]
}

// SuccNodeNumbers returns the global numbers of n's successors, or nil if
// n has none.
func (sg *Supergraph) SuccNodeNumbers(n *Node) *ifds.IntSet {
	succs := sg.SuccNodes(n)
	if len(succs) == 0 {
		return nil
	}
	s := ifds.NewIntSet()
	for _, m := range succs {
		s.Insert(sg.Number(m))
	}
	return s
}

// ProcOf returns the function n belongs to.
func (sg *Supergraph) ProcOf(n *Node) *ssa.Function { return n.Fn }

// ContainsNode reports whether n was allocated by this Supergraph.
func (sg *Supergraph) ContainsNode(n *Node) bool {
	_, ok := sg.known[n]
	return ok
}
