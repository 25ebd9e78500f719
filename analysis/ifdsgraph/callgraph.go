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
	"fmt"

	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/cha"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/callgraph/vta"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// CallgraphAlgo selects the call-graph construction algorithm used to
// resolve the callees of each call site before building a Supergraph.
type CallgraphAlgo string

const (
	// ClassHierarchyAnalysis is a coarse, fast, sound over-approximation.
	// See "Optimization of Object-Oriented Programs Using Static Class
	// Hierarchy Analysis", Dean, Grove & Chambers, ECOOP'95.
	ClassHierarchyAnalysis CallgraphAlgo = "cha"
	// RapidTypeAnalysis refines CHA using only types that are actually
	// instantiated from the program's roots. See "Fast Analysis of C++
	// Virtual Function Calls", Bacon & Sweeney, OOPSLA'96.
	RapidTypeAnalysis CallgraphAlgo = "rta"
	// StaticAnalysis resolves only statically-dispatched calls; it misses
	// every call through an interface or function value.
	StaticAnalysis CallgraphAlgo = "static"
	// VariableTypeAnalysis refines a static call graph using the types
	// flowing through each variable.
	VariableTypeAnalysis CallgraphAlgo = "vta"
)

// ComputeCallgraph builds a call graph for prog using algo.
func ComputeCallgraph(prog *ssa.Program, algo CallgraphAlgo) (*callgraph.Graph, error) {
	switch algo {
	case "", ClassHierarchyAnalysis:
		return cha.CallGraph(prog), nil
	case StaticAnalysis:
		return static.CallGraph(prog), nil
	case VariableTypeAnalysis:
		cg := static.CallGraph(prog)
		return vta.CallGraph(rootFunctions(prog), cg), nil
	case RapidTypeAnalysis:
		var roots []*ssa.Function
		for fn := range rootFunctions(prog) {
			roots = append(roots, fn)
		}
		return rta.Analyze(roots, true).CallGraph, nil
	default:
		return nil, fmt.Errorf("ifdsgraph: unsupported call-graph algorithm %q", algo)
	}
}

// rootFunctions returns the init and main functions of every main package
// in prog, which VTA and RTA both use as their analysis roots.
func rootFunctions(prog *ssa.Program) map[*ssa.Function]bool {
	roots := make(map[*ssa.Function]bool)
	for _, m := range ssautil.MainPackages(prog.AllPackages()) {
		if init := m.Func("init"); init != nil {
			roots[init] = true
		}
		if main := m.Func("main"); main != nil {
			roots[main] = true
		}
	}
	return roots
}
