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
	"context"
	"fmt"

	"github.com/flowlab-dev/ifds-go/analysis/config"
	"github.com/flowlab-dev/ifds-go/analysis/ifds"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
)

// Run loads the packages matching patterns, builds a call graph with the
// algorithm named in cfg, builds a Supergraph over it, and solves the
// reaching-definitions problem to a fixed point.
func Run(ctx context.Context, cfg *config.Config, log *config.LogGroup, patterns []string) (*RunResult, error) {
	log.Infof("loading packages matching %v", patterns)
	prog, err := LoadProgram(&packages.Config{Mode: PkgLoadMode}, patterns)
	if err != nil {
		return nil, fmt.Errorf("ifdsgraph: loading program: %w", err)
	}

	algo := CallgraphAlgo(cfg.CallgraphAlgo)
	log.Debugf("building call graph with algorithm %q", algo)
	cg, err := ComputeCallgraph(prog.Program, algo)
	if err != nil {
		return nil, fmt.Errorf("ifdsgraph: building call graph: %w", err)
	}

	sg := BuildSupergraph(prog.Program, cg)
	log.Debugf("built supergraph with %d nodes", len(sg.AllNodes()))

	problem := NewReachingDefs(prog.Program, sg, 0)
	log.Infof("solving with %d seed(s)", len(problem.InitialSeeds()))

	var opts []ifds.Option[*Node, *ssa.Function]
	if cfg.EvictEvery > 0 {
		opts = append(opts, ifds.WithEvictionHook[*Node, *ssa.Function](cfg.EvictEvery, problem.EvictionHook()))
	}
	solver := ifds.NewSolver[*Node, *ssa.Function](problem, opts...)

	result, err := solver.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("ifdsgraph: solving: %w", err)
	}
	log.Infof("solved in %d worklist iterations", solver.Iterations())

	return &RunResult{Program: prog, Supergraph: sg, Problem: problem, Result: result}, nil
}

// RunResult bundles the built program, the supergraph, the
// reaching-definitions problem, and the fixed point the solver converged
// to.
type RunResult struct {
	Program    LoadedProgram
	Supergraph *Supergraph
	Problem    *ReachingDefs
	Result     *ifds.Result[*Node, *ssa.Function]
}
