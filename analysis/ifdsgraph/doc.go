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

// Package ifdsgraph adapts a real Go program, loaded and built with
// golang.org/x/tools/go/{packages,ssa}, into the ifds.Supergraph and
// ifds.TabulationProblem interfaces.
//
// It is a collaborator in the sense of the solver's design: none of it is
// consulted by package ifds directly, and nothing here is required to run
// the solver over a synthetic supergraph. It exists to exercise the solver
// against a real interprocedural control-flow graph, built from a real
// call graph, with a real (if intentionally simple) reaching-definitions
// problem layered on top.
//
// Supergraph nodes are individual SSA instructions rather than whole basic
// blocks: this gives call instructions their own node distinct from the
// rest of their block, which is what the solver's processCall dispatch
// needs. A function's entry is the first instruction of its entry block.
// Its exits are every *ssa.Return instruction (normal return) and every
// *ssa.Panic instruction (unrecovered panic, modeled as a dead end: a
// panic's supergraph successors are empty, so the solver's processExit
// never propagates a panic's summary back to a caller -- this package
// does not attempt to model recover()).
package ifdsgraph
