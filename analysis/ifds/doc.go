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

// Package ifds implements a precise interprocedural tabulation solver for
// distributive dataflow problems over finite, exploded supergraphs -- the
// algorithm behind IFDS/IDE-style whole-program dataflow analysis (Reps,
// Horwitz, Sagiv, POPL'95).
//
// Relative to the original algorithm, this solver supports multiple exit
// blocks per procedure (to model exceptional control flow), an optional
// merge operator (to support non-distributive widening problems), and
// callee-indexed summary edges that are reused across call sites.
//
// The solver itself knows nothing about the shape of the programs it
// analyzes: it consumes an abstract exploded supergraph (Supergraph), a
// dispatcher of per-edge flow functions (FlowFunctionMap) and a description
// of the problem (TabulationProblem) from the client. Building those
// collaborators -- control-flow graphs, call graphs, flow function
// factories -- is the client's responsibility; see package ifdsgraph for a
// concrete Go SSA-backed implementation.
package ifds
