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

// summaryKey identifies a procedure-local summary edge by its entry and
// exit local block numbers together with the entry fact.
type summaryKey struct {
	sp, x, d1 int
}

// LocalSummaryEdges memoizes, for a single procedure, every proven
// procedure-level transfer (s_p,exit,d1) -> d2. It is indexed by the
// callee's own entry/exit rather than by the caller's call/return site, so
// the same summary serves every call site of the procedure -- that's what
// makes summaries reusable across callers instead of per call site.
type LocalSummaryEdges struct {
	edges map[summaryKey]*IntSet
}

// NewLocalSummaryEdges returns an empty table.
func NewLocalSummaryEdges() *LocalSummaryEdges {
	return &LocalSummaryEdges{edges: make(map[summaryKey]*IntSet)}
}

// Contains reports whether (sp,x,d1) -> d2 has already been recorded.
func (s *LocalSummaryEdges) Contains(sp, x, d1, d2 int) bool {
	return s.edges[summaryKey{sp, x, d1}].Contains(d2)
}

// InsertSummaryEdge records that (sp,x,d1) -> d2 holds.
func (s *LocalSummaryEdges) InsertSummaryEdge(sp, x, d1, d2 int) {
	key := summaryKey{sp, x, d1}
	set, ok := s.edges[key]
	if !ok {
		set = NewIntSet()
		s.edges[key] = set
	}
	set.Insert(d2)
}

// GetSummaryEdges returns the set of d2 such that (sp,x,d1) -> d2 is a
// recorded summary, or nil if none are recorded.
func (s *LocalSummaryEdges) GetSummaryEdges(sp, x, d1 int) *IntSet {
	return s.edges[summaryKey{sp, x, d1}]
}
