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

// LocalPathEdges memoizes, for a single procedure entry s_p, every path
// edge (s_p,d1) -> (n,d2) the solver has proven. It keeps a forward map
// keyed by the reached block's local number and d1, and an inverse index
// keyed by the reached block's local number and d2, so that exit
// propagation (which needs "who reaches d4 at this call" lookups) doesn't
// have to scan the forward map.
//
// The two are kept consistent by construction: AddPathEdge is the only
// mutator and always updates both sides together.
type LocalPathEdges struct {
	// mergeEnabled records whether this table backs a problem with a merge
	// function installed. WALA's implementation chooses a denser forward
	// representation in that mode; a Go map pays no such cost either way,
	// so the flag is kept only to document the caller's intent.
	mergeEnabled bool

	// forward[n][d1] is the set of d2 such that (s_p,d1) -> (n,d2) holds.
	forward map[int]map[int]*IntSet

	// inverse[n][d2] is the set of d1 such that (s_p,d1) -> (n,d2) holds.
	inverse map[int]map[int]*IntSet
}

// NewLocalPathEdges returns an empty table. mergeEnabled should mirror
// whether the owning problem has a merge function, since GetReachable(n,d1)
// is only meaningful in that mode.
func NewLocalPathEdges(mergeEnabled bool) *LocalPathEdges {
	return &LocalPathEdges{
		mergeEnabled: mergeEnabled,
		forward:      make(map[int]map[int]*IntSet),
		inverse:      make(map[int]map[int]*IntSet),
	}
}

// Contains reports whether (d1) -> (n,d2) has already been recorded.
func (l *LocalPathEdges) Contains(d1, n, d2 int) bool {
	byD1, ok := l.forward[n]
	if !ok {
		return false
	}
	return byD1[d1].Contains(d2)
}

// AddPathEdge records that (d1) -> (n,d2) holds. Callers are expected to
// have checked Contains first; Solver.propagate is the only intended
// caller and only enqueues the edge when AddPathEdge actually changes the
// table.
func (l *LocalPathEdges) AddPathEdge(d1, n, d2 int) {
	byD1, ok := l.forward[n]
	if !ok {
		byD1 = make(map[int]*IntSet)
		l.forward[n] = byD1
	}
	fwd, ok := byD1[d1]
	if !ok {
		fwd = NewIntSet()
		byD1[d1] = fwd
	}
	fwd.Insert(d2)

	byD2, ok := l.inverse[n]
	if !ok {
		byD2 = make(map[int]*IntSet)
		l.inverse[n] = byD2
	}
	inv, ok := byD2[d2]
	if !ok {
		inv = NewIntSet()
		byD2[d2] = inv
	}
	inv.Insert(d1)
}

// GetInverse returns the set of d1 such that (d1) -> (n,d2) is a recorded
// path edge, or nil if none are recorded.
func (l *LocalPathEdges) GetInverse(n, d2 int) *IntSet {
	byD2, ok := l.inverse[n]
	if !ok {
		return nil
	}
	return byD2[d2]
}

// GetReachable returns the set of d2 such that (d1) -> (n,d2) is recorded.
// Only meaningful when mergeEnabled, since that's the only caller (merge)
// that needs the pre-existing facts at (n,d1).
func (l *LocalPathEdges) GetReachable(n, d1 int) *IntSet {
	byD1, ok := l.forward[n]
	if !ok {
		return nil
	}
	return byD1[d1]
}

// GetReachableAny returns the union, over every d1, of the d2 such that
// (d1) -> (n,d2) is recorded. This backs Result.GetResult, which reports
// "what can hold at n" without regard to which entry fact produced it.
func (l *LocalPathEdges) GetReachableAny(n int) *IntSet {
	byD1, ok := l.forward[n]
	if !ok {
		return nil
	}
	result := NewIntSet()
	for _, d2s := range byD1 {
		result.AddAll(d2s)
	}
	return result
}

// GetReachedNodeNumbers returns the set of local block numbers n for which
// at least one path edge (d1) -> (n,d2) has been recorded.
func (l *LocalPathEdges) GetReachedNodeNumbers() *IntSet {
	result := NewIntSet()
	for n := range l.forward {
		result.Insert(n)
	}
	return result
}
