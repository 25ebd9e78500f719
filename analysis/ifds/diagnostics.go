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

// diagnostics tracks per-solve bookkeeping that has no bearing on
// correctness: how many edges were popped off the worklist, and when to
// run the caller's soft-eviction hook. It is owned exclusively by the
// Solver it belongs to -- there is no global or static diagnostic state,
// unlike the source this solver is modeled on.
type diagnostics struct {
	iterations int

	evictEvery int
	onEvict    func()
}

func newDiagnostics(evictEvery int, onEvict func()) *diagnostics {
	return &diagnostics{evictEvery: evictEvery, onEvict: onEvict}
}

// tick is called once per worklist iteration. It never touches solver memo
// state; it only ever forwards to the caller-supplied eviction hook, which
// is documented to evict auxiliary collaborator caches (e.g. a
// flow-function memoization cache) and must not evict path/summary/
// call-flow edges itself.
func (d *diagnostics) tick() {
	d.iterations++
	if d.onEvict == nil || d.evictEvery <= 0 {
		return
	}
	if d.iterations%d.evictEvery == 0 {
		d.onEvict()
	}
}

// Iterations reports how many edges the solver has popped off the
// worklist so far in the current (or most recent) solve.
func (d *diagnostics) Iterations() int {
	return d.iterations
}
