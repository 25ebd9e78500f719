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

import "container/heap"

// worklistHeap adapts a slice of path edges plus a less function to
// container/heap.Interface.
type worklistHeap[T comparable] struct {
	items []PathEdge[T]
	less  func(a, b PathEdge[T]) bool
}

func (h worklistHeap[T]) Len() int { return len(h.items) }

func (h worklistHeap[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }

func (h worklistHeap[T]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *worklistHeap[T]) Push(x any) { h.items = append(h.items, x.(PathEdge[T])) }

func (h *worklistHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	last := old[n-1]
	h.items = old[:n-1]
	return last
}

// Worklist is a priority heap of pending path edges, ordered by the
// problem's Domain.HasPriorityOver. The source this solver is based on
// guarded the comparator with "p1.d2 != p2.d2" and left a comment asking
// whether that guard should be removed; we drop it here and rely solely on
// HasPriorityOver, since the guard made the comparator inconsistent with
// equality for no documented benefit.
type Worklist[T comparable] struct {
	h worklistHeap[T]
}

// NewWorklist returns an empty worklist ordered by domain.
func NewWorklist[T comparable](domain Domain[T]) *Worklist[T] {
	w := &Worklist[T]{
		h: worklistHeap[T]{
			less: func(a, b PathEdge[T]) bool { return domain.HasPriorityOver(a, b) },
		},
	}
	heap.Init(&w.h)
	return w
}

// Len returns the number of pending edges.
func (w *Worklist[T]) Len() int { return w.h.Len() }

// Insert adds e to the worklist. The solver is responsible for the
// invariant that e has already been recorded in its LocalPathEdges;
// Insert itself does not deduplicate.
func (w *Worklist[T]) Insert(e PathEdge[T]) {
	heap.Push(&w.h, e)
}

// Take removes and returns the highest-priority edge.
func (w *Worklist[T]) Take() PathEdge[T] {
	return heap.Pop(&w.h).(PathEdge[T])
}

// Peek returns the highest-priority edge without removing it. Unlike a
// pop-then-reinsert implementation, this never perturbs the heap.
func (w *Worklist[T]) Peek() PathEdge[T] {
	return w.h.items[0]
}
