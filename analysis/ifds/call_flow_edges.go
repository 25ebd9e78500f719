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

// callFlowKey identifies a call-flow record by the caller's global node
// number and the fact it flowed into at the callee's entry.
type callFlowKey struct {
	callerGlobal, d1 int
}

// CallFlowEdges memoizes, for a single callee entry s_p, the fact that
// "fact d4 at caller call-node c flowed into fact d1 at s_p". It is
// consulted at exit propagation to reconstruct which caller-side facts
// produced the callee facts that just reached a summary edge.
type CallFlowEdges struct {
	sources map[callFlowKey]*IntSet
}

// NewCallFlowEdges returns an empty table.
func NewCallFlowEdges() *CallFlowEdges {
	return &CallFlowEdges{sources: make(map[callFlowKey]*IntSet)}
}

// AddCallEdge records that fact d4 at the caller's call node callerGlobal
// flowed into fact d1 at the callee entry this table belongs to.
func (c *CallFlowEdges) AddCallEdge(callerGlobal, d4, d1 int) {
	key := callFlowKey{callerGlobal, d1}
	set, ok := c.sources[key]
	if !ok {
		set = NewIntSet()
		c.sources[key] = set
	}
	set.Insert(d4)
}

// GetCallFlowSources returns the set of d4 recorded for (callerGlobal,d1),
// or nil if none are recorded.
func (c *CallFlowEdges) GetCallFlowSources(callerGlobal, d1 int) *IntSet {
	return c.sources[callFlowKey{callerGlobal, d1}]
}
