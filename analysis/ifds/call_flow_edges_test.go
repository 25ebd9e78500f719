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

import "testing"

func TestCallFlowEdges(t *testing.T) {
	c := NewCallFlowEdges()
	if c.GetCallFlowSources(1, 2) != nil {
		t.Fatal("empty table should answer nil for any query")
	}

	c.AddCallEdge(1, 10, 2)
	c.AddCallEdge(1, 11, 2)
	c.AddCallEdge(5, 20, 2)

	if got := c.GetCallFlowSources(1, 2).AsSlice(); !equalInts(got, []int{10, 11}) {
		t.Fatalf("GetCallFlowSources(1,2) = %v, want [10 11]", got)
	}
	if got := c.GetCallFlowSources(5, 2).AsSlice(); !equalInts(got, []int{20}) {
		t.Fatalf("GetCallFlowSources(5,2) = %v, want [20]", got)
	}
	if c.GetCallFlowSources(1, 99) != nil {
		t.Fatal("GetCallFlowSources for an unrecorded callee fact should return nil")
	}
}
