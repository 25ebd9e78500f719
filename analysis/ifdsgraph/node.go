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

	"golang.org/x/tools/go/ssa"
)

// Node is one instruction in one basic block of one function: the unit the
// Supergraph exposes to the solver. Nodes are allocated once, by
// BuildSupergraph, and compared by pointer identity thereafter.
type Node struct {
	Fn    *ssa.Function
	Block *ssa.BasicBlock
	Index int // index of Instr within Block.Instrs
	Instr ssa.Instruction

	global int
	local  int
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%s[%d]", n.Fn, n.Block, n.Index)
}

// isReturn reports whether n's instruction is a normal return.
func (n *Node) isReturn() bool {
	_, ok := n.Instr.(*ssa.Return)
	return ok
}

// isPanic reports whether n's instruction is an unrecovered-panic exit.
func (n *Node) isPanic() bool {
	_, ok := n.Instr.(*ssa.Panic)
	return ok
}

// isCall reports whether n's instruction is a direct function call. `go`
// and `defer` statements are deliberately excluded: their control-flow
// relationship to the called function isn't a simple call/return, and
// modeling them accurately is out of scope for this adapter.
func (n *Node) isCall() bool {
	_, ok := n.Instr.(*ssa.Call)
	return ok
}
