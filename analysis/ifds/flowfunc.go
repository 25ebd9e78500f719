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

// UnaryFlowFunction computes the facts reached from a single source fact
// across one supergraph edge. A nil return means "no facts reach" -- flow
// function adapters should fold an absent/null result into nil rather than
// an empty-but-non-nil set, and callers should treat the two identically.
type UnaryFlowFunction interface {
	Targets(d int) *IntSet
}

// BinaryReturnFlowFunction computes the facts reached at a return site from
// both the fact that held at the call site and the fact that held at the
// matching exit. Only return flow functions may be binary; every other
// edge in the supergraph uses a UnaryFlowFunction.
type BinaryReturnFlowFunction interface {
	Targets(callD, exitD int) *IntSet
}

// ReturnFlowFunction is the flow function returned by
// FlowFunctionMap.ReturnFlowFunction: it must implement either
// UnaryFlowFunction or BinaryReturnFlowFunction. Go has no sum type for
// this, so the solver recovers the distinction with a type switch, exactly
// where the original algorithm used an instanceof check.
type ReturnFlowFunction any

// FlowFunctionMap dispatches the flow function to use for a given
// supergraph edge. Implementations are supplied entirely by the client
// problem; the solver only ever calls these five methods.
type FlowFunctionMap[T comparable] interface {
	// NormalFlowFunction returns the flow function for the intraprocedural
	// edge src -> dst.
	NormalFlowFunction(src, dst T) UnaryFlowFunction

	// CallFlowFunction returns the flow function for entering callee from
	// call.
	CallFlowFunction(call, callee T) UnaryFlowFunction

	// ReturnFlowFunction returns the flow function for returning from exit
	// (in the procedure called from call) to returnSite.
	ReturnFlowFunction(call, exit, returnSite T) ReturnFlowFunction

	// CallToReturnFlowFunction returns the flow function used to propagate
	// facts directly from a call node to one of its return sites, bypassing
	// the callee, for call nodes whose callee could be resolved.
	CallToReturnFlowFunction(call, returnSite T) UnaryFlowFunction

	// CallNoneToReturnFlowFunction is like CallToReturnFlowFunction, but
	// used when the call node has no resolvable callee at all.
	CallNoneToReturnFlowFunction(call, returnSite T) UnaryFlowFunction
}

// computeFlow applies a unary flow function, normalizing a nil function to
// "no facts reach".
func computeFlow(d int, f UnaryFlowFunction) *IntSet {
	if f == nil {
		return nil
	}
	return f.Targets(d)
}

// computeBinaryFlow applies a binary return flow function, normalizing a
// nil function to "no facts reach".
func computeBinaryFlow(callD, exitD int, f BinaryReturnFlowFunction) *IntSet {
	if f == nil {
		return nil
	}
	return f.Targets(callD, exitD)
}
