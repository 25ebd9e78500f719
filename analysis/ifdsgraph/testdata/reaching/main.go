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

package main

// compute has a single normal exit: a straight-line definition-use chain
// for the supergraph to carry a value through.
func compute(x int) int {
	y := x + 1
	return y
}

// risky has two exits: a normal return and a panic. The panic is a dead
// end with no successors, exercising the solver's terminal-exit handling.
func risky(x int) int {
	if x < 0 {
		panic("risky: negative input")
	}
	return x * 2
}

func main() {
	a := 1
	b := compute(a)
	c := risky(b)
	println(c)
}
