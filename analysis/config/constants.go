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

package config

const (
	// DefaultCallgraphAlgo is used when no algorithm is specified in the
	// config file.
	DefaultCallgraphAlgo = "cha"
	// DefaultEvictEvery is the default number of worklist iterations
	// between calls to the solver's soft-eviction hook. Zero disables it.
	DefaultEvictEvery = 0
)
