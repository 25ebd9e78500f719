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
	"go/token"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// PkgLoadMode is the load mode used to build a program with enough
// information to construct SSA and a call graph.
const PkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedExportFile |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

// LoadedProgram is a built SSA program together with the packages it was
// built from.
type LoadedProgram struct {
	Program  *ssa.Program
	Packages []*packages.Package
}

// LoadProgram loads and type-checks the packages matching args, then
// builds SSA for all of them.
func LoadProgram(cfg *packages.Config, args []string) (LoadedProgram, error) {
	if cfg == nil {
		cfg = &packages.Config{
			Mode: PkgLoadMode,
			Fset: token.NewFileSet(),
		}
	}
	if cfg.Fset == nil {
		cfg.Fset = token.NewFileSet()
	}

	initial, err := packages.Load(cfg, args...)
	if err != nil {
		return LoadedProgram{}, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(initial) == 0 {
		return LoadedProgram{}, fmt.Errorf("no packages matched %v", args)
	}
	if packages.PrintErrors(initial) > 0 {
		return LoadedProgram{}, fmt.Errorf("errors loading packages matched by %v", args)
	}

	program, ssaPkgs := ssautil.AllPackages(initial, ssa.InstantiateGenerics)
	for i, p := range ssaPkgs {
		if p == nil {
			return LoadedProgram{}, fmt.Errorf("cannot build SSA for package %s", initial[i])
		}
	}
	program.Build()

	return LoadedProgram{Program: program, Packages: initial}, nil
}
