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

package analysistest

import (
	"fmt"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/flowlab-dev/ifds-go/analysis/config"
	"github.com/flowlab-dev/ifds-go/analysis/ifdsgraph"
	"golang.org/x/tools/go/packages"
)

// LoadTest loads the program rooted at dir (looking for main.go and,
// optionally, a config.yaml) plus any extraFiles, for use by tests that
// need a real *ssa.Program to build a Supergraph over.
func LoadTest(t *testing.T, dir string, extraFiles []string) (ifdsgraph.LoadedProgram, *config.Config) {
	t.Helper()

	configFile := filepath.Join(dir, "config.yaml")
	config.SetGlobalConfig(configFile)
	cfg, err := config.LoadGlobal()
	if err != nil {
		cfg = config.NewDefault()
	}

	files := []string{filepath.Join(dir, "main.go")}
	for _, extra := range extraFiles {
		files = append(files, filepath.Join(dir, extra))
	}

	prog, err := ifdsgraph.LoadProgram(&packages.Config{Mode: ifdsgraph.PkgLoadMode}, files)
	if err != nil {
		t.Fatalf("error loading test program in %s: %v", dir, err)
	}
	return prog, cfg
}

// LPos is a source position with the column dropped, so that two
// occurrences of the same statement on one line compare equal regardless
// of which token on the line they point at.
type LPos struct {
	Filename string
	Line     int
}

func (p LPos) String() string {
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}

// RemoveColumn drops the column from pos.
func RemoveColumn(pos token.Position) LPos {
	return LPos{Line: pos.Line, Filename: pos.Filename}
}
