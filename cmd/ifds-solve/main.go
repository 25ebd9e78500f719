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

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/flowlab-dev/ifds-go/analysis/config"
	"github.com/flowlab-dev/ifds-go/analysis/ifdsgraph"
)

var (
	configFilename string
	callgraphAlgo   string
	evictEvery      int
)

func init() {
	flag.StringVar(&configFilename, "config", "", "configuration file")
	flag.StringVar(&callgraphAlgo, "callgraph", "", "call-graph algorithm: cha, rta, static, or vta (overrides the config file)")
	flag.IntVar(&evictEvery, "evict-every", 0, "worklist iterations between auxiliary-cache eviction hooks (overrides the config file when non-zero)")
}

const usage = `Run the reaching-definitions tabulation solver over a Go program.

Usage:
  ifds-solve package...
  ifds-solve source.go

Use the -help flag to display the options.
`

func main() {
	if err := doMain(); err != nil {
		fmt.Fprintf(os.Stderr, "ifds-solve: %s\n", err)
		os.Exit(1)
	}
}

func doMain() error {
	flag.Parse()

	if len(flag.Args()) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var cfg *config.Config
	var err error
	if configFilename == "" {
		cfg = config.NewDefault()
	} else {
		cfg, err = config.Load(configFilename)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configFilename, err)
		}
	}
	if callgraphAlgo != "" {
		cfg.CallgraphAlgo = callgraphAlgo
	}
	if evictEvery != 0 {
		cfg.EvictEvery = evictEvery
	}

	log := config.NewLogGroup(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := ifdsgraph.Run(ctx, cfg, log, flag.Args())
	if err != nil {
		return err
	}

	reached := result.Result.GetSupergraphNodesReached()
	log.Infof("reached %d supergraph node(s) across %d total node(s)", len(reached), len(result.Supergraph.AllNodes()))
	return nil
}
