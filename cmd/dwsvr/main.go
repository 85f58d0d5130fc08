// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command dwsvr runs the sampler inspection/demo HTTP service: one
// in-process *dwsampler.Sampler, reachable over the /v1/sampler routes
// for manual Get/Put/Sample/Resize/Verify calls during development.
package main

import (
	"flag"
	"os"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/server"
	"github.com/zintix-labs/dwsampler/server/logger"
	"github.com/zintix-labs/dwsampler/server/svrcfg"
)

func main() {
	variant := flag.String("variant", "resizable", "sampler variant: fixed, semi, resizable")
	initialLen := flag.Int("len", 16, "initial sampler length")
	logMode := flag.String("log", "dev", "log mode: dev, prod, silence")
	flag.Parse()

	s, err := dwsampler.New(svrcfg.VariantFromString(*variant), *initialLen)
	if err != nil {
		os.Stderr.WriteString("dwsvr: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, _ := logger.NewAsync(1024, svrcfg.LogModeFromString(*logMode))
	server.Run(&svrcfg.SvrCfg{Log: log, Sampler: s})
}
