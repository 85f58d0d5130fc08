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

package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/dwsampler/errs"
	"github.com/zintix-labs/dwsampler/server/api"
	"github.com/zintix-labs/dwsampler/server/app"
	"github.com/zintix-labs/dwsampler/server/netsvr"
	"github.com/zintix-labs/dwsampler/server/svrcfg"
)

// Run is this package's assembler and runtime entry point.
//
// It:
//  1. Validates sCfg (required dependencies, e.g. the logger).
//  2. Builds a default HTTP server (netsvr).
//  3. Registers routes and middleware (api.RegisterRoutes).
//  4. Starts app.Run and reports why it stopped.
//
// Run binds to no file path or environment variable convention; every
// dependency is injected explicitly through sCfg. Callers that need a
// different assembly, routing, or lifecycle strategy should use
// RunWithSvr, or assemble their own server around api.RegisterRoutes.
func Run(sCfg *svrcfg.SvrCfg) {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	svr := netsvr.NewChiServerDefault()

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return
	}

	a := app.NewWith(svr)
	sCfg.Log.Info("listening on http://localhost" + svr.Address())
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}

// RunWithSvr is Run, but for a caller-supplied NetSvr instead of the
// built-in ChiAdapter.
//
// Use this when:
//   - you want to keep your own server/router/middleware deployment;
//   - you need finer server control (address, TLS, timeouts, graceful
//     shutdown policy) than the default constructor exposes;
//   - you want to mount this package's API routes onto an existing
//     service as a subrouter.
//
// RunWithSvr validates sCfg the same way Run does, and additionally
// requires svr to be non-nil; if svr is a *netsvr.ChiAdapter, it must
// also report Ready(). This layer still only registers routes and
// starts app.Run — it never takes over the rest of your assembly.
func RunWithSvr(sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) {
	if err := sCfg.Vaild(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if svr == nil {
		sCfg.Log.Error(errs.New(errs.NotResizable, "svr is required").Error())
		return
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		sCfg.Log.Error(errs.New(errs.NotResizable, "default server is not ready").Error())
		return
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return
	}

	a := app.NewWith(svr)
	sCfg.Log.Info("listening")
	if err := a.Run(); err != nil {
		sCfg.Log.Error("app stopped:", slog.Any("err", err))
	}
}
