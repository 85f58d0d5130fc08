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

package api

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/dwsampler/server/api/v1sampler"
	"github.com/zintix-labs/dwsampler/server/netsvr"
	"github.com/zintix-labs/dwsampler/server/netsvr/middleware"
	"github.com/zintix-labs/dwsampler/server/svrcfg"
)

// RegisterRoutes wires middleware, the index page, and the v1 sampler API
// onto svr.
func RegisterRoutes(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log)
	registerIndex(svr)
	return registerV1Sampler(svr, sCfg)
}

func registerMiddleware(svr netsvr.NetSvr, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

func registerIndex(svr netsvr.NetSvr) {
	svr.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("dwsampler demo service: see /v1/sampler\n"))
	})
}

func registerV1Sampler(svr netsvr.NetSvr, sCfg *svrcfg.SvrCfg) error {
	h, err := v1sampler.New(sCfg)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/sampler/{i}", h.Get)
		vOne.Put("/sampler/{i}", h.Put)
		vOne.Post("/sampler/sample", h.Sample)
		vOne.Post("/sampler/resize", h.Resize)
		vOne.Post("/sampler/verify", h.Verify)
	})
	return nil
}
