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

// Package v1sampler exposes one in-process *dwsampler.Sampler over HTTP,
// for inspection and manual mutation during development. This is a
// debug/demo surface, not a production API: there is exactly one sampler
// per server process, and it is never shared across processes.
package v1sampler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/rng"
	"github.com/zintix-labs/dwsampler/server/httperr"
	"github.com/zintix-labs/dwsampler/server/svrcfg"
)

// Handler binds the sampler v1 endpoints to one SvrCfg's sampler and RNG
// source.
type Handler struct {
	cfg *svrcfg.SvrCfg
	src *rng.Core
}

func New(cfg *svrcfg.SvrCfg) (*Handler, error) {
	if err := cfg.Vaild(); err != nil {
		return nil, err
	}
	return &Handler{cfg: cfg, src: rng.New(rng.NewPCG64())}, nil
}

type weightResponse struct {
	Index  int     `json:"index"`
	Weight float64 `json:"weight"`
}

// Get handles GET /v1/sampler/{i}: returns the current weight at index i.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	i, err := pathIndex(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	wt, err := h.cfg.Sampler.Get(i)
	if err != nil {
		httperr.Log(h.cfg.Log, "sampler get failed", err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, weightResponse{Index: i, Weight: wt})
}

type setRequest struct {
	Weight float64 `json:"weight"`
}

// Put handles PUT /v1/sampler/{i}: sets (or clears, if weight == 0) the
// weight at index i, growing the sampler's length first if needed.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	i, err := pathIndex(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	var body setRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.cfg.Sampler.Insert(i, body.Weight); err != nil {
		httperr.Log(h.cfg.Log, "sampler set failed", err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, weightResponse{Index: i, Weight: body.Weight})
}

type sampleResponse struct {
	Index int `json:"index"`
}

// Sample handles POST /v1/sampler/sample: draws one index with
// probability exactly proportional to its current weight.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	got, err := h.cfg.Sampler.Sample(h.src)
	if err != nil {
		httperr.Log(h.cfg.Log, "sample failed", err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, sampleResponse{Index: got})
}

type resizeRequest struct {
	Length int `json:"length"`
}

// Resize handles POST /v1/sampler/resize: changes the sampler's logical
// length, subject to its storage variant's resize policy.
func (h *Handler) Resize(w http.ResponseWriter, r *http.Request) {
	var body resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.cfg.Sampler.Resize(body.Length); err != nil {
		httperr.Log(h.cfg.Log, "resize failed", err)
		httperr.Errs(w, err)
		return
	}
	writeJSON(w, struct {
		Length int `json:"length"`
	}{Length: h.cfg.Sampler.Len()})
}

// Verify handles POST /v1/sampler/verify: recomputes and reports on the
// sampler's internal invariants, for debugging after a batch of manual
// mutations through this API.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	err := dwsampler.Verify(h.cfg.Sampler)
	status := "ok"
	msg := ""
	if err != nil {
		status = "failed"
		msg = err.Error()
	}
	writeJSON(w, struct {
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}{Status: status, Error: msg})
}

func pathIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "i")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &strconvErr{raw: raw}
	}
	return i, nil
}

type strconvErr struct{ raw string }

func (e *strconvErr) Error() string { return "sampler: invalid index " + strconv.Quote(e.raw) }

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
