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

package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/dwsampler/errs"
)

// StatusCode maps an error to an HTTP status code.
//
// Rules (minimal, predictable boundary-layer mapping):
//   - ctx timeout/cancel       -> 504/408 (request lifecycle issue)
//   - errs.OutOfBounds/
//     InvalidWeight/
//     NotResizable             -> 400 (request/argument issue)
//   - anything else            -> 500 (unclassified/internal)
//
// This lives in server/* rather than in the errs package itself, so the
// error taxonomy stays free of net/http and other transport details.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout // 504
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout // 408
	}

	var e *errs.E
	if errors.As(err, &e) {
		switch e.Kind {
		case errs.OutOfBounds, errs.InvalidWeight, errs.NotResizable:
			return http.StatusBadRequest // 400
		}
	}

	return http.StatusInternalServerError
}

// Errs writes err to w as a plain-text body with the status StatusCode maps
// it to. A nil err is a no-op.
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	http.Error(w, err.Error(), status)
}

// Log records err at a severity derived from its mapped status: client-side
// issues (408/409/429) as warnings, server-side issues (5xx) as errors.
// Anything else is not logged here, since the caller's handler already
// wrote a response for it.
func Log(log *slog.Logger, msg string, err error) {
	if err == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status == 408 || status == 409 || status == 429:
		log.Warn(msg, slog.Any("err", err))
	case status >= 500 && status < 600:
		log.Error(msg, slog.Any("err", err))
	}
}
