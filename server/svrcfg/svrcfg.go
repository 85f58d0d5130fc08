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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/dwsampler"
	"github.com/zintix-labs/dwsampler/errs"
	"github.com/zintix-labs/dwsampler/server/logger"
)

// SvrCfg is the assembled configuration for the sampler demo service: one
// in-process sampler instance, exclusively owned by this server, and the
// logger it reports through.
type SvrCfg struct {
	Log     *slog.Logger
	Sampler *dwsampler.Sampler
}

// Vaild validates sc in place, filling in a default async dev logger when
// none was supplied. Named Vaild (not Valid) to match the rest of this
// codebase's config validators.
func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.New(errs.NotResizable, "nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Sampler == nil {
		return errs.New(errs.NotResizable, "sampler is required")
	}
	return nil
}

// FromYAML lists the settings a YAML config file can supply for building
// a SvrCfg (listen address, log mode, initial length and variant of the
// sampler). This package declares the fields and their yaml tags only; it
// does not read or decode a file. The Sampler itself is always constructed in code, never
// deserialized, since a sampler's arena is explicitly not a
// serialization format (see the non-goals on arena persistence).
type FromYAML struct {
	Listen     string `yaml:"listen"`
	LogMode    string `yaml:"log_mode"`
	InitialLen int    `yaml:"initial_len"`
	Variant    string `yaml:"variant"`
}

// VariantFromString parses the config's variant field, defaulting to
// Resizable on an unrecognized or empty value.
func VariantFromString(s string) dwsampler.Variant {
	switch s {
	case "fixed":
		return dwsampler.Fixed
	case "semi":
		return dwsampler.Semi
	default:
		return dwsampler.Resizable
	}
}

// LogModeFromString parses the config's log_mode field, defaulting to
// ModeDev on an unrecognized or empty value.
func LogModeFromString(s string) logger.LogMode {
	switch s {
	case "prod":
		return logger.ModeProd
	case "silence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
