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

package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// CI is a generic two-sided confidence interval.
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// Report summarizes one benchmark run over a sampler: how many draws were
// taken, how the weights were distributed going in, and (once Done is
// called) whether the observed draw counts are consistent with those
// weights.
type Report struct {
	Name        string          `json:"Name"`
	Len         int             `json:"Len"`
	NonZero     int             `json:"NonZero"`
	TotalWeight float64         `json:"TotalWeight"`
	Samples     int             `json:"Samples"`
	Counts      []int64         `json:"Counts"`
	Weights     []float64       `json:"Weights"`
	ChiSquare   *ChiSquareTest  `json:"ChiSquare,omitzero"`
	Quantiles   *WeightQuantile `json:"Quantiles,omitzero"`
	isDone      bool
}

// Done runs the derived statistics (chi-squared fit, weight quantiles)
// over the accumulated counts, and locks the report against further
// mutation-driven recomputation.
func (r *Report) Done() {
	if r.isDone {
		return
	}
	if len(r.Counts) == len(r.Weights) && len(r.Weights) > 0 {
		cs := ChiSquareGoodnessOfFit(r.Counts, r.Weights)
		r.ChiSquare = &cs
	}
	if len(r.Weights) > 0 {
		r.Quantiles = QuantilesOf(r.Weights)
	}
	r.isDone = true
}

func (r *Report) StdOut(elapsed time.Duration) {
	r.Done()
	formatDuration(elapsed, r.Samples)
	keys, msg := r.fmtBasic()
	fmt.Println(fmtTable(r.Name, keys, msg))
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Length":       p.Sprintf("%d", r.Len),
		"Non-zero":     p.Sprintf("%d", r.NonZero),
		"Total weight": p.Sprintf("%g", r.TotalWeight),
		"Samples":      p.Sprintf("%d", r.Samples),
	}
	keys := []string{"Length", "Non-zero", "Total weight", "Samples"}
	if r.ChiSquare != nil {
		basic["Chi-square"] = p.Sprintf("%.4f (df=%d)", r.ChiSquare.Statistic, r.ChiSquare.DF)
		basic["p-value"] = p.Sprintf("%.6f", r.ChiSquare.PValue)
		keys = append(keys, "Chi-square", "p-value")
	}
	return keys, basic
}

func formatDuration(d time.Duration, samples int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	sps := int(float64(samples) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nsamples/sec: %d\n", sec, sps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nsamples/sec: %d\n", m, s%60, sps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nsamples/sec: %d\n", h, m, s, sps)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
