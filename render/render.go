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

// Package render draws terminal tables and histograms for the bench CLI:
// per-bucket weight/sample-count distributions, and pass/fail coloring of
// invariant-verification and chi-squared results.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders keys/msg as a bordered box, title centered on top, keys
// left-aligned, values right-padded — the same box-drawing convention the
// sampler's own stats.Report.StdOut uses.
func Table(title string, keys []string, msg map[string]string) string {
	maxKeyLen, maxValLen := 0, 0
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

	var b strings.Builder
	b.WriteString(top)
	fmt.Fprintf(&b, "|%s%s%s|\n", blank(left), title, blank(right))
	b.WriteString(divider)
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s%s | %s%s |\n",
			k, blank(maxKeyLen-2-runewidth.StringWidth(k)),
			msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

// Histogram draws a horizontal bar per label, scaled so the largest count
// fills width columns.
func Histogram(labels []string, counts []int, width int) string {
	maxLabel, maxCount := 0, 0
	for i, l := range labels {
		if w := runewidth.StringWidth(l); w > maxLabel {
			maxLabel = w
		}
		if counts[i] > maxCount {
			maxCount = counts[i]
		}
	}
	var b strings.Builder
	for i, l := range labels {
		barLen := 0
		if maxCount > 0 {
			barLen = counts[i] * width / maxCount
		}
		fmt.Fprintf(&b, "%s%s | %s %d\n",
			l, blank(maxLabel-runewidth.StringWidth(l)), strings.Repeat("#", barLen), counts[i])
	}
	return b.String()
}
