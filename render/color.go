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

package render

import "github.com/fatih/color"

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
)

// PassFail renders label in green with "PASS" or red with "FAIL",
// depending on ok.
func PassFail(label string, ok bool) string {
	if ok {
		return okColor.Sprintf("PASS") + " " + label
	}
	return failColor.Sprintf("FAIL") + " " + label
}

// Warn renders label in yellow, for results that are neither a clean
// pass nor an outright failure (e.g. a chi-squared p-value close to the
// rejection threshold).
func Warn(label string) string {
	return warnColor.Sprint(label)
}
