// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package label

import (
	"strings"
	"unicode/utf8"
)

// minWrapChars is the narrowest line width tried by the first wrap estimate.
const minWrapChars = 18

// wrapTitle splits title into lines no wider than maxWidth pixels. The first
// attempt estimates a characters-per-line width from how far the title
// overflows; narrower widths are tried only while some line still overflows.
func wrapTitle(title string, maxWidth float64, measure func(string) float64) []string {
	width := measure(title)
	if width <= maxWidth {
		return []string{title}
	}

	chars := int(float64(utf8.RuneCountInString(title)) * maxWidth / width)
	if chars < minWrapChars {
		chars = minWrapChars
	}
	for {
		lines := wrapWords(title, chars)
		if chars <= 1 || widest(lines, measure) <= maxWidth {
			return lines
		}
		chars--
	}
}

// wrapWords greedily packs whitespace separated words into lines of at most
// width runes. Words longer than width are split across lines.
func wrapWords(text string, width int) []string {
	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		if n > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > 0 {
			switch {
			case n == 0 && len(runes) <= width:
				cur.WriteString(string(runes))
				n = len(runes)
				runes = nil
			case n > 0 && n+1+len(runes) <= width:
				cur.WriteByte(' ')
				cur.WriteString(string(runes))
				n += 1 + len(runes)
				runes = nil
			case n > 0:
				flush()
			default:
				cur.WriteString(string(runes[:width]))
				n = width
				runes = runes[width:]
				flush()
			}
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func widest(lines []string, measure func(string) float64) float64 {
	var w float64
	for _, line := range lines {
		w = max(w, measure(line))
	}
	return w
}
