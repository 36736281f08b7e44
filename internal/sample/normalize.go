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

package sample

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	isoDate    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDate  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	dashedDate = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
)

// NormalizeDate converts DD/MM/YYYY and DD-MM-YYYY to YYYY-MM-DD.
// ISO dates and any other non-empty text are returned trimmed but otherwise unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || isoDate.MatchString(s) {
		return s
	}
	for _, re := range []*regexp.Regexp{slashDate, dashedDate} {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[3] + "-" + m[2] + "-" + m[1]
		}
	}
	return s
}

// TitleCase capitalizes every whitespace separated word and lower-cases the
// rest of it. Words of up to three letters written in capitals are kept as
// acronyms.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if utf8.RuneCountInString(w) <= 3 && isUpper(w) {
			continue
		}
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// isUpper reports whether w has at least one cased letter and no lower-case ones.
func isUpper(w string) bool {
	cased := false
	for _, r := range w {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r), unicode.IsTitle(r):
			cased = true
		}
	}
	return cased
}

// ParseNumber reads a decimal number typed by a user, accepting a comma as
// the decimal separator. Anything that is not a finite number yields 0.
func ParseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
