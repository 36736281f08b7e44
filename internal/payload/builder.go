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

// Package payload serializes sample records into the text encoded in label QR codes.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

// Schema identifies the structured payload layout. Scanners key on it.
const Schema = "arrakis.lab.qrlabel.v2"

// Format selects the payload encoding.
type Format int

const (
	// Readable emits one "label: value" line per field.
	Readable Format = iota
	// Structured emits a compact JSON object.
	Structured
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown payload format")

func (f Format) String() string {
	switch f {
	case Readable:
		return "text"
	case Structured:
		return "json"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat maps a format name to a Format. An empty name selects Readable.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "readable", "info":
		return Readable, nil
	case "json", "structured":
		return Structured, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Builder renders records using one label vocabulary.
type Builder struct {
	labels labelSet
}

// Option configures a Builder.
type Option func(*Builder)

// WithLocale selects the field labels used by the readable format.
func WithLocale(l Locale) Option {
	return func(b *Builder) {
		if set, ok := locales[l]; ok {
			b.labels = set
		}
	}
}

// NewBuilder returns a Builder using Portuguese labels unless configured otherwise.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{labels: locales[LocalePT]}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var defaultBuilder = NewBuilder()

// Build normalizes r and serializes it in format f using the default builder.
func Build(r sample.Record, f Format) (string, error) {
	return defaultBuilder.Build(r, f)
}

// Build normalizes r and serializes it in format f. It fails with a
// *sample.ValidationError when a required field is empty.
func (b *Builder) Build(r sample.Record, f Format) (string, error) {
	if err := sample.Validate(r); err != nil {
		return "", err
	}
	rec, err := sample.Normalize(r)
	if err != nil {
		return "", err
	}

	switch f {
	case Structured:
		return structured(rec)
	case Readable:
		return b.readable(rec)
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

type biocharDocument struct {
	Kind             sample.Kind `json:"kind"`
	Schema           string      `json:"schema"`
	SampleName       string      `json:"sample_name"`
	Producer         string      `json:"producer"`
	Biomass          string      `json:"biomass"`
	ReactorType      string      `json:"reactor_type"`
	PyrolysisTempC   float64     `json:"pyro_temp_C"`
	ResidenceTimeMin float64     `json:"residence_time_min"`
	ProductionDate   string      `json:"production_date"`
	Notes            string      `json:"notes"`
}

type biomassDocument struct {
	Kind           sample.Kind `json:"kind"`
	Schema         string      `json:"schema"`
	BiomassName    string      `json:"biomass_name"`
	Origin         string      `json:"origin"`
	CollectionDate string      `json:"collection_date"`
	Notes          string      `json:"notes"`
}

func structured(r sample.Record) (string, error) {
	var doc any
	switch rec := r.(type) {
	case sample.Biochar:
		doc = biocharDocument{
			Kind:             sample.KindBiochar,
			Schema:           Schema,
			SampleName:       rec.SampleName,
			Producer:         rec.Producer,
			Biomass:          rec.Biomass,
			ReactorType:      rec.ReactorType,
			PyrolysisTempC:   rec.PyrolysisTempC,
			ResidenceTimeMin: rec.ResidenceTimeMin,
			ProductionDate:   rec.ProductionDate,
			Notes:            rec.Notes,
		}
	case sample.Biomass:
		doc = biomassDocument{
			Kind:           sample.KindBiomass,
			Schema:         Schema,
			BiomassName:    rec.BiomassName,
			Origin:         rec.Origin,
			CollectionDate: rec.CollectionDate,
			Notes:          rec.Notes,
		}
	default:
		return "", fmt.Errorf("%w: %T", sample.ErrUnknownKind, r)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return literalSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// literalSeparators undoes the \u2028 and \u2029 escapes encoding/json
// always emits. An escape counts only when preceded by an even number of
// backslashes, so an escaped backslash followed by "u2028" is left alone.
func literalSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '\\' {
			j++
		}
		rest := s[j:]
		if (j-i)%2 == 1 && (strings.HasPrefix(rest, "u2028") || strings.HasPrefix(rest, "u2029")) {
			b.WriteString(s[i : j-1])
			if rest[4] == '8' {
				b.WriteRune('\u2028')
			} else {
				b.WriteRune('\u2029')
			}
			i = j + len("u2028")
			continue
		}
		b.WriteString(s[i:j])
		i = j
	}
	return b.String()
}

func (b *Builder) readable(r sample.Record) (string, error) {
	l := b.labels
	var lines []string
	switch rec := r.(type) {
	case sample.Biochar:
		lines = []string{
			line(l.SampleName, rec.SampleName),
			line(l.Biomass, rec.Biomass),
			line(l.Producer, rec.Producer),
			line(l.ReactorType, rec.ReactorType),
			line(l.PyrolysisTemp, formatNumber(rec.PyrolysisTempC)),
			line(l.ResidenceTime, formatNumber(rec.ResidenceTimeMin)),
		}
		lines = appendOptional(lines, l.ProductionDate, rec.ProductionDate)
		lines = appendOptional(lines, l.Notes, rec.Notes)
	case sample.Biomass:
		lines = []string{
			line(l.BiomassName, rec.BiomassName),
			line(l.Origin, rec.Origin),
		}
		lines = appendOptional(lines, l.CollectionDate, rec.CollectionDate)
		lines = appendOptional(lines, l.Notes, rec.Notes)
	default:
		return "", fmt.Errorf("%w: %T", sample.ErrUnknownKind, r)
	}
	return strings.Join(lines, "\n"), nil
}

func line(label, value string) string {
	return label + ": " + value
}

func appendOptional(lines []string, label, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, line(label, value))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
