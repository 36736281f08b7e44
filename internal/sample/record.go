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

// Package sample models the biochar and biomass sample records printed on
// QR labels, together with the normalization rules applied to form input.
package sample

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates the record variants.
type Kind string

const (
	KindBiochar Kind = "biochar"
	KindBiomass Kind = "biomass"
)

// ErrUnknownKind is returned when a record kind is not one of the supported variants.
var ErrUnknownKind = errors.New("unknown sample kind")

// ParseKind maps a user supplied kind to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBiochar:
		return KindBiochar, nil
	case KindBiomass:
		return KindBiomass, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Record is implemented only by Biochar and Biomass.
type Record interface {
	Kind() Kind
	isRecord()
}

// Biochar describes a pyrolysed sample.
type Biochar struct {
	SampleName       string
	Producer         string
	Biomass          string
	ReactorType      string
	PyrolysisTempC   float64
	ResidenceTimeMin float64
	ProductionDate   string
	Notes            string
}

// Kind implements Record.
func (Biochar) Kind() Kind { return KindBiochar }

func (Biochar) isRecord() {}

// Biomass describes a raw feedstock sample.
type Biomass struct {
	BiomassName    string
	Origin         string
	CollectionDate string
	Notes          string
}

// Kind implements Record.
func (Biomass) Kind() Kind { return KindBiomass }

func (Biomass) isRecord() {}

// Normalize returns a copy of r with free text title-cased, dates converted
// to ISO-8601 and surrounding whitespace removed. Notes are only trimmed.
func Normalize(r Record) (Record, error) {
	switch rec := r.(type) {
	case Biochar:
		return normalizeBiochar(rec), nil
	case Biomass:
		return normalizeBiomass(rec), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownKind, r)
}

func normalizeBiochar(rec Biochar) Biochar {
	return Biochar{
		SampleName:       TitleCase(strings.TrimSpace(rec.SampleName)),
		Producer:         TitleCase(strings.TrimSpace(rec.Producer)),
		Biomass:          TitleCase(strings.TrimSpace(rec.Biomass)),
		ReactorType:      TitleCase(strings.TrimSpace(rec.ReactorType)),
		PyrolysisTempC:   finite(rec.PyrolysisTempC),
		ResidenceTimeMin: finite(rec.ResidenceTimeMin),
		ProductionDate:   NormalizeDate(rec.ProductionDate),
		Notes:            strings.TrimSpace(rec.Notes),
	}
}

func normalizeBiomass(rec Biomass) Biomass {
	return Biomass{
		BiomassName:    TitleCase(strings.TrimSpace(rec.BiomassName)),
		Origin:         TitleCase(strings.TrimSpace(rec.Origin)),
		CollectionDate: NormalizeDate(rec.CollectionDate),
		Notes:          strings.TrimSpace(rec.Notes),
	}
}

// Validate reports the first required field that is empty after trimming.
func Validate(r Record) error {
	switch rec := r.(type) {
	case Biochar:
		return required("sample_name", rec.SampleName)
	case Biomass:
		if err := required("biomass_name", rec.BiomassName); err != nil {
			return err
		}
		return required("origin", rec.Origin)
	}
	return fmt.Errorf("%w: %T", ErrUnknownKind, r)
}

// Title returns the two halves of the label heading for r: the sample name
// and its feedstock for biochar, the biomass name and its origin for biomass.
func Title(r Record) (left, right string, err error) {
	switch rec := r.(type) {
	case Biochar:
		return TitleCase(strings.TrimSpace(rec.SampleName)), TitleCase(strings.TrimSpace(rec.Biomass)), nil
	case Biomass:
		return TitleCase(strings.TrimSpace(rec.BiomassName)), TitleCase(strings.TrimSpace(rec.Origin)), nil
	}
	return "", "", fmt.Errorf("%w: %T", ErrUnknownKind, r)
}

// FileName derives the PNG file name for a label whose heading starts with titleLeft.
func FileName(titleLeft string) string {
	return strings.ReplaceAll(titleLeft, " ", "_") + "_label.png"
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}
