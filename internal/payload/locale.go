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

package payload

import (
	"fmt"
	"strings"
)

// Locale names a label vocabulary for readable payloads.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

type labelSet struct {
	SampleName     string
	Biomass        string
	Producer       string
	ReactorType    string
	PyrolysisTemp  string
	ResidenceTime  string
	ProductionDate string
	BiomassName    string
	Origin         string
	CollectionDate string
	Notes          string
}

var locales = map[Locale]labelSet{
	LocalePT: {
		SampleName:     "Nome da amostra",
		Biomass:        "Biomassa",
		Producer:       "Quem produziu",
		ReactorType:    "Tipo de reator",
		PyrolysisTemp:  "Temperatura de pirólise (°C)",
		ResidenceTime:  "Tempo de residência (min)",
		ProductionDate: "Data de produção",
		BiomassName:    "Nome da biomassa",
		Origin:         "Origem",
		CollectionDate: "Data de coleta",
		Notes:          "Notas",
	},
	LocaleEN: {
		SampleName:     "Sample name",
		Biomass:        "Biomass",
		Producer:       "Producer",
		ReactorType:    "Reactor type",
		PyrolysisTemp:  "Pyrolysis temperature (°C)",
		ResidenceTime:  "Residence time (min)",
		ProductionDate: "Production date",
		BiomassName:    "Biomass name",
		Origin:         "Origin",
		CollectionDate: "Collection date",
		Notes:          "Notes",
	},
}

// ParseLocale accepts "pt" or "en", including regional tags such as "pt-BR".
// An empty string selects Portuguese.
func ParseLocale(s string) (Locale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LocalePT, nil
	}
	base, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	if _, ok := locales[Locale(base)]; ok {
		return Locale(base), nil
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}
