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

package http

import (
	"bytes"
	"encoding/json"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/qr"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

// labelRequest is the JSON body accepted by /generate and /payload. Field
// names follow the structured payload schema.
type labelRequest struct {
	Kind   string `json:"kind"`
	Format string `json:"format"`

	SampleName       string      `json:"sample_name"`
	Producer         string      `json:"producer"`
	Biomass          string      `json:"biomass"`
	ReactorType      string      `json:"reactor_type"`
	PyrolysisTempC   numericText `json:"pyro_temp_C"`
	ResidenceTimeMin numericText `json:"residence_time_min"`
	ProductionDate   string      `json:"production_date"`

	BiomassName    string `json:"biomass_name"`
	Origin         string `json:"origin"`
	CollectionDate string `json:"collection_date"`

	Notes string `json:"notes"`
}

// numericText accepts a JSON number or string and keeps its text, leaving
// interpretation to sample.ParseNumber.
type numericText string

func (n *numericText) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = numericText(s)
		return nil
	}
	*n = numericText(data)
	return nil
}

func (r labelRequest) toServiceRequest(defaultFormat payload.Format) (qr.Request, error) {
	kind, err := sample.ParseKind(r.Kind)
	if err != nil {
		return qr.Request{}, err
	}
	format := defaultFormat
	if r.Format != "" {
		if format, err = payload.ParseFormat(r.Format); err != nil {
			return qr.Request{}, err
		}
	}

	return qr.Request{
		Kind:   kind,
		Format: format,
		Biochar: sample.BiocharInput{
			SampleName:       r.SampleName,
			Producer:         r.Producer,
			Biomass:          r.Biomass,
			ReactorType:      r.ReactorType,
			PyrolysisTempC:   string(r.PyrolysisTempC),
			ResidenceTimeMin: string(r.ResidenceTimeMin),
			ProductionDate:   r.ProductionDate,
			Notes:            r.Notes,
		},
		Biomass: sample.BiomassInput{
			BiomassName:    r.BiomassName,
			Origin:         r.Origin,
			CollectionDate: r.CollectionDate,
			Notes:          r.Notes,
		},
	}, nil
}
