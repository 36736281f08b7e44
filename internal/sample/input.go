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

// BiocharInput holds biochar form fields exactly as entered.
type BiocharInput struct {
	SampleName       string
	Producer         string
	Biomass          string
	ReactorType      string
	PyrolysisTempC   string
	ResidenceTimeMin string
	ProductionDate   string
	Notes            string
}

// BiomassInput holds biomass form fields exactly as entered.
type BiomassInput struct {
	BiomassName    string
	Origin         string
	CollectionDate string
	Notes          string
}

// FromBiocharInput converts form text into a normalized Biochar record.
// Unparsable temperatures and times become 0.
func FromBiocharInput(in BiocharInput) Biochar {
	return normalizeBiochar(Biochar{
		SampleName:       in.SampleName,
		Producer:         in.Producer,
		Biomass:          in.Biomass,
		ReactorType:      in.ReactorType,
		PyrolysisTempC:   ParseNumber(in.PyrolysisTempC),
		ResidenceTimeMin: ParseNumber(in.ResidenceTimeMin),
		ProductionDate:   in.ProductionDate,
		Notes:            in.Notes,
	})
}

// FromBiomassInput converts form text into a normalized Biomass record.
func FromBiomassInput(in BiomassInput) Biomass {
	return normalizeBiomass(Biomass{
		BiomassName:    in.BiomassName,
		Origin:         in.Origin,
		CollectionDate: in.CollectionDate,
		Notes:          in.Notes,
	})
}
