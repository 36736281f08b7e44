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

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/qr"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

func (a *app) newBiocharCmd() *cobra.Command {
	var in sample.BiocharInput
	cmd := &cobra.Command{
		Use:   "biochar",
		Short: "Generate a label for a biochar sample",
		Example: `  qrlabel biochar --sample-name "BC 01" --biomass "pine chips" --producer "Ana" \
    --reactor-type "rotary kiln" --temperature 550 --residence-time 30 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, qr.Request{Kind: sample.KindBiochar, Biochar: in})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.SampleName, "sample-name", "", "sample name (required)")
	f.StringVar(&in.Biomass, "biomass", "", "feedstock the biochar was made from")
	f.StringVar(&in.Producer, "producer", "", "who produced the sample")
	f.StringVar(&in.ReactorType, "reactor-type", "", "reactor type")
	f.StringVar(&in.PyrolysisTempC, "temperature", "", "pyrolysis temperature in °C")
	f.StringVar(&in.ResidenceTimeMin, "residence-time", "", "residence time in minutes")
	f.StringVar(&in.ProductionDate, "date", "", "production date (YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY)")
	f.StringVar(&in.Notes, "notes", "", "free-form notes")
	return cmd
}

func (a *app) newBiomassCmd() *cobra.Command {
	var in sample.BiomassInput
	cmd := &cobra.Command{
		Use:     "biomass",
		Short:   "Generate a label for a biomass sample",
		Example: `  qrlabel biomass --name "eucalyptus bark" --origin "farm A" --date 01/02/2023`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, qr.Request{Kind: sample.KindBiomass, Biomass: in})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.BiomassName, "name", "", "biomass name (required)")
	f.StringVar(&in.Origin, "origin", "", "where the biomass was collected (required)")
	f.StringVar(&in.CollectionDate, "date", "", "collection date (YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY)")
	f.StringVar(&in.Notes, "notes", "", "free-form notes")
	return cmd
}

// generate renders the label for req, writes it to the output directory and
// prints the payload to stdout.
func (a *app) generate(cmd *cobra.Command, req qr.Request) error {
	svc, format, err := a.service(cmd)
	if err != nil {
		return err
	}
	req.Format = format

	lbl, err := svc.Generate(req)
	if err != nil {
		return err
	}

	path := filepath.Join(a.outDir, lbl.FileName)
	if err := os.WriteFile(path, lbl.PNG, 0o644); err != nil {
		return fmt.Errorf("failed to save label to %s: %w", path, err)
	}
	a.logger.Info("Label saved",
		zap.String("path", path),
		zap.String("title", lbl.Title),
		zap.Int("size_bytes", len(lbl.PNG)),
	)

	_, err = fmt.Fprintln(a.stdout, lbl.Payload)
	return err
}

// service builds a label service from configuration, with command line
// flags taking precedence.
func (a *app) service(cmd *cobra.Command) (qr.Service, payload.Format, error) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		a.cfg.LabelWidth = a.width
	}
	if flags.Changed("module-size") {
		a.cfg.QRModuleSize = a.moduleSize
	}
	if flags.Changed("border") {
		a.cfg.QRBorder = a.border
	}
	if flags.Changed("locale") {
		a.cfg.Locale = a.locale
	}
	if flags.Changed("font") {
		a.cfg.FontPath = a.fontPath
	}
	if flags.Changed("format") {
		a.cfg.DefaultFormat = a.format
	}

	opts, err := a.cfg.LabelOptions()
	if err != nil {
		return nil, 0, err
	}
	builder, err := a.cfg.Builder()
	if err != nil {
		return nil, 0, err
	}
	format, err := a.cfg.PayloadFormat()
	if err != nil {
		return nil, 0, err
	}

	a.logger.Debug("Label settings",
		zap.Int("width", opts.Width),
		zap.Int("module_size", opts.ModuleSize),
		zap.Int("border", opts.Border),
		zap.Stringer("format", format),
		zap.Bool("custom_font", opts.Font != nil),
	)
	return qr.NewService(a.logger, builder, opts), format, nil
}
