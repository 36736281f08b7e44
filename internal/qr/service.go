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

// Package qr turns sample form input into QR payloads and printable label images.
package qr

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/label"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

// Request carries the raw form fields of one sample. Only the input that
// matches Kind is read.
type Request struct {
	Kind    sample.Kind
	Format  payload.Format
	Biochar sample.BiocharInput
	Biomass sample.BiomassInput
}

// Label is a generated label ready to display or save.
type Label struct {
	Title    string
	Payload  string
	Format   payload.Format
	PNG      []byte
	FileName string
}

// Service defines the label generation use cases.
type Service interface {
	Payload(req Request) (string, error)
	Generate(req Request) (*Label, error)
}

type service struct {
	logger  *zap.Logger
	builder *payload.Builder
	opts    label.Options
}

// NewService creates a label service rendering with opts.
func NewService(logger *zap.Logger, builder *payload.Builder, opts label.Options) Service {
	return &service{
		logger:  logger,
		builder: builder,
		opts:    opts,
	}
}

// Payload builds the QR content for req without rendering an image.
func (s *service) Payload(req Request) (string, error) {
	rec, err := record(req)
	if err != nil {
		return "", err
	}
	return s.build(req, rec)
}

func (s *service) build(req Request, rec sample.Record) (string, error) {
	out, err := s.builder.Build(rec, req.Format)
	if err != nil {
		s.logger.Warn("Payload build failed",
			zap.String("kind", string(req.Kind)),
			zap.Error(err),
		)
		return "", err
	}
	s.logger.Debug("Payload built",
		zap.String("kind", string(req.Kind)),
		zap.Stringer("format", req.Format),
		zap.Int("payload_length", len(out)),
		zap.String("payload_preview", truncateString(out, 64)),
	)
	return out, nil
}

// Generate builds the payload for req, renders the label and encodes it as PNG.
func (s *service) Generate(req Request) (*Label, error) {
	s.logger.Debug("Starting label generation",
		zap.String("kind", string(req.Kind)),
		zap.Stringer("format", req.Format),
	)

	rec, err := record(req)
	if err != nil {
		return nil, err
	}
	content, err := s.build(req, rec)
	if err != nil {
		return nil, err
	}
	left, right, err := sample.Title(rec)
	if err != nil {
		return nil, err
	}

	img, err := label.Render(left, right, content, s.opts)
	if err != nil {
		s.logger.Error("Failed to render label",
			zap.Error(err),
			zap.Int("payload_length", len(content)),
			zap.Int("width", s.opts.Width),
		)
		return nil, fmt.Errorf("failed to render label: %w", err)
	}

	png, err := label.EncodePNG(img)
	if err != nil {
		s.logger.Error("Failed to encode label", zap.Error(err))
		return nil, err
	}

	out := &Label{
		Title:    label.ComposeTitle(left, right),
		Payload:  content,
		Format:   req.Format,
		PNG:      png,
		FileName: sample.FileName(left),
	}
	s.logger.Debug("Label generated successfully",
		zap.String("file_name", out.FileName),
		zap.Int("output_size_bytes", len(png)),
		zap.String("image_dimensions", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())),
	)
	return out, nil
}

func record(req Request) (sample.Record, error) {
	switch req.Kind {
	case sample.KindBiochar:
		return sample.FromBiocharInput(req.Biochar), nil
	case sample.KindBiomass:
		return sample.FromBiomassInput(req.Biomass), nil
	}
	return nil, fmt.Errorf("%w: %q", sample.ErrUnknownKind, req.Kind)
}

// truncateString truncates a string to maxLen runes for safe logging.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
