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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/label"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/qr"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

type Handler struct {
	svc           qr.Service
	logger        *zap.Logger
	maxBodySize   int64
	defaultFormat payload.Format
}

// NewHandler creates a new HTTP handler for label generation.
func NewHandler(svc qr.Service, logger *zap.Logger, maxBodySize int64, defaultFormat payload.Format) *Handler {
	return &Handler{
		svc:           svc,
		logger:        logger,
		maxBodySize:   maxBodySize,
		defaultFormat: defaultFormat,
	}
}

// Generate handles POST /generate requests. Accepts a JSON sample record,
// returns the label as a PNG attachment.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	lbl, err := h.svc.Generate(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(lbl.PNG)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", lbl.FileName))
	w.Header().Set("X-Label-Payload-Format", lbl.Format.String())
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(lbl.PNG); err != nil {
		h.logger.Error("failed to write response",
			zap.Error(err),
			zap.Int("png_size", len(lbl.PNG)),
			zap.String("remote_addr", r.RemoteAddr),
		)
		return
	}

	h.logger.Info("Label request completed successfully",
		zap.String("kind", string(req.Kind)),
		zap.Stringer("format", req.Format),
		zap.String("file_name", lbl.FileName),
		zap.Int("output_size", len(lbl.PNG)),
		zap.String("remote_addr", r.RemoteAddr),
	)
}

// Payload handles POST /payload requests and returns only the QR content.
func (h *Handler) Payload(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	out, err := h.svc.Payload(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if req.Format == payload.Structured {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, out); err != nil {
		h.logger.Error("failed to write response", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
	}
}

// HealthCheck handles GET /health requests for liveness/readiness probes.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.logger.Error("failed to encode health check response",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr),
		)
	}
}

// decode reads and validates the request body, writing an error response
// and returning false when it cannot be used.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (qr.Request, bool) {
	// Fast fail for obvious oversized requests
	if r.ContentLength > h.maxBodySize {
		h.logger.Warn("Request body too large (ContentLength check)",
			zap.Int64("content_length", r.ContentLength),
			zap.Int64("max_allowed", h.maxBodySize),
			zap.String("remote_addr", r.RemoteAddr),
		)
		http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return qr.Request{}, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.Warn("Request body too large",
				zap.Int64("max_allowed", h.maxBodySize),
				zap.String("remote_addr", r.RemoteAddr),
			)
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return qr.Request{}, false
		}
		h.logger.Error("failed to read request body", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return qr.Request{}, false
	}
	if len(body) == 0 {
		h.logger.Warn("Empty request body received", zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "Request body is empty", http.StatusBadRequest)
		return qr.Request{}, false
	}

	var in labelRequest
	if err := json.Unmarshal(body, &in); err != nil {
		h.logger.Warn("Malformed request body", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "Request body must be a JSON object", http.StatusBadRequest)
		return qr.Request{}, false
	}
	req, err := in.toServiceRequest(h.defaultFormat)
	if err != nil {
		h.logger.Warn("Invalid label request", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return qr.Request{}, false
	}
	return req, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sample.ErrValidation), errors.Is(err, sample.ErrUnknownKind):
		h.logger.Warn("Label request rejected", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, label.ErrEncoding):
		h.logger.Warn("Payload too large for a QR code", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "Payload too large for a QR code", http.StatusUnprocessableEntity)
	default:
		h.logger.Error("failed to generate label", zap.Error(err), zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
