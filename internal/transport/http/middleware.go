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

// Package http provides HTTP transport layer for the QR label service.
package http

import (
	"net/http"

	"go.uber.org/zap"
)

// RequestLoggingMiddleware logs incoming requests with metadata.
func RequestLoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("Received request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int64("content_length", r.ContentLength),
			)
			next.ServeHTTP(w, r)
		})
	}
}

// MethodMiddleware restricts requests to specific HTTP methods.
func MethodMiddleware(allowedMethods ...string) func(http.Handler) http.Handler {
	methodMap := make(map[string]bool)
	for _, method := range allowedMethods {
		methodMap[method] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !methodMap[r.Method] {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Routes wires the label endpoints with logging and method restrictions.
func Routes(h *Handler, logger *zap.Logger) http.Handler {
	logged := RequestLoggingMiddleware(logger)

	mux := http.NewServeMux()
	mux.Handle("/generate", logged(MethodMiddleware(http.MethodPost)(http.HandlerFunc(h.Generate))))
	mux.Handle("/payload", logged(MethodMiddleware(http.MethodPost)(http.HandlerFunc(h.Payload))))
	mux.Handle("/health", logged(MethodMiddleware(http.MethodGet, http.MethodHead)(http.HandlerFunc(h.HealthCheck))))
	return mux
}
