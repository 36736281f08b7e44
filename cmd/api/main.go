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

// Package main is the entry point for the QR label service.
// This HTTP service turns biochar and biomass sample records into printable
// PNG labels with a title and a QR code carrying the sample metadata.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/logger"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/qr"
	transport "github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/transport/http"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// .env must be loaded before the logger reads LOG_ENV and LOG_LEVEL
	envErr := config.LoadEnvFile()

	log := logger.InitLogger()
	defer func() { _ = log.Sync() }()

	log.Info("Starting QR label service",
		zap.String("version", Version),
		zap.String("git_commit", GitCommit),
	)
	if envErr != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()
	opts, err := cfg.LabelOptions()
	if err != nil {
		log.Fatal("Failed to load label font", zap.String("path", cfg.FontPath), zap.Error(err))
	}
	builder, err := cfg.Builder()
	if err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	format, err := cfg.PayloadFormat()
	if err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Label configuration",
		zap.Int("width", opts.Width),
		zap.Int("module_size", opts.ModuleSize),
		zap.Int("border", opts.Border),
		zap.String("locale", cfg.Locale),
		zap.Stringer("default_format", format),
		zap.Int64("max_body_size", cfg.MaxBodySize),
	)

	svc := qr.NewService(log, builder, opts)
	h := transport.NewHandler(svc, log, cfg.MaxBodySize, format)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           transport.Routes(h, log),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				_ = srv.Close()
			}
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("Server exited")
}
