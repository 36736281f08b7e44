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

// Package config provides configuration management for the QR label service.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/label"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodySize     int64

	LabelWidth    int
	QRModuleSize  int
	QRBorder      int
	FontPath      string
	Locale        string
	DefaultFormat string

	LogEnv   string
	LogLevel string
}

// LoadEnvFile loads variables from the given .env files (".env" when none
// are given) without overriding variables already set in the environment.
func LoadEnvFile(filenames ...string) error {
	return godotenv.Load(filenames...)
}

// LoadConfig reads configuration from environment variables and returns a Config instance.
func LoadConfig() *Config {
	defaults := label.DefaultOptions()
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		MaxBodySize:     getEnvInt64("MAX_BODY_SIZE", 65536),
		LabelWidth:      getEnvIntMin("LABEL_WIDTH", defaults.Width, 1),
		QRModuleSize:    getEnvIntMin("QR_MODULE_SIZE", defaults.ModuleSize, 1),
		QRBorder:        getEnvIntMin("QR_BORDER", defaults.Border, 0),
		FontPath:        getEnv("LABEL_FONT_PATH", ""),
		Locale:          getEnv("LABEL_LOCALE", string(payload.LocalePT)),
		DefaultFormat:   getEnv("DEFAULT_PAYLOAD_FORMAT", payload.Readable.String()),
		LogEnv:          getEnv("LOG_ENV", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// LabelOptions returns the renderer geometry, loading the configured font if any.
func (c *Config) LabelOptions() (label.Options, error) {
	opts := label.DefaultOptions()
	opts.Width = c.LabelWidth
	opts.ModuleSize = c.QRModuleSize
	opts.Border = c.QRBorder
	if c.FontPath != "" {
		f, err := label.LoadFont(c.FontPath)
		if err != nil {
			return label.Options{}, err
		}
		opts.Font = f
	}
	return opts, nil
}

// Builder returns a payload builder for the configured locale.
func (c *Config) Builder() (*payload.Builder, error) {
	locale, err := payload.ParseLocale(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid LABEL_LOCALE: %w", err)
	}
	return payload.NewBuilder(payload.WithLocale(locale)), nil
}

// PayloadFormat returns the format used when a request does not name one.
func (c *Config) PayloadFormat() (payload.Format, error) {
	f, err := payload.ParseFormat(c.DefaultFormat)
	if err != nil {
		return 0, fmt.Errorf("invalid DEFAULT_PAYLOAD_FORMAT: %w", err)
	}
	return f, nil
}

// getEnv retrieves a string environment variable or returns fallback if not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration retrieves a duration environment variable or returns fallback.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvIntMin retrieves an int environment variable or returns fallback
// when it is unset, malformed or below minimum.
func getEnvIntMin(key string, fallback, minimum int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= minimum {
			return i
		}
	}
	return fallback
}

// getEnvInt64 retrieves an int64 environment variable or returns fallback (only accepts positive values).
func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			if i > 0 {
				return i
			}
		}
	}
	return fallback
}
