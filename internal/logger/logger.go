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

// Package logger provides centralized logging configuration for the QR label tools.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	initOnce sync.Once
	logger   *zap.Logger
	levelMap = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
)

// InitLogger initializes and returns the process logger based on LOG_ENV (dev/prod)
// and LOG_LEVEL (debug/info/warn/error). Later calls return the same logger.
func InitLogger() *zap.Logger {
	initOnce.Do(func() {
		logEnv := os.Getenv("LOG_ENV")
		level := ParseLevel(os.Getenv("LOG_LEVEL"))

		logger = New(logEnv, level, os.Stdout)
		logger.Info("Logger initialized",
			zap.String("LOG_ENV", logEnv),
			zap.String("LOG_LEVEL", level.String()),
		)
	})
	return logger
}

// New builds a logger writing to w. The "prod" environment emits JSON for
// structured log parsing; anything else emits human readable console lines.
func New(env string, level zapcore.Level, w io.Writer) *zap.Logger {
	var encoder zapcore.Encoder
	if env == "prod" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}

// ParseLevel maps a LOG_LEVEL value to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	if level, ok := levelMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return level
	}
	return zapcore.InfoLevel
}
