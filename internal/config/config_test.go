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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "READ_TIMEOUT", "MAX_BODY_SIZE", "LABEL_WIDTH", "QR_MODULE_SIZE", "QR_BORDER", "LABEL_FONT_PATH", "LABEL_LOCALE", "DEFAULT_PAYLOAD_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeout)
	}
	if cfg.LabelWidth != 800 || cfg.QRModuleSize != 10 || cfg.QRBorder != 4 {
		t.Errorf("label geometry = %d/%d/%d, want 800/10/4", cfg.LabelWidth, cfg.QRModuleSize, cfg.QRBorder)
	}

	f, err := cfg.PayloadFormat()
	if err != nil || f != payload.Readable {
		t.Errorf("PayloadFormat() = %v, %v", f, err)
	}
	if _, err := cfg.Builder(); err != nil {
		t.Errorf("Builder() error: %v", err)
	}
	opts, err := cfg.LabelOptions()
	if err != nil {
		t.Fatalf("LabelOptions() error: %v", err)
	}
	if opts.Font != nil {
		t.Errorf("LabelOptions() loaded a font without LABEL_FONT_PATH")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WRITE_TIMEOUT", "30s")
	t.Setenv("MAX_BODY_SIZE", "1024")
	t.Setenv("LABEL_WIDTH", "600")
	t.Setenv("QR_MODULE_SIZE", "-3")
	t.Setenv("QR_BORDER", "0")
	t.Setenv("LABEL_LOCALE", "en-US")
	t.Setenv("DEFAULT_PAYLOAD_FORMAT", "json")

	cfg := LoadConfig()
	if cfg.Port != "9090" || cfg.WriteTimeout != 30*time.Second || cfg.MaxBodySize != 1024 {
		t.Errorf("server overrides not applied: %+v", cfg)
	}
	if cfg.LabelWidth != 600 {
		t.Errorf("LabelWidth = %d, want 600", cfg.LabelWidth)
	}
	if cfg.QRModuleSize != 10 {
		t.Errorf("QRModuleSize = %d, want fallback 10 for negative value", cfg.QRModuleSize)
	}
	if cfg.QRBorder != 0 {
		t.Errorf("QRBorder = %d, want 0", cfg.QRBorder)
	}
	if f, err := cfg.PayloadFormat(); err != nil || f != payload.Structured {
		t.Errorf("PayloadFormat() = %v, %v", f, err)
	}
}

func TestConfigInvalidValues(t *testing.T) {
	cfg := &Config{Locale: "klingon", DefaultFormat: "xml", FontPath: filepath.Join(t.TempDir(), "missing.ttf")}
	if _, err := cfg.Builder(); err == nil {
		t.Error("Builder() expected error for unsupported locale")
	}
	if _, err := cfg.PayloadFormat(); err == nil {
		t.Error("PayloadFormat() expected error for unknown format")
	}
	if _, err := cfg.LabelOptions(); err == nil {
		t.Error("LabelOptions() expected error for missing font")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LABEL_WIDTH=640\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	t.Setenv("LABEL_WIDTH", "")
	os.Unsetenv("LABEL_WIDTH")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error: %v", err)
	}
	if got := LoadConfig().LabelWidth; got != 640 {
		t.Errorf("LabelWidth = %d, want 640 from env file", got)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadEnvFile() expected error for missing file")
	}
}

func TestGetEnvIntMin(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		minimum int
		want    int
	}{
		{"unset", "", 1, 7},
		{"valid", "12", 1, 12},
		{"zero allowed", "0", 0, 0},
		{"zero below minimum", "0", 1, 7},
		{"negative", "-1", 0, 7},
		{"malformed", "ten", 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("QRLABEL_TEST_INT", tt.value)
			if got := getEnvIntMin("QRLABEL_TEST_INT", 7, tt.minimum); got != tt.want {
				t.Errorf("getEnvIntMin(%q, min %d) = %d, want %d", tt.value, tt.minimum, got, tt.want)
			}
		})
	}
}
