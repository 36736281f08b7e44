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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/payload"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/sample"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), &stdout, &stderr, args)
	return stdout.String(), err
}

func TestBiomassCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "biomass", "--name", "eucalyptus bark", "--origin", "farm A", "--date", "01/02/2023", "--out", dir)
	if err != nil {
		t.Fatalf("biomass: %v", err)
	}

	want := "Nome da biomassa: Eucalyptus Bark\nOrigem: Farm A\nData de coleta: 2023-02-01\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Eucalyptus_Bark_label.png"))
	if err != nil {
		t.Fatalf("label not written: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("label is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 800 {
		t.Errorf("label width = %d, want 800", img.Bounds().Dx())
	}
}

func TestBiocharCommandJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "biochar",
		"--sample-name", "bc 01",
		"--biomass", "pine chips",
		"--temperature", "550,5",
		"--residence-time", "abc",
		"--format", "json",
		"--width", "600",
		"--out", dir,
	)
	if err != nil {
		t.Fatalf("biochar: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v (%q)", err, out)
	}
	if doc["schema"] != payload.Schema || doc["kind"] != "biochar" {
		t.Errorf("payload header = %v", doc)
	}
	if doc["sample_name"] != "Bc 01" || doc["pyro_temp_C"] != 550.5 || doc["residence_time_min"] != 0.0 {
		t.Errorf("payload = %v", doc)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Bc_01_label.png"))
	if err != nil {
		t.Fatalf("label not written: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("label is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 600 {
		t.Errorf("label width = %d, want 600", img.Bounds().Dx())
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "biomass", "--name", "bark", "--out", dir)
	if !errors.Is(err, sample.ErrValidation) {
		t.Errorf("missing origin error = %v, want ErrValidation", err)
	}

	_, err = run(t, "biochar", "--biomass", "pine", "--out", dir)
	if !errors.Is(err, sample.ErrValidation) {
		t.Errorf("missing sample name error = %v, want ErrValidation", err)
	}

	_, err = run(t, "biomass", "--name", "bark", "--origin", "farm", "--format", "xml", "--out", dir)
	if !errors.Is(err, payload.ErrUnknownFormat) {
		t.Errorf("bad format error = %v, want ErrUnknownFormat", err)
	}

	missing := filepath.Join(dir, "missing")
	_, err = run(t, "biomass", "--name", "bark", "--origin", "farm", "--out", missing)
	if err == nil || !strings.Contains(err.Error(), "failed to save label") {
		t.Errorf("unwritable output error = %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unwritable output error should wrap os.ErrNotExist, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed commands left %d files behind", len(entries))
	}
}
