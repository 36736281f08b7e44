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

package label

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
	defaultFontErr  error
)

// DefaultFont returns the embedded Go Bold typeface, parsed once per process.
func DefaultFont() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = truetype.Parse(gobold.TTF)
	})
	return defaultFont, defaultFontErr
}

// LoadFont parses a TrueType font file from disk.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// newFace builds a face sized in pixels. Faces cache glyphs and must not be
// shared between goroutines, so one is created per render.
func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
