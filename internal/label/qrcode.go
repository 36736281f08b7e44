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
	"image"

	"github.com/skip2/go-qrcode"
)

// QRBitmap encodes payload with medium error correction in the smallest QR
// version that fits, and draws it with moduleSize pixels per module and a
// quiet zone of border modules on every side.
func QRBitmap(payload string, moduleSize, border int) (*image.Gray, error) {
	if moduleSize < 1 || border < 0 {
		return nil, fmt.Errorf("%w: module size %d, border %d", ErrInvalidOptions, moduleSize, border)
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	code.DisableBorder = true
	modules := code.Bitmap()

	side := (len(modules) + 2*border) * moduleSize
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for row, cells := range modules {
		for col, dark := range cells {
			if !dark {
				continue
			}
			x0 := (col + border) * moduleSize
			y0 := (row + border) * moduleSize
			for y := y0; y < y0+moduleSize; y++ {
				off := y * img.Stride
				for x := x0; x < x0+moduleSize; x++ {
					img.Pix[off+x] = 0
				}
			}
		}
	}
	return img, nil
}
