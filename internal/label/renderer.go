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

// Package label rasterizes printable sample labels: a centered, wrapped
// title above a QR code that carries the sample payload.
package label

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

var (
	// ErrEncoding is returned when a payload does not fit in any QR version.
	ErrEncoding = errors.New("payload cannot be encoded as a QR code")
	// ErrInvalidOptions is returned for options that cannot produce a label.
	ErrInvalidOptions = errors.New("invalid label options")
)

// Options control label geometry. Sizes are in pixels unless noted.
type Options struct {
	Width      int
	ModuleSize int
	Border     int // quiet zone, in modules
	Padding    int
	LineGap    int
	FontSize   float64
	Font       *truetype.Font // nil selects DefaultFont
}

// DefaultOptions returns the geometry of the standard 800px label.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		ModuleSize: 10,
		Border:     4,
		Padding:    30,
		LineGap:    8,
		FontSize:   44,
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 2*o.Padding:
		return fmt.Errorf("%w: width %d leaves no room inside padding %d", ErrInvalidOptions, o.Width, o.Padding)
	case o.Padding < 0 || o.LineGap < 0:
		return fmt.Errorf("%w: negative padding or line gap", ErrInvalidOptions)
	case o.ModuleSize < 1:
		return fmt.Errorf("%w: module size must be at least 1", ErrInvalidOptions)
	case o.Border < 0:
		return fmt.Errorf("%w: border must not be negative", ErrInvalidOptions)
	case o.FontSize <= 0:
		return fmt.Errorf("%w: font size must be positive", ErrInvalidOptions)
	}
	return nil
}

// ComposeTitle joins the two title halves with " | ", or returns left alone
// when right is empty.
func ComposeTitle(left, right string) string {
	if right == "" {
		return left
	}
	return left + " | " + right
}

// layout is the computed placement of every element on the canvas.
type layout struct {
	Lines      []string
	Ascent     int
	LineHeight int
	TitleRect  image.Rectangle
	QRRect     image.Rectangle
	Height     int
}

func computeLayout(title string, qrSide int, opts Options, dc *gg.Context, face font.Face) layout {
	inner := opts.Width - 2*opts.Padding
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	lines := wrapTitle(title, float64(inner), measure)

	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	lineHeight := ascent + m.Descent.Ceil()
	titleHeight := len(lines)*lineHeight + (len(lines)-1)*opts.LineGap

	// Downscale only; nearest-neighbour keeps module edges sharp.
	qrW := min(qrSide, inner)
	titleTop := opts.Padding
	qrTop := titleTop + titleHeight + opts.Padding
	qrLeft := (opts.Width - qrW) / 2

	return layout{
		Lines:      lines,
		Ascent:     ascent,
		LineHeight: lineHeight,
		TitleRect:  image.Rect(opts.Padding, titleTop, opts.Width-opts.Padding, titleTop+titleHeight),
		QRRect:     image.Rect(qrLeft, qrTop, qrLeft+qrW, qrTop+qrW),
		Height:     qrTop + qrW + opts.Padding,
	}
}

// Render draws a label for payload titled with titleLeft and titleRight.
// The result is exactly opts.Width pixels wide.
func Render(titleLeft, titleRight, payload string, opts Options) (*image.RGBA, error) {
	canvas, _, err := render(titleLeft, titleRight, payload, opts)
	return canvas, err
}

func render(titleLeft, titleRight, payload string, opts Options) (*image.RGBA, layout, error) {
	if err := opts.validate(); err != nil {
		return nil, layout{}, err
	}
	f := opts.Font
	if f == nil {
		var err error
		if f, err = DefaultFont(); err != nil {
			return nil, layout{}, fmt.Errorf("failed to load default font: %w", err)
		}
	}

	qr, err := QRBitmap(payload, opts.ModuleSize, opts.Border)
	if err != nil {
		return nil, layout{}, err
	}

	face := newFace(f, opts.FontSize)
	defer face.Close()

	scratch := gg.NewContext(1, 1)
	scratch.SetFontFace(face)
	lay := computeLayout(ComposeTitle(titleLeft, titleRight), qr.Bounds().Dx(), opts, scratch, face)

	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, lay.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	dc := gg.NewContextForRGBA(canvas)
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	y := lay.TitleRect.Min.Y
	for _, line := range lay.Lines {
		w, _ := dc.MeasureString(line)
		x := math.Floor((float64(opts.Width) - w) / 2)
		dc.DrawString(line, x, float64(y+lay.Ascent))
		y += lay.LineHeight + opts.LineGap
	}

	if lay.QRRect.Dx() == qr.Bounds().Dx() {
		draw.Draw(canvas, lay.QRRect, qr, qr.Bounds().Min, draw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(canvas, lay.QRRect, qr, qr.Bounds(), xdraw.Src, nil)
	}
	return canvas, lay, nil
}
