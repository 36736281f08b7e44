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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

const samplePayload = `{"kind":"biomass","schema":"arrakis.lab.qrlabel.v2","biomass_name":"Eucalyptus Bark","origin":"Farm A","collection_date":"2023-02-01","notes":""}`

func TestComposeTitle(t *testing.T) {
	if got := ComposeTitle("Sample", "Pine"); got != "Sample | Pine" {
		t.Errorf("ComposeTitle() = %q", got)
	}
	if got := ComposeTitle("Sample", ""); got != "Sample" {
		t.Errorf("ComposeTitle() = %q", got)
	}
}

func TestQRBitmap(t *testing.T) {
	tests := []struct {
		name       string
		moduleSize int
		border     int
	}{
		{"default", 10, 4},
		{"no quiet zone", 3, 0},
		{"single pixel modules", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := QRBitmap("hello", tt.moduleSize, tt.border)
			if err != nil {
				t.Fatalf("QRBitmap() error: %v", err)
			}
			// "hello" fits version 1: 21 modules.
			wantSide := (21 + 2*tt.border) * tt.moduleSize
			if b := img.Bounds(); b.Dx() != wantSide || b.Dy() != wantSide {
				t.Fatalf("QRBitmap() bounds = %v, want %dx%d", b, wantSide, wantSide)
			}
			edge := tt.border * tt.moduleSize
			if tt.border > 0 && img.GrayAt(edge-1, edge-1).Y != 0xff {
				t.Errorf("quiet zone pixel is not white")
			}
			// Top-left finder pattern starts with a dark module.
			if img.GrayAt(edge, edge).Y != 0 {
				t.Errorf("finder pattern pixel at %d is not black", edge)
			}
		})
	}
}

func TestQRBitmapCapacityExceeded(t *testing.T) {
	_, err := QRBitmap(strings.Repeat("x", 4000), 10, 4)
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("QRBitmap() error = %v, want ErrEncoding", err)
	}
	if _, err := Render("T", "", strings.Repeat("x", 4000), DefaultOptions()); !errors.Is(err, ErrEncoding) {
		t.Fatalf("Render() error = %v, want ErrEncoding", err)
	}
}

func TestRenderDefaultLabel(t *testing.T) {
	opts := DefaultOptions()
	canvas, lay, err := render("Eucalyptus Bark", "Farm A", samplePayload, opts)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}

	natural, err := QRBitmap(samplePayload, opts.ModuleSize, opts.Border)
	if err != nil {
		t.Fatalf("QRBitmap() error: %v", err)
	}
	side := natural.Bounds().Dx()

	if canvas.Bounds().Dx() != opts.Width {
		t.Errorf("width = %d, want %d", canvas.Bounds().Dx(), opts.Width)
	}
	if canvas.Bounds().Dy() <= side {
		t.Errorf("height %d does not exceed QR height %d", canvas.Bounds().Dy(), side)
	}
	if len(lay.Lines) != 1 || lay.Lines[0] != "Eucalyptus Bark | Farm A" {
		t.Errorf("lines = %q", lay.Lines)
	}
	wantHeight := opts.Padding + lay.TitleRect.Dy() + opts.Padding + side + opts.Padding
	if canvas.Bounds().Dy() != wantHeight {
		t.Errorf("height = %d, want %d", canvas.Bounds().Dy(), wantHeight)
	}
	if lay.QRRect.Dx() != side {
		t.Errorf("QR was resized to %d, natural size %d", lay.QRRect.Dx(), side)
	}
	if !hasInk(canvas, lay.TitleRect) {
		t.Errorf("title block has no dark pixels")
	}
	if got := decode(t, canvas, lay.QRRect); got != samplePayload {
		t.Errorf("decoded QR = %q, want %q", got, samplePayload)
	}
}

func TestRenderNeverUpscales(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 2000
	canvas, lay, err := render("Wide", "", "hello", opts)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	side := (21 + 2*opts.Border) * opts.ModuleSize
	if lay.QRRect.Dx() != side || lay.QRRect.Dy() != side {
		t.Errorf("QR rect = %v, want natural side %d", lay.QRRect, side)
	}
	if lay.QRRect.Min.X != (opts.Width-side)/2 {
		t.Errorf("QR left = %d, want centered at %d", lay.QRRect.Min.X, (opts.Width-side)/2)
	}
	if canvas.Bounds().Dx() != opts.Width {
		t.Errorf("width = %d, want %d", canvas.Bounds().Dx(), opts.Width)
	}
}

func TestRenderDownscalesNarrowCanvas(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 200
	canvas, lay, err := render("Narrow", "", "hello", opts)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	inner := opts.Width - 2*opts.Padding
	if lay.QRRect.Dx() != inner || lay.QRRect.Dy() != inner {
		t.Errorf("QR rect = %v, want %dx%d", lay.QRRect, inner, inner)
	}
	if lay.QRRect.Min.X != opts.Padding || lay.QRRect.Max.X != opts.Width-opts.Padding {
		t.Errorf("QR rect %v is not centered", lay.QRRect)
	}
	if canvas.Bounds().Dx() != opts.Width {
		t.Errorf("width = %d, want %d", canvas.Bounds().Dx(), opts.Width)
	}
	if !hasInk(canvas, lay.QRRect) {
		t.Errorf("downscaled QR has no dark pixels")
	}
	if c := canvas.RGBAAt(lay.QRRect.Min.X, lay.QRRect.Min.Y); c != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("quiet zone corner = %v, want white", c)
	}
}

func TestRenderWrapsLongTitle(t *testing.T) {
	opts := DefaultOptions()
	left := "Biochar De Casca De Eucalyptus Pirolisado Em Reator Rotativo"
	right := "Eucalyptus Grandis Da Fazenda Experimental"
	canvas, lay, err := render(left, right, "hello", opts)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if len(lay.Lines) < 2 {
		t.Fatalf("title was not wrapped: %q", lay.Lines)
	}
	if got := strings.Join(lay.Lines, " "); got != ComposeTitle(left, right) {
		t.Errorf("wrapped lines lost words: %q", got)
	}

	dc := newMeasureContext(t, opts)
	inner := float64(opts.Width - 2*opts.Padding)
	for _, line := range lay.Lines {
		if w, _ := dc.MeasureString(line); w > inner {
			t.Errorf("line %q is %.0fpx wide, limit %.0f", line, w, inner)
		}
	}
	wantTitle := len(lay.Lines)*lay.LineHeight + (len(lay.Lines)-1)*opts.LineGap
	if lay.TitleRect.Dy() != wantTitle {
		t.Errorf("title height = %d, want %d", lay.TitleRect.Dy(), wantTitle)
	}
	if canvas.Bounds().Dy() != lay.Height {
		t.Errorf("canvas height = %d, layout height %d", canvas.Bounds().Dy(), lay.Height)
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	tests := map[string]func(*Options){
		"width inside padding": func(o *Options) { o.Width = 60 },
		"zero module size":     func(o *Options) { o.ModuleSize = 0 },
		"negative border":      func(o *Options) { o.Border = -1 },
		"zero font size":       func(o *Options) { o.FontSize = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			if _, err := Render("T", "", "hello", opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Render() error = %v, want ErrInvalidOptions", err)
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	canvas, err := Render("Sample", "Pine", "hello", DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	data, err := EncodePNG(canvas)
	if err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if img.Bounds() != canvas.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", img.Bounds(), canvas.Bounds())
	}
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"one two three", 20, []string{"one two three"}},
		{"abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"  spaced   out  ", 6, []string{"spaced", "out"}},
		{"", 5, []string{""}},
	}
	for _, tt := range tests {
		got := wrapWords(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapWords(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestWrapTitleFitsWidth(t *testing.T) {
	measure := func(s string) float64 { return float64(utf8.RuneCountInString(s) * 10) }
	title := strings.Repeat("word ", 40)

	lines := wrapTitle(title, 250, measure)
	for _, line := range lines {
		if measure(line) > 250 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if got := wrapTitle("short", 250, measure); len(got) != 1 || got[0] != "short" {
		t.Errorf("wrapTitle(short) = %q", got)
	}
}

func newMeasureContext(t *testing.T, opts Options) *gg.Context {
	t.Helper()
	f, err := DefaultFont()
	if err != nil {
		t.Fatalf("DefaultFont() error: %v", err)
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(newFace(f, opts.FontSize))
	return dc
}

func hasInk(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).R < 0x80 {
				return true
			}
		}
	}
	return false
}

func decode(t *testing.T, img *image.RGBA, r image.Rectangle) string {
	t.Helper()
	crop := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(crop, crop.Bounds(), img, r.Min, draw.Src)

	bmp, err := gozxing.NewBinaryBitmapFromImage(crop)
	if err != nil {
		t.Fatalf("NewBinaryBitmapFromImage() error: %v", err)
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return result.GetText()
}
