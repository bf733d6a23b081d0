// Package placeholder draws stand-in portrait images for people without a
// photo and projects images onto terminal cells.
package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Margin is the inset between the background and the initials panel.
const Margin = 20

// MinFontSize is the smallest font size, in pixels, used for initials.
const MinFontSize = 24

var (
	Background = color.RGBA{R: 176, G: 196, B: 222, A: 255} // light steel blue
	Panel      = color.RGBA{R: 30, G: 144, B: 255, A: 255}  // dodger blue
	Foreground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// maxInitials caps how many name tokens contribute a letter.
const maxInitials = 3

var parseBold = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Initials returns the uppercased first letter of each of the first three
// whitespace-separated tokens of name. Names without tokens yield "".
func Initials(name string) string {
	var b strings.Builder
	for i, tok := range strings.Fields(name) {
		if i == maxInitials {
			break
		}
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FontSize returns the initials font size in pixels for an image width.
func FontSize(width int) int {
	return max(MinFontSize, width/10)
}

// Generate draws a width x height placeholder: a background fill, an inset
// panel and the centered initials of name in white. The output depends only
// on its inputs. Non-positive sizes produce an empty image.
func Generate(name string, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	inset := image.Rect(Margin, Margin, width-Margin, height-Margin)
	if inset.Empty() {
		return img, nil
	}
	draw.Draw(img, inset, image.NewUniform(Panel), image.Point{}, draw.Src)

	text := Initials(name)
	if text == "" {
		return img, nil
	}

	f, err := parseBold()
	if err != nil {
		return nil, fmt.Errorf("parsing initials font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(FontSize(width)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating initials face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Foreground),
		Face: face,
	}
	d.Dot = centeredDot(d, inset, text)
	d.DrawString(text)
	return img, nil
}

// centeredDot returns the baseline origin that centers text in r both ways.
func centeredDot(d *font.Drawer, r image.Rectangle, text string) fixed.Point26_6 {
	advance := d.MeasureString(text)
	m := d.Face.Metrics()
	textHeight := m.Ascent + m.Descent

	x := fixed.I(r.Min.X) + (fixed.I(r.Dx())-advance)/2
	y := fixed.I(r.Min.Y) + (fixed.I(r.Dy())-textHeight)/2 + m.Ascent
	return fixed.Point26_6{X: x, Y: y}
}
