package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// upperHalf draws the top pixel as foreground and the bottom as background,
// so each terminal cell carries two image rows.
const upperHalf = "▀"

// Render scales img to fit cols x rows cells, preserving aspect ratio with
// cells treated as twice as tall as wide, and returns the half-block art
// centered in the cell area. Returns "" for a nil image or empty area.
func Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	w, h := fit(b.Dx(), b.Dy(), cols, rows*2)
	if w == 0 || h == 0 {
		return ""
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)

	lines := make([]string, 0, (h+1)/2)
	for y := 0; y < h; y += 2 {
		var line strings.Builder
		for x := 0; x < w; x++ {
			top := scaled.RGBAAt(x, y)
			bottom := top
			if y+1 < h {
				bottom = scaled.RGBAAt(x, y+1)
			}
			line.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render(upperHalf))
		}
		lines = append(lines, line.String())
	}

	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

// fit returns the largest size with the aspect ratio of srcW x srcH that fits
// in maxW x maxH pixels.
func fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w := maxW
	h := srcH * maxW / srcW
	if h > maxH {
		h = maxH
		w = srcW * maxH / srcH
	}
	return max(1, w), max(1, h)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
