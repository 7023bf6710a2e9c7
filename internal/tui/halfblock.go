package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// HalfBlock draws img with one terminal cell per column and two pixel rows
// per line. Pixels with alpha below 128 are left as blank cells.
func HalfBlock(img *image.NRGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.NRGBAAt(x, y)
			bottom := color.NRGBA{}
			if y+1 < b.Max.Y {
				bottom = img.NRGBAAt(x, y+1)
			}
			sb.WriteString(cell(top, bottom))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func cell(top, bottom color.NRGBA) string {
	topOn := top.A >= 128
	bottomOn := bottom.A >= 128

	switch {
	case topOn && bottomOn:
		return lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render(upperHalf)
	case topOn:
		return lipgloss.NewStyle().Foreground(hex(top)).Render(upperHalf)
	case bottomOn:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render(lowerHalf)
	default:
		return " "
	}
}

func hex(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
