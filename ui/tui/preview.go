package tui

import (
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"image"
	"image/color"
	"strings"
)

const upperHalfBlock = "▀"

// renderPreview draws two image rows per text line: the upper pixel as
// the foreground of a half block and the lower pixel as its background.
func renderPreview(img image.Image) string {
	if img == nil {
		return ""
	}
	bounds := img.Bounds()
	var builder strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(toColor(img.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(toColor(img.At(x, y+1)))
			}
			builder.WriteString(style.Render(upperHalfBlock))
		}
		if y+2 < bounds.Max.Y {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func toColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
