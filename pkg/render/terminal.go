package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// halfBlock is the upper half block; its foreground paints the top pixel and
// its background the bottom one.
const halfBlock = "▀"

// Draw paints the frame buffer onto scr inside area, two pixel rows per
// terminal row. The frame buffer height should be twice the area height.
func (fb *FrameBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	w, h := fb.Width(), fb.Height()
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := (row - area.Min.Y) * 2
		if top >= h {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= w {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, top)),
					Bg: cellColor(fb.GetPixel(x, top+1)),
				},
			})
		}
	}
}

// TerminalSize returns the frame buffer size that fills a cols×rows terminal
// area with half blocks.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// cellColor returns nil for transparent pixels so the terminal default shows.
func cellColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
