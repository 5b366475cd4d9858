package qrcodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"strings"
)

// maxRenderSide bounds the pixel width of rendered images.
const maxRenderSide = 8192

var gifPalette = color.Palette{color.White, color.Black}

func renderGIF(m [][]bool, scale int) ([]byte, error) {
	side := len(m) * scale
	if side > maxRenderSide {
		return nil, fmt.Errorf("%w: rendered image would be %dpx wide, limit is %dpx", ErrInvalidOption, side, maxRenderSide)
	}

	img := image.NewPaletted(image.Rect(0, 0, side, side), gifPalette)
	for y, row := range m {
		for x, dark := range row {
			if !dark {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				offset := img.PixOffset(x*scale, y*scale+dy)
				for dx := 0; dx < scale; dx++ {
					img.Pix[offset+dx] = 1
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		return nil, errors.Join(ErrRender, err)
	}
	return buf.Bytes(), nil
}

// renderSVG draws every dark module as a unit square of one path. With
// optimize set, horizontal runs of dark modules collapse into one rectangle.
func renderSVG(m [][]bool, scale int, optimize bool) string {
	n := len(m)
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		n*scale, n*scale, n, n)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	b.WriteString(`<path fill="#000000" d="`)
	for y, row := range m {
		for x := 0; x < len(row); x++ {
			if !row[x] {
				continue
			}
			run := 1
			if optimize {
				for x+run < len(row) && row[x+run] {
					run++
				}
			}
			fmt.Fprintf(&b, "M%d %dh%dv1h-%dz", x, y, run, run)
			x += run - 1
		}
	}
	b.WriteString(`"/></svg>`)
	return b.String()
}

// renderASCII packs two module rows into one text line using half blocks.
func renderASCII(m [][]bool) string {
	var b strings.Builder
	for y := 0; y < len(m); y += 2 {
		top := m[y]
		var bottom []bool
		if y+1 < len(m) {
			bottom = m[y+1]
		}
		for x := range top {
			lower := bottom != nil && bottom[x]
			switch {
			case top[x] && lower:
				b.WriteRune('█')
			case top[x]:
				b.WriteRune('▀')
			case lower:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

const (
	termDark  = "\x1b[40m  "
	termLight = "\x1b[47m  "
	termReset = "\x1b[0m"
)

// renderTerm paints each module as two background-coloured cells.
func renderTerm(m [][]bool) string {
	var b strings.Builder
	for _, row := range m {
		for _, dark := range row {
			if dark {
				b.WriteString(termDark)
			} else {
				b.WriteString(termLight)
			}
		}
		b.WriteString(termReset)
		b.WriteByte('\n')
	}
	return b.String()
}
