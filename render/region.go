package render

import (
	"github.com/gdamore/tcell/v2"
)

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
	LineHeavy                   // ┏━┓┃┗┛
)

// boxChars contains box drawing character sets indexed by LineType
var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineHeavy:   {'┏', '━', '┓', '┃', '┗', '┛'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// Region is a clipped rectangle of the screen; coordinates are relative to its origin
type Region struct {
	Screen tcell.Screen
	X, Y   int
	W, H   int
}

// Sub returns a nested region clipped to the parent
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	return Region{Screen: r.Screen, X: r.X + x, Y: r.Y + y, W: max(w, 0), H: max(h, 0)}
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill paints every cell of the region
func (r Region) Fill(ch rune, style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ch, style)
		}
	}
}

// Text writes s at (x, y), clipped to the region; returns the column after the last rune
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.Cell(x, y, ch, style)
		x++
	}
	return x
}

// TextCenter writes s centered on row y
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	r.Text((r.W-RuneLen(s))/2, y, s, style)
}

// Box draws a border around the region edge with an optional title
func (r Region) Box(line LineType, title string, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if line >= LineType(len(boxChars)) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[boxTL], style)
	r.Cell(r.W-1, 0, chars[boxTR], style)
	r.Cell(0, r.H-1, chars[boxBL], style)
	r.Cell(r.W-1, r.H-1, chars[boxBR], style)

	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], style)
		r.Cell(x, r.H-1, chars[boxH], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], style)
		r.Cell(r.W-1, y, chars[boxV], style)
	}

	if title != "" && r.W > 4 {
		r.Text(2, 0, " "+Truncate(title, r.W-6)+" ", style.Bold(true))
	}
}

// Progress draws a horizontal bar (0.0-1.0)
func (r Region) Progress(x, y, w int, pct float64, fg, bg tcell.Style) {
	if y < 0 || y >= r.H || w <= 0 {
		return
	}
	pct = min(max(pct, 0), 1)

	filled := int(float64(w) * pct)
	remainder := float64(w)*pct - float64(filled)
	for i := 0; i < w; i++ {
		switch {
		case i < filled:
			r.Cell(x+i, y, '█', fg)
		case i == filled && remainder >= 0.5:
			r.Cell(x+i, y, '▌', fg)
		default:
			r.Cell(x+i, y, '░', bg)
		}
	}
}

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner draws a spinner character based on a frame counter
func (r Region) Spinner(x, y int, frame uint64, style tcell.Style) {
	r.Cell(x, y, spinnerFrames[frame%uint64(len(spinnerFrames))], style)
}

// RuneLen returns the number of runes in s
func RuneLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Truncate shortens s to maxLen runes, marking the cut with an ellipsis
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// WrapText wraps text at word boundaries to fit width
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return []string{""}
	}

	var lines []string
	lineStart := 0
	lastSpace := -1

	for i := 0; i <= len(runes); i++ {
		if i == len(runes) {
			if lineStart < len(runes) {
				lines = append(lines, string(runes[lineStart:]))
			}
			break
		}
		if runes[i] == '\n' {
			lines = append(lines, string(runes[lineStart:i]))
			lineStart = i + 1
			lastSpace = -1
			continue
		}
		if i-lineStart >= width {
			wrapAt := i
			if lastSpace > lineStart {
				wrapAt = lastSpace
			}
			lines = append(lines, string(runes[lineStart:wrapAt]))
			if runes[wrapAt] == ' ' {
				lineStart = wrapAt + 1
			} else {
				lineStart = wrapAt
			}
			lastSpace = -1
		}
		if runes[i] == ' ' {
			lastSpace = i
		}
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
