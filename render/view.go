package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hydrate/constants"
	"github.com/lixenwraith/hydrate/hydration"
	"github.com/lixenwraith/hydrate/ui"
)

// Mode selects how the body is drawn
type Mode uint8

const (
	ModeOutline Mode = iota // flat silhouette
	ModeVolume              // shaded mesh
	modeCount
)

func (m Mode) String() string {
	if m == ModeVolume {
		return "volume"
	}
	return "outline"
}

// Next toggles between the render modes
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode accepts "outline"/"2d" and "volume"/"3d"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "outline", "2d":
		return ModeOutline, nil
	case "volume", "3d":
		return ModeVolume, nil
	}
	return ModeOutline, fmt.Errorf("unknown render mode %q", s)
}

// Snapshot is the complete, immutable input of one frame
type Snapshot struct {
	State        hydration.State
	Mode         Mode
	Running      bool
	Highlight    bool
	Tip          string
	TipLoading   bool
	Toast        ui.Toast
	ToastVisible bool
	Prompt       string // non-empty shows the permission modal
	Permission   string
	Frame        uint64
}

// Minimum terminal size for the full layout
const (
	MinWidth  = 64
	MinHeight = 30
)

const (
	bodyPanelWidth = 27
	tipPanelHeight = 5
)

var (
	styleBase      = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.NewRGBColor(200, 200, 200))
	styleDim       = styleBase.Foreground(tcell.NewRGBColor(110, 110, 125))
	styleBorder    = styleBase.Foreground(tcell.NewRGBColor(90, 90, 110))
	styleHighlight = styleBase.Foreground(tcell.NewRGBColor(80, 220, 255)).Bold(true)
	styleKey       = styleBase.Foreground(tcell.NewRGBColor(130, 170, 255))
	styleOn        = styleBase.Foreground(tcell.NewRGBColor(80, 220, 80))
	emptyBodyColor = tcell.NewRGBColor(70, 70, 85)
)

var toastColors = map[ui.Severity]struct {
	Fg, Bg tcell.Color
	Icon   rune
}{
	ui.SeverityInfo:    {tcell.NewRGBColor(200, 200, 200), tcell.NewRGBColor(40, 40, 50), 'ℹ'},
	ui.SeveritySuccess: {tcell.NewRGBColor(220, 255, 220), tcell.NewRGBColor(30, 60, 30), '✓'},
	ui.SeverityWarning: {tcell.NewRGBColor(255, 240, 200), tcell.NewRGBColor(60, 50, 20), '⚠'},
	ui.SeverityError:   {tcell.NewRGBColor(255, 220, 220), tcell.NewRGBColor(60, 25, 25), '✗'},
}

// View draws snapshots onto a tcell screen; it holds no widget state
type View struct {
	palette Palette
}

// NewView creates a view using the default palette
func NewView() *View {
	return &View{palette: DefaultPalette}
}

// Draw renders snap in full and shows the frame
func (v *View) Draw(s tcell.Screen, snap Snapshot) {
	s.Clear()
	w, h := s.Size()
	root := Region{Screen: s, W: w, H: h}

	if w < MinWidth || h < MinHeight {
		root.TextCenter(h/2, fmt.Sprintf("Terminal too small (%dx%d), need %dx%d", w, h, MinWidth, MinHeight), styleBase)
		s.Show()
		return
	}

	mainH := h - tipPanelHeight - 1 // last row is the toast bar
	v.drawBody(root.Sub(0, 0, bodyPanelWidth, mainH), snap)
	v.drawSettings(root.Sub(bodyPanelWidth+1, 0, w-bodyPanelWidth-1, mainH), snap)
	v.drawTip(root.Sub(0, mainH, w, tipPanelHeight), snap)
	if snap.ToastVisible {
		v.drawToast(root.Sub(0, h-1, w, 1), snap.Toast)
	}
	if snap.Prompt != "" {
		v.drawPrompt(root, snap.Prompt)
	}

	s.Show()
}

func (v *View) drawBody(r Region, snap Snapshot) {
	visual := Bind(snap.State.FillPercent, snap.State.Variant)
	visual.Color = v.palette.Color(visual.Level)

	if snap.Highlight {
		r.Box(LineDouble, "Hydration", styleHighlight)
	} else {
		r.Box(LineRounded, "Hydration", styleBorder)
	}
	inner := r.Inset(1)

	// Two rows below the figure for the readout
	figure := inner.Sub(0, 0, inner.W, inner.H-2)
	switch snap.Mode {
	case ModeVolume:
		v.drawVolume(figure, visual)
	default:
		v.drawOutline(figure, visual)
	}

	fillStyle := styleBase.Foreground(visual.Color).Bold(true)
	inner.TextCenter(inner.H-2, fmt.Sprintf("%5.1f%%", visual.FillPercent), fillStyle)

	status := "depleting"
	switch {
	case snap.State.Empty():
		status = "empty, drink!"
	case !snap.Running:
		status = "stopped"
	}
	inner.TextCenter(inner.H-1, status, styleDim)
}

// drawOutline fills the silhouette from the bottom up
func (v *View) drawOutline(r Region, visual Visual) {
	sil := visual.Silhouette
	sw, sh := sil.Size()
	ox, oy := (r.W-sw)/2, max((r.H-sh)/2, 0)

	full, half := FillLevel(sh, visual.FillPercent)
	filled := styleBase.Foreground(visual.Color)
	empty := styleBase.Foreground(emptyBodyColor)

	for y := 0; y < sh; y++ {
		fromBottom := sh - 1 - y
		for x := 0; x < sw; x++ {
			if !sil.Body(x, y) {
				continue
			}
			switch {
			case fromBottom < full:
				r.Cell(ox+x, oy+y, '█', filled)
			case fromBottom == full && half:
				r.Cell(ox+x, oy+y, '▄', filled.Background(emptyBodyColor))
			default:
				r.Cell(ox+x, oy+y, '░', empty)
			}
		}
	}
}

var shadeRamp = []rune{'░', '▒', '▓', '█'}

// drawVolume renders the rasterized mesh with shading
func (v *View) drawVolume(r Region, visual Visual) {
	grid := visual.Mesh.Rasterize()
	mh := len(grid)
	if mh == 0 {
		return
	}
	mw := len(grid[0])
	ox, oy := (r.W-mw)/2, max((r.H-mh)/2, 0)

	full, half := FillLevel(mh, visual.FillPercent)

	for y, row := range grid {
		fromBottom := mh - 1 - y
		wet := fromBottom < full || (fromBottom == full && half)
		for x, sh := range row {
			if sh <= 0 {
				continue
			}
			base := emptyBodyColor
			if wet {
				base = visual.Color
			}
			idx := min(int(sh*float64(len(shadeRamp))), len(shadeRamp)-1)
			r.Cell(ox+x, oy+y, shadeRamp[idx], styleBase.Foreground(scaleColor(base, 0.4+0.6*sh)))
		}
	}
}

func (v *View) drawSettings(r Region, snap Snapshot) {
	r.Box(LineRounded, "Settings", styleBorder)
	in := r.Inset(1).Sub(1, 0, r.W-4, r.H-2)
	st := snap.State
	y := 0

	in.Text(0, y, "Timer", styleBase)
	barW := max(in.W-22, 6)
	pct := float64(st.DurationMinutes-constants.MinDurationMinutes) /
		float64(constants.MaxDurationMinutes-constants.MinDurationMinutes)
	in.Progress(10, y, barW, pct, styleKey, styleDim)
	in.Text(11+barW, y, fmt.Sprintf("%3d min", st.DurationMinutes), styleBase.Bold(true))
	y++
	x := in.Text(10, y, "[-]/[+]", styleKey)
	in.Text(x+1, y, fmt.Sprintf("%d-%d, step %d", constants.MinDurationMinutes, constants.MaxDurationMinutes, constants.DurationStepMinutes), styleDim)
	y += 2

	in.Text(0, y, "Body", styleBase)
	x = in.Text(10, y, "‹ "+st.Variant.String()+" ›", styleBase.Bold(true))
	in.Text(x+1, y, "[b]", styleKey)
	y++
	in.Text(0, y, "Render", styleBase)
	x = in.Text(10, y, snap.Mode.String(), styleBase.Bold(true))
	in.Text(x+1, y, "[m]", styleKey)
	y += 2

	in.Text(0, y, "Reminders", styleBase)
	y++
	for i, c := range hydration.Channels() {
		box, style := "[ ]", styleBase
		if st.Channels.Has(c) {
			box, style = "[x]", styleOn
		}
		x = in.Text(2, y, box, style)
		x = in.Text(x+1, y, fmt.Sprintf("%-13s", channelLabel(c)), styleBase)
		x = in.Text(x, y, fmt.Sprintf("[%d]", i+1), styleKey)
		if c == hydration.ChannelNotification && snap.Permission != "" {
			in.Text(x+1, y, "permission: "+snap.Permission, styleDim)
		}
		y++
	}
	y++

	actions := []struct{ key, label string }{
		{"d", "Drink now"},
		{"r", "Reset all"},
		{"t", "Get a tip"},
		{"q", "Quit"},
	}
	for i, a := range actions {
		col := (i % 2) * 18
		row := y + i/2
		cx := in.Text(col, row, "["+a.key+"]", styleKey)
		in.Text(cx+1, row, a.label, styleBase)
	}
}

func channelLabel(c hydration.Channel) string {
	switch c {
	case hydration.ChannelNotification:
		return "Notification"
	case hydration.ChannelAudio:
		return "Sound"
	case hydration.ChannelVisual:
		return "Visual flash"
	}
	return c.String()
}

func (v *View) drawTip(r Region, snap Snapshot) {
	r.Box(LineRounded, "Tip", styleBorder)
	in := r.Inset(1).Sub(1, 0, r.W-4, r.H-2)

	if snap.TipLoading {
		in.Spinner(0, 0, snap.Frame, styleKey)
		in.Text(2, 0, "Fetching a tip…", styleDim)
		return
	}
	if snap.Tip == "" {
		in.Text(0, 0, "Press [t] for a hydration tip.", styleDim)
		return
	}
	for i, line := range WrapText(snap.Tip, in.W) {
		if i >= in.H {
			break
		}
		in.Text(0, i, line, styleBase)
	}
}

func (v *View) drawToast(r Region, t ui.Toast) {
	c, ok := toastColors[t.Severity]
	if !ok {
		c = toastColors[ui.SeverityInfo]
	}
	style := styleBase.Foreground(c.Fg).Background(c.Bg)
	r.Fill(' ', style)
	r.Cell(1, 0, c.Icon, style.Bold(true))
	r.Text(3, 0, Truncate(t.Text, r.W-4), style)
}

func (v *View) drawPrompt(root Region, prompt string) {
	w := min(max(RuneLen(prompt)+6, 40), root.W-4)
	h := 5
	box := root.Sub((root.W-w)/2, (root.H-h)/2, w, h)
	box.Fill(' ', styleBase.Background(tcell.NewRGBColor(30, 30, 45)))
	box.Box(LineDouble, "Permission", styleHighlight)
	in := box.Inset(1)
	in.TextCenter(0, Truncate(prompt, in.W), styleBase.Background(tcell.NewRGBColor(30, 30, 45)))
	in.TextCenter(2, "[y] Allow    [n] Deny", styleKey.Background(tcell.NewRGBColor(30, 30, 45)))
}

// scaleColor darkens c by f in [0,1]
func scaleColor(c tcell.Color, f float64) tcell.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return c
	}
	f = min(max(f, 0), 1)
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
