package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hydrate/hydration"
	"github.com/lixenwraith/hydrate/ui"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// screenText flattens the screen into one string per row
func screenText(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		rows[y] = b.String()
	}
	return rows
}

func contains(rows []string, sub string) bool {
	for _, r := range rows {
		if strings.Contains(r, sub) {
			return true
		}
	}
	return false
}

func baseSnapshot() Snapshot {
	st := hydration.Defaults()
	return Snapshot{State: st, Running: true}
}

func TestDrawFullLayout(t *testing.T) {
	s := newTestScreen(t, 80, 32)
	v := NewView()

	snap := baseSnapshot()
	snap.State.FillPercent = 42.5
	v.Draw(s, snap)

	rows := screenText(s)
	for _, want := range []string{"Hydration", "Settings", "42.5%", "depleting", "60 min", "Press [t] for a hydration tip."} {
		if !contains(rows, want) {
			t.Errorf("Screen missing %q", want)
		}
	}
}

func TestDrawTooSmall(t *testing.T) {
	s := newTestScreen(t, 40, 10)
	NewView().Draw(s, baseSnapshot())

	if !contains(screenText(s), "Terminal too small") {
		t.Error("Expected too-small message")
	}
}

func TestDrawStatusAndTip(t *testing.T) {
	s := newTestScreen(t, 80, 32)
	v := NewView()

	snap := baseSnapshot()
	snap.State.FillPercent = 0
	snap.Running = false
	snap.Tip = "Keep a bottle on your desk."
	v.Draw(s, snap)
	rows := screenText(s)
	if !contains(rows, "empty, drink!") {
		t.Error("Expected empty status")
	}
	if !contains(rows, "Keep a bottle on your desk.") {
		t.Error("Expected tip text")
	}

	snap.State.FillPercent = 80
	snap.TipLoading = true
	v.Draw(s, snap)
	rows = screenText(s)
	if !contains(rows, "stopped") {
		t.Error("Expected stopped status")
	}
	if !contains(rows, "Fetching a tip") {
		t.Error("Expected loading indicator")
	}
}

func TestDrawToastAndPrompt(t *testing.T) {
	s := newTestScreen(t, 80, 32)
	v := NewView()

	snap := baseSnapshot()
	snap.Toast = ui.Toast{Text: "Notifications blocked", Severity: ui.SeverityWarning, Deadline: time.Now().Add(time.Second)}
	snap.ToastVisible = true
	snap.Prompt = "Allow desktop notifications?"
	v.Draw(s, snap)

	rows := screenText(s)
	if !strings.Contains(rows[len(rows)-1], "Notifications blocked") {
		t.Errorf("Toast not on last row: %q", rows[len(rows)-1])
	}
	if !contains(rows, "Allow desktop notifications?") || !contains(rows, "[y] Allow") {
		t.Error("Permission prompt not drawn")
	}
}

// TestDrawFillColor checks the readout takes the band color
func TestDrawFillColor(t *testing.T) {
	s := newTestScreen(t, 80, 32)
	v := NewView()

	for _, tc := range []struct {
		fill float64
		want tcell.Color
	}{
		{29.9, DefaultPalette.Alert},
		{30.0, DefaultPalette.Warning},
		{60.0, DefaultPalette.Normal},
	} {
		snap := baseSnapshot()
		snap.State.FillPercent = tc.fill
		v.Draw(s, snap)

		found := false
		cells, _, _ := s.GetContents()
		for _, c := range cells {
			if len(c.Runes) > 0 && c.Runes[0] == '%' {
				fg, _, _ := c.Style.Decompose()
				if fg == tc.want {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("fill %v: readout not drawn in %v", tc.fill, tc.want)
		}
	}
}

func TestDrawVolumeMode(t *testing.T) {
	s := newTestScreen(t, 80, 32)
	snap := baseSnapshot()
	snap.Mode = ModeVolume
	NewView().Draw(s, snap)

	rows := screenText(s)
	shaded := false
	for _, r := range rows {
		if strings.ContainsAny(r, "▒▓") {
			shaded = true
			break
		}
	}
	if !shaded {
		t.Error("Volume mode drew no shaded cells")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"outline": ModeOutline, "2d": ModeOutline, "volume": ModeVolume, "3d": ModeVolume} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("4d"); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if ModeOutline.Next() != ModeVolume || ModeVolume.Next() != ModeOutline {
		t.Error("Mode.Next does not toggle")
	}
}
