package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/hydrate/hydration"
)

// HandleEvent maps terminal input to widget actions; false requests exit
func (w *Widget) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		if w.screen != nil {
			w.screen.Sync()
		}
		return true
	case *tcell.EventKey:
		return w.handleKey(ev)
	}
	return true
}

func (w *Widget) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}

	// Modal prompt swallows everything but its answers
	if w.prompt != "" {
		switch {
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y'):
			w.AnswerPermission(true)
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == 'N'),
			ev.Key() == tcell.KeyEscape:
			w.AnswerPermission(false)
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyRight, tcell.KeyUp:
		w.StepDuration(1)
		return true
	case tcell.KeyLeft, tcell.KeyDown:
		w.StepDuration(-1)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 'd', 'D':
		w.DrinkNow()
	case 'r', 'R':
		w.ResetAll()
	case '+', '=':
		w.StepDuration(1)
	case '-', '_':
		w.StepDuration(-1)
	case 'b', 'B':
		w.CycleVariant()
	case '1':
		w.ToggleChannel(hydration.ChannelNotification)
	case '2':
		w.ToggleChannel(hydration.ChannelAudio)
	case '3':
		w.ToggleChannel(hydration.ChannelVisual)
	case 't', 'T':
		w.FetchTip()
	case 'm', 'M':
		w.ToggleRenderMode()
	}
	return true
}

// Frame advances the animation counter and redraws
func (w *Widget) Frame() {
	w.frame++
	if w.screen == nil {
		return
	}
	w.view.Draw(w.screen, w.Snapshot())
}
