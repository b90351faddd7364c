package terminal

import (
	"io"
	"os"
)

var (
	csiRIS            = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0           = []byte("\x1b[0m")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiAutoWrapOn     = []byte("\x1b[?7h")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// EmergencyReset restores the terminal when the screen could not be finalized
// Safe to call from a recover handler
func EmergencyReset(w io.Writer) {
	// Disable mouse tracking
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort in crash context
	resetTerminalMode()
}
