// Package terminal holds the few terminal concerns tcell leaves to the application:
// color capability selection and restoring a usable terminal after a crash.
//
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
