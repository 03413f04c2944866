// Package console shows emulator status messages to the operator, either on
// stdout or in the gocui status view.
package console

// StatusView is the gocui view status messages are written to.
const StatusView = "status"

// Console receives status messages. Messages are split into lines, empty
// lines are dropped.
type Console interface {
	WriteConsole(msg string) error
}
