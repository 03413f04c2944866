package system

import (
	"context"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Boot resets the machine, loads the program image at the program start
// address and starts execution.
func (sys *System) Boot(ctx context.Context, name string, program []byte) (Result, error) {
	sys.CPU.Reset()
	sys.Plane.Clear()
	sys.timers.delayCount = 0
	sys.timers.soundCount = 0

	if err := sys.CPU.Load(program); err != nil {
		return Result{}, fmt.Errorf("loading %s: %w", name, err)
	}

	sys.logger.Info("Program loaded",
		log.String("rom", name),
		log.Int("size", len(program)))
	sys.writeConsole(fmt.Sprintf("Booting %s (%d bytes).\n", name, len(program)))

	if err := sys.display.Present(&sys.Plane); err != nil {
		return Result{}, fmt.Errorf("presenting display: %w", err)
	}
	return sys.Run(ctx)
}
