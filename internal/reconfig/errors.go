// internal/reconfig/errors.go
package reconfig

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sja1105-tool/internal/spi"
)

var (
	// ErrUsage marks a command line that could not be understood.
	// The usage text has already been written when it is returned.
	ErrUsage = fmt.Errorf("%w: reconfig: command line not understood", spi.ErrInvalidArgument)

	// ErrConfigurationLocked is matched by *LockedError.
	ErrConfigurationLocked = errors.New("reconfig: speed fixed in static configuration")
)

// LockedError reports a port whose static configuration pins its speed.
type LockedError struct {
	Port  int
	Speed uint64
}

func (e *LockedError) Error() string {
	return fmt.Sprintf(
		"reconfig: speed for port %d is currently fixed at %d; to allow reconfiguration, run: "+
			"sja1105-tool config modify -f mac-configuration-table[%d] speed 0",
		e.Port, e.Speed, e.Port)
}

func (e *LockedError) Is(target error) bool {
	return target == ErrConfigurationLocked
}

// Step names reported by StepError.
const (
	StepConfigure  = "configure"
	StepReadConfig = "read config"
	StepRead       = "read"
	StepWrite      = "write"
	StepClocking   = "clocking setup"
)

// StepError wraps the failure of a collaborator during a reconfiguration.
type StepError struct {
	Step string
	Port int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("reconfig: port %d: %s failed: %v", e.Port, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
