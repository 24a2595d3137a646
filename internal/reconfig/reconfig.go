// internal/reconfig/reconfig.go
package reconfig

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/tamzrod/sja1105-tool/internal/device"
	"github.com/tamzrod/sja1105-tool/internal/staging"
)

// ---- collaborators ----

// Device identifies the attached switch. *device.Device implements it.
type Device interface {
	Resync() error
	Family() device.Family
}

// StagingLoader returns the cached static configuration.
// staging.FileLoader implements it.
type StagingLoader interface {
	Load() (*staging.Area, error)
}

// MACConfig accesses the live MAC configuration of a port.
// *dynconfig.MACConfig implements it.
type MACConfig interface {
	Get(port int) (staging.MACConfigEntry, error)
	Set(port int, entry staging.MACConfigEntry) error
}

// CGU routes port clocks. *clocking.CGU implements it.
type CGU interface {
	SetupPort(port int, x staging.XMIIParams, e staging.MACConfigEntry) error
}

// ------------------------------------------------------------

// Reconfigurer runs the "reconfig" command against one switch.
type Reconfigurer struct {
	Device  Device
	Staging StagingLoader
	MAC     MACConfig
	CGU     CGU

	// Logger receives progress messages; nil silences them.
	Logger *log.Logger

	// Usage receives the usage text on command line errors; nil discards it.
	Usage io.Writer
}

// PrintUsage writes the usage text of the reconfig command.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, " * sja1105-tool reconfig speed <port> <speed>: "+
		"Set a port's (0..4) link speed (10, 100, 1000)\n")
}

// Run executes "reconfig speed <port> <speed>" with args following "reconfig".
//
// Nothing is written to the switch unless the command line is valid,
// the device answers, and the static configuration leaves the port's
// speed unset.
func (r *Reconfigurer) Run(args []string) error {
	port, speed, err := ParseArgs(args)
	if err != nil {
		r.logf("%v", err)
		if r.Usage != nil {
			PrintUsage(r.Usage)
		}
		return err
	}
	return r.setSpeed(port, speed)
}

// ParseArgs checks a reconfig command line without touching the device.
// It returns the port and the MAC configuration table speed encoding.
// Every error matches ErrUsage.
func ParseArgs(args []string) (port int, speed uint64, err error) {
	if len(args) < 3 || !matches(args[0], "speed") {
		return 0, 0, ErrUsage
	}

	p, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: could not read port param %s", ErrUsage, args[1])
	}
	if p >= staging.NumPorts {
		return 0, 0, fmt.Errorf("%w: invalid port %s", ErrUsage, args[1])
	}

	mbps, err := strconv.ParseUint(args[2], 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: could not read speed param %s", ErrUsage, args[2])
	}
	speed, ok := speedFromMbps(mbps)
	if !ok {
		return 0, 0, fmt.Errorf("%w: invalid speed %s", ErrUsage, args[2])
	}

	return int(p), speed, nil
}

func (r *Reconfigurer) setSpeed(port int, speed uint64) error {
	if err := r.Device.Resync(); err != nil {
		return &StepError{Step: StepConfigure, Port: port, Err: err}
	}

	area, err := r.Staging.Load()
	if err != nil {
		return &StepError{Step: StepReadConfig, Port: port, Err: err}
	}
	static := area.StaticConfig

	if fixed := static.MACConfig[port].Speed; fixed != staging.SpeedUnset {
		return &LockedError{Port: port, Speed: fixed}
	}

	var entry staging.MACConfigEntry
	switch r.Device.Family() {
	case device.FamilyPQRS:
		entry, err = r.MAC.Get(port)
		if err != nil {
			return &StepError{Step: StepRead, Port: port, Err: err}
		}
	default:
		// E/T tables are write-only; the staged entry stands in for the
		// live one and is stale if the device was changed since.
		entry = static.MACConfig[port]
	}

	r.logf("Setting MAC speed for port %d: before %d, now %d", port, entry.Speed, speed)
	entry.Speed = speed

	if err := r.MAC.Set(port, entry); err != nil {
		return &StepError{Step: StepWrite, Port: port, Err: err}
	}

	if err := r.CGU.SetupPort(port, static.XMIIParams, entry); err != nil {
		return &StepError{Step: StepClocking, Port: port, Err: err}
	}
	return nil
}

func (r *Reconfigurer) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// matches reports whether word is a non-empty abbreviation of keyword.
func matches(word, keyword string) bool {
	return word != "" && strings.HasPrefix(keyword, word)
}

// speedFromMbps maps a link speed to its MAC configuration table encoding.
func speedFromMbps(mbps uint64) (uint64, bool) {
	switch mbps {
	case 10:
		return staging.Speed10, true
	case 100:
		return staging.Speed100, true
	case 1000:
		return staging.Speed1000, true
	default:
		return 0, false
	}
}
