// cmd/sja1105-tool/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tamzrod/sja1105-tool/internal/clocking"
	"github.com/tamzrod/sja1105-tool/internal/config"
	"github.com/tamzrod/sja1105-tool/internal/device"
	"github.com/tamzrod/sja1105-tool/internal/dynconfig"
	"github.com/tamzrod/sja1105-tool/internal/reconfig"
	"github.com/tamzrod/sja1105-tool/internal/spi"
	"github.com/tamzrod/sja1105-tool/internal/staging"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var errUsage = errors.New("command line not understood")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	errLog := log.New(stderr, "sja1105-tool: ", 0)

	fs := flag.NewFlagSet("sja1105-tool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("c", config.DefaultPath, "configuration file")
	verbose := fs.Bool("v", false, "log progress to stderr")
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr)
		return exitUsage
	}
	command, cmdArgs := rest[0], rest[1:]

	// Command lines are checked before anything is opened.
	var reg regCmd
	switch command {
	case "reconfig":
		if _, _, err := reconfig.ParseArgs(cmdArgs); err != nil {
			reconfig.PrintUsage(stderr)
			return exitCode(errLog, err)
		}
	case "reg":
		c, err := parseReg(cmdArgs, stderr)
		if err != nil {
			return exitCode(errLog, err)
		}
		reg = c
	default:
		errLog.Printf("unknown command %q", command)
		usage(stderr)
		return exitUsage
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		errLog.Printf("config load failed: %v", err)
		return exitFail
	}
	if err := config.Validate(cfg); err != nil {
		errLog.Printf("config validation failed: %v", err)
		return exitFail
	}
	config.Normalize(cfg)

	var logger *log.Logger
	if *verbose || cfg.Debug {
		logger = log.New(stderr, "", log.LstdFlags)
	}

	// --------------------
	// Open the switch
	// --------------------

	bus, closeBus, err := spi.Build(cfg.Device, logger)
	if err != nil {
		errLog.Printf("device open failed: %v", err)
		return exitFail
	}
	defer closeBus()

	switch command {
	case "reconfig":
		dev := device.New(bus, logger)
		r := &reconfig.Reconfigurer{
			Device:  dev,
			Staging: staging.FileLoader{Path: cfg.StagingArea},
			MAC:     dynconfig.NewMACConfig(bus, dev),
			CGU:     clocking.New(bus, dev, logger),
			Logger:  logger,
			Usage:   stderr,
		}
		err = r.Run(cmdArgs)

	case "reg":
		err = runReg(bus, reg, stdout)
	}

	return exitCode(errLog, err)
}

func exitCode(errLog *log.Logger, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, reconfig.ErrUsage), errors.Is(err, errUsage):
		errLog.Printf("%v", err)
		return exitUsage
	default:
		errLog.Printf("%v", err)
		return exitFail
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: sja1105-tool [-c config] [-v] <command> ...\n")
	fmt.Fprintf(w, " * sja1105-tool reconfig speed <port> <speed>: "+
		"Set a port's (0..4) link speed (10, 100, 1000)\n")
	fmt.Fprintf(w, " * sja1105-tool reg [-size 4|8] [-count N] <addr> [<value>]: "+
		"Read or write switch registers\n")
}
