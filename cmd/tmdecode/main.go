// Command tmdecode attaches to a serial telemetry source, runs the binary
// or text decoder over its byte stream, and prints decoded samples to
// stdout. It plays the role kissutil.go plays for the teacher's KISS TNC:
// a thin command-line harness exercising the core package against a real
// device, using github.com/spf13/pflag for flags exactly as kissutil.go and
// cmd/direwolf/main.go do.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/telemetryingest/core/internal/binarydecoder"
	"github.com/telemetryingest/core/internal/config"
	"github.com/telemetryingest/core/internal/telemetrylog"
	"github.com/telemetryingest/core/internal/telemetrystats"
	"github.com/telemetryingest/core/internal/textdecoder"
	"github.com/telemetryingest/core/internal/transport"
)

func main() {
	var port = pflag.StringP("port", "p", "", "Serial device, e.g. /dev/ttyUSB0")
	var baud = pflag.IntP("baud", "b", 115200, "Serial port speed")
	var configPath = pflag.StringP("config", "c", "", "Path to a YAML config file (overlays defaults)")
	var text = pflag.Bool("text", false, "Decode as Arduino-style text instead of the binary/COBS protocol")
	var verbose = pflag.BoolP("verbose", "v", false, "Log at DEBUG level")
	var help = pflag.Bool("help", false, "Display help text")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - attach to a serial telemetry source and print decoded samples.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *port == "" {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	var cfg = config.Default()
	if *configPath != "" {
		var loaded, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tmdecode: %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var logger = telemetrylog.Default()
	if *verbose {
		logger = telemetrylog.New(os.Stderr, log.DebugLevel)
	}

	var sp, err = transport.Open(*port, *baud, 500*time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tmdecode: %s\n", err)
		os.Exit(1)
	}
	defer sp.Close()

	var stats = telemetrystats.New("tmdecode", time.Second)

	var feed func([]byte) error
	if *text {
		var td, tdErr = textdecoder.New(textdecoder.Config{
			EOL:           cfg.EOLBytes,
			LabelsEnabled: cfg.LabelsEnabled,
			Strict:        cfg.Strict,
		}, func() int64 { return time.Now().UnixNano() }, logger)
		if tdErr != nil {
			fmt.Fprintf(os.Stderr, "tmdecode: %s\n", tdErr)
			os.Exit(1)
		}
		feed = func(b []byte) error {
			var result, procErr = td.Process(b)
			if procErr != nil {
				return procErr
			}
			for _, s := range result.Samples {
				fmt.Printf("%s: %v\n", s.Name, s.Data)
			}
			return nil
		}
	} else {
		var bd = binarydecoder.New(logger)
		feed = func(b []byte) error {
			for _, s := range bd.Process(b) {
				fmt.Printf("tag=%d %s\n", s.Tag, describePayload(s.Payload))
			}
			return nil
		}
	}

	var pump = transport.NewPump(sp, feed, stats, logger)

	var ctx, cancel = context.WithCancel(context.Background())
	defer cancel()

	var sigCh = make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := pump.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tmdecode: %s\n", err)
		os.Exit(1)
	}
}

func describePayload(p binarydecoder.Payload) string {
	switch p.Kind {
	case binarydecoder.PayloadScalar:
		return fmt.Sprintf("scalar=%v", p.Scalar)
	case binarydecoder.PayloadVector:
		return fmt.Sprintf("vector=%v", p.Vector)
	case binarydecoder.PayloadMatrix:
		return fmt.Sprintf("matrix=%dx%d", p.MatrixRows, p.MatrixCols)
	case binarydecoder.PayloadText:
		return fmt.Sprintf("text=%v", p.Text)
	case binarydecoder.PayloadBytes:
		return fmt.Sprintf("bytes(%d)", len(p.Bytes))
	default:
		return "payload"
	}
}
