// Command nvmem-shell is an interactive explorer for emulated storage
// devices.
//
// A device is described by a YAML profile file (see storage.LoadProfile)
// and backed either by memory or by an image file that survives restarts.
// Every contract operation is available as a shell command, and the full
// operation stream can be traced to a .nvlog file for later analysis
// with nvmem-log.
//
// Usage:
//
//	nvmem-shell [flags]
//
// Flags:
//
//	-profile string   Device profile YAML file (required)
//	-capacity uint    Device capacity in bytes (default 65536)
//	-image string     Back the device with this image file (default: memory only)
//	-strict           Report write-budget misuse as errors
//	-trace string     Write an operation trace to this .nvlog file
//	-log-level string Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Explore an in-memory NOR flash
//	nvmem-shell -profile profiles/nor.yaml -capacity 65536
//
//	# Persistent device with operation trace
//	nvmem-shell -profile profiles/nor.yaml -image flash.img -trace ops.nvlog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/nvmem-project/nvmem-go/pkg/filedev"
	"github.com/nvmem-project/nvmem-go/pkg/memdev"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

func main() {
	var (
		profilePath = flag.String("profile", "", "Device profile YAML file (required)")
		capacity    = flag.Uint("capacity", 65536, "Device capacity in bytes")
		imagePath   = flag.String("image", "", "Back the device with this image file")
		strict      = flag.Bool("strict", false, "Report write-budget misuse as errors")
		tracePath   = flag.String("trace", "", "Write an operation trace to this .nvlog file")
		logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	if *profilePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -profile is required")
		flag.Usage()
		os.Exit(1)
	}

	setupLogging(*logLevel)

	profile, err := storage.LoadProfile(*profilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cap32, err := checkCapacity(*capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := memdev.Config{
		Profile:  profile,
		Capacity: cap32,
		Strict:   *strict,
	}

	var dev storage.Storage
	var closer interface{ Close() error }
	if *imagePath != "" {
		fd, err := filedev.Open(*imagePath, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dev = fd
		closer = fd
		slog.Info("opened file-backed device", "image", *imagePath, "instance_id", fd.InstanceID())
	} else {
		md, err := memdev.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dev = md
	}

	shell, err := NewShell(dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *tracePath != "" {
		if err := shell.TraceTo(*tracePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	shell.Run()

	if closer != nil {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close device", "error", err)
		}
	}
}

// checkCapacity rejects -capacity values that do not fit the 32-bit
// address space.
func checkCapacity(v uint) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("-capacity %d exceeds the 32-bit address space", v)
	}
	return uint32(v), nil
}

// setupLogging configures the default slog logger.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
