package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/nvmem-project/nvmem-go/pkg/oplog"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

// switchableLogger forwards trace events to a replaceable target, so
// tracing can be toggled while the shell is running.
type switchableLogger struct {
	mu     sync.Mutex
	target oplog.Logger
	file   *oplog.FileLogger
}

// Log forwards to the current target.
func (s *switchableLogger) Log(event oplog.Event) {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	target.Log(event)
}

// setFile routes events to a new trace file, closing any previous one.
func (s *switchableLogger) setFile(path string) error {
	fl, err := oplog.NewFileLogger(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Close()
	}
	s.file = fl
	s.target = fl
	return nil
}

// disable stops tracing and closes the current trace file.
func (s *switchableLogger) disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.target = oplog.NoopLogger{}
}

// Shell is the interactive command loop around a storage device.
type Shell struct {
	dev  *oplog.Recorder
	sink *switchableLogger
	rl   *readline.Instance
}

// NewShell creates the interactive shell for the given device.
func NewShell(dev storage.Storage) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nvmem> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	sink := &switchableLogger{target: oplog.NoopLogger{}}
	return &Shell{
		dev:  oplog.NewRecorder(dev, sink),
		sink: sink,
		rl:   rl,
	}, nil
}

// TraceTo starts tracing operations to the given file.
func (s *Shell) TraceTo(path string) error {
	return s.sink.setFile(path)
}

// Run starts the interactive command loop and blocks until exit.
func (s *Shell) Run() {
	defer s.rl.Close()
	defer s.sink.disable()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "info", "i":
			s.cmdInfo()

		case "read", "r":
			s.cmdRead(args)

		case "write", "w":
			s.cmdWrite(args)

		case "erase", "e":
			s.cmdErase(args)

		case "fill":
			s.cmdFill(args)

		case "dump", "d":
			s.cmdDump(args)

		case "flush", "f":
			s.cmdFlush()

		case "trace":
			s.cmdTrace(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Storage Device Commands:
  Operations:
    read <offset> <len>     - Read bytes, print as hex
    write <offset> <hex>    - Write hex-encoded bytes (e.g. write 0 deadbeef)
    erase <from> <to>       - Erase [from, to)
    fill <offset> <len> <byte> - Fill a range with one byte value
    flush                   - Make all prior operations durable
    dump <offset> <len>     - Hexdump a region

  Inspection:
    info                    - Show the device profile and capacity

  Tracing:
    trace on <file.nvlog>   - Start tracing operations to a file
    trace off               - Stop tracing

  General:
    help                    - Show this help
    quit                    - Exit shell

  Offsets accept decimal or 0x-prefixed hex.`)
}

// cmdInfo prints the device profile and capacity.
func (s *Shell) cmdInfo() {
	w := s.rl.Stdout()
	p := s.dev.Profile()

	fmt.Fprintf(w, "Capacity:       %d bytes\n", s.dev.Capacity())
	fmt.Fprintf(w, "Read size:      %d\n", p.ReadSize)
	fmt.Fprintf(w, "Write size:     %d\n", p.WriteSize)
	fmt.Fprintf(w, "Erase size:     %d (%d erase units)\n", p.EraseSize, s.dev.Capacity()/p.EraseSize)
	fmt.Fprintf(w, "Erase value:    0x%02X\n", p.EraseValue)
	fmt.Fprintf(w, "Write behavior: %s\n", p.WriteBehavior)
	fmt.Fprintf(w, "Reliability:    %s\n", p.Reliability)
	fmt.Fprintf(w, "Instance ID:    %s\n", s.dev.DeviceID())
}

// cmdRead reads a range and prints it as hex.
func (s *Shell) cmdRead(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: read <offset> <len>")
		return
	}
	offset, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid offset: %v\n", err)
		return
	}
	length, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
		return
	}

	buf := make([]byte, length)
	if err := s.dev.Read(context.Background(), offset, buf); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Read failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s\n", hex.EncodeToString(buf))
}

// cmdWrite writes hex-encoded bytes at an offset.
func (s *Shell) cmdWrite(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: write <offset> <hex>")
		return
	}
	offset, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid offset: %v\n", err)
		return
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid hex data: %v\n", err)
		return
	}

	if err := s.dev.Write(context.Background(), offset, data); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Wrote %d bytes at %d\n", len(data), offset)
}

// cmdErase erases [from, to).
func (s *Shell) cmdErase(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: erase <from> <to>")
		return
	}
	from, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid from: %v\n", err)
		return
	}
	to, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid to: %v\n", err)
		return
	}

	if err := s.dev.Erase(context.Background(), from, to); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Erase failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Erased [%d, %d)\n", from, to)
}

// cmdFill fills a range with a single byte value.
func (s *Shell) cmdFill(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: fill <offset> <len> <byte>")
		return
	}
	offset, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid offset: %v\n", err)
		return
	}
	length, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
		return
	}
	value, err := strconv.ParseUint(args[2], 0, 8)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid byte value: %v\n", err)
		return
	}

	if err := fill(context.Background(), s.dev, offset, length, byte(value)); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Fill failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Filled [%d, %d) with 0x%02X\n", offset, uint64(offset)+uint64(length), value)
}

// cmdDump hexdumps a region.
func (s *Shell) cmdDump(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: dump <offset> <len>")
		return
	}
	offset, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid offset: %v\n", err)
		return
	}
	length, err := parseAddr(args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
		return
	}

	buf := make([]byte, length)
	if err := s.dev.Read(context.Background(), offset, buf); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Read failed: %v\n", err)
		return
	}
	hexdump(s.rl.Stdout(), offset, buf)
}

// cmdFlush makes all prior operations durable.
func (s *Shell) cmdFlush() {
	if err := s.dev.Flush(context.Background()); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Flush failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "Flushed")
}

// cmdTrace toggles operation tracing.
func (s *Shell) cmdTrace(args []string) {
	w := s.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintln(w, "Usage: trace on <file.nvlog> | trace off")
		return
	}

	switch args[0] {
	case "on":
		if len(args) != 2 {
			fmt.Fprintln(w, "Usage: trace on <file.nvlog>")
			return
		}
		if err := s.sink.setFile(args[1]); err != nil {
			fmt.Fprintf(w, "Failed to open trace file: %v\n", err)
			return
		}
		fmt.Fprintf(w, "Tracing to %s\n", args[1])

	case "off":
		s.sink.disable()
		fmt.Fprintln(w, "Tracing stopped")

	default:
		fmt.Fprintln(w, "Usage: trace on <file.nvlog> | trace off")
	}
}

// fillChunk is the largest single write a fill issues.
const fillChunk = 4096

// fill writes value over [offset, offset+length) as a loop of aligned
// writes. The range is validated up front so a bad request has no
// partial effect.
func fill(ctx context.Context, dev storage.Storage, offset, length uint32, value byte) error {
	p := dev.Profile()
	if err := storage.CheckWrite(p, dev.Capacity(), offset, int(length)); err != nil {
		return err
	}

	// Chunks must stay write-aligned so every intermediate write is valid
	chunk := uint32(fillChunk) - uint32(fillChunk)%p.WriteSize
	if chunk == 0 {
		chunk = p.WriteSize
	}
	buf := bytes.Repeat([]byte{value}, int(chunk))

	for length > 0 {
		n := chunk
		if length < n {
			n = length
		}
		if err := dev.Write(ctx, offset, buf[:n]); err != nil {
			return err
		}
		offset += n
		length -= n
	}
	return nil
}

// parseAddr parses a decimal or 0x-prefixed hex address.
func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// hexdump writes a classic 16-bytes-per-line hexdump starting at base.
func hexdump(w io.Writer, base uint32, data []byte) {
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[i:end]

		fmt.Fprintf(w, "%08x  ", base+uint32(i))
		for j := 0; j < 16; j++ {
			if j < len(line) {
				fmt.Fprintf(w, "%02x ", line[j])
			} else {
				fmt.Fprint(w, "   ")
			}
			if j == 7 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprint(w, " |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
