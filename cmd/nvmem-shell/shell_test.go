package main

import (
	"bytes"
	"context"
	"math/bits"
	"strings"
	"testing"

	"github.com/nvmem-project/nvmem-go/pkg/memdev"
	"github.com/nvmem-project/nvmem-go/pkg/storage"
)

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"4096", 4096, false},
		{"0x100", 256, false},
		{"0xFFFFFFFF", 0xFFFFFFFF, false},
		{"-1", 0, true},
		{"0x100000000", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAddr(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAddr(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAddr(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAddr(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func fillTestDevice(t *testing.T, writeSize uint32) *memdev.Device {
	t.Helper()
	dev, err := memdev.New(memdev.Config{
		Profile: storage.Profile{
			ReadSize:      1,
			WriteSize:     writeSize,
			EraseSize:     4096,
			EraseValue:    0xFF,
			WriteBehavior: storage.WriteInfiniteDirect,
			Reliability:   storage.ReliabilityGood,
		},
		Capacity: 16384,
	})
	if err != nil {
		t.Fatal(err)
	}
	return dev
}

// A fill spanning multiple chunks covers exactly the requested range.
func TestFill(t *testing.T) {
	ctx := context.Background()
	dev := fillTestDevice(t, 4)

	if err := dev.Erase(ctx, 0, 16384); err != nil {
		t.Fatal(err)
	}
	if err := fill(ctx, dev, 256, 8192, 0x5A); err != nil {
		t.Fatalf("fill() error = %v", err)
	}

	got := make([]byte, 16384)
	if err := dev.Read(ctx, 0, got); err != nil {
		t.Fatal(err)
	}
	for i, b := range got {
		want := byte(0xFF)
		if i >= 256 && i < 256+8192 {
			want = 0x5A
		}
		if b != want {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, b, want)
		}
	}
}

// A rejected fill has no partial effect: the range is validated before
// the first write.
func TestFillValidatesUpFront(t *testing.T) {
	ctx := context.Background()
	dev := fillTestDevice(t, 4)

	if err := dev.Erase(ctx, 0, 16384); err != nil {
		t.Fatal(err)
	}

	// Unaligned length
	if err := fill(ctx, dev, 0, 4098, 0x00); err == nil {
		t.Error("fill(0, 4098) error = nil, want alignment error")
	}
	// Range past the end
	if err := fill(ctx, dev, 12288, 8192, 0x00); err == nil {
		t.Error("fill(12288, 8192) error = nil, want bounds error")
	}

	got := make([]byte, 16384)
	if err := dev.Read(ctx, 0, got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, bytes.Repeat([]byte{0xFF}, 16384)) {
		t.Error("rejected fill modified device contents")
	}
}

func TestCheckCapacity(t *testing.T) {
	got, err := checkCapacity(65536)
	if err != nil {
		t.Fatalf("checkCapacity(65536) error = %v", err)
	}
	if got != 65536 {
		t.Errorf("checkCapacity(65536) = %d", got)
	}

	if _, err := checkCapacity(uint(0xFFFFFFFF)); err != nil {
		t.Errorf("checkCapacity(0xFFFFFFFF) error = %v", err)
	}

	if bits.UintSize == 64 {
		over := uint(1)
		over <<= 32
		if _, err := checkCapacity(over); err == nil {
			t.Error("checkCapacity(1<<32) error = nil, want out-of-range error")
		}
	}
}

func TestHexdump(t *testing.T) {
	var buf bytes.Buffer
	data := append([]byte("Hello, nvmem!"), 0x00, 0xFF, 0x7F, 0x20)
	hexdump(&buf, 0x100, data)

	out := buf.String()
	if !strings.Contains(out, "00000100") {
		t.Errorf("hexdump missing base address, got:\n%s", out)
	}
	if !strings.Contains(out, "|Hello, nvmem!") {
		t.Errorf("hexdump missing ASCII column, got:\n%s", out)
	}
	if !strings.Contains(out, "48 65 6c 6c 6f") {
		t.Errorf("hexdump missing hex bytes, got:\n%s", out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("hexdump produced %d lines for 17 bytes, want 2", len(lines))
	}
}
