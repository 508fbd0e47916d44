package bits

import "testing"

func TestSlice(t *testing.T) {
	tests := []struct {
		x        uint32
		hi, lo   int
		expected uint32
	}{
		{0xFFFF, 15, 0, 0xFFFF},
		{0x1248, 8, 6, 0x1},
		{0x1248, 5, 3, 0x1},
		{0x1248, 2, 0, 0x0},
		{0x8000, 15, 15, 1},
		{0x7FFF, 15, 15, 0},
	}
	for _, tt := range tests {
		if r := Slice(tt.x, tt.hi, tt.lo); r != tt.expected {
			t.Errorf("Slice(%#x,%d,%d) = %#x, expected %#x", tt.x, tt.hi, tt.lo, r, tt.expected)
		}
	}
}

func TestBit(t *testing.T) {
	if !Bit(0x8000, 15) {
		t.Errorf("Bit(0x8000,15) should be true")
	}
	if Bit(0x7FFF, 15) {
		t.Errorf("Bit(0x7FFF,15) should be false")
	}
}

func TestWordAlign(t *testing.T) {
	tests := []struct{ addr, expected uint16 }{
		{0x0000, 0x0000},
		{0x0001, 0x0000},
		{0x00FF, 0x00FE},
		{0xFFFF, 0xFFFE},
	}
	for _, tt := range tests {
		if r := WordAlign(tt.addr); r != tt.expected {
			t.Errorf("WordAlign(%#x) = %#x, expected %#x", tt.addr, r, tt.expected)
		}
	}
}

func TestHex4(t *testing.T) {
	tests := []struct {
		x        uint16
		expected string
	}{
		{0x0000, "0000"},
		{0x000A, "000A"},
		{0xFFFF, "FFFF"},
		{0x1234, "1234"},
	}
	for _, tt := range tests {
		if r := Hex4(tt.x); r != tt.expected {
			t.Errorf("Hex4(%#x) = %q, expected %q", tt.x, r, tt.expected)
		}
	}
}

func TestHex4Lower(t *testing.T) {
	if r := Hex4Lower(0xABCD); r != "abcd" {
		t.Errorf("Hex4Lower(0xABCD) = %q, expected %q", r, "abcd")
	}
}
