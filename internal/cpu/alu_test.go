package cpu

import "testing"

func TestComputeArith(t *testing.T) {
	tests := []struct {
		name       string
		op         ALUOp
		a, b       uint16
		result     uint16
		z, n, c, v bool
	}{
		{"A", FA, 0x1234, 0x5678, 0x1234, false, false, false, false},
		{"B", FB, 0x1234, 0x5678, 0x5678, false, false, false, false},
		{"A+2 no ovf", FAPlus2, 0x0000, 0, 0x0002, false, false, false, false},
		{"A+2 carry", FAPlus2, 0xFFFF, 0, 0x0001, false, false, true, false},
		{"A+2 overflow", FAPlus2, 0x7FFF, 0, 0x8001, false, true, false, true},
		{"A+B zero", FAPlusB, 0x0001, 0xFFFF, 0x0000, true, false, true, false},
		{"A+B overflow pos", FAPlusB, 0x7FFF, 0x0001, 0x8000, false, true, false, true},
		{"A+B overflow neg", FAPlusB, 0x8000, 0x8000, 0x0000, true, false, true, true},
		{"A-B borrow", FAMinusB, 0x0000, 0x0001, 0xFFFF, false, true, true, false},
		{"A-B no borrow", FAMinusB, 0x0002, 0x0001, 0x0001, false, false, false, false},
		{"NOT", FANot, 0x00FF, 0, 0xFF00, false, true, false, false},
		{"AND", FAAndB, 0xF0F0, 0x0FF0, 0x00F0, false, false, false, false},
		{"OR", FAOrB, 0xF000, 0x0F00, 0xFF00, false, true, false, false},
		{"XOR", FAXorB, 0xFFFF, 0x0F0F, 0xF0F0, false, true, false, false},
		{"SHL", FAShl, 0x0001, 0x0004, 0x0010, false, false, false, false},
		{"SHL truncate", FAShl, 0x8000, 0x0001, 0x0000, true, false, false, false},
		{"LSHR", FALshr, 0x8000, 0x0004, 0x0800, false, false, false, false},
		{"ASHR neg", FAAshr, 0x8000, 0x0004, 0xF800, false, true, false, false},
		{"ASHR pos", FAAshr, 0x4000, 0x0002, 0x1000, false, false, false, false},
		{"LT true neg/pos", FALtB, 0xFFFF, 0x0001, 0x0001, false, false, true, true},
		{"LT false", FALtB, 0x0001, 0xFFFF, 0x0000, true, false, false, true},
		{"x", FX, 0x1234, 0x5678, 0x0000, true, false, false, false},
	}
	for _, tt := range tests {
		r, f := Compute(tt.op, tt.a, tt.b)
		if r != tt.result {
			t.Errorf("%s: result = %#04x, expected %#04x", tt.name, r, tt.result)
		}
		if f.Z != tt.z || f.N != tt.n || f.C != tt.c || f.V != tt.v {
			t.Errorf("%s: flags = %+v, expected Z=%v N=%v C=%v V=%v", tt.name, f, tt.z, tt.n, tt.c, tt.v)
		}
	}
}

func TestComputeZeroAndNegativeAreOrthogonal(t *testing.T) {
	_, f := Compute(FA, 0x0000, 0)
	if !f.Z || f.N {
		t.Errorf("zero result should have Z set and N clear, got %+v", f)
	}
	_, f = Compute(FA, 0x8000, 0)
	if f.Z || !f.N {
		t.Errorf("negative result should have N set and Z clear, got %+v", f)
	}
}

func TestSignedLessThanAcrossSignBoundary(t *testing.T) {
	// -1 < 1
	r, _ := Compute(FALtB, 0xFFFF, 0x0001)
	if r != 1 {
		t.Errorf("expected -1 < 1 to be true, got %d", r)
	}
	// 1 < -1 is false
	r, _ = Compute(FALtB, 0x0001, 0xFFFF)
	if r != 0 {
		t.Errorf("expected 1 < -1 to be false, got %d", r)
	}
	// -2 < -1
	r, _ = Compute(FALtB, 0xFFFE, 0xFFFF)
	if r != 1 {
		t.Errorf("expected -2 < -1 to be true, got %d", r)
	}
}
