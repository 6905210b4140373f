package secutil

import "testing"

func TestZero(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	Zero(data)
	if !IsZeroed(data) {
		t.Fatalf("expected data to be zeroed, got %v", data)
	}
}

func TestZeroNil(t *testing.T) {
	Zero(nil)
	Zero([]byte{})
}

func TestZeroAll(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{4, 5, 6}
	ZeroAll(a, b)
	if !IsZeroed(a) || !IsZeroed(b) {
		t.Fatalf("expected both slices zeroed, got %v %v", a, b)
	}
}

func TestIsZeroedNil(t *testing.T) {
	if IsZeroed(nil) {
		t.Fatal("nil slice should not report as zeroed")
	}
}

func TestIsZeroedNonZero(t *testing.T) {
	if IsZeroed([]byte{0, 0, 1}) {
		t.Fatal("slice with a nonzero byte should not report as zeroed")
	}
}
