package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestNewField_InvalidDims(t *testing.T) {
	tests := []struct {
		name           string
		nx, ny, nz, nc int
	}{
		{"zero nx", 0, 1, 1, 1},
		{"negative ny", 1, -1, 1, 1},
		{"zero components", 2, 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewField(tt.nx, tt.ny, tt.nz, tt.nc)
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestField_AddAccumulates(t *testing.T) {
	f, err := NewField(2, 3, 4, NVAR)
	if err != nil {
		t.Fatalf("new field: %v", err)
	}

	f.Add(1, 2, 3, UEDEN, 1.5)
	f.Add(1, 2, 3, UEDEN, -0.5)

	if got := f.At(1, 2, 3, UEDEN); got != 1.0 {
		t.Errorf("At = %v, want 1", got)
	}
	if got := f.At(1, 2, 3, UMX); got != 0 {
		t.Errorf("neighbouring component touched: %v", got)
	}
	if got := f.At(0, 2, 3, UEDEN); got != 0 {
		t.Errorf("neighbouring cell touched: %v", got)
	}
}

func TestField_Axpy(t *testing.T) {
	a, _ := NewField(2, 2, 2, 2)
	b, _ := NewField(2, 2, 2, 2)
	a.Set(1, 1, 1, 0, 1)
	b.Set(1, 1, 1, 0, 4)

	if err := a.Axpy(0.5, b); err != nil {
		t.Fatalf("axpy: %v", err)
	}
	if got := a.At(1, 1, 1, 0); got != 3 {
		t.Errorf("axpy result = %v, want 3", got)
	}

	c, _ := NewField(1, 2, 2, 2)
	if err := a.Axpy(1, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestField_CloneIsIndependent(t *testing.T) {
	f, _ := NewField(1, 1, 1, 1)
	f.Set(0, 0, 0, 0, 2)

	c := f.Clone()
	c.Set(0, 0, 0, 0, 99)

	if f.At(0, 0, 0, 0) != 2 {
		t.Error("Clone shares storage with original")
	}
}

func TestField_IsValid(t *testing.T) {
	f, _ := NewField(2, 1, 1, 1)
	if !f.IsValid() {
		t.Error("zero field reported invalid")
	}
	f.Set(1, 0, 0, 0, math.NaN())
	if f.IsValid() {
		t.Error("NaN not detected")
	}
	f.Set(1, 0, 0, 0, math.Inf(-1))
	if f.IsValid() {
		t.Error("-Inf not detected")
	}
}

func TestField_SumAndZero(t *testing.T) {
	f, _ := NewField(2, 2, 1, 2)
	f.Set(0, 0, 0, 1, 1)
	f.Set(1, 1, 0, 1, 2)
	f.Set(1, 1, 0, 0, 10)

	if got := f.Sum(1); got != 3 {
		t.Errorf("Sum(1) = %v, want 3", got)
	}

	f.Zero()
	if f.Sum(0) != 0 || f.Sum(1) != 0 {
		t.Error("Zero left values behind")
	}
}

func TestField_ComponentAndScale(t *testing.T) {
	f, _ := NewField(2, 1, 1, 3)
	f.Set(1, 0, 0, 2, 4)

	c := f.Component(2)
	if len(c) != 2 || c[1] != 4 {
		t.Fatalf("Component(2) = %v", c)
	}
	c[0] = 1
	if f.At(0, 0, 0, 2) != 1 {
		t.Error("Component should alias the field")
	}

	f.Scale(0.5)
	if f.At(1, 0, 0, 2) != 2 || f.At(0, 0, 0, 2) != 0.5 {
		t.Errorf("Scale: got %v", f.Component(2))
	}
}
