package mathx

import (
	"math"
	"testing"
)

func TestTransform_Inverse_RoundTrips(t *testing.T) {
	tr, err := RotateAxisAngle(NewVec3(0, 1, 0), math.Pi/3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr = tr.Compose(Translate(NewVec3(1, 2, 3)))

	p := NewVec3(4, 5, 6)
	world := tr.Forward.TransformPoint(p)
	back := tr.Inverse.TransformPoint(world)

	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 || math.Abs(back.Z-p.Z) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
}

func TestNewTransform_Singular(t *testing.T) {
	_, err := ScaleXYZ(NewVec3(1, 0, 1))
	if err == nil {
		t.Fatal("expected NonInvertibleTransform for zero-scale axis")
	}
	var nie NonInvertibleTransform
	if _, ok := err.(error); !ok {
		t.Fatalf("expected error, got %v", err)
	}
	_ = nie
}

func TestScaleXYZ_FlagsNonUniform(t *testing.T) {
	tr, err := ScaleXYZ(NewVec3(1, 2, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.IsUniform() {
		t.Error("expected non-uniform scale to be flagged")
	}
}

func TestScale_IsUniform(t *testing.T) {
	tr := Scale(2)
	if !tr.IsUniform() {
		t.Error("expected uniform scale")
	}
	if tr.UniformScale != 2 {
		t.Errorf("UniformScale = %f, want 2", tr.UniformScale)
	}
}

func TestTransform_Compose_MultipliesUniformScale(t *testing.T) {
	a := Scale(2)
	b := Scale(3)
	c := a.Compose(b)
	if c.UniformScale != 6 {
		t.Errorf("UniformScale = %f, want 6", c.UniformScale)
	}
}
