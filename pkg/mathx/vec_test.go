package mathx

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec3
		wantErr bool
	}{
		{"unit x", NewVec3(5, 0, 0), false},
		{"diagonal", NewVec3(1, 1, 1), false},
		{"zero vector", NewVec3(0, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.v.Normalize()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected DegenerateVector, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(n.Length()-1) > 1e-12 {
				t.Errorf("expected unit length, got %f", n.Length())
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	normal := NewVec3(0, 1, 0)
	got := incoming.Reflect(normal)
	want := NewVec3(1, 1, 0)
	if !got.Equal(want) {
		t.Errorf("Reflect() = %+v, want %+v", got, want)
	}
}

func TestVec3_DotCross(t *testing.T) {
	a := NewVec3(1, 0, 0)
	b := NewVec3(0, 1, 0)
	if a.Dot(b) != 0 {
		t.Errorf("expected orthogonal dot=0, got %f", a.Dot(b))
	}
	cross := a.Cross(b)
	if !cross.Equal(NewVec3(0, 0, 1)) {
		t.Errorf("Cross() = %+v, want (0,0,1)", cross)
	}
}

func TestVec3_MustNormalize_DegenerateFallback(t *testing.T) {
	got := NewVec3(0, 0, 0).MustNormalize()
	if !got.Equal(NewVec3(0, 0, 0)) {
		t.Errorf("expected zero fallback, got %+v", got)
	}
}
