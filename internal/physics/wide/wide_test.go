package wide

import (
	gomath "math"
	"testing"
)

func TestF32Arithmetic(t *testing.T) {
	a := F32{1, 2, 3, 4}
	b := F32{4, 3, 2, 1}

	if got, want := a.Add(b), (F32{5, 5, 5, 5}); got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), (F32{-3, -1, 1, 3}); got != want {
		t.Errorf("Sub = %v, want %v", got, want)
	}
	if got, want := a.Mul(b), (F32{4, 6, 6, 4}); got != want {
		t.Errorf("Mul = %v, want %v", got, want)
	}
	if got, want := a.Neg(), (F32{-1, -2, -3, -4}); got != want {
		t.Errorf("Neg = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (F32{4, 3, 3, 4}); got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}
}

func TestF32Splat(t *testing.T) {
	got := Splat(7)
	for l := 0; l < Lanes; l++ {
		if got[l] != 7 {
			t.Fatalf("Splat lane %d = %f, want 7", l, got[l])
		}
	}
}

func TestF32Sqrt(t *testing.T) {
	got := F32{4, 9, 16, 25}.Sqrt()
	want := F32{2, 3, 4, 5}
	if got != want {
		t.Errorf("Sqrt = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{
		X: F32{3, 1, 0, 2},
		Y: F32{4, 2, 0, 3},
		Z: F32{0, 2, 0, 6},
	}
	got := v.Length()
	want := F32{5, 3, 0, 7}
	for l := 0; l < Lanes; l++ {
		if gomath.Abs(float64(got[l]-want[l])) > 1e-5 {
			t.Errorf("Length lane %d = %f, want %f", l, got[l], want[l])
		}
	}
}

func TestVec3SubScale(t *testing.T) {
	a := Vec3{X: Splat(2), Y: Splat(4), Z: Splat(6)}
	b := Vec3{X: Splat(1), Y: Splat(1), Z: Splat(1)}

	d := a.Sub(b).Scale(Splat(2))
	if d.X != Splat(2) || d.Y != Splat(6) || d.Z != Splat(10) {
		t.Errorf("Sub+Scale = %v", d)
	}
}
