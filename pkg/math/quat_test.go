package math

import (
	"math"
	"testing"
)

func TestQuatIdentityMat(t *testing.T) {
	m := QuatIdentity().ToMat4()
	want := Identity()
	for i := range m {
		if math.Abs(float64(m[i]-want[i])) > 1e-6 {
			t.Fatalf("identity quat matrix element %d = %v, want %v", i, m[i], want[i])
		}
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.Dot(n))))
	if math.Abs(float64(length-1)) > 1e-4 {
		t.Errorf("normalized length = %v, want 1", length)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quat normalized to %v, want identity", got)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	wantW := float32(math.Cos(math.Pi / 4))
	wantY := float32(math.Sin(math.Pi / 4))
	if math.Abs(float64(q.W-wantW)) > 1e-4 || math.Abs(float64(q.Y-wantY)) > 1e-4 {
		t.Errorf("quarter turn about Y = %+v, want Y=%v W=%v", q, wantY, wantW)
	}
}

func TestQuatRotatesVector(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	got := q.ToMat4().TransformVec3(Vec3{X: 1})
	want := Vec3{Z: -1}
	if got.Distance(want) > 1e-5 {
		t.Errorf("rotated +X = %v, want %v", got, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	// Two quarter turns about Y equal a half turn.
	quarter := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	half := quarter.Mul(quarter)

	got := half.ToMat4().TransformVec3(Vec3{X: 1})
	want := Vec3{X: -1}
	if got.Distance(want) > 1e-5 {
		t.Errorf("half turn of +X = %v, want %v", got, want)
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	if got := q1.Slerp(q2, 0); math.Abs(float64(got.W-q1.W)) > 1e-3 {
		t.Errorf("slerp at t=0 = %+v, want %+v", got, q1)
	}
	if got := q1.Slerp(q2, 1); math.Abs(float64(got.W-q2.W)) > 1e-3 {
		t.Errorf("slerp at t=1 = %+v, want %+v", got, q2)
	}

	// Halfway between identity and a quarter turn is an eighth turn.
	mid := q1.Slerp(q2, 0.5)
	wantW := float32(math.Cos(math.Pi / 8))
	if math.Abs(float64(mid.W-wantW)) > 1e-2 {
		t.Errorf("slerp midpoint W = %v, want ~%v", mid.W, wantW)
	}
}

func TestQuatSlerpShorterArc(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, 0.3)
	neg := Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}

	// q and -q are the same rotation; interpolation must not swing around.
	mid := q.Slerp(neg, 0.5)
	if math.Abs(math.Abs(float64(mid.Dot(q)))-1) > 1e-3 {
		t.Errorf("slerp between q and -q drifted: %+v", mid)
	}
}
