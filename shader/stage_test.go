package shader

import (
	"math"
	"testing"

	"github.com/Noxitanius/govoxel"
)

const epsilon = 1e-5

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func vec4ApproxEq(a, b govoxel.Vec4) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) &&
		approxEq(a.Z, b.Z) && approxEq(a.W, b.W)
}

func TestVertexStageIdentityTransform(t *testing.T) {
	// With an identity camera matrix, clip_pos must be (P, 1).
	tests := []struct {
		name string
		pos  [3]float32
	}{
		{"origin", [3]float32{0, 0, 0}},
		{"unit_x", [3]float32{1, 0, 0}},
		{"negative", [3]float32{-3.5, 2.25, -0.125}},
		{"large", [3]float32{1000, -2000, 512}},
	}

	id := govoxel.Identity()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := VertexStage(id, govoxel.Vertex{Pos: tt.pos})
			want := govoxel.V4(tt.pos[0], tt.pos[1], tt.pos[2], 1)
			if !vec4ApproxEq(out.ClipPos, want) {
				t.Errorf("clip pos = %+v, want %+v", out.ClipPos, want)
			}
		})
	}
}

func TestVertexStageLinearity(t *testing.T) {
	// transform(M, a·P + b·Q) ≈ a·transform(M,P) + b·transform(M,Q)
	// in homogeneous coordinates: the transform of the affine combination
	// matches the combination of the transforms when a+b = 1.
	m := govoxel.Perspective(1.2, 1.5, 0.1, 100).Mul(
		govoxel.LookAt(govoxel.V3(3, 2, 5), govoxel.V3(0, 0, 0), govoxel.V3(0, 1, 0)))

	p := govoxel.V3(1, 2, 3)
	q := govoxel.V3(-2, 0.5, 4)
	const a, b = 0.25, 0.75

	combined := p.Scale(a).Add(q.Scale(b))
	got := VertexStage(m, govoxel.Vertex{Pos: [3]float32{combined.X, combined.Y, combined.Z}}).ClipPos

	tp := VertexStage(m, govoxel.Vertex{Pos: [3]float32{p.X, p.Y, p.Z}}).ClipPos
	tq := VertexStage(m, govoxel.Vertex{Pos: [3]float32{q.X, q.Y, q.Z}}).ClipPos
	want := tp.Scale(a).Add(tq.Scale(b))

	if !vec4ApproxEq(got, want) {
		t.Errorf("transform of combination = %+v, combination of transforms = %+v", got, want)
	}
}

func TestVertexStageColorPassThrough(t *testing.T) {
	tests := []struct {
		name  string
		color [3]float32
	}{
		{"red", [3]float32{1, 0, 0}},
		{"gray", [3]float32{0.5, 0.5, 0.5}},
		{"out_of_range", [3]float32{2.5, -1, 7}}, // not clamped
	}

	m := govoxel.Perspective(1.0, 1.0, 0.05, 200)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := VertexStage(m, govoxel.Vertex{Pos: [3]float32{1, 2, 3}, Color: tt.color})
			if out.Color != tt.color {
				t.Errorf("color = %v, want %v exactly", out.Color, tt.color)
			}
		})
	}
}

func TestVertexStageStateless(t *testing.T) {
	// Repeated invocations with the same inputs produce identical outputs.
	m := govoxel.LookAt(govoxel.V3(1, 1, 1), govoxel.V3(0, 0, 0), govoxel.V3(0, 1, 0))
	v := govoxel.Vertex{Pos: [3]float32{4, 5, 6}, Color: [3]float32{0.1, 0.2, 0.3}}

	first := VertexStage(m, v)
	for i := 0; i < 10; i++ {
		if got := VertexStage(m, v); got != first {
			t.Fatalf("invocation %d produced %+v, want %+v", i, got, first)
		}
	}
}

func TestVertexStageNonFinitePropagates(t *testing.T) {
	// NaN input is not an error; it propagates into the output.
	nan := float32(math.NaN())
	out := VertexStage(govoxel.Identity(), govoxel.Vertex{Pos: [3]float32{nan, 0, 0}})
	if !math.IsNaN(float64(out.ClipPos.X)) {
		t.Errorf("expected NaN to propagate, got %v", out.ClipPos.X)
	}
}

func TestFragmentStageOpacity(t *testing.T) {
	tests := []struct {
		name  string
		color [3]float32
	}{
		{"black", [3]float32{0, 0, 0}},
		{"white", [3]float32{1, 1, 1}},
		{"interpolated", [3]float32{0.333, 0.333, 0.333}},
		{"out_of_range", [3]float32{-5, 100, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FragmentStage(VSOut{Color: tt.color})
			if out[3] != 1.0 {
				t.Errorf("alpha = %v, want exactly 1.0", out[3])
			}
			if out[0] != tt.color[0] || out[1] != tt.color[1] || out[2] != tt.color[2] {
				t.Errorf("rgb = %v, want %v unchanged", out[:3], tt.color)
			}
		})
	}
}

func TestExampleScenarioVertices(t *testing.T) {
	// Identity camera; triangle at (0,0,0)/(1,0,0)/(0,1,0) with RGB corner
	// colors. Expected clip positions are the positions with W=1.
	verts := []govoxel.Vertex{
		{Pos: [3]float32{0, 0, 0}, Color: [3]float32{1, 0, 0}},
		{Pos: [3]float32{1, 0, 0}, Color: [3]float32{0, 1, 0}},
		{Pos: [3]float32{0, 1, 0}, Color: [3]float32{0, 0, 1}},
	}
	id := govoxel.Identity()

	for i, v := range verts {
		out := VertexStage(id, v)
		want := govoxel.V4(v.Pos[0], v.Pos[1], v.Pos[2], 1)
		if !vec4ApproxEq(out.ClipPos, want) {
			t.Errorf("vertex %d: clip pos = %+v, want %+v", i, out.ClipPos, want)
		}
		if out.Color != v.Color {
			t.Errorf("vertex %d: color = %v, want %v", i, out.Color, v.Color)
		}
	}

	// A fragment at the centroid (barycentric 1/3,1/3,1/3) sees the mean
	// of the corner colors.
	centroid := VSOut{Color: [3]float32{1.0 / 3, 1.0 / 3, 1.0 / 3}}
	out := FragmentStage(centroid)
	for i := 0; i < 3; i++ {
		if !approxEq(out[i], 1.0/3) {
			t.Errorf("centroid channel %d = %v, want ~0.333", i, out[i])
		}
	}
	if out[3] != 1.0 {
		t.Errorf("centroid alpha = %v, want 1.0", out[3])
	}
}
