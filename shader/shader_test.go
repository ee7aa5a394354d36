package shader

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Noxitanius/govoxel"
)

func TestSourceDeclaresContract(t *testing.T) {
	src := Source()
	if src == "" {
		t.Fatal("embedded shader source is empty")
	}

	for _, want := range []string{
		"@group(0) @binding(0)",
		"mat4x4<f32>",
		"@location(0) pos: vec3<f32>",
		"@location(1) color: vec3<f32>",
		"fn " + VertexEntryPoint,
		"fn " + FragmentEntryPoint,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("embedded shader failed validation: %v", err)
	}
}

func TestCompileSPIRV(t *testing.T) {
	words, err := CompileSPIRV()
	if err != nil {
		t.Fatalf("CompileSPIRV failed: %v", err)
	}
	if len(words) < 5 {
		t.Fatalf("SPIR-V output too small: %d words", len(words))
	}
	// SPIR-V magic number.
	if words[0] != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: got 0x%08X", words[0])
	}
}

func TestCameraUniformBytes(t *testing.T) {
	u := CameraUniform{ViewProj: govoxel.Identity()}
	b := u.Bytes()

	if len(b) != CameraUniformSize {
		t.Fatalf("uniform size = %d, want %d", len(b), CameraUniformSize)
	}

	// Column-major identity: 1.0 at word offsets 0, 5, 10, 15.
	for w := 0; w < 16; w++ {
		f := math.Float32frombits(binary.LittleEndian.Uint32(b[w*4:]))
		want := float32(0)
		if w%5 == 0 {
			want = 1
		}
		if f != want {
			t.Errorf("word %d = %v, want %v", w, f, want)
		}
	}
}

func TestCameraUniformBytesColumnMajor(t *testing.T) {
	// A pure translation has its offset in column 3 (words 12..14).
	m := govoxel.Identity()
	m[3][0] = 7
	m[3][1] = 8
	m[3][2] = 9

	b := (&CameraUniform{ViewProj: m}).Bytes()
	for i, want := range []float32{7, 8, 9} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[(12+i)*4:]))
		if got != want {
			t.Errorf("translation word %d = %v, want %v", 12+i, got, want)
		}
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if layout.ArrayStride != govoxel.VertexStride {
		t.Errorf("stride = %d, want %d", layout.ArrayStride, govoxel.VertexStride)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(layout.Attributes))
	}
	if layout.Attributes[0].ShaderLocation != PositionLocation || layout.Attributes[0].Offset != 0 {
		t.Errorf("position attribute = %+v", layout.Attributes[0])
	}
	if layout.Attributes[1].ShaderLocation != ColorLocation || layout.Attributes[1].Offset != 12 {
		t.Errorf("color attribute = %+v", layout.Attributes[1])
	}
}
