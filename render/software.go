package render

import (
	"errors"

	"github.com/Noxitanius/govoxel/shader"
)

// SoftwareRenderer is a CPU rasterizer that runs the same vertex and
// fragment stages as the GPU pipeline.
//
// It matches the GPU path's fixed-function state: triangle lists,
// counter-clockwise front faces with back-face culling, a depth buffer
// cleared to 1.0 with a less-than test, and opaque color writes.
// Triangles touching or crossing the w=0 plane are discarded rather than
// clipped; world geometry behind the near plane simply drops out.
//
// Performance characteristics:
//   - Single-threaded
//   - O(n) in covered pixels per triangle
//   - Memory: one float32 depth value per target pixel, reused across calls
type SoftwareRenderer struct {
	// depth is the reusable depth buffer.
	depth []float32

	// lastWidth and lastHeight track the depth buffer dimensions.
	lastWidth, lastHeight int
}

// NewSoftwareRenderer creates a new CPU rasterizer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Render draws the frame's mesh to the target.
//
// Returns an error if the target is GPU-only (no Pixels() support).
func (r *SoftwareRenderer) Render(target RenderTarget, frame *Frame) error {
	if target == nil {
		return errors.New("render: nil target")
	}
	if frame == nil {
		return errors.New("render: nil frame")
	}

	pixels := target.Pixels()
	if pixels == nil {
		return errors.New("render: target does not support CPU rendering")
	}

	width := target.Width()
	height := target.Height()
	stride := target.Stride()
	if width <= 0 || height <= 0 {
		return nil
	}

	r.ensureDepth(width, height)
	clearPixels(pixels, width, height, stride, frame.Background())

	if frame.Mesh.IsEmpty() {
		return nil
	}

	mesh := frame.Mesh
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := shader.VertexStage(frame.ViewProj, mesh.Vertices[mesh.Indices[i]])
		v1 := shader.VertexStage(frame.ViewProj, mesh.Vertices[mesh.Indices[i+1]])
		v2 := shader.VertexStage(frame.ViewProj, mesh.Vertices[mesh.Indices[i+2]])
		r.rasterTriangle(pixels, width, height, stride, v0, v1, v2)
	}
	return nil
}

// Flush is a no-op; software rendering is synchronous.
func (r *SoftwareRenderer) Flush() error {
	return nil
}

func (r *SoftwareRenderer) ensureDepth(width, height int) {
	if width != r.lastWidth || height != r.lastHeight {
		r.depth = make([]float32, width*height)
		r.lastWidth = width
		r.lastHeight = height
	}
	for i := range r.depth {
		r.depth[i] = 1.0
	}
}

// screenVert is a post-transform vertex in window coordinates.
type screenVert struct {
	x, y  float32 // pixel coordinates, y down
	z     float32 // NDC depth in [0, 1]
	invW  float32
	color [3]float32
}

func (r *SoftwareRenderer) rasterTriangle(pixels []byte, width, height, stride int, v0, v1, v2 shader.VSOut) {
	// No clipping: drop the whole triangle at the w=0 plane.
	const minW = 1e-6
	if v0.ClipPos.W <= minW || v1.ClipPos.W <= minW || v2.ClipPos.W <= minW {
		return
	}

	s0 := toScreen(v0, width, height)
	s1 := toScreen(v1, width, height)
	s2 := toScreen(v2, width, height)

	// Signed area in window space, y down. Counter-clockwise front faces
	// come out negative; cull everything else.
	area := edgeFn(s0, s1, s2)
	if area >= 0 {
		return
	}

	x0 := clampInt(int(floor32(min3(s0.x, s1.x, s2.x))), 0, width-1)
	x1 := clampInt(int(ceil32(max3(s0.x, s1.x, s2.x))), 0, width-1)
	y0 := clampInt(int(floor32(min3(s0.y, s1.y, s2.y))), 0, height-1)
	y1 := clampInt(int(ceil32(max3(s0.y, s1.y, s2.y))), 0, height-1)

	invArea := 1.0 / area
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			p := screenVert{x: float32(px) + 0.5, y: float32(py) + 0.5}

			w0 := edgeFn(s1, s2, p)
			w1 := edgeFn(s2, s0, p)
			w2 := edgeFn(s0, s1, p)
			// Inside test for negative-area triangles.
			if w0 > 0 || w1 > 0 || w2 > 0 {
				continue
			}

			b0 := w0 * invArea
			b1 := w1 * invArea
			b2 := w2 * invArea

			// Depth interpolates linearly in window space.
			z := b0*s0.z + b1*s1.z + b2*s2.z
			di := py*width + px
			if z >= r.depth[di] {
				continue
			}

			// Perspective-correct color.
			iw := b0*s0.invW + b1*s1.invW + b2*s2.invW
			var col [3]float32
			for c := range 3 {
				col[c] = (b0*s0.color[c]*s0.invW +
					b1*s1.color[c]*s1.invW +
					b2*s2.color[c]*s2.invW) / iw
			}

			out := shader.FragmentStage(shader.VSOut{Color: col})
			r.depth[di] = z
			writePixel(pixels, stride, px, py, out)
		}
	}
}

func toScreen(v shader.VSOut, width, height int) screenVert {
	invW := 1.0 / v.ClipPos.W
	ndcX := v.ClipPos.X * invW
	ndcY := v.ClipPos.Y * invW
	ndcZ := v.ClipPos.Z * invW
	return screenVert{
		x:     (ndcX*0.5 + 0.5) * float32(width),
		y:     (0.5 - ndcY*0.5) * float32(height),
		z:     ndcZ,
		invW:  invW,
		color: v.Color,
	}
}

// edgeFn is the signed parallelogram area of (a, b, c).
func edgeFn(a, b, c screenVert) float32 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func clearPixels(pixels []byte, width, height, stride int, c [4]float32) {
	r := colorByte(c[0])
	g := colorByte(c[1])
	b := colorByte(c[2])
	a := colorByte(c[3])
	for y := range height {
		row := pixels[y*stride:]
		for x := range width {
			row[x*4+0] = r
			row[x*4+1] = g
			row[x*4+2] = b
			row[x*4+3] = a
		}
	}
}

func writePixel(pixels []byte, stride, x, y int, c [4]float32) {
	off := y*stride + x*4
	pixels[off+0] = colorByte(c[0])
	pixels[off+1] = colorByte(c[1])
	pixels[off+2] = colorByte(c[2])
	pixels[off+3] = colorByte(c[3])
}

func colorByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func min3(a, b, c float32) float32 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c float32) float32 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		i--
	}
	return i
}

func ceil32(v float32) float32 {
	i := float32(int(v))
	if v > 0 && i != v {
		i++
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
