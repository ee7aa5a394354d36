package render

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/Noxitanius/govoxel"
	"github.com/Noxitanius/govoxel/shader"
)

// DeviceHandle provides GPU device access from the host application.
//
// The renderer RECEIVES the device from the host, it does not create one.
// Besides the gpucontext methods, the concrete provider must expose the
// underlying HAL handles via HalDevice() any and HalQueue() any.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider so host
// applications built on the gpucontext ecosystem plug in directly.
type DeviceHandle = gpucontext.DeviceProvider

// readbackAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies on WebGPU and DX12.
const readbackAlignment = 256

// MeshRenderer draws voxel meshes through a WebGPU render pipeline built
// from the embedded WGSL shader.
//
// Pipeline state mirrors the software renderer: triangle lists,
// counter-clockwise front faces with back-face culling, Depth32Float depth
// buffer with a less-than test, and opaque color writes.
//
// The renderer draws into its own color and depth textures sized to the
// target and copies the color texture back into the target's pixels, so
// any CPU-accessible target works. Meshes are drawn non-indexed; the
// indexed mesh is unrolled at upload time.
type MeshRenderer struct {
	device hal.Device
	queue  hal.Queue

	module     hal.ShaderModule
	cameraBGL  hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	cameraBuf hal.Buffer
	bindGroup hal.BindGroup

	vertexBuf   hal.Buffer
	vertexCap   uint64
	vertexCount uint32

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
	texW, texH int
}

// NewMeshRenderer builds the render pipeline on the host's device. The
// provider must expose HAL handles via HalDevice() any and HalQueue() any.
func NewMeshRenderer(provider any) (*MeshRenderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("render: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("render: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("render: provider HalQueue is not hal.Queue")
	}

	r := &MeshRenderer{device: device, queue: queue}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *MeshRenderer) createPipeline() error {
	module, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "voxel_mesh_shader",
		Source: hal.ShaderSource{WGSL: shader.Source()},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	r.module = module

	bgl, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "voxel_camera_bgl",
		Entries: shader.CameraBindGroupLayoutEntries(),
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	r.cameraBGL = bgl

	layout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "voxel_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bgl},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = layout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "voxel_mesh_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{shader.VertexLayout()},
		},
		Fragment: &hal.FragmentState{
			Module:     module,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            gputypes.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0xFF,
			StencilWriteMask: 0xFF,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeBack,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	r.pipeline = pipeline

	cameraBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voxel_camera_uniform",
		Size:  shader.CameraUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create camera buffer: %w", err)
	}
	r.cameraBuf = cameraBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "voxel_camera_bg",
		Layout: bgl,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: shader.CameraBinding,
				Resource: gputypes.BufferBinding{
					Buffer: cameraBuf.NativeHandle(),
					Offset: 0,
					Size:   shader.CameraUniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup
	return nil
}

// Render draws the frame into the target. The target must be CPU
// accessible; the rendered image is copied back into its pixels.
func (r *MeshRenderer) Render(target RenderTarget, frame *Frame) error {
	if target == nil {
		return errors.New("render: nil target")
	}
	if frame == nil {
		return errors.New("render: nil frame")
	}
	pixels := target.Pixels()
	if pixels == nil {
		return errors.New("render: target does not support readback")
	}

	width := target.Width()
	height := target.Height()
	if width <= 0 || height <= 0 {
		return nil
	}

	if err := r.ensureTextures(width, height); err != nil {
		return err
	}
	if err := r.uploadCamera(frame.ViewProj); err != nil {
		return err
	}
	if err := r.uploadMesh(frame.Mesh); err != nil {
		return err
	}
	return r.encodeSubmitReadback(target, frame.Background())
}

// Flush waits for the device to go idle. Render already waits on its own
// submission, so this only matters after external work on the same queue.
func (r *MeshRenderer) Flush() error {
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	return nil
}

// ensureTextures recreates the color and depth attachments when the target
// size changes.
func (r *MeshRenderer) ensureTextures(width, height int) error {
	if width == r.texW && height == r.texH && r.colorView != nil {
		return nil
	}
	r.destroyTextures()

	size := hal.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "voxel_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create color texture: %w", err)
	}
	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "voxel_color_view",
	})
	if err != nil {
		r.device.DestroyTexture(colorTex)
		return fmt.Errorf("create color view: %w", err)
	}

	depthTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "voxel_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth32Float,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		r.device.DestroyTextureView(colorView)
		r.device.DestroyTexture(colorTex)
		return fmt.Errorf("create depth texture: %w", err)
	}
	depthView, err := r.device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: "voxel_depth_view",
	})
	if err != nil {
		r.device.DestroyTexture(depthTex)
		r.device.DestroyTextureView(colorView)
		r.device.DestroyTexture(colorTex)
		return fmt.Errorf("create depth view: %w", err)
	}

	r.colorTex = colorTex
	r.colorView = colorView
	r.depthTex = depthTex
	r.depthView = depthView
	r.texW = width
	r.texH = height
	return nil
}

func (r *MeshRenderer) uploadCamera(viewProj govoxel.Mat4) error {
	u := shader.CameraUniform{ViewProj: viewProj}
	if err := r.queue.WriteBuffer(r.cameraBuf, 0, u.Bytes()); err != nil {
		return fmt.Errorf("upload camera: %w", err)
	}
	return nil
}

// uploadMesh unrolls the indexed mesh into a plain triangle list and
// uploads it, growing the vertex buffer when needed.
func (r *MeshRenderer) uploadMesh(mesh *govoxel.Mesh) error {
	if mesh.IsEmpty() {
		r.vertexCount = 0
		return nil
	}

	unrolled := govoxel.Mesh{Vertices: mesh.Unrolled()}
	data := unrolled.VertexBytes()
	need := uint64(len(data))

	if need > r.vertexCap {
		if r.vertexBuf != nil {
			r.device.DestroyBuffer(r.vertexBuf)
			r.vertexBuf = nil
			r.vertexCap = 0
		}
		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "voxel_vertices",
			Size:  need,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create vertex buffer: %w", err)
		}
		r.vertexBuf = buf
		r.vertexCap = need
	}

	if err := r.queue.WriteBuffer(r.vertexBuf, 0, data); err != nil {
		return fmt.Errorf("upload vertices: %w", err)
	}
	r.vertexCount = uint32(len(unrolled.Vertices))
	return nil
}

// encodeSubmitReadback records the render pass, copies the color texture
// to a staging buffer, submits, waits, and writes pixels into the target.
func (r *MeshRenderer) encodeSubmitReadback(target RenderTarget, clear [4]float32) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "voxel_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("voxel_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "voxel_mesh_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    r.colorView,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear[0]),
				G: float64(clear[1]),
				B: float64(clear[2]),
				A: float64(clear[3]),
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	if r.vertexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(shader.CameraGroup, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertexBuf, 0)
		rp.Draw(r.vertexCount, 1, 0, 0)
	}
	rp.End()

	// Transition for the copy; no-op on backends without explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	w := uint32(target.Width())
	h := uint32(target.Height())
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + readbackAlignment - 1) &^ (readbackAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "voxel_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	// The staging buffer must not be mapped while the copy is in flight.
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}

	mapping, err := r.device.MapBuffer(stagingBuf, 0, stagingSize)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	readback := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)

	pixels := target.Pixels()
	stride := target.Stride()
	for row := range int(h) {
		src := readback[row*int(alignedBytesPerRow):]
		dst := pixels[row*stride:]
		copy(dst[:bytesPerRow], src[:bytesPerRow])
	}

	if err := r.device.UnmapBuffer(stagingBuf); err != nil {
		return fmt.Errorf("unmap staging buffer: %w", err)
	}
	return nil
}

func (r *MeshRenderer) destroyTextures() {
	if r.depthView != nil {
		r.device.DestroyTextureView(r.depthView)
		r.depthView = nil
	}
	if r.depthTex != nil {
		r.device.DestroyTexture(r.depthTex)
		r.depthTex = nil
	}
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
	r.texW = 0
	r.texH = 0
}

// Destroy releases all GPU resources. The renderer must not be used after.
func (r *MeshRenderer) Destroy() {
	r.destroyTextures()
	if r.vertexBuf != nil {
		r.device.DestroyBuffer(r.vertexBuf)
		r.vertexBuf = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.cameraBuf != nil {
		r.device.DestroyBuffer(r.cameraBuf)
		r.cameraBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.cameraBGL != nil {
		r.device.DestroyBindGroupLayout(r.cameraBGL)
		r.cameraBGL = nil
	}
	if r.module != nil {
		r.device.DestroyShaderModule(r.module)
		r.module = nil
	}
}

// Ensure MeshRenderer implements Renderer.
var _ Renderer = (*MeshRenderer)(nil)
