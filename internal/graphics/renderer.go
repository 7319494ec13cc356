package graphics

import (
	"fmt"
	"sync/atomic"

	"voxelbox/internal/meshing"
	"voxelbox/internal/profiling"
	"voxelbox/internal/render"
	"voxelbox/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var CrosshairVertices = []float32{
	-0.02, 0.0,
	0.02, 0.0,
	0.0, -0.02,
	0.0, 0.02,
}

// Cube edges as line pairs, slightly inflated so the outline does not z-fight.
var cubeWireframeVertices = func() []float32 {
	const lo, hi = -0.002, 1.002
	c := [8][3]float32{
		{lo, lo, lo}, {hi, lo, lo}, {hi, lo, hi}, {lo, lo, hi},
		{lo, hi, lo}, {hi, hi, lo}, {hi, hi, hi}, {lo, hi, hi},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	out := make([]float32, 0, len(edges)*6)
	for _, e := range edges {
		out = append(out, c[e[0]][:]...)
		out = append(out, c[e[1]][:]...)
	}
	return out
}()

var (
	skyColor       = mgl32.Vec3{0.53, 0.75, 0.95}
	highlightColor = mgl32.Vec3{0.05, 0.05, 0.05}
	breakColor     = mgl32.Vec3{0.9, 0.15, 0.1}
)

const fogEnd = 96

// Frame is everything the renderer needs for one frame besides the mesh.
type Frame struct {
	View, Proj mgl32.Mat4
	Hover      *world.Pos
	// Progress is the mining progress of Hover in [0, 1].
	Progress float32
}

type Renderer struct {
	ctx   *render.Context
	subID int

	mainShader      *Shader
	wireframeShader *Shader
	crosshairShader *Shader

	atlasTexture uint32
	atlasDirty   atomic.Bool

	mesh *WorldMesh

	wireframeVAO uint32
	wireframeVBO uint32
	crosshairVAO uint32
	crosshairVBO uint32

	width, height int
	wireframe     bool
}

// NewRenderer must be called on the thread that owns the GL context.
func NewRenderer(ctx *render.Context, width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	// Meshing emits CCW front faces
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r := &Renderer{ctx: ctx}
	var err error
	if r.mainShader, err = NewShader(worldVertexShader, worldFragmentShader); err != nil {
		return nil, fmt.Errorf("world shader: %w", err)
	}
	if r.wireframeShader, err = NewShader(lineVertexShader, lineFragmentShader); err != nil {
		return nil, fmt.Errorf("wireframe shader: %w", err)
	}
	if r.crosshairShader, err = NewShader(crosshairVertexShader, crosshairFragmentShader); err != nil {
		return nil, fmt.Errorf("crosshair shader: %w", err)
	}

	r.atlasTexture = UploadTexture(ctx.Atlas())
	r.subID = ctx.Subscribe(func(ev render.Event) {
		if ev.Kind == render.EventAtlasRebuilt {
			// Listeners may run off the GL thread; upload on the next frame.
			r.atlasDirty.Store(true)
		}
	})

	r.mesh = NewWorldMesh()
	r.wireframeVAO, r.wireframeVBO = newLineBuffer(cubeWireframeVertices, 3)
	r.crosshairVAO, r.crosshairVBO = newLineBuffer(CrosshairVertices, 2)

	r.SetViewport(width, height)
	return r, nil
}

func newLineBuffer(vertices []float32, components int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, components, gl.FLOAT, false, components*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (r *Renderer) SetViewport(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetWireframe draws the world as polygon outlines when on.
func (r *Renderer) SetWireframe(on bool) {
	r.wireframe = on
}

func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// SetGeometry replaces the drawn world mesh.
func (r *Renderer) SetGeometry(g *meshing.Geometry) {
	if g == nil || g.Version == r.mesh.Version && r.mesh.indexCount > 0 {
		return
	}
	r.mesh.Upload(g)
}

// MeshVersion is the world version of the mesh currently on the GPU.
func (r *Renderer) MeshVersion() uint64 {
	return r.mesh.Version
}

func (r *Renderer) Render(f Frame) {
	defer profiling.Track("render.Render")()

	if r.atlasDirty.Swap(false) {
		replaceTexture(r.atlasTexture, r.ctx.Atlas())
	}

	gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.renderBlocks(f)
	if f.Hover != nil {
		r.renderHighlight(f)
	}
	r.renderCrosshair()
}

func (r *Renderer) renderBlocks(f Frame) {
	r.mainShader.Use()
	r.mainShader.SetMat4("view", f.View)
	r.mainShader.SetMat4("proj", f.Proj)
	r.mainShader.SetVec3("fogColor", skyColor)
	r.mainShader.SetFloat("fogEnd", fogEnd)
	r.mainShader.SetInt("atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	r.mesh.Draw()
}

func (r *Renderer) renderHighlight(f Frame) {
	p := f.Hover
	model := mgl32.Translate3D(float32(p.X), float32(p.Y), float32(p.Z))

	color := highlightColor
	if f.Progress > 0 {
		color = highlightColor.Add(breakColor.Sub(highlightColor).Mul(f.Progress))
	}

	r.wireframeShader.Use()
	r.wireframeShader.SetMat4("model", model)
	r.wireframeShader.SetMat4("view", f.View)
	r.wireframeShader.SetMat4("proj", f.Proj)
	r.wireframeShader.SetVec3("color", color)

	gl.BindVertexArray(r.wireframeVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeWireframeVertices)/3))
	gl.BindVertexArray(0)
}

func (r *Renderer) renderCrosshair() {
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	aspect := float32(1)
	if r.height > 0 {
		aspect = float32(r.width) / float32(r.height)
	}

	r.crosshairShader.Use()
	r.crosshairShader.SetVec3("color", mgl32.Vec3{1, 1, 1})
	gl.Uniform2f(r.crosshairShader.location("scale"), 1/aspect, 1)

	gl.BindVertexArray(r.crosshairVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(CrosshairVertices)/2))
	gl.BindVertexArray(0)
}

// Dispose releases GL objects and detaches from the render context.
func (r *Renderer) Dispose() {
	r.ctx.Unsubscribe(r.subID)
	r.mesh.Delete()
	gl.DeleteTextures(1, &r.atlasTexture)
	gl.DeleteBuffers(1, &r.wireframeVBO)
	gl.DeleteVertexArrays(1, &r.wireframeVAO)
	gl.DeleteBuffers(1, &r.crosshairVBO)
	gl.DeleteVertexArrays(1, &r.crosshairVAO)
	r.mainShader.Delete()
	r.wireframeShader.Delete()
	r.crosshairShader.Delete()
}
