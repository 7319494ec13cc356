package graphics

import (
	"voxelbox/internal/meshing"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// WorldMesh is the GPU copy of one meshing.Geometry.
type WorldMesh struct {
	vao        uint32
	vbos       [4]uint32 // positions, normals, uvs, shades
	ebo        uint32
	indexCount int32
	Version    uint64
}

func NewWorldMesh() *WorldMesh {
	m := &WorldMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(int32(len(m.vbos)), &m.vbos[0])
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	sizes := [4]int32{3, 3, 2, 1}
	for i, vbo := range m.vbos {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.VertexAttribPointerWithOffset(uint32(i), sizes[i], gl.FLOAT, false, sizes[i]*4, 0)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BindVertexArray(0)
	return m
}

// Upload replaces the buffers with g. The previous contents are released by
// the driver when the buffer storage is reallocated.
func (m *WorldMesh) Upload(g *meshing.Geometry) {
	gl.BindVertexArray(m.vao)
	streams := [4][]float32{g.Positions, g.Normals, g.UVs, g.Shades}
	for i, data := range streams {
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbos[i])
		if len(data) == 0 {
			gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
			continue
		}
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	if len(g.Indices) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	m.indexCount = int32(len(g.Indices))
	m.Version = g.Version
}

func (m *WorldMesh) Draw() {
	if m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func (m *WorldMesh) Delete() {
	gl.DeleteBuffers(int32(len(m.vbos)), &m.vbos[0])
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}
