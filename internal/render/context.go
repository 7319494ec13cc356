// Package render owns the shared render resources: the block texture atlas,
// inventory icons and change notification for their consumers.
package render

import (
	"image"
	"image/color"
	"sort"
	"sync"

	"voxelbox/internal/meshing"
	"voxelbox/internal/registry"
	"voxelbox/internal/world"

	"golang.org/x/image/draw"
)

const (
	DefaultTileSize = 16
	DefaultIconSize = 32

	// patternSize is the resolution of the generated texture before scaling.
	patternSize = 4
)

type EventKind int

const (
	EventAtlasRebuilt EventKind = iota
	EventMeshReady
)

func (k EventKind) String() string {
	switch k {
	case EventAtlasRebuilt:
		return "atlas_rebuilt"
	case EventMeshReady:
		return "mesh_ready"
	default:
		return "unknown"
	}
}

// Event tells listeners which resource changed. Version is the world
// version of a ready mesh.
type Event struct {
	Kind    EventKind
	Version uint64
}

type Listener func(Event)

// Context is created once by the application root and passed to whoever
// draws blocks or icons.
type Context struct {
	TileSize int
	IconSize int

	mu        sync.RWMutex
	atlas     *image.RGBA
	icons     map[world.BlockType]*image.RGBA
	listeners map[int]Listener
	nextID    int
}

func NewContext(tileSize, iconSize int) *Context {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	if iconSize <= 0 {
		iconSize = DefaultIconSize
	}
	c := &Context{
		TileSize:  tileSize,
		IconSize:  iconSize,
		icons:     make(map[world.BlockType]*image.RGBA),
		listeners: make(map[int]Listener),
	}
	c.atlas = buildAtlas(tileSize)
	return c
}

// Atlas returns the current atlas: one column, one tile per texture row.
func (c *Context) Atlas() *image.RGBA {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.atlas
}

// RebuildAtlas regenerates every tile, drops cached icons and notifies
// listeners.
func (c *Context) RebuildAtlas() {
	atlas := buildAtlas(c.TileSize)
	c.mu.Lock()
	c.atlas = atlas
	clear(c.icons)
	c.mu.Unlock()

	c.Publish(Event{Kind: EventAtlasRebuilt})
}

// Icon returns the inventory icon for bt: the top texture over the shaded
// side texture. Icons are cached until the next atlas rebuild.
func (c *Context) Icon(bt world.BlockType) *image.RGBA {
	c.mu.RLock()
	icon, ok := c.icons[bt]
	atlas := c.atlas
	c.mu.RUnlock()
	if ok {
		return icon
	}

	icon = buildIcon(atlas, c.TileSize, c.IconSize, bt)

	c.mu.Lock()
	if cached, ok := c.icons[bt]; ok {
		icon = cached
	} else {
		c.icons[bt] = icon
	}
	c.mu.Unlock()
	return icon
}

// Subscribe registers fn and returns an id for Unsubscribe.
func (c *Context) Subscribe(fn Listener) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.listeners[c.nextID] = fn
	return c.nextID
}

func (c *Context) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, id)
}

// Publish calls every listener in subscription order. Listeners run without
// the lock held and may subscribe or unsubscribe.
func (c *Context) Publish(ev Event) {
	c.mu.RLock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, len(ids))
	for i, id := range ids {
		fns[i] = c.listeners[id]
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func buildAtlas(tileSize int) *image.RGBA {
	rows := registry.AtlasRows()
	if rows == 0 {
		rows = 1
	}
	atlas := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize*rows))
	for row, name := range registry.TextureNames {
		pattern := texturePattern(registry.TextureColors[name], uint32(row))
		dst := image.Rect(0, row*tileSize, tileSize, (row+1)*tileSize)
		draw.NearestNeighbor.Scale(atlas, dst, pattern, pattern.Bounds(), draw.Src, nil)
	}
	return atlas
}

// texturePattern speckles base with a fixed per-pixel brightness jitter.
func texturePattern(base color.RGBA, salt uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, patternSize, patternSize))
	for y := 0; y < patternSize; y++ {
		for x := 0; x < patternSize; x++ {
			h := uint32(x)*73856093 ^ uint32(y)*19349663 ^ salt*83492791
			h ^= h >> 13
			// Brightness factor in [0.88, 1.12].
			f := 0.88 + float64(h%25)/100
			img.SetRGBA(x, y, color.RGBA{
				R: scale8(base.R, f),
				G: scale8(base.G, f),
				B: scale8(base.B, f),
				A: base.A,
			})
		}
	}
	return img
}

func scale8(v uint8, f float64) uint8 {
	s := float64(v) * f
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func buildIcon(atlas *image.RGBA, tileSize, iconSize int, bt world.BlockType) *image.RGBA {
	icon := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	if bt == world.BlockTypeAir {
		return icon
	}
	tile := func(face world.BlockFace) image.Rectangle {
		row := registry.GetTextureLayer(bt, face)
		return image.Rect(0, row*tileSize, tileSize, (row+1)*tileSize)
	}

	half := iconSize / 2
	draw.BiLinear.Scale(icon, image.Rect(0, 0, iconSize, half), atlas, tile(world.FaceTop), draw.Src, nil)

	side := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize-half))
	draw.BiLinear.Scale(side, side.Bounds(), atlas, tile(world.FaceNorth), draw.Src, nil)
	shade(side, meshing.Shade(world.FaceNorth))
	draw.Draw(icon, image.Rect(0, half, iconSize, iconSize), side, image.Point{}, draw.Src)
	return icon
}

func shade(img *image.RGBA, f float32) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float32(img.Pix[i]) * f)
		img.Pix[i+1] = uint8(float32(img.Pix[i+1]) * f)
		img.Pix[i+2] = uint8(float32(img.Pix[i+2]) * f)
	}
}
