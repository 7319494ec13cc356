package game

import (
	"context"
	"fmt"
	"log"

	"voxelbox/internal/config"
	"voxelbox/internal/entity"
	"voxelbox/internal/input"
	"voxelbox/internal/item"
	"voxelbox/internal/meshing"
	"voxelbox/internal/player"
	"voxelbox/internal/profiling"
	"voxelbox/internal/registry"
	"voxelbox/internal/render"
	"voxelbox/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxFrameDelta caps the simulated time of one frame so a hitch cannot
// launch the player through the floor.
const MaxFrameDelta = 0.05

// creativeHotbar is the hotbar a creative session starts with.
var creativeHotbar = []world.BlockType{
	world.BlockTypeGrass,
	world.BlockTypeDirt,
	world.BlockTypeStone,
	world.BlockTypeWood,
	world.BlockTypePlanks,
	world.BlockTypeLeaves,
	world.BlockTypeSand,
	world.BlockTypeSnow,
	world.BlockTypeCraftingTable,
}

// Session owns one running world and everything simulated in it. It has
// no window; the caller feeds it intents and draws Mesh().
type Session struct {
	Config   *config.Config
	World    *world.World
	Entities *entity.Manager
	Player   *player.Player
	Render   *render.Context

	pool          *meshing.WorkerPool
	mesh          *meshing.Geometry
	lastSubmitted uint64
	submitted     bool
}

// NewSession generates the configured world and spawns the player on it.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	gen := world.NewGenerator(cfg.World.Seed)
	gen.Noise = cfg.World.Noise
	gen.Octaves = cfg.World.Octaves
	gen.SeaLevel = cfg.World.SeaLevel
	gen.MaxHeight = cfg.World.MaxHeight
	gen.TreeChance = cfg.World.TreeChance

	w := world.NewEmpty()
	if err := gen.Populate(ctx, w, cfg.World.Size); err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}
	log.Printf("world generated: size=%d seed=%d noise=%s blocks=%d",
		cfg.World.Size, cfg.World.Seed, cfg.World.Noise, w.Len())

	s := NewSessionWithWorld(cfg, w)
	s.Spawn(0, 0)
	return s, nil
}

// NewSessionWithWorld wraps an existing world. The player starts at the origin.
func NewSessionWithWorld(cfg *config.Config, w *world.World) *Session {
	entities := entity.NewManager()
	miner := player.NewMiner(cfg.Player.EffectiveHoldDelay(), cfg.Player.DragThreshold)
	p := player.New(w, entities, player.ParseGameMode(cfg.Player.Mode), miner)
	p.FOV = cfg.Player.FOV
	p.ViewportWidth, p.ViewportHeight = cfg.Window.Width, cfg.Window.Height

	if p.GameMode == player.GameModeCreative {
		for i, bt := range creativeHotbar {
			p.Inventory.Slots[i] = item.OfBlock(bt, 1)
		}
	}

	s := &Session{
		Config:   cfg,
		World:    w,
		Entities: entities,
		Player:   p,
		Render:   render.NewContext(render.DefaultTileSize, render.DefaultIconSize),
		pool:     meshing.NewWorkerPool(cfg.Mesh.Workers),
	}
	s.submitMesh()
	return s
}

// Spawn stands the player on the highest solid block of column x, z.
func (s *Session) Spawn(x, z int) {
	groundY := -1
	top, ok := s.World.Ceiling()
	if !ok {
		top = -1
	}
	for y := top; y >= 0; y-- {
		if registry.IsSolid(s.World.Get(x, y, z)) {
			groundY = y
			break
		}
	}
	p := s.Player
	p.Position = mgl32.Vec3{float32(x) + 0.5, float32(groundY + 1), float32(z) + 0.5}
	p.VelY = 0
	p.OnGround = groundY >= 0
}

// Update advances the simulation by dt seconds and picks up any finished mesh.
func (s *Session) Update(dt float64, in input.Intent) {
	defer profiling.Track("session.Update")()

	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if dt < 0 {
		dt = 0
	}

	s.Player.Update(dt, in)
	s.Entities.Update(dt, s.World)

	s.submitMesh()
	s.pollMesh()
}

// submitMesh queues a rebuild when the world changed since the last one.
func (s *Session) submitMesh() {
	v := s.World.Version()
	profiling.SetWorldVersion(v)
	if s.submitted && v == s.lastSubmitted {
		return
	}
	s.pool.Submit(v, s.World.Snapshot())
	s.lastSubmitted = v
	s.submitted = true
}

func (s *Session) pollMesh() {
	defer profiling.Track("session.pollMesh")()
	g, ok := s.pool.Poll()
	if !ok {
		return
	}
	s.mesh = g
	s.Render.Publish(render.Event{Kind: render.EventMeshReady, Version: g.Version})
}

// MeshPending reports whether the applied mesh lags the last submitted world version.
func (s *Session) MeshPending() bool {
	return s.mesh == nil || s.mesh.Version != s.pool.Latest()
}

// Mesh returns the newest applied geometry, or nil before the first build lands.
func (s *Session) Mesh() *meshing.Geometry {
	return s.mesh
}

// Close stops the mesh workers.
func (s *Session) Close() {
	s.pool.Shutdown()
	log.Printf("session closed at world version %d", s.World.Version())
}
