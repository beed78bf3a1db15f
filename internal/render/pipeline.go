package render

import (
	"mazecaster/internal/threading/monitoring"
	"mazecaster/internal/world"
)

// Pipeline owns the per-frame buffers and runs the render passes in order:
// reset depth, walls, sprites, minimap.
type Pipeline struct {
	Maze     world.Maze
	Walls    *WallRenderer
	Sprites  *SpriteRenderer
	Minimap  *Minimap // nil disables the overlay
	Overhead *Overhead

	Background uint32                         // clear colour of the overhead view
	Monitor    *monitoring.PerformanceMonitor // optional stage timings

	fb    *Framebuffer
	depth DepthBuffer
}

// NewPipeline allocates the framebuffer and depth buffer for one screen size.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{
		fb:    NewFramebuffer(width, height),
		depth: NewDepthBuffer(width, height),
	}
}

// Framebuffer returns the frame's colour output.
func (p *Pipeline) Framebuffer() *Framebuffer { return p.fb }

// Depth returns the frame's depth buffer.
func (p *Pipeline) Depth() DepthBuffer { return p.depth }

// RenderFrame draws the first-person view for player with the given sprites.
func (p *Pipeline) RenderFrame(player world.Player, sprites []world.Sprite) {
	p.depth.Reset()

	if p.Walls != nil {
		timer := p.startRaycast()
		p.Walls.Render(p.fb, p.depth, player)
		timer.end()
	}

	if p.Sprites != nil {
		timer := p.startSprites()
		p.Sprites.Render(p.fb, p.depth, player, sprites)
		timer.end()
	}

	if p.Minimap != nil {
		timer := p.startMinimap()
		p.Minimap.Draw(p.fb, p.Maze, player)
		timer.end()
	}
}

// RenderOverhead draws the top-down debug view.
func (p *Pipeline) RenderOverhead(player world.Player) {
	p.fb.Clear(p.Background)
	if p.Overhead != nil {
		timer := p.startRaycast()
		p.Overhead.Draw(p.fb, p.Maze, player)
		timer.end()
	}
}

// stageTimer tolerates a nil monitor.
type stageTimer struct {
	t *monitoring.StageTimer
}

func (s stageTimer) end() {
	if s.t != nil {
		s.t.End()
	}
}

func (p *Pipeline) startRaycast() stageTimer {
	if p.Monitor == nil {
		return stageTimer{}
	}
	return stageTimer{p.Monitor.StartRaycast()}
}

func (p *Pipeline) startSprites() stageTimer {
	if p.Monitor == nil {
		return stageTimer{}
	}
	return stageTimer{p.Monitor.StartSprites()}
}

func (p *Pipeline) startMinimap() stageTimer {
	if p.Monitor == nil {
		return stageTimer{}
	}
	return stageTimer{p.Monitor.StartMinimap()}
}
