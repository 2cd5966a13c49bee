package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/entity"
	"github.com/milk9111/reaper/ecs/system"
	"github.com/milk9111/reaper/levels"
	"github.com/milk9111/reaper/prefabs"
	"github.com/milk9111/reaper/upgrades"
)

type GameOptions struct {
	Level    string
	Debug    bool
	Upgrades *upgrades.Store
}

type Game struct {
	frames int
	paused bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	pauseUI   *ebitenui.UI
	watcher   *prefabs.Watcher
	upgrades  *upgrades.Store
}

func NewGame(opts GameOptions) (*Game, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld(spec.Physics.Gravity))

	spawn, err := entity.LoadLevelToWorld(world, lvl)
	if err != nil {
		return nil, err
	}
	if _, err := entity.BuildPlayer(world, spec, opts.Upgrades, spawn); err != nil {
		return nil, err
	}
	if _, err := entity.NewCamera(world, spec.Camera, spawn); err != nil {
		return nil, err
	}

	g := &Game{
		world:    world,
		render:   system.NewRenderSystem(opts.Debug),
		upgrades: opts.Upgrades,
	}

	const dt = 1.0 / common.TPS
	effects := system.NewEffectSystem(dt, spec.Effects.LandDust)
	systems := []ecs.System{
		system.NewInputSystem(),
		system.NewActorSystem(dt, opts.Debug),
		system.NewPhysicsSystem(dt),
		effects,
		system.NewCooldownSystem(),
		system.NewTTLSystem(),
		system.NewCameraSystem(),
	}

	if dirs := prefabs.DiskDirs(); len(dirs) > 0 {
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = watcher
			systems = append([]ecs.System{system.NewHotReloadSystem(watcher.Events, watcher.Errors, effects)}, systems...)
		}
	}

	g.scheduler = ecs.NewScheduler(systems...)
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.render.SetDebug(!g.render.Debug())
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 10, common.BaseHeight-20)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// Restart queues a reset of every actor to its spawn for the next tick.
func (g *Game) Restart() {
	g.world.Events().Push(ecs.Event{Type: ecs.EventRestart})
	g.paused = false
}

func (g *Game) ResetUpgrades() {
	if err := g.upgrades.Reset(); err != nil {
		log.Printf("upgrades: %v", err)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
