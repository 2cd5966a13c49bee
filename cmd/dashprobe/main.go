// Command dashprobe resolves dashes headlessly against a level and prints how
// each one was resolved. It is used to tune the dash correction script.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/controller"
	"github.com/milk9111/reaper/ecs"
	"github.com/milk9111/reaper/ecs/component"
	"github.com/milk9111/reaper/ecs/entity"
	"github.com/milk9111/reaper/ecs/system"
	"github.com/milk9111/reaper/levels"
	"github.com/milk9111/reaper/prefabs"
)

var compass = []cp.Vector{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

func main() {
	levelName := flag.String("level", levels.DefaultLevel, "level file, on disk or embedded in levels/")
	tileX := flag.Int("tx", -1, "start tile column (default: level spawn)")
	tileY := flag.Int("ty", -1, "start tile row, 0 at the top (default: level spawn)")
	settle := flag.Int("settle", 60, "physics ticks to run before dashing")
	flag.Parse()

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "dir\tstart\tobstructed\tray\tfail\tapplied")
	for _, dir := range compass {
		res, err := probe(spec, lvl, *tileX, *tileY, *settle, dir)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(tw, "(%+.0f,%+.0f)\t(%.2f, %.2f)\t%v\t%s\t%.3f\t(%.3f, %.3f)\n",
			dir.X, dir.Y, res.Start.X, res.Start.Y, res.Obstructed, res.Ray, res.FailDistance, res.Applied.X, res.Applied.Y)
	}
	if err := tw.Flush(); err != nil {
		log.Fatal(err)
	}
}

// probe builds a fresh world so every direction starts from the same state.
func probe(spec *prefabs.PlayerSpec, lvl *levels.Level, tx, ty, settle int, dir cp.Vector) (controller.DisplacementResult, error) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(spec.Physics.Gravity))

	spawn, err := entity.LoadLevelToWorld(w, lvl)
	if err != nil {
		return controller.DisplacementResult{}, err
	}
	if tx >= 0 && ty >= 0 {
		spawn = lvl.TileCenter(tx, ty)
	}
	player, err := entity.BuildPlayer(w, spec, nil, spawn)
	if err != nil {
		return controller.DisplacementResult{}, err
	}

	const dt = 1.0 / common.TPS
	sched := ecs.NewScheduler(system.NewActorSystem(dt, false), system.NewPhysicsSystem(dt))
	for i := 0; i < settle; i++ {
		sched.Update(w)
	}

	actor, ok := ecs.Get(w, player, component.ActorComponent.Kind())
	if !ok {
		return controller.DisplacementResult{}, fmt.Errorf("dashprobe: player has no actor")
	}
	return actor.Controller.Dash(dir), nil
}
