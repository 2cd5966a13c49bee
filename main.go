package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/reaper/common"
	"github.com/milk9111/reaper/levels"
	"github.com/milk9111/reaper/upgrades"
)

const appName = "reaper"

func main() {
	debug := flag.Bool("debug", false, "draw sensors and dash probes, log every dash")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", levels.DefaultLevel, "level file, on disk or embedded in levels/")
	resetUpgrades := flag.Bool("reset-upgrades", false, "clear saved upgrades before starting")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	store, err := upgrades.Open(appName)
	if err != nil {
		log.Printf("upgrades: %v; upgrades will not be saved", err)
		store = upgrades.NewStore(nil)
	}
	if *resetUpgrades {
		if err := store.Reset(); err != nil {
			log.Printf("upgrades: %v", err)
		}
	} else if err := store.Load(); err != nil {
		log.Printf("upgrades: %v; using defaults", err)
	}

	game, err := NewGame(GameOptions{
		Level:    *levelName,
		Debug:    *debug,
		Upgrades: store,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(appName)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
