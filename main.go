package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	noTween := flag.Bool("notween", false, "run without the tween engine; transitions snap instead of animating")
	watch := flag.Bool("watch", false, "reload prefabs/*.yaml and prefabs/scripts/*.tengo when they change on disk")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("pokeball")

	game, err := NewGame(GameOptions{
		Debug:   *debug,
		NoTween: *noTween,
		Watch:   *watch,
		Logger:  logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
