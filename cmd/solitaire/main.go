package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"klondike/internal/config"
	"klondike/internal/events"
	"klondike/internal/game/engine"
	"klondike/internal/logger"
	"klondike/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	mode := flag.String("mode", "", "initial deal mode: random or solvable")
	seed := flag.Int64("seed", 0, "deal seed, 0 picks a time-based one")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Close()
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			panic(r)
		}
	}()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *mode != "" {
		cfg.Game.DealMode = *mode
	}

	bus := events.NewBus()
	_ = bus.SubscribeCardScored(func(ev events.CardScored) {
		logger.LogInfo("game %s: %s scored %d points", ev.GameID, ev.CardID, ev.Points)
	})
	_ = bus.SubscribeGameWon(func(ev events.GameWon) {
		logger.LogInfo("game %s: won in %d moves after %s", ev.GameID, ev.Moves, ev.Duration.Round(time.Second))
	})

	eng := engine.New(cfg, bus, *seed)

	p := tea.NewProgram(ui.NewModel(eng), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("error running client: %v (debug log: %s)", err, logger.GetLogPath())
	}
}
