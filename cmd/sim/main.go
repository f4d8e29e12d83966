// Command sim runs the game headless under the autopilot and logs what happened.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/loop"
)

func main() {
	ticks := flag.Int("ticks", 60*config.ServerTickRate, "ticks to simulate")
	seed := flag.Uint64("seed", 0, "RNG seed (overrides GAME_SEED)")
	flag.Parse()

	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	logger, err := config.NewLogger(os.Stderr, settings.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := simulate(settings, *ticks, logger)
	logger.Info("simulation finished",
		"ticks", *ticks,
		"seed", settings.Seed,
		"wave", s.wave,
		"best_wave", s.bestWave,
		"score", s.score,
		"deaths", s.deaths,
	)
	for name, n := range s.outcomes {
		logger.Debug("outcome", "type", name, "count", n)
	}
}

type summary struct {
	wave, bestWave int
	score          uint64
	deaths         int
	outcomes       map[string]int
}

func simulate(settings config.Settings, ticks int, logger *log.Logger) summary {
	game := loop.NewGame(settings, logger)
	dt := config.ServerTickTime.Seconds()
	s := summary{outcomes: make(map[string]int)}

	for i := 0; i < ticks; i++ {
		for _, e := range game.Update(game.Autopilot(), dt) {
			s.outcomes[e.Type().String()]++
			if _, ok := e.(event.PlayerDestroyed); ok {
				s.deaths++
			}
		}
		s.bestWave = max(s.bestWave, game.Wave())
	}
	s.wave = game.Wave()
	s.score = game.Score()
	return s
}
