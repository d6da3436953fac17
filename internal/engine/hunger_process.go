package engine

import (
	"context"
	"time"
)

// runHungerDecay periodically drains the player's hunger. The loop
// guard deliberately watches health rather than hunger, matching the
// long-standing behavior of the simulation.
func (e *Engine) runHungerDecay(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.HungerTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Hunger decay process stopped.")
			return
		case <-ticker.C:
			if e.world.IsGameOver() {
				e.logger.Info("Hunger decay process stopped: game over.")
				return
			}
			if e.world.PlayerHealth() <= 0 {
				e.logger.Info("Hunger decay process stopped: player health exhausted.")
				return
			}
			e.world.DecayHunger(e.cfg.HungerDecay)
		}
	}
}
