package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/wardenworks/prisonsim/internal/domain/world"
	"github.com/wardenworks/prisonsim/internal/feed"
)

// runClock advances the simulated time by one minute per real-time
// tick. It stops at the terminal day, on game over, or on cancellation.
func (e *Engine) runClock(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.ClockTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Clock process stopped.")
			return
		case <-ticker.C:
			if e.world.IsGameOver() {
				e.logger.Info("Clock process stopped: game over.")
				return
			}
			day, rolled := e.world.AdvanceClock()
			if rolled {
				e.announce(feed.CategorySystem, fmt.Sprintf("Day %d begins.", day), 0)
			}
			if day >= world.MaxDays {
				e.logger.Info("Clock process stopped: terminal day reached.")
				return
			}
		}
	}
}
