package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/wardenworks/prisonsim/internal/domain/world"
	"github.com/wardenworks/prisonsim/internal/feed"
)

// runEvents periodically rolls for random world incidents. A successful
// roll overwrites the shared event slot; there is no queue and no
// expiry timer, the newest incident simply replaces the previous one.
func (e *Engine) runEvents(ctx context.Context, rng *rand.Rand) {
	ticker := time.NewTicker(e.cfg.EventTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Event process stopped.")
			return
		case <-ticker.C:
			if e.world.IsGameOver() {
				e.logger.Info("Event process stopped: game over.")
				return
			}
			if rng.Intn(100) >= e.cfg.EventChance {
				continue
			}
			e.rollEvent(rng)
		}
	}
}

// rollEvent fabricates one incident and publishes it.
func (e *Engine) rollEvent(rng *rand.Rand) {
	category := world.EventCategories[rng.Intn(len(world.EventCategories))]
	ev := world.GameEvent{
		Category:    category,
		Description: world.EventDescriptions[category],
		Severity:    rng.Intn(10) + 1,
		Duration:    rng.Intn(60) + 30,
	}
	e.world.PublishEvent(ev)

	e.feed.Record(feed.CategoryEvent, ev.Description, ev.Severity, e.world.ClockNow().Day)
	if e.notifier != nil {
		e.notifier.Notify(fmt.Sprintf(
			"\n=== PRISON EVENT ===\n%s\nSeverity: %d/10\nDuration: %d seconds\n===================",
			ev.Description, ev.Severity, ev.Duration))
	}
}
