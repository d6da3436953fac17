package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/wardenworks/prisonsim/internal/feed"
)

// runNPCActivity periodically walks the NPC roster on a randomized
// interval. Each idle NPC may relocate to a random unlocked room and,
// with a small chance, start an activity. The busy flag is cleared by a
// per-NPC timer, so one NPC's activity never stalls the rest of the
// round.
func (e *Engine) runNPCActivity(ctx context.Context, rng *rand.Rand) {
	for {
		interval := time.Duration(e.cfg.NPCTickMinSeconds+rng.Intn(e.cfg.NPCTickJitter)) * time.Second
		select {
		case <-ctx.Done():
			e.logger.Info("NPC activity process stopped.")
			return
		case <-time.After(interval):
		}
		if e.world.IsGameOver() {
			e.logger.Info("NPC activity process stopped: game over.")
			return
		}
		e.npcRound(rng)
	}
}

// npcRound runs one pass over every NPC.
func (e *Engine) npcRound(rng *rand.Rand) {
	count := e.world.NPCCount()
	for i := 0; i < count; i++ {
		if !e.world.TryRelocateNPC(i) {
			continue
		}
		desc, started := e.world.MaybeStartNPCActivity(i)
		if !started {
			continue
		}
		e.announce(feed.CategoryActivity, desc, 0)

		idx := i
		duration := time.Duration(e.cfg.ActivityMinMillis+rng.Intn(e.cfg.ActivityJitter)) * time.Millisecond
		e.trackTimer(idx, time.AfterFunc(duration, func() {
			e.world.FinishNPCActivity(idx)
			e.untrackTimer(idx)
		}))
	}
}
