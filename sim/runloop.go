package sim

import (
	"frontiersim/config"
	"frontiersim/stableid"
)

// AITurnFunc is invoked once for every non-player entity the scheduler
// selects to act; it must itself consume that entity's energy (spec.md
// §4.3 step 3, "the AI system takes that entity's turn and must consume
// energy").
type AITurnFunc func(actingID stableid.Id)

// RunUntilPlayerTurn repeats scheduler steps until either the player
// becomes the current acting entity, no entity can act at all, or the
// iteration cap is reached — a runaway-simulation safeguard, not a
// semantic limit (spec.md §4.3 step 3, §5 "suspension points"). hitCap
// reports whether the cap was the reason it stopped.
func (s *Scheduler) RunUntilPlayerTurn(playerID stableid.Id, aiTurn AITurnFunc) (current stableid.Id, hitCap bool) {
	for i := 0; i < config.SchedulerIterationCap; i++ {
		id, advanced, ok := s.Step()
		if !ok {
			return stableid.NoId, false
		}
		if advanced {
			continue
		}
		if id == playerID {
			return id, false
		}
		aiTurn(id)
	}
	return stableid.NoId, true
}
