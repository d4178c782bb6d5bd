package game

import "github.com/charmbracelet/log"

// EliminationNotifier is told about every entity removed from the arena.
// eater is nil when the entity left for another reason.
type EliminationNotifier interface {
	EntityEliminated(e *Entity, eater *Entity, rank int)
}

// PlayerManager applies size changes and eliminations and keeps the ranking
// table in step with them.
type PlayerManager struct {
	ranking  *RankingTable
	notifier EliminationNotifier
	tieRule  TieRule
	logger   *log.Logger
}

func NewPlayerManager(ranking *RankingTable, tieRule TieRule, logger *log.Logger) *PlayerManager {
	if logger == nil {
		logger = log.Default()
	}
	if ranking == nil {
		ranking = NewRankingTable(nil)
	}
	return &PlayerManager{ranking: ranking, tieRule: tieRule, logger: logger}
}

func (pm *PlayerManager) SetNotifier(notifier EliminationNotifier) {
	pm.notifier = notifier
}

func (pm *PlayerManager) Join(e *Entity) {
	pm.ranking.Add(e)
	pm.logger.Info("Entity joined", "entity", e.ID, "name", e.Name, "kind", e.Kind, "size", e.Size)
}

// Grow adds amount to e and refreshes its ranking entry.
func (pm *PlayerManager) Grow(e *Entity, amount int) bool {
	if !e.Alive() || !e.Grow(amount) {
		return false
	}
	pm.ranking.UpdateOne(e.ID, e.Size)
	return true
}

// Consume settles a contact between a (checked first) and b. The loser's
// rank is captured before it leaves the table.
func (pm *PlayerManager) Consume(a, b *Entity) (winner, loser *Entity, ok bool) {
	winner, loser, ok = ResolveConsumption(a, b, pm.tieRule)
	if !ok {
		return nil, nil, false
	}

	rank := pm.ranking.RankOf(loser.ID)
	gained := Absorb(winner, loser)
	pm.ranking.UpdateOne(winner.ID, winner.Size)
	pm.eliminate(loser, winner, rank)

	pm.logger.Info("Entity consumed",
		"winner", winner.ID,
		"loser", loser.ID,
		"gained", gained,
		"size", winner.Size,
	)
	return winner, loser, true
}

func (pm *PlayerManager) eliminate(e *Entity, eater *Entity, rank int) {
	e.alive = false
	pm.ranking.Remove(e.ID)
	if pm.notifier != nil {
		pm.notifier.EntityEliminated(e, eater, rank)
	}
}
