package game

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrEntityNotFound = errors.New("entity not found")

type EndReason int

const (
	StillPlaying EndReason = iota
	ReasonEaten
	ReasonTimeUp
)

func (r EndReason) String() string {
	switch r {
	case ReasonEaten:
		return "You got eaten!"
	case ReasonTimeUp:
		return "Time's up!"
	}
	return "playing"
}

// RoundResult is the controlled entity's final standing.
type RoundResult struct {
	Reason   EndReason
	Survived float64
	Rank     int
	Size     int
	EatenBy  string
}

// Intent is one input sample for the controlled entity.
type Intent struct {
	X, Y  float64
	Boost bool
}

type EntityView struct {
	ID        int
	Name      string
	Kind      Kind
	Position  mgl64.Vec2
	Extents   mgl64.Vec2
	Direction Direction
	Size      int
	Boosting  bool
}

// Snapshot is a copy of everything a renderer needs. It shares no memory with
// the running simulation.
type Snapshot struct {
	ArenaMin  mgl64.Vec2
	ArenaMax  mgl64.Vec2
	Obstacles []Obstacle
	Entities  []EntityView
	Food      []Food
	PlayerID  int
	Remaining float64
	Over      bool
	Result    RoundResult
}

type GameTickMsg struct {
	Snapshot Snapshot
}

type RoundOverMsg struct {
	Result RoundResult
}

type wallContact struct {
	entity   int
	obstacle string
}

// GameManager owns one round: the arena, every entity, the food and the round
// clock. All mutation happens on the goroutine calling Tick or Run.
type GameManager struct {
	IntentChannel chan Intent
	UpdateChannel chan tea.Msg

	cfg      Config
	logger   *log.Logger
	rng      *rand.Rand
	arena    *Arena
	query    *SpatialQuery
	selector *DirectionSelector
	movement *MovementController
	ranking  *RankingTable
	players  *PlayerManager
	bots     *BotManager
	food     *FoodSpawner

	entities []*Entity
	player   *Entity
	intent   *IntentSteering
	gauge    BoostGauge
	notifier EliminationNotifier
	contacts map[wallContact]bool
	nextID   int

	elapsed float64
	over    bool
	result  RoundResult
}

func NewGameManager(cfg Config, logger *log.Logger) (*GameManager, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg = cfg.Sanitize(logger)
	arena := NewWalledArena(cfg.ArenaHalfWidth, cfg.ArenaHalfHeight, cfg.WallThickness)
	return NewGameManagerWithArena(cfg, arena, logger)
}

// NewGameManagerWithArena wires the simulation around a custom obstacle
// layout. Nothing is spawned until StartRound or AddEntity.
func NewGameManagerWithArena(cfg Config, arena *Arena, logger *log.Logger) (*GameManager, error) {
	if logger == nil {
		logger = log.Default()
	}
	if arena == nil {
		logger.Warn("Arena not set - using an empty one")
		arena = NewArena(cfg.ArenaHalfWidth, cfg.ArenaHalfHeight)
	}
	if fit := arena.Passage() * passageFill / 2; fit > 0 && (cfg.MaxExtent <= 0 || cfg.MaxExtent > fit) {
		logger.Debug("Footprint cap lowered to fit the arena", "maxExtent", fit, "passage", arena.Passage())
		cfg.MaxExtent = fit
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	selector := NewDirectionSelector(rng, cfg.MinChangeInterval, cfg.MaxChangeInterval)
	query := NewSpatialQuery(arena, logger)
	resolver := NewOverlapResolver(query, cfg.SafetyMargin, cfg.FallbackStep, logger)
	ranking := NewRankingTable(nil)

	bots, err := NewBotManager(cfg, rng, selector, logger)
	if err != nil {
		return nil, err
	}

	gm := &GameManager{
		IntentChannel: make(chan Intent, 10),
		UpdateChannel: make(chan tea.Msg, 1),
		cfg:           cfg,
		logger:        logger,
		rng:           rng,
		arena:         arena,
		query:         query,
		selector:      selector,
		movement:      NewMovementController(query, resolver, selector, cfg.WallCheckDistance, logger),
		ranking:       ranking,
		players:       NewPlayerManager(ranking, cfg.TieRule, logger),
		bots:          bots,
		food:          NewFoodSpawner(cfg.FoodInterval, cfg.MaxFood),
		intent:        NewIntentSteering(),
		contacts:      make(map[wallContact]bool),
	}
	gm.players.SetNotifier(gm)
	return gm, nil
}

func (gm *GameManager) SetLeaderboardDisplay(display LeaderboardDisplay) {
	gm.ranking.SetDisplay(display)
}

func (gm *GameManager) SetBoostGauge(gauge BoostGauge) {
	gm.gauge = gauge
	if gm.player != nil && gm.player.Boost != nil {
		gm.player.Boost.SetGauge(gauge)
	}
}

func (gm *GameManager) SetEliminationNotifier(notifier EliminationNotifier) {
	gm.notifier = notifier
}

func (gm *GameManager) SetProbeHook(hook ProbeHook) {
	gm.movement.SetProbeHook(hook)
}

// StartRound spawns the bots and then the controlled entity. Every footprint
// is kept SpawnExclusion clear of the ones placed before it.
func (gm *GameManager) StartRound() {
	botExtent := min(gm.cfg.BaseExtent*float64(gm.cfg.MaxBotSize), gm.cfg.MaxExtent)
	for i := 0; i < gm.cfg.BotCount; i++ {
		pos := gm.spawnPoint(botExtent, gm.Entities(), gm.cfg.SpawnExclusion)
		gm.AddEntity(gm.bots.NewBot(gm.allocateID(), pos))
	}

	pos := gm.spawnPoint(gm.cfg.BaseExtent, gm.Entities(), gm.cfg.SpawnExclusion)
	player := NewEntity(gm.allocateID(), gm.cfg.PlayerName, Controlled, pos, gm.selector.PickRandomCardinal(), 1, gm.cfg)
	gm.AddEntity(player)

	gm.logger.Info("Round started",
		"bots", gm.cfg.BotCount,
		"obstacles", gm.query.Len(),
		"seconds", gm.cfg.RoundSeconds,
	)
}

// AddEntity puts e into the arena. The first controlled entity becomes the
// one driven by intents.
func (gm *GameManager) AddEntity(e *Entity) {
	if e.ID >= gm.nextID {
		gm.nextID = e.ID + 1
	}
	if gm.cfg.MaxExtent > 0 && (e.MaxExtent <= 0 || e.MaxExtent > gm.cfg.MaxExtent) {
		e.MaxExtent = gm.cfg.MaxExtent
	}
	if e.Kind == Controlled && gm.player == nil {
		gm.player = e
		e.Steering = gm.intent
		if e.Boost != nil {
			e.Boost.SetGauge(gm.gauge)
		}
	}

	i := len(gm.entities)
	for i > 0 && gm.entities[i-1].ID > e.ID {
		i--
	}
	gm.entities = append(gm.entities, nil)
	copy(gm.entities[i+1:], gm.entities[i:])
	gm.entities[i] = e

	gm.players.Join(e)
}

// Tick advances the round by dt seconds. Each living entity, in id order,
// moves, then updates its boost, then grows. Contacts, food and the round
// clock follow.
func (gm *GameManager) Tick(dt float64) {
	if gm.over || !(dt > 0) {
		return
	}

	for _, e := range gm.entities {
		if !e.Alive() {
			continue
		}
		e.lastMove = gm.movement.Step(e, dt)
		if e.Boost != nil {
			e.Speed = e.Boost.Tick(dt, e.Speed)
		}
		if steps := e.Growth.Tick(dt); steps > 0 {
			gm.players.Grow(e, steps)
		}
	}

	gm.detectWallContacts()
	gm.detectEntityContacts()
	gm.collectFood()
	if f, ok := gm.food.Tick(dt, gm.foodPoint); ok {
		gm.logger.Debug("Food spawned", "food", f.ID, "x", f.Position.X(), "y", f.Position.Y())
	}
	gm.prune()

	gm.elapsed += dt
	if !gm.over && gm.elapsed >= gm.cfg.RoundSeconds {
		gm.finish(ReasonTimeUp, gm.ranking.RankOf(gm.playerID()), "")
	}
}

// SetIntent queues a direction intent for the controlled entity.
func (gm *GameManager) SetIntent(x, y float64) {
	gm.intent.SetIntent(x, y)
}

func (gm *GameManager) RequestBoost() bool {
	if gm.player == nil || gm.player.Boost == nil || !gm.player.Alive() {
		return false
	}
	return gm.player.Boost.Request()
}

// EntityContact reports two footprints touching. a is the first-checked
// entity for tie rules.
func (gm *GameManager) EntityContact(aID, bID int) (winner, loser *Entity, err error) {
	a, b := gm.Entity(aID), gm.Entity(bID)
	if a == nil || b == nil {
		return nil, nil, ErrEntityNotFound
	}
	winner, loser, ok := gm.players.Consume(a, b)
	if !ok {
		return nil, nil, nil
	}
	if loser.Kind == Autonomous {
		gm.bots.Release(loser)
	}
	return winner, loser, nil
}

// WallContact reports an entity touching an obstacle.
func (gm *GameManager) WallContact(entityID int, obstacleID string) (Resolution, error) {
	e := gm.Entity(entityID)
	if e == nil {
		return Unresolved, ErrEntityNotFound
	}
	return gm.movement.WallContact(e, obstacleID), nil
}

// EntityEliminated ends the round when the controlled entity is eaten.
func (gm *GameManager) EntityEliminated(e *Entity, eater *Entity, rank int) {
	if gm.notifier != nil {
		gm.notifier.EntityEliminated(e, eater, rank)
	}
	if e != gm.player || gm.over {
		return
	}
	eatenBy := ""
	if eater != nil {
		eatenBy = eater.Name
	}
	gm.finish(ReasonEaten, rank, eatenBy)
}

// Run drives Tick from a ticker and applies intents between ticks, all on
// the calling goroutine. It returns when ctx is done or the round ends.
func (gm *GameManager) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = GameTickDuration
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	gm.logger.Info("Game loop started", "tick", tick)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			gm.logger.Info("Game loop stopped")
			return
		case in := <-gm.IntentChannel:
			gm.applyIntent(in)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			gm.Tick(dt)
			if !gm.send(ctx, GameTickMsg{Snapshot: gm.Snapshot()}) {
				return
			}
			if gm.over {
				gm.send(ctx, RoundOverMsg{Result: gm.result})
				gm.logger.Info("Game loop finished", "reason", gm.result.Reason)
				return
			}
		}
	}
}

func (gm *GameManager) applyIntent(in Intent) {
	if in.X != 0 || in.Y != 0 {
		gm.SetIntent(in.X, in.Y)
	}
	if in.Boost {
		gm.RequestBoost()
	}
}

func (gm *GameManager) send(ctx context.Context, msg tea.Msg) bool {
	select {
	case gm.UpdateChannel <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

func (gm *GameManager) Close() {
	gm.bots.Close()
}

func (gm *GameManager) Entity(id int) *Entity {
	for _, e := range gm.entities {
		if e.ID == id && e.Alive() {
			return e
		}
	}
	return nil
}

// Entities returns the living entities in id order.
func (gm *GameManager) Entities() []*Entity {
	out := make([]*Entity, 0, len(gm.entities))
	for _, e := range gm.entities {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

func (gm *GameManager) Player() *Entity {
	return gm.player
}

func (gm *GameManager) Ranking() *RankingTable {
	return gm.ranking
}

func (gm *GameManager) Query() *SpatialQuery {
	return gm.query
}

func (gm *GameManager) Food() []Food {
	return gm.food.Items()
}

func (gm *GameManager) Elapsed() float64 {
	return gm.elapsed
}

func (gm *GameManager) Remaining() float64 {
	return max(gm.cfg.RoundSeconds-gm.elapsed, 0)
}

func (gm *GameManager) Over() bool {
	return gm.over
}

func (gm *GameManager) Result() RoundResult {
	return gm.result
}

func (gm *GameManager) Snapshot() Snapshot {
	s := Snapshot{
		ArenaMin:  gm.arena.Min,
		ArenaMax:  gm.arena.Max,
		Obstacles: gm.arena.Obstacles(),
		Food:      gm.food.Items(),
		PlayerID:  gm.playerID(),
		Remaining: gm.Remaining(),
		Over:      gm.over,
		Result:    gm.result,
	}
	for _, e := range gm.Entities() {
		s.Entities = append(s.Entities, EntityView{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind,
			Position:  e.Position,
			Extents:   e.Extents(),
			Direction: e.Direction,
			Size:      e.Size,
			Boosting:  e.Boost != nil && e.Boost.Active(),
		})
	}
	return s
}

func (gm *GameManager) playerID() int {
	if gm.player == nil {
		return -1
	}
	return gm.player.ID
}

func (gm *GameManager) finish(reason EndReason, rank int, eatenBy string) {
	gm.over = true
	gm.result = RoundResult{
		Reason:   reason,
		Survived: gm.elapsed,
		Rank:     rank,
		EatenBy:  eatenBy,
	}
	if gm.player != nil {
		gm.result.Size = gm.player.Size
	}
	gm.logger.Info("Round over",
		"reason", reason,
		"survived", gm.result.Survived,
		"rank", gm.result.Rank,
		"size", gm.result.Size,
	)
}

// detectWallContacts reports only contacts that began this tick.
func (gm *GameManager) detectWallContacts() {
	current := make(map[wallContact]bool, len(gm.contacts))
	for _, e := range gm.entities {
		if !e.Alive() {
			continue
		}
		o, hit := gm.query.OverlappingObstacle(e.Position, e.Radius())
		if !hit {
			continue
		}
		key := wallContact{entity: e.ID, obstacle: o.ID}
		current[key] = true
		if !gm.contacts[key] {
			gm.movement.WallContact(e, o.ID)
		}
	}
	gm.contacts = current
}

func (gm *GameManager) detectEntityContacts() {
	for i, a := range gm.entities {
		for _, b := range gm.entities[i+1:] {
			if !a.Alive() {
				break
			}
			if !b.Alive() {
				continue
			}
			aExt, bExt := a.Extents(), b.Extents()
			if !boxesOverlap(a.Position.Sub(aExt), a.Position.Add(aExt), b.Position.Sub(bExt), b.Position.Add(bExt)) {
				continue
			}
			if _, _, err := gm.EntityContact(a.ID, b.ID); err != nil {
				gm.logger.Debug("Contact skipped", "a", a.ID, "b", b.ID, "error", err)
			}
		}
	}
}

func (gm *GameManager) collectFood() {
	for _, e := range gm.entities {
		if !e.Alive() {
			continue
		}
		for _, f := range gm.food.Consume(e) {
			gm.players.Grow(e, f.Value)
		}
	}
}

func (gm *GameManager) prune() {
	kept := gm.entities[:0]
	for _, e := range gm.entities {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(gm.entities); i++ {
		gm.entities[i] = nil
	}
	gm.entities = kept
}

func (gm *GameManager) allocateID() int {
	if gm.nextID == 0 {
		gm.nextID = 1
	}
	id := gm.nextID
	gm.nextID++
	return id
}

// spawnPoint draws random free positions for a footprint of half size
// extent. The gap between that footprint and every footprint in avoid is at
// least exclusion on one axis. After maxSpawnAttempts it falls back to the
// arena center.
func (gm *GameManager) spawnPoint(extent float64, avoid []*Entity, exclusion float64) mgl64.Vec2 {
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		p := gm.randomPoint(extent)
		if gm.query.WouldOverlap(p, extent) {
			continue
		}
		tooClose := false
		for _, other := range avoid {
			if footprintGap(p, extent, other) < exclusion {
				tooClose = true
				break
			}
		}
		if !tooClose {
			return p
		}
	}
	gm.logger.Warn("Could not find a spawn location, using arena center", "attempts", maxSpawnAttempts)
	return gm.arena.Center()
}

// footprintGap is the distance between a square footprint at p and other's
// footprint along the axis where they are furthest apart. Negative means the
// boxes overlap.
func footprintGap(p mgl64.Vec2, extent float64, other *Entity) float64 {
	d := p.Sub(other.Position)
	reach := extent + other.Extents().X()
	return max(math.Abs(d.X()), math.Abs(d.Y())) - reach
}

func (gm *GameManager) foodPoint() (mgl64.Vec2, bool) {
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		p := gm.randomPoint(foodRadius)
		if !gm.query.WouldOverlap(p, foodRadius) {
			return p, true
		}
	}
	return mgl64.Vec2{}, false
}

func (gm *GameManager) randomPoint(margin float64) mgl64.Vec2 {
	lo := gm.arena.Min.Add(mgl64.Vec2{margin, margin})
	hi := gm.arena.Max.Sub(mgl64.Vec2{margin, margin})
	return mgl64.Vec2{
		lo.X() + gm.rng.Float64()*max(hi.X()-lo.X(), 0),
		lo.Y() + gm.rng.Float64()*max(hi.Y()-lo.Y(), 0),
	}
}
