package game

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/go-gl/mathgl/mgl64"
)

// BotManager creates autonomous entities and owns their steering resources.
type BotManager struct {
	cfg      Config
	rng      *rand.Rand
	selector *DirectionSelector
	script   string
	scripted []*LuaSteering
	logger   *log.Logger
}

// NewBotManager loads the optional steering script once so a broken script is
// reported before any bot exists.
func NewBotManager(cfg Config, rng *rand.Rand, selector *DirectionSelector, logger *log.Logger) (*BotManager, error) {
	if logger == nil {
		logger = log.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if selector == nil {
		selector = NewDirectionSelector(rng, cfg.MinChangeInterval, cfg.MaxChangeInterval)
	}

	bm := &BotManager{
		cfg:      cfg,
		rng:      rng,
		selector: selector,
		logger:   logger,
	}

	if cfg.BotScript != "" {
		raw, err := os.ReadFile(cfg.BotScript)
		if err != nil {
			return nil, fmt.Errorf("failed to read bot script %s: %w", cfg.BotScript, err)
		}
		probe, err := NewLuaSteering(string(raw), selector, cfg.BotScriptCallDeadline, logger)
		if err != nil {
			return nil, fmt.Errorf("bot script %s: %w", cfg.BotScript, err)
		}
		probe.Close()
		bm.script = string(raw)
		logger.Info("Bots use scripted steering", "script", cfg.BotScript)
	}

	return bm, nil
}

// NewBot builds an autonomous entity with a random name, size and heading.
func (bm *BotManager) NewBot(id int, pos mgl64.Vec2) *Entity {
	size := bm.cfg.MinBotSize
	if spread := bm.cfg.MaxBotSize - bm.cfg.MinBotSize; spread > 0 {
		size += bm.rng.Intn(spread + 1)
	}

	bot := NewEntity(id, petname.Generate(2, "-"), Autonomous, pos, bm.selector.PickRandomCardinal(), size, bm.cfg)
	bot.Steering = bm.steering()
	return bot
}

func (bm *BotManager) steering() DirectionSource {
	if bm.script == "" {
		return NewWanderSteering(bm.selector)
	}
	s, err := NewLuaSteering(bm.script, bm.selector, bm.cfg.BotScriptCallDeadline, bm.logger)
	if err != nil {
		bm.logger.Warn("Bot script failed to load, wandering instead", "error", err)
		return NewWanderSteering(bm.selector)
	}
	bm.scripted = append(bm.scripted, s)
	return s
}

// Release frees the script state held by an eliminated bot.
func (bm *BotManager) Release(e *Entity) {
	s, ok := e.Steering.(*LuaSteering)
	if !ok {
		return
	}
	for i, held := range bm.scripted {
		if held == s {
			bm.scripted = append(bm.scripted[:i], bm.scripted[i+1:]...)
			break
		}
	}
	s.Close()
}

func (bm *BotManager) Close() {
	for _, s := range bm.scripted {
		s.Close()
	}
	bm.scripted = nil
}
