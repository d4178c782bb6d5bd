package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"
)

const luaSteeringEntry = "nextDirection"

// LuaSteering asks a script for the next direction. The script defines
//
//	function nextDirection(state) ... end
//
// where state holds x, y, dx, dy, size, speed and dt, and returns a table
// {Dx=..., Dy=...} or nil to keep going. Anything unusable falls back to
// random wandering for that tick.
type LuaSteering struct {
	luaState *lua.LState
	fallback *WanderSteering
	deadline time.Duration
	logger   *log.Logger
}

func NewLuaSteering(script string, selector *DirectionSelector, deadline time.Duration, logger *log.Logger) (*LuaSteering, error) {
	if logger == nil {
		logger = log.Default()
	}
	if deadline <= 0 {
		deadline = defaultBotScriptTimeout
	}

	luaState := lua.NewState()
	if err := luaState.DoString(script); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("could not parse lua steering script: %w", err)
	}
	if luaState.GetGlobal(luaSteeringEntry).Type() != lua.LTFunction {
		luaState.Close()
		return nil, errors.New("lua steering script does not define " + luaSteeringEntry + "(state)")
	}

	return &LuaSteering{
		luaState: luaState,
		fallback: NewWanderSteering(selector),
		deadline: deadline,
		logger:   logger,
	}, nil
}

func LoadLuaSteering(path string, selector *DirectionSelector, deadline time.Duration, logger *log.Logger) (*LuaSteering, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lua steering script %s: %w", path, err)
	}
	return NewLuaSteering(string(script), selector, deadline, logger)
}

func (s *LuaSteering) NextDirection(e *Entity, dt float64) (Direction, bool) {
	dir, ok, err := s.call(e, dt)
	if err != nil {
		s.logger.Debug("Lua steering failed, wandering instead", "entity", e.ID, "error", err)
		return s.fallback.NextDirection(e, dt)
	}
	if !ok {
		return Direction{}, false
	}
	if !dir.IsCardinal() || dir == e.LastDirection.Opposite() {
		s.logger.Debug("Lua steering returned unusable direction", "entity", e.ID, "dx", dir.Dx, "dy", dir.Dy)
		return s.fallback.NextDirection(e, dt)
	}
	return dir, true
}

func (s *LuaSteering) Reseed() {
	s.fallback.Reseed()
}

func (s *LuaSteering) Close() error {
	s.luaState.Close()
	return nil
}

func (s *LuaSteering) call(e *Entity, dt float64) (Direction, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
	defer cancel()
	s.luaState.SetContext(ctx)
	defer s.luaState.RemoveContext()

	state := s.luaState.NewTable()
	state.RawSetString("x", lua.LNumber(e.Position.X()))
	state.RawSetString("y", lua.LNumber(e.Position.Y()))
	state.RawSetString("dx", lua.LNumber(e.Direction.Dx))
	state.RawSetString("dy", lua.LNumber(e.Direction.Dy))
	state.RawSetString("size", lua.LNumber(e.Size))
	state.RawSetString("speed", lua.LNumber(e.Speed))
	state.RawSetString("dt", lua.LNumber(dt))

	err := s.luaState.CallByParam(lua.P{
		Fn:      s.luaState.GetGlobal(luaSteeringEntry),
		NRet:    1,
		Protect: true,
	}, state)
	if err != nil {
		return Direction{}, false, fmt.Errorf("could not execute lua steering script: %w", err)
	}

	ret := s.luaState.Get(-1)
	s.luaState.Pop(1)

	if ret == lua.LNil {
		return Direction{}, false, nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return Direction{}, false, errors.New("lua return value was type " + ret.Type().String() + ", expected table")
	}
	return luaTableToDirection(tbl), true, nil
}

func luaTableToDirection(tbl *lua.LTable) Direction {
	result := Direction{}
	tbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString {
			return
		}
		switch lua.LVAsString(key) {
		case "Dx":
			result.Dx = int(lua.LVAsNumber(value))
		case "Dy":
			result.Dy = int(lua.LVAsNumber(value))
		}
	})
	return result
}
