package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/ecs/entity"
	"github.com/milk9111/mirrorshot/prefabs"
)

// botScriptRuntime is one compiled bot script. Each run rewrites out
// through the move and fire callbacks.
type botScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	out        component.Input
}

var botScriptGlobals = []string{"tick", "time", "self_x", "self_y", "mirror_x", "mirror_y", "has_mirror"}

// BotSystem drives Input components from tengo scripts. Scripts call
// move(forward, right) and fire(forward, right); axes they leave unset stay
// zero for the tick.
type BotSystem struct {
	cache  map[string]*botScriptRuntime
	failed map[string]bool
}

func NewBotSystem() *BotSystem {
	return &BotSystem{}
}

// Invalidate drops every compiled script so edits are picked up.
func (s *BotSystem) Invalidate() {
	if s == nil {
		return
	}
	s.cache = nil
	s.failed = nil
}

func (s *BotSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BotComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, bot *component.Bot, input *component.Input) {
		rt, err := s.runtime(bot.Script)
		if err != nil {
			if !s.failed[bot.Script] {
				log.Printf("Bot: entity=%v load %s: %v", e, bot.Script, err)
				if s.failed == nil {
					s.failed = map[string]bool{}
				}
				s.failed[bot.Script] = true
			}
			*input = component.Input{}
			return
		}

		if err := rt.run(w, e); err != nil {
			log.Printf("Bot: entity=%v run %s: %v", e, bot.Script, err)
			*input = component.Input{}
			return
		}
		*input = rt.out
	})
}

func (s *BotSystem) runtime(path string) (*botScriptRuntime, error) {
	if rt, ok := s.cache[path]; ok {
		return rt, nil
	}
	if s.failed[path] {
		return nil, fmt.Errorf("script failed to compile")
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	rt, err := compileBotScript(path, src)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		s.cache = map[string]*botScriptRuntime{}
	}
	s.cache[path] = rt
	return rt, nil
}

func compileBotScript(path string, src []byte) (*botScriptRuntime, error) {
	rt := &botScriptRuntime{scriptPath: path}

	script := tengo.NewScript(src)
	for _, name := range botScriptGlobals {
		_ = script.Add(name, 0)
	}
	_ = script.Add("move", &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f, r, err := axisArgs(args)
		if err != nil {
			return nil, err
		}
		rt.out.MoveForward, rt.out.MoveRight = f, r
		return tengo.UndefinedValue, nil
	}})
	_ = script.Add("fire", &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f, r, err := axisArgs(args)
		if err != nil {
			return nil, err
		}
		rt.out.FireForward, rt.out.FireRight = f, r
		return tengo.UndefinedValue, nil
	}})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt.compiled = compiled
	return rt, nil
}

func (rt *botScriptRuntime) run(w *ecs.World, e ecs.Entity) error {
	rt.out = component.Input{}

	selfX, selfY := 0.0, 0.0
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		selfX, selfY = t.X, t.Y
	}
	mirrorX, mirrorY := 0.0, 0.0
	hasMirror := false
	if p, ok := ecs.Get(w, e, component.PawnComponent.Kind()); ok {
		if m, ok := entity.MirrorOf(w, p); ok {
			if t, ok := ecs.Get(w, m, component.TransformComponent.Kind()); ok {
				mirrorX, mirrorY = t.X, t.Y
				hasMirror = true
			}
		}
	}

	values := map[string]any{
		"tick":       int64(w.Ticks()),
		"time":       w.Elapsed(),
		"self_x":     selfX,
		"self_y":     selfY,
		"mirror_x":   mirrorX,
		"mirror_y":   mirrorY,
		"has_mirror": hasMirror,
	}
	for name, v := range values {
		if err := rt.compiled.Set(name, v); err != nil {
			return err
		}
	}
	return rt.compiled.Run()
}

func axisArgs(args []tengo.Object) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, tengo.ErrWrongNumArguments
	}
	f, ok := tengo.ToFloat64(args[0])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "forward", Expected: "float", Found: args[0].TypeName()}
	}
	r, ok := tengo.ToFloat64(args[1])
	if !ok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: "right", Expected: "float", Found: args[1].TypeName()}
	}
	return clampAxis(f), clampAxis(r), nil
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
