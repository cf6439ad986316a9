package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mirrorshot/common"
	"github.com/milk9111/mirrorshot/ecs"
	"github.com/milk9111/mirrorshot/ecs/component"
	"github.com/milk9111/mirrorshot/ecs/entity"
	"github.com/milk9111/mirrorshot/ecs/system"
	"github.com/milk9111/mirrorshot/prefabs"
)

const symmetryTolerance = 1e-6

var errSymmetry = errors.New("simulate: mirror symmetry violated")

type options struct {
	Ticks int
	Bot   string
	Arena string
	DT    float64
}

type summary struct {
	Ticks       int
	Shots       int
	MirrorShots int
	Blocked     int
	Hits        int
	Primary     cp.Vector
	Mirror      cp.Vector
}

func main() {
	ticks := flag.Int("ticks", 600, "number of fixed steps to simulate")
	bot := flag.String("bot", "scripts/orbit.tengo", "tengo script driving the pawn")
	arena := flag.String("arena", "arena.yaml", "arena prefab")
	dt := flag.Float64("dt", 1.0/common.TPS, "seconds per step")
	flag.Parse()

	sum, err := run(options{Ticks: *ticks, Bot: *bot, Arena: *arena, DT: *dt})
	if err != nil {
		log.Printf("simulate: %v", err)
		os.Exit(1)
	}
	log.Printf("simulate: %d ticks, %d shots (%d mirrored), %d blocked moves, %d wall hits",
		sum.Ticks, sum.Shots, sum.MirrorShots, sum.Blocked, sum.Hits)
	log.Printf("simulate: pawn (%.2f, %.2f) mirror (%.2f, %.2f)",
		sum.Primary.X, sum.Primary.Y, sum.Mirror.X, sum.Mirror.Y)
}

func run(opts options) (summary, error) {
	var sum summary
	if opts.Ticks < 0 || opts.DT <= 0 {
		return sum, fmt.Errorf("simulate: need ticks >= 0 and dt > 0, got %d and %v", opts.Ticks, opts.DT)
	}

	w := ecs.NewWorld()
	primary, mirror, err := entity.NewMatch(w, opts.Arena)
	if err != nil {
		return sum, err
	}
	if opts.Bot != "" {
		if err := ecs.Add(w, primary, component.BotComponent.Kind(), &component.Bot{Script: prefabs.ScriptName(opts.Bot)}); err != nil {
			return sum, err
		}
	}

	pipeline := system.NewPipeline(nil, nil, false)
	for i := 0; i < opts.Ticks; i++ {
		pipeline.Update(w, opts.DT)
		for _, evt := range w.Events().Drain() {
			switch evt.Kind {
			case ecs.EventPawnBlocked:
				sum.Blocked++
			case ecs.EventProjectileHit:
				sum.Hits++
			}
		}
		sum.Ticks++

		p, pok := ecs.Get(w, primary, component.TransformComponent.Kind())
		m, mok := ecs.Get(w, mirror, component.TransformComponent.Kind())
		if !pok || !mok {
			return sum, fmt.Errorf("simulate: pawn pair lost at tick %d", sum.Ticks)
		}
		sum.Primary = cp.Vector{X: p.X, Y: p.Y}
		sum.Mirror = cp.Vector{X: m.X, Y: m.Y}
		if math.Abs(p.X+m.X) > symmetryTolerance || math.Abs(p.Y+m.Y) > symmetryTolerance {
			return sum, fmt.Errorf("%w at tick %d: pawn %v mirror %v", errSymmetry, sum.Ticks, sum.Primary, sum.Mirror)
		}
	}
	sum.Shots, sum.MirrorShots = pipeline.Pawns.Shots()
	return sum, nil
}
