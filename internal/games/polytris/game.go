// Package polytris adapts the pure game engine to the tick-driven platform:
// it maps input frames to engine transitions, runs the gravity clock,
// collects sound cues and draws snapshots into a core.Screen.
package polytris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polytris/internal/config"
	"github.com/vovakirdan/polytris/internal/core"
	"github.com/vovakirdan/polytris/internal/engine"
	"github.com/vovakirdan/polytris/internal/shape"
	"github.com/vovakirdan/polytris/internal/sound"
)

// ID is the game identifier used for score storage and screenshots.
const ID = "polytris"

// op is one engine call issued by the adapter.
type op int

const (
	opGravity op = iota
	opLeft
	opRight
	opDown
	opDrop
	opRotateCW
	opRotateCCW
	opHold
	opPause
)

// actionOps maps gameplay actions to engine calls.
var actionOps = map[core.Action]op{
	core.ActionLeft:      opLeft,
	core.ActionRight:     opRight,
	core.ActionDown:      opDown,
	core.ActionDrop:      opDrop,
	core.ActionRotateCW:  opRotateCW,
	core.ActionRotateCCW: opRotateCCW,
	core.ActionHold:      opHold,
	core.ActionPause:     opPause,
}

// Game implements the falling-polyomino game on top of engine.Engine.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	gen   *shape.Generator
	eng   *engine.Engine
	state engine.State

	gravity    *gravityClock
	clockEpoch uint64

	tick     uint64
	tickRate int
	screenW  int
	screenH  int
	tooSmall bool

	palette []core.Color
	cues    []sound.Cue
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for game events.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game with the given configuration. Reset must be called
// before the first Step.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.palette = make([]core.Color, len(cfg.Palette))
	for i, c := range cfg.Palette {
		g.palette[i] = core.Color(c)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Polytris"
}

// Mode returns the difficulty preset the game runs with. Scores are kept
// per mode.
func (g *Game) Mode() string {
	if g.cfg.Difficulty.Preset == "" {
		return string(config.DifficultyNormal)
	}
	return string(g.cfg.Difficulty.Preset)
}

// GeneratorParams converts the configuration into shape generator params.
func GeneratorParams(cfg config.Config) shape.Params {
	return shape.Params{
		MinSize:      cfg.Pieces.MinSize,
		MaxSize:      cfg.Pieces.MaxSize,
		FieldWidth:   cfg.Field.Width,
		PaletteSize:  len(cfg.Palette),
		MaxAttempts:  cfg.Generator.MaxAttempts,
		RecentWindow: cfg.Generator.RecentWindow,
		RecentBias:   cfg.Generator.RecentBias,
		MomentumBias: cfg.Generator.MomentumBias,
		BranchChance: cfg.Generator.BranchChance,
		WalkBudget:   cfg.Generator.WalkBudget,
	}
}

// Reset initializes or restarts the game with a fresh generator seeded from
// rc.Seed.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.Resize(rc.ScreenW, rc.ScreenH)

	rng := rand.New(rand.NewSource(rc.Seed))
	g.gen = shape.New(GeneratorParams(g.cfg), rng, shape.WithLogger(g.logger))
	g.eng = engine.New(g.cfg.Field.Width, g.cfg.Field.Height, g.gen)

	g.restart()
	g.logger.Info("game reset", "seed", rc.Seed, "mode", g.Mode(),
		"field", g.cfg.Field, "pieces", g.cfg.Pieces)
}

// restart replaces the state with a brand new one from the same generator.
func (g *Game) restart() {
	g.tick = 0
	g.cues = g.cues[:0]
	g.state = g.eng.Reset()
	g.gravity = nil
	g.syncGravity()
}

// Resize adapts the layout to a new screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	lw, lh := layoutSize(g.cfg.Field.Width, g.cfg.Field.Height, g.cfg.Pieces.MaxSize)
	g.tooSmall = w < lw || h < lh
}

// Step advances the game by one tick: input actions are applied in arrival
// order, then gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	for _, a := range in.Actions() {
		switch a {
		case core.ActionQuit:
			return core.StepResult{State: g.State(), Quit: true}
		case core.ActionRestart:
			g.logger.Info("game restarted", "score", g.state.Score)
			g.restart()
			continue
		case core.ActionPause:
			// Pausing a finished game would only hide the result
			if g.state.GameOver {
				continue
			}
		}
		if o, ok := actionOps[a]; ok && !g.tooSmall {
			g.apply(o)
		}
	}

	if !g.tooSmall {
		g.applyGravity(time.Second / time.Duration(g.tickRate))
	}

	return core.StepResult{State: g.State()}
}

// apply runs one engine call and records its consequences.
func (g *Game) apply(o op) {
	var res engine.Result
	s := g.state

	switch o {
	case opGravity, opDown:
		res = g.eng.MoveDown(s)
	case opLeft:
		res = g.eng.MoveLeft(s)
	case opRight:
		res = g.eng.MoveRight(s)
	case opDrop:
		res = g.eng.HardDrop(s)
	case opRotateCW:
		res = g.eng.RotateClockwise(s)
	case opRotateCCW:
		res = g.eng.RotateCounterClockwise(s)
	case opHold:
		res = g.eng.Hold(s)
	case opPause:
		res = g.eng.TogglePause(s)
	default:
		return
	}

	g.state = res.State
	g.cues = append(g.cues, sound.Select(soundOp(o), res)...)

	if ev := res.Lock; ev != nil {
		if ev.LeveledUp() {
			g.logger.Info("level up", "level", ev.Level, "score", g.state.Score)
		}
		if ev.GameOver {
			g.logger.Info("game over", "score", g.state.Score, "level", g.state.Level,
				"lines", g.state.Lines, "fallbacks", g.gen.Fallbacks())
		}
	}

	g.syncGravity()
}

func soundOp(o op) sound.Op {
	switch o {
	case opLeft, opRight, opDown:
		return sound.OpMove
	case opRotateCW, opRotateCCW:
		return sound.OpRotate
	case opDrop:
		return sound.OpHardDrop
	case opHold:
		return sound.OpHold
	default:
		return sound.OpGravity
	}
}

// Cues returns and clears the sound cues collected since the last call.
func (g *Game) Cues() []sound.Cue {
	if len(g.cues) == 0 {
		return nil
	}
	out := make([]sound.Cue, len(g.cues))
	copy(out, g.cues)
	g.cues = g.cues[:0]
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Level:    g.state.Level,
		Lines:    g.state.Lines,
		GameOver: g.state.GameOver,
		Paused:   g.state.Paused,
	}
}
