// Package thecell implements The Cell: a 5x5 board of hidden rooms that the
// player crosses from the center to the exit, stepping between rooms and
// rotating whole rows and columns while standing inside them.
package thecell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JocelynWeiss/theCell/internal/cell"
	"github.com/JocelynWeiss/theCell/internal/config"
	"github.com/JocelynWeiss/theCell/internal/core"
	"github.com/JocelynWeiss/theCell/internal/registry"
)

const (
	GameID        = "thecell"
	ClassicGameID = "thecell_classic"

	// ClassicSeed is the board every classic run is played on.
	ClassicSeed int64 = 1966
)

// Package-level settings applied by the CLI before the game is created.
var (
	cellConfig = config.DefaultCellConfig()
	logger     = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.CellConfig) {
	cellConfig = cfg
}

// SetLogger sets the logger handed to the engine.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ClassicGameID, func() registry.Game {
		return NewClassic()
	})
}

// Game adapts the grid engine to the platform's Game interface and applies
// the room rules: deadly rooms kill, the exit wins, effect rooms announce
// themselves.
type Game struct {
	classic bool
	cfg     config.CellConfig
	engine  *cell.Engine
	clock   func() time.Time

	seed      int64
	moves     int
	rotations int
	deaths    int
	lives     int
	score     int

	visited   [cell.SlotCount]bool // by cell ID, rooms move with rotations
	entered   *cell.Cell
	lastEvent string

	dead     bool
	gameOver bool
	won      bool
	paused   bool

	screenW int
	screenH int
}

// New creates a game seeded from the runtime config or the configured default.
func New() *Game {
	return &Game{cfg: cellConfig, clock: time.Now}
}

// NewClassic creates a game that always plays the classic board.
func NewClassic() *Game {
	return &Game{classic: true, cfg: cellConfig, clock: time.Now}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.classic {
		return ClassicGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.classic {
		return "The Cell (Classic 1966)"
	}
	return "The Cell"
}

// Reset starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.cfg = cellConfig

	gen, err := cell.NewGenerator(g.cfg.GeneratorConfig())
	if err != nil {
		logger.Error("invalid board config, using defaults", "error", err)
		g.cfg = config.DefaultCellConfig()
		gen, _ = cell.NewGenerator(g.cfg.GeneratorConfig())
	}

	g.engine = cell.NewEngine(gen,
		cell.WithHooks(cell.HookFuncs{OnEnter: g.onEnter}),
		cell.WithLogger(logger),
		cell.WithLockedColumns(g.cfg.Board.LockedColumns...),
	)
	g.start(g.pickSeed(rc))
}

// pickSeed resolves the board seed: classic boards are fixed, an explicit
// seed wins, then the configured random or default seed.
func (g *Game) pickSeed(rc core.RuntimeConfig) int64 {
	switch {
	case g.classic:
		return ClassicSeed
	case rc.SeedSet || rc.Seed != 0:
		return rc.Seed
	case g.cfg.Session.RandomSeed:
		return g.entropySeed()
	default:
		return g.cfg.Session.DefaultSeed
	}
}

func (g *Game) entropySeed() int64 {
	return g.clock().UnixNano()
}

// freshSeed is the seed of a new board. Classic runs stay on the classic board.
func (g *Game) freshSeed() int64 {
	if g.classic {
		return ClassicSeed
	}
	return g.entropySeed()
}

// start begins a fresh run on seed with full lives and zeroed counters.
func (g *Game) start(seed int64) {
	g.seed = seed
	g.moves = 0
	g.rotations = 0
	g.deaths = 0
	g.score = 0
	g.lives = g.cfg.Session.Lives
	g.visited = [cell.SlotCount]bool{}
	g.dead = false
	g.gameOver = false
	g.won = false
	g.paused = false
	g.lastEvent = fmt.Sprintf("Seed %d. Find the exit.", seed)

	g.engine.NewGame(seed)
	g.markCurrent()
}

func (g *Game) onEnter(c *cell.Cell) {
	g.entered = c
}

func (g *Game) markCurrent() {
	if c, err := g.engine.CurrentCell(); err == nil {
		g.visited[c.ID()] = true
	}
}

// Step applies the actions of one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Empty() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionNewGame) {
		g.start(g.freshSeed())
		return core.StepResult{State: g.State(), Changed: true}
	}

	if in.Has(core.ActionRestart) {
		switch {
		case g.gameOver:
			g.start(g.seed)
			return core.StepResult{State: g.State(), Changed: true}
		case g.dead:
			g.respawn()
			return core.StepResult{State: g.State(), Changed: true}
		}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
		return core.StepResult{State: g.State(), Changed: true}
	}

	if g.gameOver || g.dead || g.paused {
		return core.StepResult{State: g.State()}
	}

	changed := false
	switch {
	case in.Has(core.ActionUp):
		changed = g.step(cell.North)
	case in.Has(core.ActionDown):
		changed = g.step(cell.South)
	case in.Has(core.ActionLeft):
		changed = g.step(cell.West)
	case in.Has(core.ActionRight):
		changed = g.step(cell.East)
	case in.Has(core.ActionRowEast):
		changed = g.rotateRow(true)
	case in.Has(core.ActionRowWest):
		changed = g.rotateRow(false)
	case in.Has(core.ActionColNorth):
		changed = g.rotateColumn(true)
	case in.Has(core.ActionColSouth):
		changed = g.rotateColumn(false)
	}

	return core.StepResult{State: g.State(), Changed: changed}
}

func (g *Game) step(d cell.Direction) bool {
	g.entered = nil
	moved, err := g.engine.Step(d)
	if err != nil {
		logger.Error("step failed", "error", err)
		return false
	}
	if !moved {
		g.lastEvent = fmt.Sprintf("A wall blocks the way %s.", strings.ToLower(d.String()))
		return false
	}

	g.moves++
	c := g.entered
	if c == nil {
		return true
	}
	g.visited[c.ID()] = true
	g.applyRoom(c)
	return true
}

// applyRoom runs the rule of the room the player just entered.
func (g *Game) applyRoom(c *cell.Cell) {
	switch c.Type {
	case cell.CellDeadly:
		g.die(c)
	case cell.CellExit:
		g.won = true
		g.gameOver = true
		g.score = g.cfg.Scoring.Score(g.moves, g.rotations, g.deaths)
		g.lastEvent = fmt.Sprintf("You found the exit! Score %d.", g.score)
		logger.Info("run won", "seed", g.seed, "moves", g.moves, "rotations", g.rotations, "score", g.score)
	case cell.CellEffect:
		name := "Unknown"
		if sub, ok := c.SubType(); ok {
			name = sub.String()
		}
		g.lastEvent = fmt.Sprintf("Effect room: %s.", name)
	case cell.CellStart:
		g.lastEvent = "Back in the starting room."
	default:
		g.lastEvent = ""
	}
}

func (g *Game) die(c *cell.Cell) {
	cause := "a trap"
	if sub, ok := c.SubType(); ok {
		cause = sub.String()
	}

	g.deaths++
	g.lives--
	g.engine.Destroy()
	logger.Info("player killed", "seed", g.seed, "cause", cause, "lives", g.lives)

	if g.lives <= 0 {
		g.gameOver = true
		g.lastEvent = fmt.Sprintf("Killed by %s. No lives left.", cause)
		return
	}
	g.dead = true
	g.lastEvent = fmt.Sprintf("Killed by %s. Press R to respawn.", cause)
}

// respawn rebuilds the same board and puts the player back on Start.
// Visited rooms stay revealed.
func (g *Game) respawn() {
	if err := g.engine.Respawn(); err != nil {
		logger.Error("respawn failed", "error", err)
		return
	}
	g.dead = false
	g.markCurrent()
	g.lastEvent = fmt.Sprintf("Respawned. %d lives left.", g.lives)
}

func (g *Game) rotateRow(eastward bool) bool {
	rowStart := g.engine.PlayerSlot() / cell.BoardSize * cell.BoardSize
	ok, err := g.engine.RotateRow(rowStart, eastward)
	if err != nil {
		logger.Error("rotate row failed", "error", err)
		return false
	}
	if !ok {
		return false
	}
	g.rotations++
	g.lastEvent = ""
	return true
}

func (g *Game) rotateColumn(northward bool) bool {
	col := g.engine.PlayerSlot() % cell.BoardSize
	ok, err := g.engine.RotateColumn(col, northward)
	if err != nil {
		logger.Error("rotate column failed", "error", err)
		return false
	}
	if !ok {
		g.lastEvent = fmt.Sprintf("Column %d is locked.", col+1)
		return false
	}
	g.rotations++
	g.lastEvent = ""
	return true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Summary describes the current run for the journal.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Seed:      g.seed,
		Won:       g.won,
		Score:     g.score,
		Moves:     g.moves,
		Rotations: g.rotations,
		Deaths:    g.deaths,
	}
}

// Seed returns the seed of the current board.
func (g *Game) Seed() int64 {
	return g.seed
}

// Lives returns the remaining lives.
func (g *Game) Lives() int {
	return g.lives
}

// Dead reports whether the player is waiting to respawn.
func (g *Game) Dead() bool {
	return g.dead
}

// LastEvent returns the latest HUD message.
func (g *Game) LastEvent() string {
	return g.lastEvent
}
