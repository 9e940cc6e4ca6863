package thecell

import (
	"strings"
	"testing"
	"time"

	"github.com/JocelynWeiss/theCell/internal/cell"
	"github.com/JocelynWeiss/theCell/internal/config"
	"github.com/JocelynWeiss/theCell/internal/core"
	"github.com/JocelynWeiss/theCell/internal/registry"
)

// withConfig installs cfg for games created inside the test.
func withConfig(t *testing.T, cfg config.CellConfig) {
	t.Helper()
	prev := cellConfig
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(prev) })
}

// deadlyConfig surrounds the start room with deadly rooms.
func deadlyConfig(lives int) config.CellConfig {
	cfg := config.DefaultCellConfig()
	cfg.Board.DeadlyCells = 23
	cfg.Board.EffectCells = 0
	cfg.Session.Lives = lives
	return cfg
}

// effectConfig fills every room except start and exit with effects. The
// only exit is the bottom-right room.
func effectConfig() config.CellConfig {
	cfg := config.DefaultCellConfig()
	cfg.Board.DeadlyCells = 0
	cfg.Board.EffectCells = 23
	return cfg
}

func press(g *Game, actions ...core.Action) core.StepResult {
	var res core.StepResult
	for _, a := range actions {
		in := core.NewInputFrame()
		in.Set(a)
		res = g.Step(in)
	}
	return res
}

func newGame(t *testing.T, cfg config.CellConfig, seed int64) *Game {
	t.Helper()
	withConfig(t, cfg)
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{GameID, ClassicGameID} {
		if !registry.Exists(id) {
			t.Fatalf("%s not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %s, expected %s", g.ID(), id)
		}
		if _, ok := g.(registry.Summarizer); !ok {
			t.Errorf("%s should implement Summarizer", id)
		}
	}
}

func TestSeedSelection(t *testing.T) {
	withConfig(t, config.DefaultCellConfig())

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if g.Seed() != 1966 {
		t.Errorf("default seed = %d, expected 1966", g.Seed())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	if g.Seed() != 42 {
		t.Errorf("explicit seed = %d, expected 42", g.Seed())
	}

	classic := NewClassic()
	classic.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 42})
	if classic.Seed() != ClassicSeed {
		t.Errorf("classic seed = %d, expected %d", classic.Seed(), ClassicSeed)
	}

	cfg := config.DefaultCellConfig()
	cfg.Session.RandomSeed = true
	withConfig(t, cfg)
	random := New()
	random.clock = func() time.Time { return time.Unix(0, 777) }
	random.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if random.Seed() != 777 {
		t.Errorf("random seed = %d, expected 777", random.Seed())
	}
}

func TestExplicitZeroSeed(t *testing.T) {
	withConfig(t, config.DefaultCellConfig())

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 0, SeedSet: true})
	if g.Seed() != 0 {
		t.Errorf("explicit seed 0 = %d, expected 0", g.Seed())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if g.Seed() != 1966 {
		t.Errorf("unset seed = %d, expected the configured 1966", g.Seed())
	}
}

func TestClassicNewGameKeepsClassicBoard(t *testing.T) {
	withConfig(t, effectConfig())

	g := NewClassic()
	g.clock = func() time.Time { return time.Unix(0, 31337) }
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	press(g, core.ActionRight, core.ActionNewGame)
	if g.Seed() != ClassicSeed {
		t.Errorf("Seed() = %d, expected %d", g.Seed(), ClassicSeed)
	}
	if g.Summary().Moves != 0 {
		t.Error("new game should reset counters")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, config.DefaultCellConfig(), 12345)
	g2 := newGame(t, config.DefaultCellConfig(), 12345)

	actions := []core.Action{core.ActionRowEast, core.ActionLeft, core.ActionColSouth, core.ActionUp}
	press(g1, actions...)
	press(g2, actions...)

	s1 := core.NewScreen(80, 24)
	s2 := core.NewScreen(80, 24)
	g1.Render(s1)
	g2.Render(s2)
	if s1.String() != s2.String() {
		t.Error("same seed and inputs should render identically")
	}
	if g1.Summary() != g2.Summary() {
		t.Errorf("summaries differ: %+v vs %+v", g1.Summary(), g2.Summary())
	}
}

func TestWalkToExit(t *testing.T) {
	g := newGame(t, effectConfig(), 7)

	press(g, core.ActionRight)
	if !strings.HasPrefix(g.LastEvent(), "Effect room: ") {
		t.Errorf("LastEvent() = %q, expected an effect message", g.LastEvent())
	}

	res := press(g, core.ActionRight, core.ActionDown, core.ActionDown)
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("expected a won run, got %+v", res.State)
	}

	// 4 moves at 10 each
	if res.State.Score != 960 {
		t.Errorf("Score = %d, expected 960", res.State.Score)
	}

	sum := g.Summary()
	if sum.Moves != 4 || sum.Rotations != 0 || sum.Deaths != 0 || !sum.Won {
		t.Errorf("unexpected summary: %+v", sum)
	}

	// Input after the run ends is ignored
	if res := press(g, core.ActionLeft); res.Changed {
		t.Error("moves after the run ended should be ignored")
	}
}

func TestWallBlocksStep(t *testing.T) {
	g := newGame(t, effectConfig(), 7)

	press(g, core.ActionUp, core.ActionUp)
	res := press(g, core.ActionUp)
	if res.Changed {
		t.Error("stepping off the board should not change anything")
	}
	if g.Summary().Moves != 2 {
		t.Errorf("Moves = %d, expected 2", g.Summary().Moves)
	}
	if !strings.Contains(g.LastEvent(), "wall") {
		t.Errorf("LastEvent() = %q, expected a wall message", g.LastEvent())
	}
}

func TestDeathAndRespawn(t *testing.T) {
	g := newGame(t, deadlyConfig(2), 99)

	press(g, core.ActionUp)
	if !g.Dead() || g.Lives() != 1 {
		t.Fatalf("expected death with 1 life left, dead=%v lives=%d", g.Dead(), g.Lives())
	}
	if g.engine.State() != cell.StateFinishing {
		t.Errorf("engine state = %v, expected Finishing", g.engine.State())
	}

	// Movement is ignored until respawn
	if res := press(g, core.ActionLeft); res.Changed {
		t.Error("dead player should not move")
	}

	press(g, core.ActionRestart)
	if g.Dead() {
		t.Fatal("Restart should respawn")
	}
	if g.engine.PlayerSlot() != cell.CenterSlot {
		t.Errorf("respawned at slot %d, expected %d", g.engine.PlayerSlot(), cell.CenterSlot)
	}
	if g.Seed() != 99 {
		t.Errorf("respawn changed the seed to %d", g.Seed())
	}

	res := press(g, core.ActionDown)
	if !res.State.GameOver || res.State.Won {
		t.Fatalf("expected a lost run, got %+v", res.State)
	}
	if res.State.Score != 0 {
		t.Errorf("lost run scored %d", res.State.Score)
	}
	if g.Summary().Deaths != 2 {
		t.Errorf("Deaths = %d, expected 2", g.Summary().Deaths)
	}

	// Replay restores lives on the same seed
	press(g, core.ActionRestart)
	if g.State().GameOver || g.Lives() != 2 || g.Seed() != 99 {
		t.Errorf("replay failed: state=%+v lives=%d seed=%d", g.State(), g.Lives(), g.Seed())
	}
}

func TestRotationsFollowPlayer(t *testing.T) {
	g := newGame(t, effectConfig(), 7)

	// Center column is locked by default
	if res := press(g, core.ActionColNorth); res.Changed {
		t.Error("rotating the locked center column should be rejected")
	}
	if !strings.Contains(g.LastEvent(), "locked") {
		t.Errorf("LastEvent() = %q, expected a locked message", g.LastEvent())
	}

	start, _ := g.engine.CurrentCell()
	press(g, core.ActionRowEast)
	if g.engine.PlayerSlot() != 13 {
		t.Errorf("player slot = %d, expected 13", g.engine.PlayerSlot())
	}
	if cur, _ := g.engine.CurrentCell(); cur != start {
		t.Error("rotation should keep the player in the same room")
	}

	// Column 3 is free
	if res := press(g, core.ActionColNorth); !res.Changed {
		t.Error("rotating column 3 should succeed")
	}
	if g.engine.PlayerSlot() != 8 {
		t.Errorf("player slot = %d, expected 8", g.engine.PlayerSlot())
	}

	sum := g.Summary()
	if sum.Rotations != 2 || sum.Moves != 0 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, effectConfig(), 7)

	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	press(g, core.ActionRight)
	if g.Summary().Moves != 0 {
		t.Error("paused game should ignore moves")
	}
	press(g, core.ActionPause)
	press(g, core.ActionRight)
	if g.Summary().Moves != 1 {
		t.Error("unpaused game should move")
	}
}

func TestNewGameUsesFreshSeed(t *testing.T) {
	g := newGame(t, effectConfig(), 7)
	g.clock = func() time.Time { return time.Unix(0, 31337) }

	press(g, core.ActionRight, core.ActionNewGame)
	if g.Seed() != 31337 {
		t.Errorf("Seed() = %d, expected 31337", g.Seed())
	}
	if g.Summary().Moves != 0 {
		t.Error("new game should reset counters")
	}
}

func TestRenderFog(t *testing.T) {
	g := newGame(t, effectConfig(), 7)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "@") || !strings.Contains(out, "Start") {
		t.Error("render should show the player in the start room")
	}
	if strings.Contains(out, "Effect") {
		t.Error("unvisited rooms should be hidden by fog")
	}
	if !strings.Contains(out, "Seed: 7") {
		t.Error("HUD should show the seed")
	}

	cfg := effectConfig()
	cfg.Session.Fog = false
	noFog := newGame(t, cfg, 7)
	noFog.Render(screen)
	if !strings.Contains(screen.String(), "Effect") {
		t.Error("without fog every room should be labelled")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, effectConfig(), 7)
	screen := core.NewScreen(30, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "too small") {
		t.Error("expected a too-small message")
	}
}

func TestRenderDead(t *testing.T) {
	g := newGame(t, deadlyConfig(3), 5)
	press(g, core.ActionLeft)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "You died") {
		t.Error("expected the death overlay")
	}
}
