package cell

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	gen, err := NewGenerator(DefaultGeneratorConfig())
	require.NoError(t, err)
	return NewEngine(gen, opts...)
}

func TestEngineNotInitialized(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, StateUninitialized, e.State())

	_, err := e.CurrentCell()
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = e.Step(North)
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = e.RotateRow(0, true)
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = e.RotateColumn(0, true)
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = e.NeighborNorth(12)
	require.ErrorIs(t, err, ErrNotInitialized)
	require.ErrorIs(t, e.Respawn(), ErrNotInitialized)

	// Destroying an engine that never started must not make it respawnable
	e.Destroy()
	require.Equal(t, StateUninitialized, e.State())
	require.ErrorIs(t, e.Respawn(), ErrNotInitialized)
	_, err = e.CurrentCell()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestEngineNewGame(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1966)

	require.Equal(t, StateRunning, e.State())
	require.Equal(t, int64(1966), e.Seed())
	require.Equal(t, CenterSlot, e.PlayerSlot())
	require.Equal(t, Identity(), e.Lookup())

	cur, err := e.CurrentCell()
	require.NoError(t, err)
	require.Equal(t, CenterSlot, cur.ID())
	require.Equal(t, CellStart, cur.Type)

	want := e.gen.Generate(1966)
	for slot := 0; slot < SlotCount; slot++ {
		c, err := e.CellAt(slot)
		require.NoError(t, err)
		require.Equal(t, slot, c.ID())
		require.Equal(t, want.Slots[slot].Type, c.Type)
		require.Equal(t, want.Slots[slot].SubIndex, c.SubIndex)
	}
}

func TestEngineReusesCells(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1)
	before, err := e.CellAt(3)
	require.NoError(t, err)

	_, err = e.RotateRow(0, true)
	require.NoError(t, err)
	e.NewGame(2)

	after, err := e.CellAt(3)
	require.NoError(t, err)
	require.Same(t, before, after)
	require.Equal(t, Identity(), e.Lookup())
	require.Equal(t, CenterSlot, e.PlayerSlot())
}

func TestEngineBoundaryMoves(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		dir     Direction
		blocked func(slot int) bool
		delta   int
	}{
		{North, func(s int) bool { return s <= 4 }, -BoardSize},
		{South, func(s int) bool { return s >= 20 }, BoardSize},
		{East, func(s int) bool { return s%BoardSize == 4 }, 1},
		{West, func(s int) bool { return s%BoardSize == 0 }, -1},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			for slot := 0; slot < SlotCount; slot++ {
				e.NewGame(5)
				e.playerSlot = slot

				moved, err := e.Step(tc.dir)
				require.NoError(t, err)
				if tc.blocked(slot) {
					require.False(t, moved, "slot %d", slot)
					require.Equal(t, slot, e.PlayerSlot())
				} else {
					require.True(t, moved, "slot %d", slot)
					require.Equal(t, slot+tc.delta, e.PlayerSlot())
				}
			}
		})
	}
}

func TestEngineStepHooks(t *testing.T) {
	var events []string
	var slotDuringHook int
	var e *Engine
	hooks := HookFuncs{
		OnExit: func(c *Cell) {
			events = append(events, "exit "+c.String())
		},
		OnEnter: func(c *Cell) {
			events = append(events, "enter "+c.String())
			slotDuringHook = e.PlayerSlot()
		},
	}
	e = newTestEngine(t, WithHooks(hooks))
	e.NewGame(1966)

	from, _ := e.CurrentCell()
	to, _ := e.NeighborNorth(CenterSlot)

	moved, err := e.Step(North)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, []string{"exit " + from.String(), "enter " + to.String()}, events)
	require.Equal(t, CenterSlot, slotDuringHook, "move must not be committed before hooks run")
	require.Equal(t, 7, e.PlayerSlot())

	events = nil
	e.playerSlot = 2
	moved, err = e.Step(North)
	require.NoError(t, err)
	require.False(t, moved)
	require.Empty(t, events, "blocked step fires no hooks")
}

func TestEngineRotationsFireNoHooks(t *testing.T) {
	var events []string
	hooks := HookFuncs{
		OnExit:  func(c *Cell) { events = append(events, "exit "+c.String()) },
		OnEnter: func(c *Cell) { events = append(events, "enter "+c.String()) },
	}
	e := newTestEngine(t, WithHooks(hooks))
	e.NewGame(1966)

	for _, eastward := range []bool{true, false} {
		ok, err := e.RotateRow(10, eastward)
		require.NoError(t, err)
		require.True(t, ok)
	}
	for _, col := range []int{0, 1, 3, 4} {
		for _, northward := range []bool{true, false} {
			ok, err := e.RotateColumn(col, northward)
			require.NoError(t, err)
			require.True(t, ok)
		}
	}
	require.Empty(t, events, "rotations keep the player in the same cell")

	_, err := e.Step(North)
	require.NoError(t, err)
	require.Len(t, events, 2, "steps still notify")
}

// Rotating the player's row carries the player along with its cell.
func TestEngineRotateRowFollowsPlayer(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1966)

	before, err := e.CurrentCell()
	require.NoError(t, err)

	applied, err := e.RotateRow(10, true)
	require.NoError(t, err)
	require.True(t, applied)

	lookup := e.Lookup()
	require.Equal(t, [5]int{14, 10, 11, 12, 13}, [5]int(lookup[10:15]))
	require.Equal(t, 13, e.PlayerSlot())

	after, err := e.CurrentCell()
	require.NoError(t, err)
	require.Same(t, before, after)

	_, err = e.RotateRow(10, false)
	require.NoError(t, err)
	_, err = e.RotateRow(10, false)
	require.NoError(t, err)
	require.Equal(t, 11, e.PlayerSlot())
	after, _ = e.CurrentCell()
	require.Equal(t, before.ID(), after.ID())
}

func TestEngineRotateColumn(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1966)
	e.playerSlot = 8 // row 1, column 3

	_, err := e.RotateColumn(3, true)
	require.NoError(t, err)
	lookup := e.Lookup()
	require.Equal(t, []int{8, 13, 18, 23, 3}, []int{lookup[3], lookup[8], lookup[13], lookup[18], lookup[23]})
	require.Equal(t, 3, e.PlayerSlot())

	_, err = e.RotateColumn(3, true)
	require.NoError(t, err)
	require.Equal(t, 23, e.PlayerSlot(), "top wraps to bottom")

	cur, _ := e.CurrentCell()
	require.Equal(t, 8, cur.ID())
}

func TestEngineRotationOutsidePlayerLine(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(3)

	_, err := e.RotateRow(0, true)
	require.NoError(t, err)
	_, err = e.RotateColumn(4, false)
	require.NoError(t, err)
	require.Equal(t, CenterSlot, e.PlayerSlot())
}

func TestEngineRotationRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(42)
	rng := rand.New(rand.NewSource(42))

	// scramble first so the round trip is not from identity
	for i := 0; i < 30; i++ {
		_, err := e.RotateRow(rng.Intn(BoardSize)*BoardSize, rng.Intn(2) == 0)
		require.NoError(t, err)
	}

	for row := 0; row < SlotCount; row += BoardSize {
		for _, dir := range []bool{true, false} {
			before := e.Lookup()
			_, _ = e.RotateRow(row, dir)
			_, _ = e.RotateRow(row, !dir)
			require.Equal(t, before, e.Lookup(), "row %d", row)
		}
	}
	for col := 0; col < BoardSize; col++ {
		for _, dir := range []bool{true, false} {
			before := e.Lookup()
			_, _ = e.RotateColumn(col, dir)
			_, _ = e.RotateColumn(col, !dir)
			require.Equal(t, before, e.Lookup(), "col %d", col)
		}
	}
}

func TestEngineRandomWalkInvariants(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(99)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		before, err := e.CurrentCell()
		require.NoError(t, err)
		slotBefore := e.PlayerSlot()

		switch rng.Intn(3) {
		case 0:
			_, err = e.Step(Direction(rng.Intn(4)))
			require.NoError(t, err)
			lookup := e.Lookup()
			require.True(t, lookup.IsPermutation())
			continue
		case 1:
			row := rng.Intn(BoardSize) * BoardSize
			_, err = e.RotateRow(row, rng.Intn(2) == 0)
			require.NoError(t, err)
			if slotBefore/BoardSize != row/BoardSize {
				require.Equal(t, slotBefore, e.PlayerSlot())
			}
		case 2:
			col := rng.Intn(BoardSize)
			_, err = e.RotateColumn(col, rng.Intn(2) == 0)
			require.NoError(t, err)
			if slotBefore%BoardSize != col {
				require.Equal(t, slotBefore, e.PlayerSlot())
			}
		}

		lookup := e.Lookup()
		require.True(t, lookup.IsPermutation(), "iteration %d", i)
		after, err := e.CurrentCell()
		require.NoError(t, err)
		require.Equal(t, before.ID(), after.ID(), "iteration %d", i)
	}
}

func TestEngineRejectsInvalidRotations(t *testing.T) {
	e := newTestEngine(t, WithLockedColumns(2))
	e.NewGame(1966)

	_, _ = e.RotateRow(5, true)
	_, _ = e.Step(West)
	lookup := e.Lookup()
	slot := e.PlayerSlot()

	for _, rowStart := range []int{-5, 1, 7, 12, 24, 25, 30} {
		applied, err := e.RotateRow(rowStart, true)
		require.NoError(t, err)
		require.False(t, applied, "rowStart %d", rowStart)
	}
	for _, colStart := range []int{-1, 2, 5, 10} {
		applied, err := e.RotateColumn(colStart, true)
		require.NoError(t, err)
		require.False(t, applied, "colStart %d", colStart)
	}

	require.Equal(t, lookup, e.Lookup())
	require.Equal(t, slot, e.PlayerSlot())

	applied, err := e.RotateColumn(1, true)
	require.NoError(t, err)
	require.True(t, applied, "unlocked column still rotates")
}

func TestEngineLockedCenterColumn(t *testing.T) {
	e := newTestEngine(t, WithLockedColumns(2))
	e.NewGame(1966)

	applied, err := e.RotateColumn(2, true)
	require.NoError(t, err)
	require.False(t, applied)
	require.Equal(t, Identity(), e.Lookup())
	require.Equal(t, CenterSlot, e.PlayerSlot())
}

func TestEngineNeighborNorth(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1966)

	for slot := 0; slot < BoardSize; slot++ {
		c, err := e.NeighborNorth(slot)
		require.NoError(t, err)
		require.Nil(t, c, "slot %d", slot)
	}

	_, _ = e.RotateRow(5, true)
	c, err := e.NeighborNorth(10)
	require.NoError(t, err)
	require.Equal(t, 9, c.ID(), "row 1 shifted east, slot 5 now holds cell 9")

	_, err = e.NeighborNorth(SlotCount)
	require.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestEngineDestroyAndRestart(t *testing.T) {
	e := newTestEngine(t)
	e.NewGame(1966)
	_, _ = e.Step(East)

	e.Destroy()
	require.Equal(t, StateFinishing, e.State())

	_, err := e.CurrentCell()
	require.ErrorIs(t, err, ErrSessionFinished)
	_, err = e.Step(East)
	require.ErrorIs(t, err, ErrSessionFinished)
	_, err = e.RotateRow(0, true)
	require.ErrorIs(t, err, ErrSessionFinished)

	require.NoError(t, e.Respawn())
	require.Equal(t, StateRunning, e.State())
	require.Equal(t, int64(1966), e.Seed())
	require.Equal(t, CenterSlot, e.PlayerSlot())
	cur, err := e.CurrentCell()
	require.NoError(t, err)
	require.Equal(t, CellStart, cur.Type)
}

func TestLookupTableHelpers(t *testing.T) {
	lt := Identity()
	require.True(t, lt.IsPermutation())
	lt.RotateRow(20, false)
	require.Equal(t, 24, lt.SlotOf(20))
	require.Equal(t, -1, lt.SlotOf(99))

	lt[0] = lt[1]
	require.False(t, lt.IsPermutation())
}
