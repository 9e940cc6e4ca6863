package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, cfg GeneratorConfig) *Generator {
	t.Helper()
	gen, err := NewGenerator(cfg)
	require.NoError(t, err)
	return gen
}

func TestGenerateDeterministic(t *testing.T) {
	gen := newTestGenerator(t, DefaultGeneratorConfig())

	for seed := int64(-50); seed <= 200; seed++ {
		a := gen.Generate(seed)
		b := gen.Generate(seed)
		require.Equal(t, a, b, "seed %d produced two different boards", seed)
	}
}

func TestGenerateInvariants(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	gen := newTestGenerator(t, cfg)

	for seed := int64(0); seed < 500; seed++ {
		a := gen.Generate(seed)

		require.Equal(t, []int{CenterSlot}, a.SlotsOf(CellStart), "seed %d", seed)
		require.Len(t, a.SlotsOf(CellExit), 1, "seed %d", seed)
		require.Equal(t, cfg.DeadlyCount, a.Count(CellDeadly), "seed %d", seed)
		require.Equal(t, cfg.EffectCount, a.Count(CellEffect), "seed %d", seed)
		require.Equal(t, SlotCount-2-cfg.DeadlyCount-cfg.EffectCount, a.Count(CellSafe), "seed %d", seed)
		require.Zero(t, a.Count(CellUndefined), "seed %d", seed)

		requireContiguousSubIndices(t, a, CellDeadly, cfg.DeadlyCount)
		requireContiguousSubIndices(t, a, CellEffect, cfg.EffectCount)

		exit := a.SlotsOf(CellExit)[0]
		require.True(t, IsExitCandidate(exit), "seed %d: exit at non-candidate slot %d", seed, exit)

		reserved := a.Slots[cfg.ReservedSlot].Type
		require.Contains(t, []CellType{CellExit, CellSafe}, reserved, "seed %d", seed)

		for slot, s := range a.Slots {
			require.GreaterOrEqual(t, s.Rnd, 0.0)
			require.Less(t, s.Rnd, 1.0)
			if s.Type != CellDeadly && s.Type != CellEffect {
				require.Equal(t, NoSubIndex, s.SubIndex, "seed %d slot %d", seed, slot)
			}
		}
	}
}

func requireContiguousSubIndices(t *testing.T, a Assignment, typ CellType, n int) {
	t.Helper()
	seen := make([]bool, n)
	for _, slot := range a.SlotsOf(typ) {
		idx := a.Slots[slot].SubIndex
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		require.False(t, seen[idx], "duplicate %s sub-index %d", typ, idx)
		seen[idx] = true
	}
}

func TestGenerateReservedSlotFallback(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.ExitSpan = 1 << 30 // the counter rule practically never fires

	gen := newTestGenerator(t, cfg)
	for seed := int64(0); seed < 100; seed++ {
		a := gen.Generate(seed)
		require.Equal(t, []int{cfg.ReservedSlot}, a.SlotsOf(CellExit), "seed %d", seed)
	}
}

func TestGenerateZeroSpanPicksFirstCandidate(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.ExitSpan = 0 // floor(r*0) == 0, the first free candidate wins

	gen := newTestGenerator(t, cfg)
	for seed := int64(0); seed < 100; seed++ {
		a := gen.Generate(seed)

		first := -1
		for slot, s := range a.Slots {
			if s.Type != CellDeadly && s.Type != CellEffect && s.Type != CellStart && IsExitCandidate(slot) {
				first = slot
				break
			}
		}
		require.Equal(t, []int{first}, a.SlotsOf(CellExit), "seed %d", seed)
	}
}

func TestGenerateEmptyBoard(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.DeadlyCount = 0
	cfg.EffectCount = 0

	a := newTestGenerator(t, cfg).Generate(1966)
	require.Equal(t, 1, a.Count(CellStart))
	require.Equal(t, 1, a.Count(CellExit))
	require.Equal(t, SlotCount-2, a.Count(CellSafe))
}

func TestGenerateFullBoard(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.DeadlyCount = 12
	cfg.EffectCount = 11

	a := newTestGenerator(t, cfg).Generate(7)
	require.Equal(t, []int{cfg.ReservedSlot}, a.SlotsOf(CellExit))
	require.Zero(t, a.Count(CellSafe))
}

func TestIsExitCandidate(t *testing.T) {
	never := map[int]bool{7: true, 11: true, 12: true, 13: true, 17: true}
	for slot := 0; slot < SlotCount; slot++ {
		require.Equal(t, !never[slot], IsExitCandidate(slot), "slot %d", slot)
	}
}

func TestGeneratorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GeneratorConfig)
		wantErr bool
	}{
		{"defaults", func(*GeneratorConfig) {}, false},
		{"negative deadly", func(c *GeneratorConfig) { c.DeadlyCount = -1 }, true},
		{"too many cells", func(c *GeneratorConfig) { c.DeadlyCount, c.EffectCount = 20, 4 }, true},
		{"exactly full", func(c *GeneratorConfig) { c.DeadlyCount, c.EffectCount = 20, 3 }, false},
		{"start out of range", func(c *GeneratorConfig) { c.StartSlot = 25 }, true},
		{"reserved on start", func(c *GeneratorConfig) { c.ReservedSlot = CenterSlot }, true},
		{"reserved not a candidate", func(c *GeneratorConfig) { c.ReservedSlot = 7 }, true},
		{"negative span", func(c *GeneratorConfig) { c.ExitSpan = -3 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			tc.mutate(&cfg)
			_, err := NewGenerator(cfg)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCellSubType(t *testing.T) {
	c := newCell(3)
	c.init(SlotAssignment{Type: CellDeadly, SubIndex: 5})
	sub, ok := c.SubType()
	require.True(t, ok)
	require.Equal(t, SubGas, sub) // 5 % 4 == 1

	c.init(SlotAssignment{Type: CellEffect, SubIndex: 6})
	sub, ok = c.SubType()
	require.True(t, ok)
	require.Equal(t, SubTunnel, sub)

	c.init(SlotAssignment{Type: CellSafe, SubIndex: NoSubIndex})
	_, ok = c.SubType()
	require.False(t, ok)
	require.Equal(t, "#3 Safe", c.String())
}
