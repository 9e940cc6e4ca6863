package cell

import (
	"fmt"
	"math/rand"
)

// GeneratorConfig controls board content generation.
type GeneratorConfig struct {
	DeadlyCount  int // number of Deadly cells
	EffectCount  int // number of Effect cells
	StartSlot    int // fixed Start slot
	ReservedSlot int // kept free of Deadly/Effect so an Exit always exists
	ExitSpan     int // a candidate becomes Exit when counter >= floor(r*ExitSpan)
}

// DefaultGeneratorConfig returns the standard board rules.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		DeadlyCount:  9,
		EffectCount:  7,
		StartSlot:    CenterSlot,
		ReservedSlot: SlotCount - 1,
		ExitSpan:     20,
	}
}

// Validate checks that generation with this config always terminates with
// exactly one Start and one Exit.
func (c GeneratorConfig) Validate() error {
	if c.DeadlyCount < 0 || c.EffectCount < 0 {
		return fmt.Errorf("cell: negative cell count (deadly=%d, effect=%d)", c.DeadlyCount, c.EffectCount)
	}
	if c.StartSlot < 0 || c.StartSlot >= SlotCount {
		return fmt.Errorf("cell: start slot %d: %w", c.StartSlot, ErrSlotOutOfRange)
	}
	if c.ReservedSlot < 0 || c.ReservedSlot >= SlotCount {
		return fmt.Errorf("cell: reserved slot %d: %w", c.ReservedSlot, ErrSlotOutOfRange)
	}
	if c.ReservedSlot == c.StartSlot {
		return fmt.Errorf("cell: reserved slot %d overlaps the start slot", c.ReservedSlot)
	}
	if !IsExitCandidate(c.ReservedSlot) {
		return fmt.Errorf("cell: reserved slot %d cannot hold an exit", c.ReservedSlot)
	}
	if free := SlotCount - 2; c.DeadlyCount+c.EffectCount > free {
		return fmt.Errorf("cell: %d deadly + %d effect cells exceed the %d free slots",
			c.DeadlyCount, c.EffectCount, free)
	}
	if c.ExitSpan < 0 {
		return fmt.Errorf("cell: negative exit span %d", c.ExitSpan)
	}
	return nil
}

// IsExitCandidate reports whether slot may hold the Exit: any slot on the
// outer ring, or an inner slot sharing neither row nor column with the center.
func IsExitCandidate(slot int) bool {
	i, j := slot/BoardSize, slot%BoardSize
	last, mid := BoardSize-1, BoardSize/2
	return i == 0 || j == 0 || i == last || j == last || (i != mid && j != mid)
}

// SlotAssignment is the generated content of one board slot.
type SlotAssignment struct {
	Type     CellType
	SubIndex int
	Rnd      float64
}

// Assignment maps every slot to its generated content.
type Assignment struct {
	Seed  int64
	Slots [SlotCount]SlotAssignment
}

// Count returns the number of slots of type t.
func (a Assignment) Count(t CellType) int {
	n := 0
	for _, s := range a.Slots {
		if s.Type == t {
			n++
		}
	}
	return n
}

// SlotsOf returns the slots of type t in row-major order.
func (a Assignment) SlotsOf(t CellType) []int {
	var slots []int
	for i, s := range a.Slots {
		if s.Type == t {
			slots = append(slots, i)
		}
	}
	return slots
}

// Generator produces deterministic board assignments from a seed.
type Generator struct {
	cfg GeneratorConfig
}

// NewGenerator creates a generator after validating cfg.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.cfg
}

// Generate builds the assignment for seed. The same seed always yields the
// same assignment.
func (g *Generator) Generate(seed int64) Assignment {
	rng := rand.New(rand.NewSource(seed))

	deadly := g.pickSlots(rng, g.cfg.DeadlyCount, nil)
	effect := g.pickSlots(rng, g.cfg.EffectCount, deadly)

	a := Assignment{Seed: seed}
	exitChosen := false
	exitCount := 0

	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			slot := i*BoardSize + j
			out := SlotAssignment{SubIndex: NoSubIndex, Rnd: rng.Float64()}
			deadlySub, isDeadly := deadly[slot]
			effectSub, isEffect := effect[slot]

			switch {
			case slot == g.cfg.StartSlot:
				out.Type = CellStart
			case isDeadly:
				out.Type, out.SubIndex = CellDeadly, deadlySub
			case isEffect:
				out.Type, out.SubIndex = CellEffect, effectSub
			case !exitChosen && IsExitCandidate(slot):
				r := rng.Float64()
				exitCount++
				if exitCount >= int(r*float64(g.cfg.ExitSpan)) || slot == g.cfg.ReservedSlot {
					out.Type = CellExit
					exitChosen = true
				} else {
					out.Type = CellSafe
				}
			default:
				out.Type = CellSafe
			}

			a.Slots[slot] = out
		}
	}

	return a
}

// pickSlots draws n distinct slots by rejection sampling, skipping the Start
// slot, the reserved slot and anything in exclude. The value stored for each
// slot is its acceptance order.
func (g *Generator) pickSlots(rng *rand.Rand, n int, exclude map[int]int) map[int]int {
	picked := make(map[int]int, n)
	for len(picked) < n {
		id := rng.Intn(SlotCount)
		if id == g.cfg.StartSlot || id == g.cfg.ReservedSlot {
			continue
		}
		if _, dup := picked[id]; dup {
			continue
		}
		if _, taken := exclude[id]; taken {
			continue
		}
		picked[id] = len(picked)
	}
	return picked
}
