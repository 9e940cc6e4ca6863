// Package cell implements the board of The Cell: a seeded Board Generator and
// a Grid Engine that moves a player over a 5x5 board whose rows and columns
// can be rotated.
//
// The package has no UI dependencies. Presentation layers observe the engine
// through Hooks and read-only queries.
package cell

import "fmt"

// Board geometry.
const (
	BoardSize  = 5
	SlotCount  = BoardSize * BoardSize
	CenterSlot = (BoardSize / 2) * (BoardSize + 1) // 12
)

// CellType is the gameplay category of a cell.
type CellType int

const (
	CellUndefined CellType = iota // not initialized
	CellStart
	CellExit
	CellSafe
	CellEffect
	CellDeadly
)

// String returns a human-readable name for the cell type.
func (t CellType) String() string {
	switch t {
	case CellUndefined:
		return "Undefined"
	case CellStart:
		return "Start"
	case CellExit:
		return "Exit"
	case CellSafe:
		return "Safe"
	case CellEffect:
		return "Effect"
	case CellDeadly:
		return "Deadly"
	default:
		return "Unknown"
	}
}

// CellSubType names the concrete variant of a Deadly or Effect cell.
type CellSubType int

const (
	SubFire CellSubType = iota
	SubGas
	SubWater
	SubLasers
	SubIllusion
	SubBlind
	SubScreen
	SubVortex
	SubOneLook
	SubEmpty
	SubTunnel
)

var subTypeNames = [...]string{
	SubFire:     "Fire",
	SubGas:      "Gas",
	SubWater:    "Water",
	SubLasers:   "Lasers",
	SubIllusion: "Illusion",
	SubBlind:    "Blind",
	SubScreen:   "Screen",
	SubVortex:   "Vortex",
	SubOneLook:  "OneLook",
	SubEmpty:    "Empty",
	SubTunnel:   "Tunnel",
}

// String returns a human-readable name for the sub-type.
func (s CellSubType) String() string {
	if s < 0 || int(s) >= len(subTypeNames) {
		return "Unknown"
	}
	return subTypeNames[s]
}

// Sub-types available to each category. A sub-index cycles through its list.
var (
	DeadlySubTypes = []CellSubType{SubFire, SubGas, SubWater, SubLasers}
	EffectSubTypes = []CellSubType{SubIllusion, SubBlind, SubScreen, SubVortex, SubOneLook, SubEmpty, SubTunnel}
)

// NoSubIndex marks a cell that carries no sub-type.
const NoSubIndex = -1

// Cell is one physical board cell. Its ID is assigned once when the cell is
// created and never changes; the slot it occupies is tracked by the engine's
// LookupTable.
type Cell struct {
	id       int
	Type     CellType
	SubIndex int     // order in which the generator picked this slot, or NoSubIndex
	Rnd      float64 // presentation draw in [0,1), unused by game logic
	X, Y     int     // logical position at creation, for visualization only
}

func newCell(id int) *Cell {
	return &Cell{
		id:       id,
		SubIndex: NoSubIndex,
		X:        id % BoardSize,
		Y:        id / BoardSize,
	}
}

// ID returns the immutable identity of the cell.
func (c *Cell) ID() int {
	return c.id
}

// init applies a generated slot assignment to an existing cell.
func (c *Cell) init(a SlotAssignment) {
	c.Type = a.Type
	c.SubIndex = a.SubIndex
	c.Rnd = a.Rnd
	c.X = c.id % BoardSize
	c.Y = c.id / BoardSize
}

// HasSubType reports whether the cell is a Deadly or Effect cell with a sub-index.
func (c *Cell) HasSubType() bool {
	return (c.Type == CellDeadly || c.Type == CellEffect) && c.SubIndex >= 0
}

// SubType returns the variant of a Deadly or Effect cell.
// ok is false for every other cell.
func (c *Cell) SubType() (sub CellSubType, ok bool) {
	if !c.HasSubType() {
		return 0, false
	}
	list := EffectSubTypes
	if c.Type == CellDeadly {
		list = DeadlySubTypes
	}
	return list[c.SubIndex%len(list)], true
}

// String returns a compact description, e.g. "#7 Deadly/Gas".
func (c *Cell) String() string {
	if sub, ok := c.SubType(); ok {
		return fmt.Sprintf("#%d %s/%s", c.id, c.Type, sub)
	}
	return fmt.Sprintf("#%d %s", c.id, c.Type)
}

// Direction is a cardinal step direction on the board.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Adjacent returns the slot next to slot in direction d.
// ok is false when the step would leave the board.
func Adjacent(slot int, d Direction) (next int, ok bool) {
	if slot < 0 || slot >= SlotCount {
		return slot, false
	}
	switch d {
	case North:
		if slot > BoardSize-1 {
			return slot - BoardSize, true
		}
	case South:
		if slot < SlotCount-BoardSize {
			return slot + BoardSize, true
		}
	case East:
		if slot%BoardSize != BoardSize-1 {
			return slot + 1, true
		}
	case West:
		if slot%BoardSize != 0 {
			return slot - 1, true
		}
	}
	return slot, false
}

// SessionState is the lifecycle phase of an Engine.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateStarting
	StateRunning
	StateFinishing
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateFinishing:
		return "Finishing"
	default:
		return "Unknown"
	}
}
