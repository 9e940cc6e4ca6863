package cell

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Engine owns the board cells, the slot lookup table and the player position
// for one session. It is not safe for concurrent use; callers serialize
// operations, typically one input event per tick.
type Engine struct {
	gen    *Generator
	hooks  Hooks
	logger *log.Logger
	locked [BoardSize]bool

	state      SessionState
	seed       int64
	cells      []*Cell
	lookup     LookupTable
	playerSlot int
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks sets the receiver of player enter/exit notifications.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLockedColumns forbids rotating the given columns (0..4).
// Out-of-range values are ignored.
func WithLockedColumns(cols ...int) Option {
	return func(e *Engine) {
		for _, c := range cols {
			if c >= 0 && c < BoardSize {
				e.locked[c] = true
			}
		}
	}
}

// NewEngine creates an uninitialized engine. Call NewGame before anything else.
func NewEngine(gen *Generator, opts ...Option) *Engine {
	e := &Engine{
		gen:    gen,
		hooks:  NopHooks{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewGame generates a board from seed, places the player on the Start slot
// and resets the lookup table. Existing cells are reused.
func (e *Engine) NewGame(seed int64) {
	e.state = StateStarting
	e.seed = seed

	a := e.gen.Generate(seed)
	if len(e.cells) != SlotCount {
		e.cells = make([]*Cell, SlotCount)
		for id := range e.cells {
			e.cells[id] = newCell(id)
		}
	}
	for id, c := range e.cells {
		c.init(a.Slots[id])
	}

	e.lookup = Identity()
	e.playerSlot = e.gen.Config().StartSlot
	e.state = StateRunning

	e.logger.Info("new game",
		"seed", seed,
		"exit", a.SlotsOf(CellExit),
		"deadly", a.Count(CellDeadly),
		"effect", a.Count(CellEffect),
	)
}

// Respawn restarts the current seed: same board, player back on Start.
func (e *Engine) Respawn() error {
	if e.state == StateUninitialized {
		return ErrNotInitialized
	}
	e.NewGame(e.seed)
	return nil
}

// Destroy tears the session down and releases the cells. Every operation
// except NewGame and Respawn fails with ErrSessionFinished afterwards.
// An engine that never started stays uninitialized.
func (e *Engine) Destroy() {
	if e.state == StateUninitialized {
		e.logger.Warn("destroy before first game ignored")
		return
	}
	e.state = StateFinishing
	e.cells = nil
	e.logger.Debug("session finished", "seed", e.seed)
}

// State returns the session lifecycle phase.
func (e *Engine) State() SessionState {
	return e.state
}

// Seed returns the seed of the current board.
func (e *Engine) Seed() int64 {
	return e.seed
}

// PlayerSlot returns the slot the player currently stands on.
func (e *Engine) PlayerSlot() int {
	return e.playerSlot
}

// Lookup returns a copy of the slot to cell-ID table.
func (e *Engine) Lookup() LookupTable {
	return e.lookup
}

func (e *Engine) ready() error {
	switch e.state {
	case StateRunning:
		return nil
	case StateFinishing:
		return ErrSessionFinished
	default:
		return ErrNotInitialized
	}
}

// CurrentCell returns the cell under the player.
func (e *Engine) CurrentCell() (*Cell, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.cells[e.lookup[e.playerSlot]], nil
}

// CellAt returns the cell occupying slot.
func (e *Engine) CellAt(slot int) (*Cell, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if slot < 0 || slot >= SlotCount {
		return nil, fmt.Errorf("cell: slot %d: %w", slot, ErrSlotOutOfRange)
	}
	return e.cells[e.lookup[slot]], nil
}

// Neighbor returns the cell next to slot in direction d, or nil when slot is
// on that edge of the board.
func (e *Engine) Neighbor(slot int, d Direction) (*Cell, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if slot < 0 || slot >= SlotCount {
		return nil, fmt.Errorf("cell: slot %d: %w", slot, ErrSlotOutOfRange)
	}
	next, ok := Adjacent(slot, d)
	if !ok {
		return nil, nil
	}
	return e.cells[e.lookup[next]], nil
}

// NeighborNorth returns the cell directly north of slot, or nil for the top row.
func (e *Engine) NeighborNorth(slot int) (*Cell, error) {
	return e.Neighbor(slot, North)
}

// Step moves the player one slot in direction d. A step off the board is a
// no-op and reports false. On a legal step the hooks see the exit from the
// current cell and the entry into the next one before the move is committed.
func (e *Engine) Step(d Direction) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}

	next, ok := Adjacent(e.playerSlot, d)
	if !ok {
		e.logger.Debug("step blocked", "dir", d, "slot", e.playerSlot)
		return false, nil
	}

	from := e.cells[e.lookup[e.playerSlot]]
	to := e.cells[e.lookup[next]]
	e.hooks.PlayerExitCell(from)
	e.hooks.PlayerEnterCell(to)
	e.playerSlot = next

	e.logger.Debug("step", "dir", d, "slot", next, "cell", to.ID())
	return true, nil
}

// RotateRow cyclically shifts the row whose first slot is rowStart. rowStart
// must be a multiple of 5 in 0..20; other values are logged and ignored.
// The player keeps standing on the same cell.
func (e *Engine) RotateRow(rowStart int, eastward bool) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if rowStart < 0 || rowStart >= SlotCount || rowStart%BoardSize != 0 {
		e.logger.Warn("rotate row rejected", "rowStart", rowStart)
		return false, nil
	}

	playerID := e.lookup[e.playerSlot]
	e.lookup.RotateRow(rowStart, eastward)
	e.follow(playerID, RowSlots(rowStart))

	e.logger.Debug("rotate row", "rowStart", rowStart, "eastward", eastward, "player", e.playerSlot)
	return true, nil
}

// RotateColumn cyclically shifts the column whose top slot is colStart.
// colStart must be in 0..4 and not locked; other values are logged and
// ignored. The player keeps standing on the same cell.
func (e *Engine) RotateColumn(colStart int, northward bool) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	if colStart < 0 || colStart >= BoardSize {
		e.logger.Warn("rotate column rejected", "colStart", colStart)
		return false, nil
	}
	if e.locked[colStart] {
		e.logger.Warn("rotate column rejected: locked", "colStart", colStart)
		return false, nil
	}

	playerID := e.lookup[e.playerSlot]
	e.lookup.RotateColumn(colStart, northward)
	e.follow(playerID, ColumnSlots(colStart))

	e.logger.Debug("rotate column", "colStart", colStart, "northward", northward, "player", e.playerSlot)
	return true, nil
}

// follow moves playerSlot to wherever playerID landed among the rotated
// slots. A player outside those slots is not affected.
func (e *Engine) follow(playerID int, slots [BoardSize]int) {
	for _, s := range slots {
		if e.lookup[s] == playerID {
			e.playerSlot = s
			return
		}
	}
}
