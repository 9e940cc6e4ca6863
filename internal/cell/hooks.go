package cell

// Hooks receives player movement notifications from the Engine.
// Calls are synchronous and happen before the move is committed, so
// implementations must not block and must not call back into the Engine.
type Hooks interface {
	PlayerExitCell(c *Cell)
	PlayerEnterCell(c *Cell)
}

// NopHooks ignores every notification.
type NopHooks struct{}

func (NopHooks) PlayerExitCell(*Cell)  {}
func (NopHooks) PlayerEnterCell(*Cell) {}

// HookFuncs adapts plain functions to Hooks. Nil fields are skipped.
type HookFuncs struct {
	OnExit  func(c *Cell)
	OnEnter func(c *Cell)
}

// PlayerExitCell calls OnExit if set.
func (h HookFuncs) PlayerExitCell(c *Cell) {
	if h.OnExit != nil {
		h.OnExit(c)
	}
}

// PlayerEnterCell calls OnEnter if set.
func (h HookFuncs) PlayerEnterCell(c *Cell) {
	if h.OnEnter != nil {
		h.OnEnter(c)
	}
}
