package thecell

import (
	"fmt"

	"github.com/JocelynWeiss/theCell/internal/cell"
	"github.com/JocelynWeiss/theCell/internal/core"
)

// Board geometry in screen characters.
const (
	roomW     = 8 // inner width of a room
	roomH     = 2 // inner height of a room
	hudHeight = 2
	boardW    = cell.BoardSize*(roomW+1) + 1
	boardH    = cell.BoardSize*(roomH+1) + 1

	minScreenW = boardW
	minScreenH = hudHeight + boardH + 2
)

var typeColors = map[cell.CellType]core.Color{
	cell.CellStart:  core.ColorGreen,
	cell.CellExit:   core.ColorBrightCyan,
	cell.CellSafe:   core.ColorBlue,
	cell.CellEffect: core.ColorYellow,
	cell.CellDeadly: core.ColorRed,
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	grid := core.NewGrid((dst.Width()-boardW)/2, hudHeight, cell.BoardSize, cell.BoardSize, roomW, roomH)
	dst.DrawGrid(grid, core.ColorGray)
	if g.engine != nil && g.engine.State() == cell.StateRunning {
		g.renderRooms(dst, grid)
	}

	if g.lastEvent != "" {
		dst.DrawTextCentered(grid.Bounds().Bottom(), g.lastEvent)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "You escaped!", fmt.Sprintf("Score: %d  R replay  N new board", g.score))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "R replay  N new board")
	case g.dead:
		g.renderOverlay(dst, "You died", fmt.Sprintf("Lives left: %d  R respawn", g.lives))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the status bar and its separator.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Seed: %d  Moves: %d  Rotations: %d  Lives: %d",
		g.Title(), g.seed, g.moves, g.rotations, g.lives)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	for x, w := 0, dst.Width(); x < w; x++ {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}
}

// renderRooms labels each room with its type and sub-type. Unvisited rooms
// stay hidden while fog is on.
func (g *Game) renderRooms(dst *core.Screen, grid core.Grid) {
	player := g.engine.PlayerSlot()
	for slot := 0; slot < cell.SlotCount; slot++ {
		c, err := g.engine.CellAt(slot)
		if err != nil {
			return
		}
		room := grid.Room(slot%cell.BoardSize, slot/cell.BoardSize)
		x, y := room.X, room.Y

		label, detail := "?", ""
		color := core.ColorGray
		if !g.cfg.Session.Fog || g.visited[c.ID()] {
			label = c.Type.String()
			color = typeColors[c.Type]
			if sub, ok := c.SubType(); ok {
				detail = sub.String()
			}
		}
		dst.DrawTextColor(x+centerOffset(label), y, fit(label), color)

		if slot == player {
			dst.SetColor(x+roomW/2, y+1, '@', core.ColorBrightWhite)
		} else if detail != "" {
			dst.DrawTextColor(x+centerOffset(detail), y+1, fit(detail), color)
		}
	}
}

// fit truncates s to the inner room width.
func fit(s string) string {
	r := []rune(s)
	if len(r) > roomW {
		return string(r[:roomW])
	}
	return s
}

func centerOffset(s string) int {
	n := len([]rune(fit(s)))
	return (roomW - n) / 2
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	r := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 5)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+1, line1)
	dst.DrawTextCentered(r.Y+3, line2)
}
