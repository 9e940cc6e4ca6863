package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JocelynWeiss/theCell/internal/cell"
)

var flagProbeRow int

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the board generated for a seed",
	Long: `Generate a board and print every room, its type and sub-type.

The seed comes from --seed, --random or the configured default. With
--probe-row, the north neighbour of every slot in that row (0-4) is
printed as well.

Examples:
  thecell board
  thecell board --seed 42
  thecell board --difficulty hard --probe-row 2`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func init() {
	boardCmd.Flags().IntVar(&flagProbeRow, "probe-row", -1, "Print north neighbours of this row (0-4)")
}

var boardStyles = map[cell.CellType]lipgloss.Style{
	cell.CellStart:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	cell.CellExit:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	cell.CellSafe:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	cell.CellEffect: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	cell.CellDeadly: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

const boardColW = 21

func runBoard(cmd *cobra.Command, _ []string) {
	if flagProbeRow >= cell.BoardSize {
		fail("--probe-row must be between 0 and %d", cell.BoardSize-1)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	gen, err := cell.NewGenerator(cfg.GeneratorConfig())
	if err != nil {
		fail("%v", err)
	}
	engine := cell.NewEngine(gen,
		cell.WithLogger(logger),
		cell.WithLockedColumns(cfg.Board.LockedColumns...),
	)

	seed, set := resolveSeed(cmd)
	if !set {
		seed = cfg.Session.DefaultSeed
	}
	engine.NewGame(seed)

	color := term.IsTerminal(int(os.Stdout.Fd()))

	fmt.Printf("Board for seed %d (%d deadly, %d effect)\n\n", seed, cfg.Board.DeadlyCells, cfg.Board.EffectCells)

	var header strings.Builder
	header.WriteString("    ")
	for col := 0; col < cell.BoardSize; col++ {
		fmt.Fprintf(&header, "%-*d", boardColW, col)
	}
	fmt.Println(header.String())

	for row := 0; row < cell.BoardSize; row++ {
		var line strings.Builder
		fmt.Fprintf(&line, "%d   ", row)
		for col := 0; col < cell.BoardSize; col++ {
			c, err := engine.CellAt(row*cell.BoardSize + col)
			if err != nil {
				fail("%v", err)
			}
			line.WriteString(formatRoom(c, color))
		}
		fmt.Println(line.String())
	}

	var exits []string
	for slot := 0; slot < cell.SlotCount; slot++ {
		if c, _ := engine.CellAt(slot); c != nil && c.Type == cell.CellExit {
			exits = append(exits, fmt.Sprintf("%d", slot))
		}
	}
	fmt.Printf("\nExit slots: %s\n", strings.Join(exits, ", "))

	if flagProbeRow >= 0 {
		fmt.Printf("\nNorth neighbours of row %d:\n", flagProbeRow)
		for col := 0; col < cell.BoardSize; col++ {
			slot := flagProbeRow*cell.BoardSize + col
			north, err := engine.NeighborNorth(slot)
			if err != nil {
				fail("%v", err)
			}
			if north == nil {
				fmt.Printf("  slot %2d: none (top edge)\n", slot)
				continue
			}
			fmt.Printf("  slot %2d: %s\n", slot, north)
		}
	}
}

// formatRoom pads a room label to the column width, coloring it by type.
func formatRoom(c *cell.Cell, color bool) string {
	label := fmt.Sprintf("%-*s", boardColW, c.String())
	if !color {
		return label
	}
	return boardStyles[c.Type].Render(label)
}
