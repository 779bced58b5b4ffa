package debugger

import (
	"fmt"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/handegar/tas2505/regs"
)

const HEX_COLUMNS = 16
const CHANGED_COLOR = "(fg:black,bg:yellow)"
const NAMED_COLOR = "(fg:cyan)"

func renderHexGrid(page uint8, values []uint8, changed map[uint8]bool) {
	table := buildHexTable(page, values, changed)
	table.Title = fmt.Sprintf("  Page %d | cyan: named register | yellow: changed  ", page)
	table.TitleStyle = boxTitleStyle
	table.BorderStyle = ui.NewStyle(ui.ColorGreen)
	table.SetRect(0, 0, uiState.terminalWidth, len(table.Rows)+2)

	ui.Render(table)
}

func buildHexTable(page uint8, values []uint8, changed map[uint8]bool) *widgets.Table {
	table := widgets.NewTable()
	table.RowSeparator = false
	table.Rows = hexRows(page, values, changed)
	table.RowStyles[0] = ui.NewStyle(ui.ColorYellow)
	return table
}

// hexRows lays the values of a page out as a header row plus one row per 16 bytes,
// each starting with its offset.
func hexRows(page uint8, values []uint8, changed map[uint8]bool) [][]string {
	header := []string{""}
	for i := 0; i < HEX_COLUMNS; i++ {
		header = append(header, fmt.Sprintf("%x", i))
	}
	rows := [][]string{header}

	named := make(map[uint8]bool)
	for _, ri := range regs.Registers {
		if ri.Reg.Page() == page {
			named[ri.Reg.Offset()] = true
		}
	}

	for base := 0; base < len(values); base += HEX_COLUMNS {
		row := []string{fmt.Sprintf("%02x", base)}
		for i := base; i < base+HEX_COLUMNS && i < len(values); i++ {
			cell := fmt.Sprintf("%02x", values[i])
			switch {
			case changed[uint8(i)]:
				cell = "[" + cell + "]" + CHANGED_COLOR
			case named[uint8(i)]:
				cell = "[" + cell + "]" + NAMED_COLOR
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}
