package debugger

import (
	"fmt"
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/handegar/tas2505/decode"
	"github.com/handegar/tas2505/regmap"
	"github.com/handegar/tas2505/regs"
	"github.com/handegar/tas2505/settings"
)

var ErrNotATerminal = errors.New("stdout is not a terminal")

const (
	MainScreen int = iota
	HexScreen
	HelpScreen
)

type UIState struct {
	terminalWidth  int
	terminalHeight int
	centerLine     int

	currentScreen int
	page          uint8
	cursor        int
	values        [regs.PageSize]uint8
	changed       map[uint8]bool
	seen          map[uint8][regs.PageSize]uint8 // last read of each page

	registerView    *widgets.Paragraph
	infoView        *widgets.Paragraph
	helpLineView    *widgets.Paragraph
	versionLineView *widgets.Paragraph
}

var uiState UIState

var boxTitleStyle = ui.NewStyle(ui.ColorRed, ui.ColorBlue)

// IsTerminal reports whether stdout can host the viewer.
func IsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func Init() {
	width, height := ui.TerminalDimensions()
	uiState.terminalHeight = height
	uiState.terminalWidth = width
	uiState.centerLine = max(width/2, 56)
	uiState.changed = make(map[uint8]bool)
	uiState.seen = make(map[uint8][regs.PageSize]uint8)
}

// Run shows the register viewer until the user quits.
func Run(m *regmap.Map) error {
	if !IsTerminal() {
		return ErrNotATerminal
	}
	if err := ui.Init(); err != nil {
		return errors.Wrap(err, "initializing termui")
	}
	defer ui.Close()

	Init()
	if err := refresh(m); err != nil {
		return err
	}
	UpdateScreen()
	for {
		switch WaitForInput() {
		case "quit":
			return nil
		case "toggle page":
			uiState.page ^= 1
			uiState.cursor = 0
			fallthrough
		case "refresh":
			if err := refresh(m); err != nil {
				return err
			}
			UpdateScreen()
		}
	}
}

func refresh(m *regmap.Map) error {
	b, err := m.ReadPage(uiState.page)
	if err != nil {
		return err
	}
	// Only a previous read of the same page counts as a change.
	if last, ok := uiState.seen[uiState.page]; ok {
		uiState.changed = changedOffsets(last, b)
	} else {
		uiState.changed = make(map[uint8]bool)
	}
	uiState.seen[uiState.page] = b
	uiState.values = b
	return nil
}

func changedOffsets(old, cur [regs.PageSize]uint8) map[uint8]bool {
	ch := make(map[uint8]bool)
	for i := range cur {
		if old[i] != cur[i] {
			ch[uint8(i)] = true
		}
	}
	return ch
}

/*
Returns the Event.ID string for events which is relevant for others
(quit, refresh etc.)
*/
func WaitForInput() string {
	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			if uiState.currentScreen != MainScreen {
				uiState.currentScreen = MainScreen
				UpdateScreen()
			} else {
				return "quit"
			}
		case "p":
			return "toggle page"
		case "r", "<F5>":
			return "refresh"
		case "n", "<Down>":
			moveCursor(1)
		case "<Up>":
			moveCursor(-1)
		case "h", "<F1>", "?":
			toggleScreen(HelpScreen)
		case "m", "<F2>":
			toggleScreen(HexScreen)
		case "<Resize>":
			Init()
			ui.Clear()
			UpdateScreen()
		}
	}

	return ""
}

func toggleScreen(s int) {
	if uiState.currentScreen == s {
		uiState.currentScreen = MainScreen
	} else {
		uiState.currentScreen = s
	}
	ui.Clear()
	UpdateScreen()
}

func moveCursor(d int) {
	n := len(pageRegisters(uiState.page))
	uiState.cursor = (uiState.cursor + d + n) % n
	UpdateScreen()
}

func UpdateScreen() {
	switch uiState.currentScreen {
	case HelpScreen:
		renderHelpScreen()
	case HexScreen:
		renderHexGrid(uiState.page, uiState.values[:], uiState.changed)
	default:
		renderMainScreen()
	}
}

func renderMainScreen() {
	updateRegisterView()
	updateInfoView()
	updateHelpLineView()
	updateVersionLineView()

	ui.Render(uiState.registerView, uiState.infoView, uiState.helpLineView,
		uiState.versionLineView)
}

// pageRegisters lists the named registers of a page, PAGECTL excluded.
func pageRegisters(page uint8) []regs.RegInfo {
	var l []regs.RegInfo
	for _, ri := range regs.Registers {
		if ri.Reg.Page() == page && ri.Reg.Offset() != 0 {
			l = append(l, ri)
		}
	}
	return l
}

func registerListing(page uint8, values [regs.PageSize]uint8, cursor int, changed map[uint8]bool) string {
	var lines []string
	for i, ri := range pageRegisters(page) {
		off := ri.Reg.Offset()
		nameColor := "fg:cyan"
		valColor := "fg:white"
		if changed[off] {
			valColor = "fg:black,bg:yellow"
		}
		if i == cursor {
			nameColor = "fg:black,bg:white,mod:bold"
		}
		lines = append(lines, fmt.Sprintf(" [%3d](fg:yellow) [%-22s](%s) [0x%02x](%s)  %s",
			off, ri.Name, nameColor, values[off], valColor, decode.Line(ri.Reg, values[off])))
	}
	return strings.Join(lines, "\n")
}

func infoText(r regs.Reg, v uint8) string {
	doc := decode.Docs[r]
	s := fmt.Sprintf("[%s](fg:red): [%s](fg:yellow) (%s)\n[%s](fg:cyan)\n",
		r, doc.Short, doc.Access, doc.Long)
	for _, fv := range decode.Fields(r, v) {
		s += fmt.Sprintf(" [%s](fg:yellow) %s\n", fv.Field.Name, fv.Field.Format(fv.Value))
	}
	if a := decode.Annotate(r, v); a != "" {
		s += fmt.Sprintf(" [Level:](fg:yellow) %s\n", a)
	}
	return s
}

func updateRegisterView() {
	height := uiState.terminalHeight - 1

	p := widgets.NewParagraph()
	p.Title = fmt.Sprintf("  Page %d  ", uiState.page)
	p.TitleStyle = boxTitleStyle
	p.BorderStyle = ui.NewStyle(ui.ColorGreen)
	p.Text = registerListing(uiState.page, uiState.values, uiState.cursor, uiState.changed)
	p.SetRect(0, 0, uiState.centerLine, height)

	uiState.registerView = p
}

func updateInfoView() {
	height := uiState.terminalHeight - 1
	ri := pageRegisters(uiState.page)[uiState.cursor]

	p := widgets.NewParagraph()
	p.Title = "  Info  "
	p.TitleStyle = boxTitleStyle
	p.Text = infoText(ri.Reg, uiState.values[ri.Reg.Offset()])
	p.WrapText = true
	p.SetRect(uiState.centerLine, 0, uiState.terminalWidth, height)

	uiState.infoView = p
}

func updateHelpLineView() {
	helpLine := widgets.NewParagraph()
	helpLine.Text =
		"[ESC/q:](fg:black) Quit [|](fg:white,bg:black) " +
			"[F1/h/?:](fg:black) Help [|](fg:white,bg:black) " +
			"[p:](fg:black) Page [|](fg:white,bg:black) " +
			"[m:](fg:black) Hex [|](fg:white,bg:black) " +
			"[r:](fg:black) Refresh "

	helpLine.Border = false
	helpLine.TextStyle = boxTitleStyle
	helpLine.SetRect(0, uiState.terminalHeight-1, uiState.terminalWidth, uiState.terminalHeight)

	uiState.helpLineView = helpLine
}

func updateVersionLineView() {
	versionP := widgets.NewParagraph()
	versionP.Border = false
	versionP.PaddingBottom = 0
	versionP.PaddingTop = 0
	versionP.PaddingLeft = 0
	versionP.PaddingRight = 0
	versionP.Text = fmt.Sprintf("[v%s](fg:blue)", settings.Version)
	versionP.SetRect(uiState.terminalWidth-len(settings.Version)-6, uiState.terminalHeight-1,
		uiState.terminalWidth-3, uiState.terminalHeight)

	uiState.versionLineView = versionP
}

func renderHelpScreen() {
	ypos := 0

	frame := widgets.NewParagraph()
	frame.Title = "  Help / Keys  "
	frame.TitleStyle = boxTitleStyle
	frame.SetRect(0, 0, uiState.terminalWidth, uiState.terminalHeight)
	ypos += 1

	keys := widgets.NewList()
	keys.Border = false
	keys.TextStyle = ui.NewStyle(ui.ColorYellow)
	keys.SelectedRowStyle = ui.NewStyle(ui.ColorCyan)

	keys.Rows = append(keys.Rows, "Keys:")
	keys.Rows = append(keys.Rows, " h, F1, ?:          [This help-page](fg:white)")
	keys.Rows = append(keys.Rows, " ESC, q, CTRL-C:    [Quit viewer / exit help](fg:white)")
	keys.Rows = append(keys.Rows, " p:                 [Switch between page 0 and 1](fg:white)")
	keys.Rows = append(keys.Rows, " m, F2:             [Hex grid of the whole page](fg:white)")
	keys.Rows = append(keys.Rows, " r, F5:             [Read the page again](fg:white)")
	keys.Rows = append(keys.Rows, " n, Down / Up:      [Select register](fg:white)")

	keys.SetRect(1, ypos, uiState.terminalWidth-1, ypos+len(keys.Rows)+2)
	ypos += len(keys.Rows) + 1

	help := widgets.NewParagraph()
	help.Border = false
	help.Text = "[Colours:](fg:cyan)\n" +
		" [0x00](fg:black,bg:yellow):  Changed since the previous read.\n" +
		" [NAME](fg:black,bg:white):  Selected register, described on the right.\n"
	help.SetRect(1, ypos, uiState.terminalWidth-1, uiState.terminalHeight-1)

	ui.Render(frame, keys, help)
}
