package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/u6170252806-cmd/EmberOS-sub001/arm64"
	"github.com/u6170252806-cmd/EmberOS-sub001/asm"
	"github.com/u6170252806-cmd/EmberOS-sub001/emulator"
)

const debuggerHelp = "[yellow]n[white] step  [yellow]space[white] run/pause  [yellow]r[white] reset  [yellow]q[white] quit"

// debugger is the terminal front end for single stepping a program.
type debugger struct {
	app *tview.Application
	emu *emulator.Emulator

	registers *tview.Table
	code      *tview.Table
	console   *tview.TextView
	canvas    *tview.Box
	status    *tview.TextView

	cancel context.CancelFunc

	rows    map[uint64]int // Code table row of each address.
	running bool
	done    bool
	err     error
}

func newDebugger(emu *emulator.Emulator) (dbg *debugger) {
	dbg = &debugger{
		app: tview.NewApplication(),
		emu: emu,

		registers: tview.NewTable().SetBorders(false),
		code:      tview.NewTable().SetBorders(false).SetSelectable(true, false),
		console:   tview.NewTextView().SetScrollable(true),
		canvas:    tview.NewBox(),
		status:    tview.NewTextView().SetDynamicColors(true),

		rows: map[uint64]int{},
	}

	dbg.registers.SetTitle("Registers").SetBorder(true)
	dbg.code.SetTitle("Code").SetBorder(true)
	dbg.console.SetTitle("Console").SetBorder(true)
	dbg.console.ScrollToEnd()
	dbg.canvas.SetTitle("Canvas").SetBorder(true)
	dbg.canvas.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		emu.Canvas.Draw(screen, x+1, y+1)
		return x + 1, y + 1, width - 2, height - 2
	})

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(dbg.code, 0, 3, true).
		AddItem(dbg.console, 0, 2, false)
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(dbg.registers, 36, 0, false).
		AddItem(dbg.canvas, 0, 1, false)
	body := tview.NewFlex().
		AddItem(left, 0, 2, true).
		AddItem(right, 0, 1, false)
	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(dbg.status, 1, 0, false)

	dbg.app.SetRoot(root, true)
	dbg.app.SetInputCapture(dbg.key)

	emu.Console.Output = dbg.console

	dbg.loadCode()

	return
}

// loadCode fills the code table from the program listing.
func (dbg *debugger) loadCode() {
	prog := dbg.emu.Program
	row := 0
	for addr, word := range prog.Words() {
		if label, ok := prog.Label(addr); ok {
			dbg.code.SetCell(row, 0, tview.NewTableCell(label+":").
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			row++
		}
		lineno := ""
		if n, ok := prog.Line(addr); ok {
			lineno = fmt.Sprint(n)
		}
		dbg.rows[addr] = row
		for col, text := range []string{
			fmt.Sprintf("%08x", addr),
			fmt.Sprintf("%08x", uint32(word)),
			lineno,
			asm.Disassemble(word, addr),
		} {
			dbg.code.SetCell(row, col+1, tview.NewTableCell(text))
		}
		row++
	}
}

func (dbg *debugger) key(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		dbg.stop()
		return nil
	}
	switch event.Rune() {
	case 'q':
		dbg.stop()
	case 'n':
		dbg.running = false
		dbg.step()
	case ' ':
		dbg.running = !dbg.running
	case 'r':
		dbg.running = false
		dbg.reset()
	default:
		return event
	}
	dbg.draw()
	return nil
}

// stop ends the ticker before the event loop, which no longer drains
// queued updates once stopped.
func (dbg *debugger) stop() {
	if dbg.cancel != nil {
		dbg.cancel()
	}
	dbg.app.Stop()
}

func (dbg *debugger) reset() {
	dbg.console.Clear()
	dbg.err = dbg.emu.Reset()
	dbg.done = dbg.err != nil
}

func (dbg *debugger) step() {
	if dbg.done {
		dbg.running = false
		return
	}
	dbg.done, dbg.err = dbg.emu.Tick()
	if dbg.err != nil {
		dbg.done = true
	}
	if dbg.done {
		dbg.running = false
	}
}

func (dbg *debugger) draw() {
	cpu := dbg.emu.Cpu

	for reg := range arm64.Reg(31) {
		dbg.registers.SetCell(int(reg), 0, tview.NewTableCell(arm64.RegName(reg, true, false)).SetTextColor(tcell.ColorAqua))
		dbg.registers.SetCell(int(reg), 1, tview.NewTableCell(fmt.Sprintf("%016x", cpu.Register[reg])))
	}
	for n, entry := range []struct {
		name  string
		value uint64
	}{
		{"sp", cpu.Sp},
		{"pc", cpu.Pc},
		{"nzcv", uint64(cpu.Flags())},
	} {
		dbg.registers.SetCell(31+n, 0, tview.NewTableCell(entry.name).SetTextColor(tcell.ColorAqua))
		dbg.registers.SetCell(31+n, 1, tview.NewTableCell(fmt.Sprintf("%016x", entry.value)))
	}

	if row, ok := dbg.rows[cpu.Pc]; ok {
		dbg.code.Select(row, 0)
	}

	state := "paused"
	switch {
	case dbg.err != nil:
		state = "[red]" + dbg.err.Error() + "[white]"
	case dbg.done:
		state = "done"
	case dbg.running:
		state = "running"
	}
	dbg.status.SetText(fmt.Sprintf("%s  ticks %d  line %d  %s", debuggerHelp, dbg.emu.Ticks(), dbg.emu.LineNo(), state))
}

// run ticks a running program from the event loop until ctx is done.
func (dbg *debugger) run(ctx context.Context) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			dbg.app.QueueUpdateDraw(func() {
				for n := 0; dbg.running && n < 1000; n++ {
					dbg.step()
				}
				dbg.draw()
			})
		}
	}
}

// runDebugger runs the loaded program under the terminal debugger, and
// returns the runtime error the program stopped with, if any.
func runDebugger(emu *emulator.Emulator) (err error) {
	// The program must not block the user interface.
	emu.Sleep = nil

	dbg := newDebugger(emu)
	dbg.reset()
	dbg.draw()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dbg.cancel = cancel
	go dbg.run(ctx)

	err = dbg.app.Run()
	if err != nil {
		return
	}

	err = dbg.err
	return
}
