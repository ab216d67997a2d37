package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/u6170252806-cmd/EmberOS-sub001/asm"
	"github.com/u6170252806-cmd/EmberOS-sub001/emulator"
)

func TestDebugger_Quit(t *testing.T) {
	assert := assert.New(t)

	img, err := (&asm.Assembler{}).Assemble(strings.NewReader("loop: b loop"))
	if !assert.NoError(err) {
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = img

	dbg := newDebugger(emu)
	screen := tcell.NewSimulationScreen("UTF-8")
	dbg.app.SetScreen(screen)
	dbg.reset()
	dbg.running = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dbg.cancel = cancel

	ticking := make(chan struct{})
	go func() {
		dbg.run(ctx)
		close(ticking)
	}()

	done := make(chan error, 1)
	go func() {
		done <- dbg.app.Run()
	}()

	// Let the program run for a while, then quit.
	time.Sleep(200 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err = <-done:
		assert.NoError(err)
	case <-time.After(5 * time.Second):
		assert.Fail("debugger did not quit")
		return
	}

	select {
	case <-ticking:
	case <-time.After(5 * time.Second):
		assert.Fail("ticker still running after quit")
	}

	assert.Greater(emu.Ticks(), 0)
}
