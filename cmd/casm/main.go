package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/u6170252806-cmd/EmberOS-sub001/asm"
	"github.com/u6170252806-cmd/EmberOS-sub001/emulator"
	"github.com/u6170252806-cmd/EmberOS-sub001/io"
	"github.com/u6170252806-cmd/EmberOS-sub001/translate"
)

func main() {
	var compile string
	var binary string
	var disasm string
	var save string
	var run bool
	var debug bool
	var filesys string
	var input string
	var output string
	var verbose bool
	var optimize bool
	defines := map[string]int64{}

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&save, "o", "", "Save the assembled image to a binary file")
	flag.BoolVar(&run, "r", false, "Run the assembled program")
	flag.StringVar(&binary, "x", "", "Binary file to load and run")
	flag.StringVar(&disasm, "d", "", "Binary file to disassemble")
	flag.BoolVar(&debug, "t", false, "Run under the terminal debugger")
	flag.StringVar(&filesys, "fs", "", "Directory backing the file store")
	flag.StringVar(&input, "i", "-", "Console input")
	flag.StringVar(&output, "out", "-", "Console output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&optimize, "O", true, "Enable the peephole optimizer")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(text string) (err error) {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			err = errors.New(translate.From("expected NAME=VALUE"))
			return
		}
		defines[name], err = strconv.ParseInt(value, 0, 64)
		return
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 && len(binary) == 0 && len(disasm) == 0 {
		translate.Fprintf(os.Stderr, "%v: nothing to do, use -c, -x or -d\n", os.Args[0])
		flag.Usage()
		os.Exit(2)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Files.Verbose = verbose

	var prog *asm.Image

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		assembler := &asm.Assembler{
			Verbose:         verbose,
			DisablePeephole: !optimize,
		}
		for name, value := range emu.Defines() {
			assembler.Predefine(name, value)
		}
		for name, value := range defines {
			assembler.Predefine(name, value)
		}

		prog, err = assembler.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(save) != 0 {
			err = os.WriteFile(save, prog.Bytes, 0o644)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
		}
	}

	// Disassemble a binary.
	if len(disasm) != 0 {
		data, err := os.ReadFile(disasm)
		if err != nil {
			log.Fatalf("%v: %v", disasm, err)
		}
		for _, line := range asm.NewImage(data, 0).Listing() {
			fmt.Println(line)
		}
	}

	// Load a binary.
	if len(binary) != 0 {
		data, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		prog = asm.NewImage(data, 0)
		run = true
	}

	if prog == nil || !(run || debug) {
		return
	}

	name := compile
	if len(binary) != 0 {
		name = binary
	}

	emu.Program = prog

	if input == "-" {
		if !debug {
			emu.Console.Input = os.Stdin
		}
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Console.Input = inf
	}

	var store io.CreateFS
	if len(filesys) != 0 {
		var err error
		store, err = io.DirFS(filesys)
		if err == nil {
			err = emu.Files.Unmarshal(store)
		}
		if err != nil {
			log.Fatalf("%v: %v", filesys, err)
		}
	}

	var err error
	if debug {
		err = runDebugger(emu)
	} else {
		if output == "-" {
			emu.Console.Output = os.Stdout
		} else {
			ouf, err := os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
			emu.Console.Output = ouf
		}

		err = emu.Reset()
		if err == nil {
			err = emu.Run()
		}
		if rerr := emu.Canvas.Render(os.Stdout); rerr != nil {
			log.Printf("canvas: %v", rerr)
		}
	}

	if store != nil {
		if serr := emu.Files.Marshal(store); serr != nil {
			log.Printf("%v: %v", filesys, serr)
		}
	}

	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
}
