// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/sap8/clock"
	"github.com/ezrec/sap8/emulator"
)

// exportRom writes the microcode ROM image in raw, Intel HEX and
// listing forms into a directory.
func exportRom(emu *emulator.Emulator, dir string) (err error) {
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return
	}

	err = os.WriteFile(filepath.Join(dir, "microcode.bin"), emu.Table.Image(), 0o644)
	if err != nil {
		return
	}

	hexFile, err := os.Create(filepath.Join(dir, "microcode.hex"))
	if err != nil {
		return
	}
	defer hexFile.Close()
	err = emu.Table.WriteIntelHex(hexFile)
	if err != nil {
		return
	}

	lstFile, err := os.Create(filepath.Join(dir, "microcode.lst"))
	if err != nil {
		return
	}
	defer lstFile.Close()
	err = emu.Table.WriteListing(lstFile)
	return
}

func main() {
	var compile string
	var output string
	var kindName string
	var presetName string
	var romDir string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s8 file to assemble and run")
	flag.StringVar(&output, "o", "-", "Output port destination")
	flag.StringVar(&kindName, "k", "software", "Clock backend (software, timer, rc)")
	flag.StringVar(&presetName, "p", "turbo", "Clock preset (turbo, fast, normal, slow, breadboard, glacial)")
	flag.StringVar(&romDir, "rom", "", "Directory to export the microcode ROM into")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	kind, err := clock.ParseKind(kindName)
	if err != nil {
		log.Fatalf("%v: %v", kindName, err)
	}

	preset, err := clock.ParsePreset(presetName)
	if err != nil {
		log.Fatalf("%v: %v", presetName, err)
	}

	emu, err := emulator.New(kind, preset.Period())
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose

	if len(romDir) != 0 {
		err = exportRom(emu, romDir)
		if err != nil {
			log.Fatalf("%v: %v", romDir, err)
		}
	}

	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		ouf := os.Stdout
		if output != "-" {
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = emu.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}

		for _, value := range emu.OutputStream() {
			fmt.Fprintf(ouf, "%d\n", value)
		}
	}
}
