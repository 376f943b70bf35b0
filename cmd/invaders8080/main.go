// main.go - CLI entry point: parse configuration, load the ROM, wire up
// the cabinet, and run until the window closes.

/*
 ▄▄▄██▄▄▄ ▄▄▄      ██▓▄▄▄█████▓ ▒█████
   ▒██▒▄▄▒████▄   ▓██▒▓  ██▒ ▓▒▒██▒  ██▒
   ▒██▒ ▒██  ▀█▄ ▒██▒▒ ▓██░ ▒░▒██░  ██▒
   ░██▒ ░██▄▄▄▄██░██░░ ▓██▓ ░ ▒██   ██░
   ░██░  ▓█   ▓██░██░  ▒██▒ ░ ░ ████▓▒░
   ░▓    ▒▒   ▓▒█░▓    ▒ ░░   ░ ▒░▒░▒░
    ▒ ░   ▒   ▒▒ ▒ ░    ░      ░ ▒ ▒░
    ▒ ░   ░   ▒  ▒ ░  ░      ░ ░ ░ ▒
    ░         ░  ░░                ░ ░

Space Invaders (1978) on an emulated Intel 8080 cabinet.
License: GPLv3 or later
*/

package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"invaders8080/internal/arcadeio"
	"invaders8080/internal/audio"
	"invaders8080/internal/config"
	"invaders8080/internal/cpu8080"
	"invaders8080/internal/logging"
	"invaders8080/internal/machine"
	"invaders8080/internal/romload"
	"invaders8080/internal/video"
)

func boilerPlate() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("invaders8080 - Space Invaders on an emulated Intel 8080 cabinet")
		return
	}
	fmt.Println("\033[38;2;255;20;147m ▄▄▄██▄▄▄ ▄▄▄      ██▓▄▄▄█████▓ ▒█████  \033[0m")
	fmt.Println("\033[38;2;255;80;147m   ▒██▒▄▄▒████▄   ▓██▒▓  ██▒ ▓▒▒██▒  ██▒\033[0m")
	fmt.Println("\033[38;2;255;140;147m   ▒██▒ ▒██  ▀█▄ ▒██▒▒ ▓██░ ▒░▒██░  ██▒\033[0m")
	fmt.Println("\033[38;2;255;200;147m   ░██░  ▓█   ▓██░██░  ▒██▒ ░ ░ ████▓▒░\033[0m")
	fmt.Println("Space Invaders (1978) on an emulated Intel 8080 cabinet")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invaders8080: %v\n", err)
		os.Exit(2)
	}

	boilerPlate()

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	rom, err := romload.Load(cfg.ROMPath)
	if err != nil {
		logger.Errorf("loading ROM: %v", err)
		os.Exit(1)
	}

	cpu := cpu8080.NewState8080()
	cpu.Load(rom, 0, 0)
	cpu.IE = false

	player, err := audio.NewPlayer()
	if err != nil {
		logger.Errorf("creating audio backend: %v", err)
		os.Exit(1)
	}
	defer player.Close()

	io := arcadeio.NewShiftIOWithSound(player.Trigger)

	display, err := video.NewOutput()
	if err != nil {
		logger.Errorf("creating video backend: %v", err)
		os.Exit(1)
	}

	cab := machine.NewCabinet(cpu, io, display)

	displayCfg := video.DisplayConfig{
		Scale:      cfg.Scale,
		Fullscreen: cfg.Fullscreen,
		Title:      "Space Invaders",
	}

	runErr := cab.Run(context.Background(), displayCfg)
	if runErr == nil {
		return
	}

	logger.Errorf("fatal: %v", runErr)
	switch runErr.(type) {
	case *cpu8080.UnimplementedOpcodeError, *arcadeio.UnsupportedPortError:
		logger.Errorf("cpu state at failure: %s", cpu.StateDump())
	}
	os.Exit(1)
}
