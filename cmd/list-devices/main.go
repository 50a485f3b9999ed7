// ABOUTME: CLI tool to list audio outputs as both the sound server and the audio backend see them.
// ABOUTME: Used to find labels for -d/-o and device names for the switch chime.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/777genius/audio-switcher/internal/audio"
	"github.com/777genius/audio-switcher/internal/config"
	"github.com/777genius/audio-switcher/internal/pulse"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Config file path")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	listing, err := pulse.New(cfg, pulse.ExecRunner{}).ListSinks(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing sinks: %v\n", err)
		os.Exit(1)
	}
	printSinks(os.Stdout, listing)

	devices, err := audio.ListDevices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing audio backend devices: %v\n", err)
		os.Exit(1)
	}
	printBackendDevices(os.Stdout, devices)
}

func printSinks(w io.Writer, listing pulse.Listing) {
	if listing.Inventory.Len() == 0 {
		fmt.Fprintln(w, "No sinks found.")
		return
	}

	fmt.Fprintln(w, "Sound server outputs (use with -d / -o):")
	fmt.Fprintln(w)
	for _, dev := range listing.Inventory.Devices() {
		marker := ""
		if dev.Label == listing.Current {
			marker = " (active)"
		}
		fmt.Fprintf(w, "  %d: %s%s\n", dev.Index, dev.Label, marker)
	}
	fmt.Fprintln(w)
}

func printBackendDevices(w io.Writer, devices []audio.DeviceInfo) {
	if len(devices) == 0 {
		fmt.Fprintln(w, "No audio backend playback devices found.")
		return
	}

	fmt.Fprintln(w, "Audio backend playback devices (chime plays on the one matching the new output):")
	fmt.Fprintln(w)
	for i, dev := range devices {
		defaultMarker := ""
		if dev.IsDefault {
			defaultMarker = " (default)"
		}
		fmt.Fprintf(w, "  %d: %s%s\n", i, dev.Name, defaultMarker)
	}
}
