package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vemoo/ubi/internal/platform"
)

// runPlatform handles the `ubi platform` subcommand
func runPlatform(args []string) error {
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printPlatformHelp()
			return nil
		default:
			return fmt.Errorf("unknown option: %s\nRun 'ubi platform --help' for usage", arg)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect host platform: %w", err)
	}

	fmt.Printf("Platform:     %s\n", info.String())
	fmt.Printf("OS:           %s\n", info.OS)
	fmt.Printf("Architecture: %s (raw: %s)\n", info.Arch, info.ArchRaw)
	if distro := info.Platform; distro != "" {
		fmt.Printf("Distribution: %s", distro)
		if info.Version != "" {
			fmt.Printf(" %s", info.Version)
		}
		fmt.Printf(" (family: %s)\n", info.Family)
	}
	if info.UsesMusl() {
		fmt.Println("libc:         musl (prefer statically linked assets)")
	}
	if suffix := info.ExeSuffix(); suffix != "" {
		fmt.Printf("Exe suffix:   %s\n", suffix)
	}

	return nil
}

// printPlatformHelp prints help for the platform command
func printPlatformHelp() {
	fmt.Println("Usage: ubi platform")
	fmt.Println()
	fmt.Println("Show the detected host platform: OS, architecture, and the Linux")
	fmt.Println("distribution when one can be identified. This is the same")
	fmt.Println("detection 'ubi install' uses to pick its matching rules.")
	fmt.Println()
}
